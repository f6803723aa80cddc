package chat

import (
	"context"
	"strings"
	"unicode"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type rule struct {
	intent   domain.Intent
	keywords []string
	reply    string
	quick    []string
}

// rules are checked in order; the first rule with a matching keyword wins.
var rules = []rule{
	{
		intent:   domain.IntentListProperty,
		keywords: []string{"اعرض عقار", "اضيف عقار", "عرض عقاري", "ابيع شقتي", "ابيع عقار", "اعلن", "list my property", "sell my"},
		reply:    "يسعدنا مساعدتك في عرض عقارك! يمكنك إضافة عقارك من خلال صفحة \"اعرض عقارك\" في أربع خطوات بسيطة: تفاصيل العقار، الصور، بيانات التواصل ثم التأكيد.",
		quick:    []string{"اعرض عقارك الآن", "ما المستندات المطلوبة؟", "تواصل معنا"},
	},
	{
		intent:   domain.IntentRent,
		keywords: []string{"ايجار", "للايجار", "استاجر", "rent"},
		reply:    "لدينا مجموعة من الوحدات المتاحة للإيجار في مختلف المحافظات. ما المنطقة والميزانية المناسبة لك؟",
		quick:    []string{"شقق للإيجار", "فلل للإيجار", "تواصل مع مستشار"},
	},
	{
		intent:   domain.IntentBuy,
		keywords: []string{"شراء", "اشتري", "للبيع", "تمليك", "buy"},
		reply:    "نوفر لك أفضل العقارات للبيع بأسعار تنافسية وخطط سداد مرنة. ما نوع العقار الذي تبحث عنه؟",
		quick:    []string{"شقق للبيع", "فلل للبيع", "وحدات تجارية"},
	},
	{
		intent:   domain.IntentPrices,
		keywords: []string{"سعر", "اسعار", "بكام", "تكلفه", "قسط", "تقسيط", "price"},
		reply:    "تختلف الأسعار حسب الموقع والمساحة ومستوى التشطيب. أخبرنا بالمنطقة والمساحة المطلوبة وسنرسل لك أفضل العروض.",
		quick:    []string{"احسب تكلفة التشطيب", "خطط التقسيط", "تواصل مع مستشار"},
	},
	{
		intent:   domain.IntentPortfolio,
		keywords: []string{"اعمال", "مشاريع", "مشروعات", "معرض", "portfolio"},
		reply:    "يمكنك مشاهدة مشروعاتنا المنفذة في صفحة معرض الأعمال، وتشمل مشروعات سكنية وتجارية وإدارية.",
		quick:    []string{"مشروعات سكنية", "مشروعات تجارية", "تواصل معنا"},
	},
	{
		intent:   domain.IntentProducts,
		keywords: []string{"منتج", "منتجات", "متجر", "اثاث", "ديكور", "store", "shop"},
		reply:    "تصفح متجرنا للحصول على منتجات التشطيب والديكور المختارة بعناية مع إمكانية الطلب المباشر.",
		quick:    []string{"تصفح المتجر", "حالة طلبي", "تواصل معنا"},
	},
	{
		intent:   domain.IntentContact,
		keywords: []string{"تواصل", "اتصل", "رقم", "هاتف", "عنوان", "واتس", "contact", "phone"},
		reply:    "يمكنك التواصل معنا عبر نموذج التواصل أو الاتصال بنا مباشرة، وسيقوم أحد مستشارينا بالرد عليك في أقرب وقت.",
		quick:    []string{"اطلب مكالمة", "مواعيد العمل", "العنوان"},
	},
	{
		intent:   domain.IntentGreeting,
		keywords: []string{"مرحبا", "السلام عليكم", "اهلا", "صباح الخير", "مساء الخير", "hello", "hi"},
		reply:    "أهلاً بك في AMG! كيف يمكنني مساعدتك اليوم؟",
		quick:    []string{"أريد شراء عقار", "أريد عرض عقاري", "أسعار الوحدات"},
	},
}

var fallback = rule{
	intent: domain.IntentFallback,
	reply:  "شكراً لتواصلك معنا! لم أفهم طلبك تماماً، هل يمكنك توضيحه؟ يمكنك أيضاً اختيار أحد الخيارات التالية.",
	quick:  []string{"أريد شراء عقار", "أريد عرض عقاري", "تواصل مع مستشار"},
}

// normalizer strips diacritics and tatweel, then folds alef, yaa and taa marbuta variants.
var normalizer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Remove(runes.Predicate(func(r rune) bool { return r == 'ـ' })),
	runes.Map(func(r rune) rune {
		switch r {
		case 'أ', 'إ', 'آ', 'ٱ':
			return 'ا'
		case 'ى':
			return 'ي'
		case 'ة':
			return 'ه'
		}
		return unicode.ToLower(r)
	}),
	norm.NFC,
)

// Normalize folds Arabic spelling variants so keyword matching is forgiving.
func Normalize(s string) string {
	out, _, err := transform.String(normalizer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.Join(strings.Fields(out), " ")
}

// RuleAssistant answers chat messages from a keyword table.
type RuleAssistant struct {
	rules []rule
}

func NewRuleAssistant() *RuleAssistant {
	compiled := make([]rule, len(rules))
	for i, r := range rules {
		kw := make([]string, len(r.keywords))
		for j, k := range r.keywords {
			kw[j] = Normalize(k)
		}
		r.keywords = kw
		compiled[i] = r
	}
	return &RuleAssistant{rules: compiled}
}

var _ port.ChatAssistantPort = (*RuleAssistant)(nil)

func (a *RuleAssistant) Reply(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	text := Normalize(req.Message)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}

	matched := fallback
	for _, r := range a.rules {
		if matchesAny(text, r.keywords) {
			matched = r
			break
		}
	}

	contextkeys.LoggerFromContext(ctx).Debug("Chat intent detected", port.Fields{
		"component":  "RuleAssistant",
		"intent":     string(matched.intent),
		"session_id": req.SessionID,
	})

	quick := make([]string, len(matched.quick))
	copy(quick, matched.quick)
	return &domain.ChatReply{Message: matched.reply, QuickReplies: quick, Intent: matched.intent}, nil
}

func matchesAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if containsWord(text, k) {
			return true
		}
	}
	return false
}

// containsWord matches k only at word boundaries for short latin keywords
// like "hi" that would otherwise match inside other words.
func containsWord(text, k string) bool {
	if len(k) > 3 || !isLatin(k) {
		return strings.Contains(text, k)
	}
	for _, w := range strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) }) {
		if w == k {
			return true
		}
	}
	return false
}

func isLatin(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
