package domain

// Option is a selectable catalog entry with its Arabic label.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Catalog holds the static choice lists rendered by the wizard.
type Catalog struct {
	PropertyTypes  []Option `json:"propertyTypes"`
	Purposes       []Option `json:"purposes"`
	Governorates   []Option `json:"governorates"`
	Features       []Option `json:"features"`
	Services       []Option `json:"services"`
	PreferredTimes []Option `json:"preferredTimes"`
	UploadTypes    []Option `json:"uploadTypes"`
}

const (
	PurposeSale = "sale"
	PurposeRent = "rent"

	PreferredTimeAnytime = "anytime"
)

var defaultCatalog = Catalog{
	PropertyTypes: []Option{
		{"apartment", "شقة"},
		{"villa", "فيلا"},
		{"duplex", "دوبلكس"},
		{"penthouse", "بنتهاوس"},
		{"studio", "ستوديو"},
		{"chalet", "شاليه"},
		{"office", "مكتب إداري"},
		{"shop", "محل تجاري"},
		{"land", "أرض"},
		{"building", "عمارة"},
	},
	Purposes: []Option{
		{PurposeSale, "للبيع"},
		{PurposeRent, "للإيجار"},
	},
	Governorates: []Option{
		{"cairo", "القاهرة"},
		{"giza", "الجيزة"},
		{"alexandria", "الإسكندرية"},
		{"qalyubia", "القليوبية"},
		{"sharqia", "الشرقية"},
		{"dakahlia", "الدقهلية"},
		{"gharbia", "الغربية"},
		{"monufia", "المنوفية"},
		{"beheira", "البحيرة"},
		{"red-sea", "البحر الأحمر"},
		{"matrouh", "مطروح"},
		{"south-sinai", "جنوب سيناء"},
		{"ismailia", "الإسماعيلية"},
		{"suez", "السويس"},
		{"port-said", "بورسعيد"},
		{"damietta", "دمياط"},
	},
	Features: []Option{
		{"elevator", "مصعد"},
		{"parking", "جراج"},
		{"garden", "حديقة"},
		{"pool", "حمام سباحة"},
		{"security", "أمن وحراسة"},
		{"balcony", "بلكونة"},
		{"central-ac", "تكييف مركزي"},
		{"furnished", "مفروشة"},
		{"sea-view", "إطلالة على البحر"},
		{"gym", "صالة رياضية"},
	},
	Services: []Option{
		{"photography", "تصوير احترافي"},
		{"marketing", "تسويق إلكتروني"},
		{"legal", "استشارة قانونية"},
		{"valuation", "تقييم عقاري"},
		{"finishing", "تشطيب"},
		{"management", "إدارة العقار"},
	},
	PreferredTimes: []Option{
		{"morning", "صباحاً"},
		{"afternoon", "ظهراً"},
		{"evening", "مساءً"},
		{PreferredTimeAnytime, "أي وقت"},
	},
	UploadTypes: []Option{
		{UploadTypeProperty, "عقار"},
		{"portfolio", "معرض الأعمال"},
		{"product", "منتج"},
		{"hero", "الواجهة الرئيسية"},
		{"general", "عام"},
	},
}

// DefaultCatalog returns a copy-safe view of the built-in catalog.
func DefaultCatalog() Catalog {
	return defaultCatalog
}

func contains(opts []Option, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}

func IsPropertyType(id string) bool  { return contains(defaultCatalog.PropertyTypes, id) }
func IsPurpose(id string) bool       { return contains(defaultCatalog.Purposes, id) }
func IsGovernorate(id string) bool   { return contains(defaultCatalog.Governorates, id) }
func IsFeature(id string) bool       { return contains(defaultCatalog.Features, id) }
func IsService(id string) bool       { return contains(defaultCatalog.Services, id) }
func IsPreferredTime(id string) bool { return contains(defaultCatalog.PreferredTimes, id) }
func IsUploadType(id string) bool    { return contains(defaultCatalog.UploadTypes, id) }

// LabelOf returns the Arabic label for id, or id itself when unknown.
func LabelOf(opts []Option, id string) string {
	for _, o := range opts {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}
