package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ValidationError collects per-field problems. Messages are user facing (Arabic).
type ValidationError struct {
	FieldErrors map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{FieldErrors: make(map[string]string)}
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// Add keeps the first message reported for a field.
func (e *ValidationError) Add(field, msg string) {
	if _, exists := e.FieldErrors[field]; !exists {
		e.FieldErrors[field] = msg
	}
}

func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for f, m := range other.FieldErrors {
		e.Add(f, m)
	}
}

func (e *ValidationError) Empty() bool { return len(e.FieldErrors) == 0 }

// OrNil returns nil when nothing was collected, so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e == nil || e.Empty() {
		return nil
	}
	return e
}

const (
	MsgRequired       = "هذا الحقل مطلوب"
	MsgInvalidNumber  = "يرجى إدخال رقم صحيح"
	MsgMustBePositive = "يجب أن تكون القيمة أكبر من صفر"
	MsgRoomsRange     = "يجب أن يكون العدد بين 0 و 50"
	MsgInvalidChoice  = "القيمة المختارة غير صالحة"
	MsgNameTooShort   = "يجب أن يتكون الاسم من حرفين على الأقل"
	MsgInvalidPhone   = "رقم الهاتف غير صحيح، يرجى إدخال رقم موبايل مصري صحيح"
	MsgInvalidEmail   = "البريد الإلكتروني غير صحيح"
	MsgDescTooLong    = "الوصف طويل جداً (الحد الأقصى 2000 حرف)"
	MsgImagesRequired = "يرجى إضافة صورة واحدة على الأقل"
	MsgInvalidURL     = "الرابط غير صحيح"
	MsgNegative       = "لا يمكن أن تكون القيمة سالبة"
)

const (
	MaxDescriptionRunes = 2000
	MinNameRunes        = 2
	MaxRooms            = 50
)

var (
	numericRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
	integerRe = regexp.MustCompile(`^[0-9]+$`)
	phoneRe   = regexp.MustCompile(`^(?:(?:\+?20)1|01)[0125][0-9]{8}$`)
	emailRe   = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	urlRe     = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
)

// asciiDigits folds Arabic-Indic and Eastern Arabic-Indic digits and separators to ASCII.
var asciiDigits = runes.Map(func(r rune) rune {
	switch {
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠')
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰')
	case r == '٫':
		return '.'
	case r == '٬':
		return ','
	}
	return r
})

// NormalizeDigits applies NFC and folds non-ASCII digits.
func NormalizeDigits(s string) string {
	out, _, err := transform.String(transform.Chain(norm.NFC, asciiDigits), s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeNumber prepares a user-typed amount for numeric validation.
func NormalizeNumber(s string) string {
	s = NormalizeDigits(strings.TrimSpace(s))
	return strings.NewReplacer(",", "", " ", "", "\u00a0", "").Replace(s)
}

// NormalizePhone strips separators so "010 1234-5678" validates.
func NormalizePhone(s string) string {
	s = NormalizeDigits(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(s)
}

func validatePositiveNumber(v *ValidationError, field, value string) {
	n := NormalizeNumber(value)
	if n == "" {
		v.Add(field, MsgRequired)
		return
	}
	if !numericRe.MatchString(n) {
		v.Add(field, MsgInvalidNumber)
		return
	}
	if f, err := strconv.ParseFloat(n, 64); err != nil || f <= 0 {
		v.Add(field, MsgMustBePositive)
	}
}

func validateOptionalRooms(v *ValidationError, field, value string) {
	n := NormalizeNumber(value)
	if n == "" {
		return
	}
	if !integerRe.MatchString(n) {
		v.Add(field, MsgInvalidNumber)
		return
	}
	if i, err := strconv.Atoi(n); err != nil || i < 0 || i > MaxRooms {
		v.Add(field, MsgRoomsRange)
	}
}

func validateRequiredChoice(v *ValidationError, field, value string, valid func(string) bool) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, MsgRequired)
		return
	}
	if !valid(value) {
		v.Add(field, MsgInvalidChoice)
	}
}

// ValidateName checks a contact name.
func ValidateName(v *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, MsgRequired)
		return
	}
	if utf8.RuneCountInString(strings.TrimSpace(value)) < MinNameRunes {
		v.Add(field, MsgNameTooShort)
	}
}

// ValidatePhone checks an Egyptian mobile number.
func ValidatePhone(v *ValidationError, field, value string) {
	p := NormalizePhone(value)
	if p == "" {
		v.Add(field, MsgRequired)
		return
	}
	if !phoneRe.MatchString(p) {
		v.Add(field, MsgInvalidPhone)
	}
}

// ValidateOptionalEmail accepts an empty value.
func ValidateOptionalEmail(v *ValidationError, field, value string) {
	e := strings.TrimSpace(value)
	if e != "" && !emailRe.MatchString(e) {
		v.Add(field, MsgInvalidEmail)
	}
}

// ValidateOptionalURL accepts an empty value.
func ValidateOptionalURL(v *ValidationError, field, value string) {
	u := strings.TrimSpace(value)
	if u != "" && !urlRe.MatchString(u) {
		v.Add(field, MsgInvalidURL)
	}
}

func validateNonNegative(v *ValidationError, field string, value int) {
	if value < 0 {
		v.Add(field, MsgNegative)
	}
}
