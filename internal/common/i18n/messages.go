// Package i18n holds the English and Arabic texts for message keys used by
// the form validator, option labels and the CLI.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var (
	English = language.English
	Arabic  = language.Arabic
)

// entry is {english, arabic}.
type entry [2]string

var messages = map[string]entry{
	// validation
	"error-name-required":             {"Name is required", "الاسم مطلوب"},
	"error-name-min-length":           {"Name must be at least 3 characters", "يجب ألا يقل الاسم عن 3 أحرف"},
	"error-date-of-birth-required":    {"Date of birth is required", "تاريخ الميلاد مطلوب"},
	"error-gender-required":           {"Gender is required", "النوع مطلوب"},
	"error-governorate-required":      {"Governorate is required", "المحافظة مطلوبة"},
	"error-area-required":             {"Area is required", "المنطقة مطلوبة"},
	"error-address-required":          {"Address is required", "العنوان مطلوب"},
	"error-national-id-required":      {"National ID is required", "الرقم القومي مطلوب"},
	"error-national-id-length":        {"National ID must be 14 digits", "يجب أن يتكون الرقم القومي من 14 رقمًا"},
	"error-nationality-required":      {"Nationality is required", "الجنسية مطلوبة"},
	"error-phone-number-required":     {"WhatsApp number is required", "رقم الواتساب مطلوب"},
	"error-phone-number-length":       {"WhatsApp number must be 11 digits", "يجب أن يتكون رقم الواتساب من 11 رقمًا"},
	"error-mobile-number-required":    {"Mobile number is required", "رقم الموبايل مطلوب"},
	"error-mobile-number-length":      {"Mobile number must be 11 digits", "يجب أن يتكون رقم الموبايل من 11 رقمًا"},
	"error-emergency-number-length":   {"Emergency number must be 11 digits", "يجب أن يتكون رقم الطوارئ من 11 رقمًا"},
	"error-email-invalid":             {"Email address is invalid", "البريد الإلكتروني غير صحيح"},
	"error-military-service-required": {"Military service status is required", "موقف التجنيد مطلوب"},
	"error-marital-status-required":   {"Marital status is required", "الحالة الاجتماعية مطلوبة"},
	"error-job-title-required":        {"Please choose a position", "برجاء اختيار الوظيفة"},
	"error-please-fix-errors":         {"Please fix the errors before continuing", "برجاء تصحيح الأخطاء قبل المتابعة"},
	"error-unknown-option":            {"Not one of the available choices", "ليست من الاختيارات المتاحة"},

	// option labels
	"male":                             {"Male", "ذكر"},
	"female":                           {"Female", "أنثى"},
	"single":                           {"Single", "أعزب"},
	"married":                          {"Married", "متزوج"},
	"divorced":                         {"Divorced", "مطلق"},
	"widowed":                          {"Widowed", "أرمل"},
	"widowed-male":                     {"Widowed", "أرمل"},
	"widowed-female":                   {"Widowed", "أرملة"},
	"permanently-exempt":               {"Permanently Exempt", "معفي نهائياً"},
	"deferred":                         {"Deferred", "مؤجل"},
	"completed-service":                {"Completed Service", "أدى الخدمة"},
	"temporarily-exempt":               {"Temporarily Exempt", "معفي مؤقتاً"},
	"yes":                              {"Yes", "نعم"},
	"no":                               {"No", "لا"},
	"no-license":                       {"No License", "لا يوجد"},
	"private-license":                  {"Private License", "رخصة خاصة"},
	"professional-license-level-1":     {"Professional License - Level 1", "رخصة مهنية - مستوى 1"},
	"professional-license-level-2":     {"Professional License - Level 2", "رخصة مهنية - مستوى 2"},
	"professional-license-level-3":     {"Professional License - Level 3", "رخصة مهنية - مستوى 3"},
	"motorcycle-license":               {"Motorcycle License", "رخصة دراجة نارية"},
	"higher-qualification":             {"Higher Qualification", "مؤهل عالي"},
	"above-intermediate-qualification": {"Above Intermediate Qualification", "مؤهل فوق متوسط"},
	"preparatory":                      {"Preparatory", "إعدادية"},
	"primary":                          {"Primary", "ابتدائية"},
	"illiterate":                       {"Literacy", "محو أمية"},
	"no-qualification":                 {"No Qualification", "بدون مؤهل"},

	// statuses
	"pending":                {"Pending", "قيد الانتظار"},
	"reviewed":               {"Reviewed", "تمت المراجعة"},
	"rejected":               {"Rejected", "مرفوض"},
	"accepted_for_interview": {"Accepted for interview", "مقبول للمقابلة"},
	"accepted_to_join":       {"Accepted to join", "مقبول للالتحاق"},

	// field names
	"name":                  {"Name", "الاسم"},
	"dateOfBirth":           {"Date of birth", "تاريخ الميلاد"},
	"gender":                {"Gender", "النوع"},
	"governorate":           {"Governorate", "المحافظة"},
	"area":                  {"Area", "المنطقة"},
	"address":               {"Address", "العنوان"},
	"nationalId":            {"National ID", "الرقم القومي"},
	"nationality":           {"Nationality", "الجنسية"},
	"whatsappNumber":        {"WhatsApp number", "رقم الواتساب"},
	"mobileNumber":          {"Mobile number", "رقم الموبايل"},
	"emergencyNumber":       {"Emergency contact", "رقم الطوارئ"},
	"email":                 {"Email", "البريد الإلكتروني"},
	"militaryServiceStatus": {"Military service", "موقف التجنيد"},
	"socialStatus":          {"Marital status", "الحالة الاجتماعية"},
	"jobTitle":              {"Position applied for", "الوظيفة المتقدم لها"},
	"educationStatus":       {"Education", "المؤهل الدراسي"},
}

var cat = build()

func build() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(English))
	for key, e := range messages {
		_ = b.SetString(English, key, e[0])
		_ = b.SetString(Arabic, key, e[1])
	}
	return b
}

// Translator renders message keys in one language.
type Translator struct {
	printer *message.Printer
	tag     language.Tag
}

// New returns a Translator for locale ("ar", "en", or any BCP 47 tag).
// Unknown locales fall back to English.
func New(locale string) *Translator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = English
	}
	supported := []language.Tag{English, Arabic}
	_, idx, _ := language.NewMatcher(supported).Match(tag)
	tag = supported[idx]
	return &Translator{
		printer: message.NewPrinter(tag, message.Catalog(cat)),
		tag:     tag,
	}
}

// T returns the text for key; unknown keys come back unchanged.
func (t *Translator) T(key string) string {
	if !Has(key) {
		return key
	}
	return t.printer.Sprintf(key)
}

// Language returns the matched language tag.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// Has reports whether key has a translation.
func Has(key string) bool {
	_, ok := messages[key]
	return ok
}
