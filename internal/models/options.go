package models

// Option is a selectable value with the message key used for its label.
// LabelKey is empty when the value itself is the label (place names).
type Option struct {
	Value    string `json:"value"`
	LabelKey string `json:"labelKey,omitempty"`
}

// Gender values are stored in Arabic, as the server expects.
const (
	GenderMale   = "ذكر"
	GenderFemale = "أنثى"
)

const (
	MaritalSingle      = "أعزب"
	MaritalMarried     = "متزوج"
	MaritalDivorced    = "مطلق"
	MaritalWidower     = "أرمل"
	MaritalWidow       = "أرملة"
	AreaOther          = "أخرى"
	VehicleYes         = "نعم"
	VehicleNo          = "لا"
	DrivingLicenseNone = "لا يوجد"
	MilitaryCompleted  = "أدى الخدمة"
	MilitaryPermExempt = "معفي نهائياً"
	MilitaryTempExempt = "معفي مؤقتاً"
	MilitaryDeferred   = "مؤجل"
)

var GenderOptions = []Option{
	{Value: GenderMale, LabelKey: "male"},
	{Value: GenderFemale, LabelKey: "female"},
}

var MilitaryServiceOptions = []Option{
	{Value: MilitaryPermExempt, LabelKey: "permanently-exempt"},
	{Value: MilitaryDeferred, LabelKey: "deferred"},
	{Value: MilitaryCompleted, LabelKey: "completed-service"},
	{Value: MilitaryTempExempt, LabelKey: "temporarily-exempt"},
}

var VehicleOptions = []Option{
	{Value: VehicleYes, LabelKey: "yes"},
	{Value: VehicleNo, LabelKey: "no"},
}

var DrivingLicenseOptions = []Option{
	{Value: DrivingLicenseNone, LabelKey: "no-license"},
	{Value: "رخصة خاصة", LabelKey: "private-license"},
	{Value: "رخصة مهنية - مستوى 1", LabelKey: "professional-license-level-1"},
	{Value: "رخصة مهنية - مستوى 2", LabelKey: "professional-license-level-2"},
	{Value: "رخصة مهنية - مستوى 3", LabelKey: "professional-license-level-3"},
	{Value: "رخصة دراجة نارية", LabelKey: "motorcycle-license"},
}

var EducationStatusOptions = []Option{
	{Value: "higher-qualification", LabelKey: "higher-qualification"},
	{Value: "above-intermediate-qualification", LabelKey: "above-intermediate-qualification"},
	{Value: "preparatory", LabelKey: "preparatory"},
	{Value: "primary", LabelKey: "primary"},
	{Value: "illiterate", LabelKey: "illiterate"},
	{Value: "no-qualification", LabelKey: "no-qualification"},
}

// Governorates of Egypt.
var GovernorateOptions = places(
	"القاهرة", "الجيزة", "الإسكندرية", "الدقهلية", "البحر الأحمر", "البحيرة",
	"الفيوم", "الغربية", "الإسماعيلية", "المنوفية", "المنيا", "القليوبية",
	"الوادي الجديد", "السويس", "أسوان", "أسيوط", "بني سويف", "بورسعيد",
	"دمياط", "الشرقية", "جنوب سيناء", "كفر الشيخ", "مطروح", "الأقصر",
	"قنا", "شمال سيناء", "سوهاج",
)

// Areas of Greater Cairo and the new cities, plus "other".
var AreaOptions = places(
	// Cairo
	"وسط البلد", "المعادي", "مصر الجديدة", "الزمالك", "مدينة نصر", "شبرا",
	"عين شمس", "المطرية", "حلوان", "المرج", "السلام", "النزهة", "الزيتون",
	"حدائق القبة", "روض الفرج", "شبرا الخيمة", "السيدة زينب", "الدرب الأحمر",
	"باب الشعرية", "الوايلي", "منشأة ناصر", "البساتين", "دار السلام", "طره",
	"15 مايو",
	// Giza
	"المهندسين", "الدقي", "الجيزة", "العجوزة", "الهرم", "فيصل", "حدائق الأهرام",
	"العمرانية", "إمبابة", "الوراق", "بولاق الدكرور", "أوسيم", "كرداسة",
	// new cities
	"التجمع الخامس", "التجمع الأول", "التجمع الثالث", "القاهرة الجديدة", "الرحاب",
	"مدينتي", "الشروق", "بدر", "العبور", "العاشر من رمضان", "الشيخ زايد",
	"أكتوبر", "العاصمة الإدارية", "المستقبل سيتي",
	AreaOther,
)

func places(values ...string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v}
	}
	return out
}

// HasOption reports whether value is one of opts.
func HasOption(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

// LabelKeyFor returns the label key of value, or value itself when it has none.
func LabelKeyFor(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value && o.LabelKey != "" {
			return o.LabelKey
		}
	}
	return value
}
