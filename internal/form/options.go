package form

import (
	"time"

	"hr-tracker/internal/models"
)

// DateLayout is the format of dateOfBirth.
const DateLayout = "2006-01-02"

// MilitaryServiceRequired reports whether the military service status must
// be filled for gender. Only male applicants are asked.
func MilitaryServiceRequired(gender string) bool {
	return gender == models.GenderMale
}

// MaritalStatusOptions returns the marital statuses offered for gender. The
// widowed entry is gendered; with no gender chosen the masculine form is used.
func MaritalStatusOptions(gender string) []models.Option {
	opts := []models.Option{
		{Value: models.MaritalSingle, LabelKey: "single"},
		{Value: models.MaritalMarried, LabelKey: "married"},
		{Value: models.MaritalDivorced, LabelKey: "divorced"},
	}
	switch gender {
	case models.GenderMale:
		return append(opts, models.Option{Value: models.MaritalWidower, LabelKey: "widowed-male"})
	case models.GenderFemale:
		return append(opts, models.Option{Value: models.MaritalWidow, LabelKey: "widowed-female"})
	default:
		return append(opts, models.Option{Value: models.MaritalWidower, LabelKey: "widowed"})
	}
}

// widowedMismatch reports a widowed status of the opposite gender. An unset
// gender keeps whatever was chosen.
func widowedMismatch(gender, status string) bool {
	switch gender {
	case models.GenderMale:
		return status == models.MaritalWidow
	case models.GenderFemale:
		return status == models.MaritalWidower
	}
	return false
}

// ParseDateOfBirth reads a YYYY-MM-DD date.
func ParseDateOfBirth(s string) (time.Time, error) {
	return time.Parse(DateLayout, trim(s))
}

// CalculateAge returns completed years between dob and today.
func CalculateAge(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// AgeOf returns the stored age, or derives it from the date of birth when the
// server sent none. ok is false when neither is usable.
func AgeOf(p models.PersonalInfo, today time.Time) (int, bool) {
	if p.Age != nil {
		return *p.Age, true
	}
	if dob, err := ParseDateOfBirth(p.DateOfBirth); err == nil {
		return CalculateAge(dob, today), true
	}
	return 0, false
}

// JobTitleOptions offers the active titles only, in server order.
func JobTitleOptions(titles []models.JobTitle) []models.Option {
	var out []models.Option
	for _, t := range titles {
		if t.IsActive {
			out = append(out, models.Option{Value: t.Title})
		}
	}
	return out
}
