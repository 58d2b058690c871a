package form

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hr-tracker/internal/common/validation"
	"hr-tracker/internal/models"
)

// documentSchema checks the shape of a saved form before field rules run.
// Field values are left to the rule table.
const documentSchema = `{
	"type": "object",
	"required": ["personalInfo"],
	"properties": {
		"personalInfo": {
			"type": "object",
			"additionalProperties": {"type": ["string", "integer", "null"]}
		},
		"appliedJob": {
			"type": "object",
			"properties": {"jobTitle": {"type": "string"}}
		},
		"comments": {"type": "string"}
	}
}`

// selectFields are filled from fixed option lists; anything else in them
// means the document was not produced by the form.
var selectFields = []struct {
	field string
	opts  []models.Option
}{
	{FieldGender, models.GenderOptions},
	{FieldGovernorate, models.GovernorateOptions},
	{FieldArea, models.AreaOptions},
	{FieldMilitaryServiceStatus, models.MilitaryServiceOptions},
	{FieldHasVehicle, models.VehicleOptions},
	{FieldDrivingLicense, models.DrivingLicenseOptions},
	{FieldEducationStatus, models.EducationStatusOptions},
}

func unknownOptions(f models.ApplicationForm) []string {
	var out []string
	for _, s := range selectFields {
		v, _ := Value(f, s.field)
		if trim(v) != "" && !models.HasOption(s.opts, v) {
			out = append(out, fmt.Sprintf("personalInfo.%s: unknown option %q", s.field, v))
		}
	}
	return out
}

// Decode reads a form document and derives the age from the date of birth.
// Select fields must hold one of their options or be blank.
func Decode(raw []byte, today time.Time) (models.ApplicationForm, error) {
	var f models.ApplicationForm

	res, err := validation.ValidateDocument(documentSchema, raw)
	if err != nil {
		return f, fmt.Errorf("read form: %w", err)
	}
	if !res.Valid {
		return f, fmt.Errorf("malformed form: %s", strings.Join(res.GetErrorMessages(), "; "))
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		return f, fmt.Errorf("decode form: %w", err)
	}
	if bad := unknownOptions(f); len(bad) > 0 {
		return f, fmt.Errorf("malformed form: %s", strings.Join(bad, "; "))
	}

	f.PersonalInfo.Age = nil
	if dob, err := ParseDateOfBirth(f.PersonalInfo.DateOfBirth); err == nil {
		age := CalculateAge(dob, today)
		f.PersonalInfo.Age = &age
	}
	return f, nil
}
