// Package form validates the two-step applicant form. Field rules live in a
// single table; the interactive state (touched fields, step-level trigger)
// is an explicit value threaded through pure functions.
package form

import (
	"hr-tracker/internal/common/validation"
	"hr-tracker/internal/models"
)

// Step identifies one page of the applicant wizard.
type Step string

const (
	StepPersonal Step = "personal"
	StepJob      Step = "job"
)

// Steps in wizard order.
var Steps = []Step{StepPersonal, StepJob}

// Field names match the JSON names of the form.
const (
	FieldName                  = "name"
	FieldDateOfBirth           = "dateOfBirth"
	FieldGender                = "gender"
	FieldGovernorate           = "governorate"
	FieldArea                  = "area"
	FieldAddress               = "address"
	FieldNationalID            = "nationalId"
	FieldNationality           = "nationality"
	FieldWhatsappNumber        = "whatsappNumber"
	FieldMobileNumber          = "mobileNumber"
	FieldPhoneNumber           = "phoneNumber"
	FieldEmergencyNumber       = "emergencyNumber"
	FieldEmail                 = "email"
	FieldMilitaryServiceStatus = "militaryServiceStatus"
	FieldSocialStatus          = "socialStatus"
	FieldHasVehicle            = "hasVehicle"
	FieldDrivingLicense        = "drivingLicense"
	FieldEducationStatus       = "educationStatus"
	FieldJobTitle              = "jobTitle"
	FieldComments              = "comments"
)

const (
	NationalIDLength = 14
	PhoneLength      = 11
	NameMinLength    = 3
)

// Check fails with Key when Fails reports true.
type Check struct {
	Key   string
	Fails func(value string) bool
}

// Rule is the full constraint on one field. When Applies is set and returns
// false the field is not validated at all.
type Rule struct {
	Field   string
	Step    Step
	Applies func(p models.PersonalInfo) bool
	Checks  []Check
}

func required(key string) Check {
	return Check{Key: key, Fails: validation.IsBlank}
}

func minLength(n int, key string) Check {
	return Check{Key: key, Fails: func(v string) bool {
		return validation.Length(trim(v)) < n
	}}
}

func length(n int, key string) Check {
	return Check{Key: key, Fails: func(v string) bool {
		return validation.Length(v) != n
	}}
}

func optionalLength(n int, key string) Check {
	return Check{Key: key, Fails: func(v string) bool {
		return v != "" && validation.Length(v) != n
	}}
}

func optionalPattern(match func(string) bool, key string) Check {
	return Check{Key: key, Fails: func(v string) bool {
		return trim(v) != "" && !match(v)
	}}
}

// Rules is the only place field constraints are declared.
var Rules = []Rule{
	{Field: FieldName, Step: StepPersonal, Checks: []Check{
		required("error-name-required"),
		minLength(NameMinLength, "error-name-min-length"),
	}},
	{Field: FieldDateOfBirth, Step: StepPersonal, Checks: []Check{required("error-date-of-birth-required")}},
	{Field: FieldGender, Step: StepPersonal, Checks: []Check{required("error-gender-required")}},
	{Field: FieldGovernorate, Step: StepPersonal, Checks: []Check{required("error-governorate-required")}},
	{Field: FieldArea, Step: StepPersonal, Checks: []Check{required("error-area-required")}},
	{Field: FieldAddress, Step: StepPersonal, Checks: []Check{required("error-address-required")}},
	{Field: FieldNationalID, Step: StepPersonal, Checks: []Check{
		required("error-national-id-required"),
		length(NationalIDLength, "error-national-id-length"),
	}},
	{Field: FieldNationality, Step: StepPersonal, Checks: []Check{required("error-nationality-required")}},
	{Field: FieldWhatsappNumber, Step: StepPersonal, Checks: []Check{
		required("error-phone-number-required"),
		length(PhoneLength, "error-phone-number-length"),
	}},
	{Field: FieldMobileNumber, Step: StepPersonal, Checks: []Check{
		required("error-mobile-number-required"),
		length(PhoneLength, "error-mobile-number-length"),
	}},
	{Field: FieldEmergencyNumber, Step: StepPersonal, Checks: []Check{
		optionalLength(PhoneLength, "error-emergency-number-length"),
	}},
	{Field: FieldEmail, Step: StepPersonal, Checks: []Check{
		optionalPattern(validation.ValidateEmail, "error-email-invalid"),
	}},
	{
		Field:   FieldMilitaryServiceStatus,
		Step:    StepPersonal,
		Applies: func(p models.PersonalInfo) bool { return MilitaryServiceRequired(p.Gender) },
		Checks:  []Check{required("error-military-service-required")},
	},
	{Field: FieldSocialStatus, Step: StepPersonal, Checks: []Check{required("error-marital-status-required")}},
	{Field: FieldJobTitle, Step: StepJob, Checks: []Check{required("error-job-title-required")}},
}

var rulesByField = func() map[string]Rule {
	m := make(map[string]Rule, len(Rules))
	for _, r := range Rules {
		m[r.Field] = r
	}
	return m
}()

// RuleFor returns the rule of field, if it has one.
func RuleFor(field string) (Rule, bool) {
	r, ok := rulesByField[field]
	return r, ok
}

// StepFields lists the validated fields of step in rule order.
func StepFields(step Step) []string {
	var out []string
	for _, r := range Rules {
		if r.Step == step {
			out = append(out, r.Field)
		}
	}
	return out
}

// CheckField returns the message key of the first failing check on field, or
// "" when the field is valid or has no rule.
func CheckField(f models.ApplicationForm, field string) string {
	r, ok := rulesByField[field]
	if !ok {
		return ""
	}
	if r.Applies != nil && !r.Applies(f.PersonalInfo) {
		return ""
	}
	v, _ := Value(f, field)
	for _, c := range r.Checks {
		if c.Fails(v) {
			return c.Key
		}
	}
	return ""
}

// CheckStep validates every field of step. An empty map means the step passes.
func CheckStep(f models.ApplicationForm, step Step) map[string]string {
	errs := map[string]string{}
	for _, r := range Rules {
		if r.Step != step {
			continue
		}
		if key := CheckField(f, r.Field); key != "" {
			errs[r.Field] = key
		}
	}
	return errs
}

// CheckAll validates every step.
func CheckAll(f models.ApplicationForm) map[string]string {
	errs := map[string]string{}
	for _, s := range Steps {
		for k, v := range CheckStep(f, s) {
			errs[k] = v
		}
	}
	return errs
}
