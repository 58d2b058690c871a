package form

import (
	"fmt"
	"time"

	"hr-tracker/internal/common/metrics"
	"hr-tracker/internal/models"
)

// SummaryKey is shown once a step-level validation fails.
const SummaryKey = "error-please-fix-errors"

// State is the interactive validation state of the form. Functions in this
// package never mutate a State they are given.
type State struct {
	Touched   map[string]bool   `json:"touched"`
	Triggered bool              `json:"triggered"`
	Errors    map[string]string `json:"errors"`
}

func NewState() State {
	return State{Touched: map[string]bool{}, Errors: map[string]string{}}
}

func (s State) clone() State {
	out := State{
		Touched:   make(map[string]bool, len(s.Touched)),
		Triggered: s.Triggered,
		Errors:    make(map[string]string, len(s.Errors)),
	}
	for k, v := range s.Touched {
		out.Touched[k] = v
	}
	for k, v := range s.Errors {
		out.Errors[k] = v
	}
	return out
}

func (s State) dirty(field string) bool {
	return s.Triggered || s.Touched[field]
}

func (s *State) put(field, key string) {
	if key == "" {
		delete(s.Errors, field)
		return
	}
	s.Errors[field] = key
}

// ValidateField re-runs the rule of one field.
func ValidateField(s State, f models.ApplicationForm, field string) State {
	out := s.clone()
	out.put(field, CheckField(f, field))
	return out
}

// Blur marks field as touched and validates it.
func Blur(s State, f models.ApplicationForm, field string) State {
	out := ValidateField(s, f, field)
	out.Touched[field] = true
	return out
}

// ValidateStep validates every field of step and makes all errors visible.
// The returned errors replace the previous ones. summary is SummaryKey when
// the step failed.
func ValidateStep(s State, f models.ApplicationForm, step Step) (out State, passed bool, summary string) {
	out = s.clone()
	out.Triggered = true
	out.Errors = CheckStep(f, step)
	passed = len(out.Errors) == 0

	result := "passed"
	if !passed {
		result = "failed"
		summary = SummaryKey
	}
	metrics.FormStepValidations.WithLabelValues(string(step), result).Inc()
	return out, passed, summary
}

// Change sets field to value. The field's error is cleared and, once the
// field is dirty, recomputed. Choosing a gender drops a widowed status that
// does not match it; a date of birth fills in the age.
func Change(s State, f models.ApplicationForm, field, value string) (models.ApplicationForm, State, error) {
	return changeAt(s, f, field, value, time.Now())
}

func changeAt(s State, f models.ApplicationForm, field, value string, today time.Time) (models.ApplicationForm, State, error) {
	if !setValue(&f, field, value) {
		return f, s, fmt.Errorf("unknown field %q", field)
	}
	out := s.clone()
	delete(out.Errors, field)

	switch field {
	case FieldGender:
		p := &f.PersonalInfo
		if widowedMismatch(value, p.SocialStatus) {
			p.SocialStatus = ""
			if out.dirty(FieldSocialStatus) {
				out.put(FieldSocialStatus, CheckField(f, FieldSocialStatus))
			}
		}
		if out.dirty(FieldMilitaryServiceStatus) {
			out.put(FieldMilitaryServiceStatus, CheckField(f, FieldMilitaryServiceStatus))
		}
	case FieldDateOfBirth:
		f.PersonalInfo.Age = nil
		if dob, err := ParseDateOfBirth(value); err == nil {
			age := CalculateAge(dob, today)
			f.PersonalInfo.Age = &age
		}
	}

	if out.dirty(field) {
		out.put(field, CheckField(f, field))
	}
	return f, out, nil
}

// VisibleError returns the error to display for field: nothing until the
// field was touched or a step validation ran.
func VisibleError(s State, field string) string {
	if !s.dirty(field) {
		return ""
	}
	return s.Errors[field]
}
