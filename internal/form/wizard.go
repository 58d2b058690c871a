package form

import (
	apperrors "hr-tracker/internal/common/errors"
	"hr-tracker/internal/common/i18n"
	"hr-tracker/internal/models"
)

// Wizard walks an applicant through the steps in order. It only advances
// when the current step validates.
type Wizard struct {
	form   models.ApplicationForm
	state  State
	step   int
	titles []models.JobTitle
}

// NewWizard starts on the personal step. titles feeds the job step options.
func NewWizard(titles []models.JobTitle) *Wizard {
	return &Wizard{state: NewState(), titles: titles}
}

func (w *Wizard) Step() Step                   { return Steps[w.step] }
func (w *Wizard) Form() models.ApplicationForm { return w.form }
func (w *Wizard) State() State                 { return w.state.clone() }

// JobOptions lists the selectable positions.
func (w *Wizard) JobOptions() []models.Option {
	return JobTitleOptions(w.titles)
}

// MaritalOptions follows the chosen gender.
func (w *Wizard) MaritalOptions() []models.Option {
	return MaritalStatusOptions(w.form.PersonalInfo.Gender)
}

func (w *Wizard) Set(field, value string) error {
	f, s, err := Change(w.state, w.form, field, value)
	if err != nil {
		return err
	}
	w.form, w.state = f, s
	return nil
}

func (w *Wizard) Blur(field string) {
	w.state = Blur(w.state, w.form, field)
}

// Error is the visible error key of field.
func (w *Wizard) Error(field string) string {
	return VisibleError(w.state, field)
}

// Next validates the current step and moves forward when it passes. On the
// last step nothing follows; use Submit. summary is the message key to show
// when the step fails.
func (w *Wizard) Next() (advanced bool, summary string) {
	s, passed, summary := ValidateStep(w.state, w.form, w.Step())
	w.state = s
	if !passed {
		return false, summary
	}
	if w.step < len(Steps)-1 {
		w.step++
		w.state.Triggered = false
		return true, ""
	}
	return false, ""
}

// Back returns to the previous step without validating.
func (w *Wizard) Back() bool {
	if w.step == 0 {
		return false
	}
	w.step--
	w.state.Triggered = false
	return true
}

// Submit validates every step and returns the form ready to send. On failure
// the wizard moves to the first failing step.
func (w *Wizard) Submit() (models.ApplicationForm, error) {
	for i, step := range Steps {
		s, passed, _ := ValidateStep(w.state, w.form, step)
		if !passed {
			w.state = s
			w.step = i
			return w.form, apperrors.NewValidationFailedError(string(step), s.Errors)
		}
	}
	return w.form, nil
}

// Messages renders error keys in locale.
func Messages(locale string, errs map[string]string) map[string]string {
	tr := i18n.New(locale)
	out := make(map[string]string, len(errs))
	for field, key := range errs {
		out[field] = tr.T(key)
	}
	return out
}
