// Package applications filters, searches and summarizes submitted
// applications on the HR dashboard.
package applications

import (
	"strings"
	"time"

	apperrors "hr-tracker/internal/common/errors"
	"hr-tracker/internal/common/metrics"
	"hr-tracker/internal/form"
	"hr-tracker/internal/models"

	"golang.org/x/text/cases"
)

// Filter holds the dashboard criteria. Zero-valued fields do not constrain.
// All set criteria must hold; Query matches any of the searchable fields.
type Filter struct {
	Governorate     string `json:"governorate,omitempty"`
	Area            string `json:"area,omitempty"`
	Gender          string `json:"gender,omitempty"`
	EducationStatus string `json:"educationStatus,omitempty"`
	MinAge          *int   `json:"minAge,omitempty"`
	MaxAge          *int   `json:"maxAge,omitempty"`
	Query           string `json:"query,omitempty"`
	IDQuery         string `json:"idQuery,omitempty"`
}

// Clear returns the empty filter.
func (f Filter) Clear() Filter {
	return Filter{}
}

// ActiveCount is the number of criteria in use.
func (f Filter) ActiveCount() int {
	n := 0
	for _, s := range []string{f.Governorate, f.Area, f.Gender, f.EducationStatus, f.Query, f.IDQuery} {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	if f.MinAge != nil {
		n++
	}
	if f.MaxAge != nil {
		n++
	}
	return n
}

// UnknownOptionKey is reported for a select criterion outside its option list.
const UnknownOptionKey = "error-unknown-option"

// Validate checks the select criteria against the dashboard option lists.
// Blank criteria are not checked.
func (f Filter) Validate() error {
	bad := map[string]string{}
	for _, c := range []struct {
		field string
		value string
		opts  []models.Option
	}{
		{"governorate", f.Governorate, models.GovernorateOptions},
		{"area", f.Area, models.AreaOptions},
		{"gender", f.Gender, models.GenderOptions},
		{"educationStatus", f.EducationStatus, models.EducationStatusOptions},
	} {
		v := strings.TrimSpace(c.value)
		if v != "" && !models.HasOption(c.opts, v) {
			bad[c.field] = UnknownOptionKey
		}
	}
	if len(bad) > 0 {
		return apperrors.NewValidationFailedError("filter", bad)
	}
	return nil
}

// Apply returns the applications matching f, keeping input order.
func Apply(apps []models.Application, f Filter) []models.Application {
	return ApplyAt(apps, f, time.Now())
}

// ApplyAt is Apply with ages derived as of today.
func ApplyAt(apps []models.Application, f Filter, today time.Time) []models.Application {
	metrics.ApplicationsFiltered.Inc()
	if f.ActiveCount() == 0 {
		return apps
	}
	m := newMatcher(f, today)
	out := make([]models.Application, 0, len(apps))
	for _, a := range apps {
		if m.match(a) {
			out = append(out, a)
		}
	}
	return out
}

type matcher struct {
	f     Filter
	today time.Time
	fold  cases.Caser
	query string
	id    string
}

func newMatcher(f Filter, today time.Time) *matcher {
	fold := cases.Fold()
	return &matcher{
		f:     f,
		today: today,
		fold:  fold,
		query: fold.String(strings.TrimSpace(f.Query)),
		id:    fold.String(strings.TrimSpace(f.IDQuery)),
	}
}

func (m *matcher) contains(haystack, needle string) bool {
	return strings.Contains(m.fold.String(haystack), needle)
}

func (m *matcher) match(a models.Application) bool {
	p := a.PersonalInfo
	if !equalIfSet(m.f.Governorate, p.Governorate) ||
		!equalIfSet(m.f.Area, p.Area) ||
		!equalIfSet(m.f.Gender, p.Gender) ||
		!equalIfSet(m.f.EducationStatus, EducationOf(a)) {
		return false
	}

	if m.f.MinAge != nil || m.f.MaxAge != nil {
		age, ok := form.AgeOf(p, m.today)
		if !ok {
			return false
		}
		if m.f.MinAge != nil && age < *m.f.MinAge {
			return false
		}
		if m.f.MaxAge != nil && age > *m.f.MaxAge {
			return false
		}
	}

	if m.query != "" {
		hit := false
		for _, field := range []string{p.Name, p.PhoneNumber, p.WhatsappNumber, p.MobileNumber, a.JobTitle} {
			if m.contains(field, m.query) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if m.id != "" && !m.contains(a.ApplicationID.String(), m.id) {
		return false
	}
	return true
}

func equalIfSet(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || want == got
}

// EducationOf prefers the top-level copy the server denormalizes.
func EducationOf(a models.Application) string {
	if a.EducationStatus != "" {
		return a.EducationStatus
	}
	return a.PersonalInfo.EducationStatus
}
