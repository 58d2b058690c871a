package applications

import (
	"strings"
	"testing"
	"time"

	apperrors "hr-tracker/internal/common/errors"
	"hr-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func fixture() []models.Application {
	return []models.Application{
		{
			ApplicationID: "APP-1001",
			PersonalInfo: models.PersonalInfo{
				Name: "Ahmed Samir", Governorate: "القاهرة", Area: "المعادي", Gender: models.GenderMale,
				WhatsappNumber: "01012345678", MobileNumber: "01112345678", DateOfBirth: "1996-05-02",
			},
			JobTitle: "Driver", EducationStatus: "higher-qualification", Status: models.StatusPending,
		},
		{
			ApplicationID: "APP-1002",
			PersonalInfo: models.PersonalInfo{
				Name: "Sara Hassan", Governorate: "الجيزة", Area: "الدقي", Gender: models.GenderFemale,
				PhoneNumber: "01255555555", Age: intPtr(22),
			},
			JobTitle: "Cashier", EducationStatus: "preparatory", Status: models.StatusReviewed,
		},
		{
			ApplicationID: "app-2001",
			PersonalInfo: models.PersonalInfo{
				Name: "Omar DRIVERSON", Governorate: "القاهرة", Area: "مدينة نصر", Gender: models.GenderMale,
				WhatsappNumber: "01099999999", Age: intPtr(41),
			},
			JobTitle: "Accountant", Status: models.StatusRejected,
		},
		{
			ApplicationID: "APP-2002",
			PersonalInfo: models.PersonalInfo{
				Name: "Mona Ali", Governorate: "القاهرة", Area: "المعادي", Gender: models.GenderFemale,
				EducationStatus: "higher-qualification",
			},
			JobTitle: "Senior Driver", Status: models.StatusAcceptedForInterview,
		},
	}
}

func ids(apps []models.Application) []string {
	out := make([]string, len(apps))
	for i, a := range apps {
		out[i] = a.ApplicationID.String()
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"APP-1001", "APP-1002", "app-2001", "APP-2002"}},
		{"governorate", Filter{Governorate: "القاهرة"}, []string{"APP-1001", "app-2001", "APP-2002"}},
		{"governorate and query", Filter{Governorate: "القاهرة", Query: "driver"}, []string{"APP-1001", "app-2001", "APP-2002"}},
		{"governorate and area", Filter{Governorate: "القاهرة", Area: "المعادي"}, []string{"APP-1001", "APP-2002"}},
		{"gender", Filter{Gender: models.GenderFemale}, []string{"APP-1002", "APP-2002"}},
		{"education falls back to profile", Filter{EducationStatus: "higher-qualification"}, []string{"APP-1001", "APP-2002"}},
		{"query by name is case-insensitive", Filter{Query: "SARA"}, []string{"APP-1002"}},
		{"query by whatsapp", Filter{Query: "0109999"}, []string{"app-2001"}},
		{"query by phone", Filter{Query: "0125555"}, []string{"APP-1002"}},
		{"query by mobile", Filter{Query: "01112"}, []string{"APP-1001"}},
		{"query by title", Filter{Query: "account"}, []string{"app-2001"}},
		{"blank query ignored", Filter{Query: "   "}, []string{"APP-1001", "APP-1002", "app-2001", "APP-2002"}},
		{"id substring any case", Filter{IDQuery: "APP-20"}, []string{"app-2001", "APP-2002"}},
		{"min age", Filter{MinAge: intPtr(30)}, []string{"app-2001"}},
		{"age range inclusive", Filter{MinAge: intPtr(22), MaxAge: intPtr(30)}, []string{"APP-1001", "APP-1002"}},
		{"max age excludes unknown ages", Filter{MaxAge: intPtr(100)}, []string{"APP-1001", "APP-1002", "app-2001"}},
		{"nothing matches", Filter{Governorate: "الجيزة", Query: "driver"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(ApplyAt(fixture(), tt.filter, today)))
		})
	}
}

func TestApply_GovernorateAndQueryMatchesExactly(t *testing.T) {
	apps := fixture()
	for _, q := range []string{"om", "DRIVER", "0101", "a", "zzz"} {
		var want []models.Application
		for _, a := range apps {
			p := a.PersonalInfo
			if p.Governorate != "القاهرة" {
				continue
			}
			for _, field := range []string{p.Name, p.PhoneNumber, p.WhatsappNumber, p.MobileNumber, a.JobTitle} {
				if strings.Contains(strings.ToLower(field), strings.ToLower(q)) {
					want = append(want, a)
					break
				}
			}
		}
		got := ApplyAt(apps, Filter{Governorate: "القاهرة", Query: q}, today)
		assert.Equal(t, ids(want), ids(got), q)
	}
}

func TestClear_RestoresOriginalList(t *testing.T) {
	apps := fixture()
	f := Filter{Governorate: "القاهرة", Gender: models.GenderMale, Query: "x", MinAge: intPtr(18)}
	assert.Equal(t, 4, f.ActiveCount())

	f = f.Clear()
	assert.Zero(t, f.ActiveCount())
	assert.Equal(t, apps, ApplyAt(apps, f, today))
}

func TestFilter_Validate(t *testing.T) {
	assert.NoError(t, Filter{}.Validate())
	assert.NoError(t, Filter{
		Governorate:     "الجيزة",
		Area:            models.AreaOther,
		Gender:          models.GenderFemale,
		EducationStatus: "primary",
		Query:           "anything",
	}.Validate())

	err := Filter{Governorate: "Giza", Gender: "male", Area: " "}.Validate()
	require.Error(t, err)
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidationFailed, stdErr.Code)
	assert.Equal(t, map[string]interface{}{
		"governorate": UnknownOptionKey,
		"gender":      UnknownOptionKey,
	}, stdErr.Metadata)
}

func TestEducationOf(t *testing.T) {
	a := models.Application{EducationStatus: "primary", PersonalInfo: models.PersonalInfo{EducationStatus: "illiterate"}}
	assert.Equal(t, "primary", EducationOf(a))
	a.EducationStatus = ""
	assert.Equal(t, "illiterate", EducationOf(a))
}

func TestStatusView(t *testing.T) {
	apps := fixture()
	tests := []struct {
		route  string
		remote bool
		want   []string
	}{
		{RouteTotal, false, []string{"APP-1001", "APP-1002", "app-2001", "APP-2002"}},
		{RoutePending, false, []string{"APP-1001"}},
		{RouteReviewed, false, []string{"APP-1002"}},
		{RouteRejected, false, []string{"app-2001"}},
		{RouteAcceptedForInterview, false, []string{"APP-2002"}},
		{RouteAcceptedToJoin, true, []string{}},
		{"pending", false, []string{"APP-1001"}},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			v := StatusView(tt.route)
			assert.Equal(t, tt.remote, v.Remote)
			assert.Equal(t, tt.want, ids(v.Select(apps)))
		})
	}
}

func TestStats(t *testing.T) {
	s := Stats(fixture())
	assert.Equal(t, 4, s.TotalApplications)
	assert.Equal(t, 1, s.ByStatus[models.StatusPending])
	assert.Equal(t, 1, s.ByStatus[models.StatusRejected])
	assert.Equal(t, 0, s.ByStatus[models.StatusAcceptedToJoin])
	assert.Len(t, s.ByStatus, len(models.AllStatuses))
}
