package readiness

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inspectready/internal/catalog"
	"inspectready/internal/evidence"
	id "inspectready/pkg/domain"
)

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func daysFromNow(n int) *time.Time {
	t := testNow.AddDate(0, 0, n)
	return &t
}

func emptySnapshot() *evidence.Snapshot {
	return &evidence.Snapshot{
		SiteID:      id.SiteID(uuid.New()),
		CompanyID:   id.CompanyID(uuid.New()),
		LoadedAt:    testNow,
		WindowStart: testNow.Add(-evidence.Window),
	}
}

func mustRequirement(t *testing.T, reqID string) catalog.Requirement {
	t.Helper()
	req, ok := catalog.ByID(reqID)
	require.True(t, ok, "catalog has no %q", reqID)
	return req
}

func TestDocumentMatching(t *testing.T) {
	req := mustRequirement(t, "fire-safety-policy")

	t.Run("present without expiry is valid", func(t *testing.T) {
		snap := emptySnapshot()
		snap.Documents = []evidence.Document{{Name: "Fire Safety Policy", IsActive: true}}

		e := Evaluate(req, snap, testNow)

		assert.True(t, e.Found)
		assert.Equal(t, StatusValid, e.Status)
		assert.Nil(t, e.ExpiryDate)
		assert.Equal(t, "Fire Safety Policy", e.MatchedDescription)
	})

	t.Run("expiring in ten days", func(t *testing.T) {
		snap := emptySnapshot()
		snap.Documents = []evidence.Document{{Name: "Fire Safety Policy", ExpiryDate: daysFromNow(10), IsActive: true}}

		e := Evaluate(req, snap, testNow)

		assert.Equal(t, StatusExpiringSoon, e.Status)
		assert.Equal(t, daysFromNow(10), e.ExpiryDate)
	})

	t.Run("expired five days ago", func(t *testing.T) {
		snap := emptySnapshot()
		snap.Documents = []evidence.Document{{Name: "Fire Safety Policy", ExpiryDate: daysFromNow(-5), IsActive: true}}

		e := Evaluate(req, snap, testNow)

		assert.True(t, e.Found)
		assert.Equal(t, StatusExpired, e.Status)
		assert.False(t, e.Met())
	})

	t.Run("case and whitespace are ignored", func(t *testing.T) {
		snap := emptySnapshot()
		snap.Documents = []evidence.Document{{Name: "  fire   SAFETY policy "}}

		assert.True(t, Evaluate(req, snap, testNow).Found)
	})

	t.Run("exact match beats an earlier fuzzy candidate", func(t *testing.T) {
		snap := emptySnapshot()
		snap.Documents = []evidence.Document{
			{Name: "Fire Safety Policy (draft 2019)", ExpiryDate: daysFromNow(-400)},
			{Name: "Fire Safety Policy", ExpiryDate: daysFromNow(200)},
		}

		e := Evaluate(req, snap, testNow)

		assert.Equal(t, "Fire Safety Policy", e.MatchedDescription)
		assert.Equal(t, StatusValid, e.Status)
	})

	t.Run("fuzzy match on the first 15 characters", func(t *testing.T) {
		snap := emptySnapshot()
		snap.Documents = []evidence.Document{{Name: "Fire Safety Policy - Main Kitchen 2025"}}

		e := Evaluate(req, snap, testNow)

		assert.True(t, e.Found)
		assert.Equal(t, "Fire Safety Policy - Main Kitchen 2025", e.MatchedDescription)
	})

	t.Run("first fuzzy match wins", func(t *testing.T) {
		snap := emptySnapshot()
		snap.Documents = []evidence.Document{
			{Name: "Fire Safety Policy v1", ExpiryDate: daysFromNow(-1)},
			{Name: "Fire Safety Policy v2", ExpiryDate: daysFromNow(300)},
		}

		e := Evaluate(req, snap, testNow)

		assert.Equal(t, "Fire Safety Policy v1", e.MatchedDescription)
		assert.Equal(t, StatusExpired, e.Status)
	})

	t.Run("unrelated documents do not match", func(t *testing.T) {
		snap := emptySnapshot()
		snap.Documents = []evidence.Document{{Name: "Fire Risk Assessment"}, {Name: "Health and Safety Policy"}, {Name: ""}}

		e := Evaluate(req, snap, testNow)

		assert.False(t, e.Found)
		assert.Equal(t, StatusMissing, e.Status)
		assert.Empty(t, e.MatchedDescription)
		assert.Nil(t, e.ExpiryDate)
	})
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"fire safety policy", "fire safety policy 2025", true},
		{"fire safety policy 2025", "fire safety policy", true},
		{"gas safety", "annual gas safety certificate", true},
		{"public liability insurance", "employers liability insurance", false},
		{"", "anything", false},
		{"anything", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fuzzyMatch(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestAssessmentMatching(t *testing.T) {
	review := daysFromNow(120)
	snap := emptySnapshot()
	snap.Assessments = []evidence.Assessment{
		{TemplateType: "general", Title: "Site Risk Assessment", NextReviewDate: review},
		{TemplateType: "fire", Title: "Annual FIRE risk review", NextReviewDate: daysFromNow(5)},
	}

	general := Evaluate(mustRequirement(t, "general-risk-assessment"), snap, testNow)
	assert.True(t, general.Found)
	assert.Equal(t, review, general.ExpiryDate)
	assert.Equal(t, StatusValid, general.Status)

	fire := Evaluate(mustRequirement(t, "fire-risk-assessment"), snap, testNow)
	assert.True(t, fire.Found)
	assert.Equal(t, "Annual FIRE risk review", fire.MatchedDescription)
	assert.Equal(t, StatusExpiringSoon, fire.Status)

	coshh := Evaluate(mustRequirement(t, "coshh-assessment"), snap, testNow)
	assert.False(t, coshh.Found)
}

func TestTrainingMatching(t *testing.T) {
	snap := emptySnapshot()
	snap.Training = []evidence.TrainingRecord{
		{Course: "Allergen Awareness", Status: evidence.TrainingCancelled},
		{Course: "Level 2 Food Hygiene", Status: evidence.TrainingBooked},
		{Course: "Emergency First Aid at Work", Status: evidence.TrainingCompleted},
	}

	food := Evaluate(mustRequirement(t, "food-hygiene-training"), snap, testNow)
	assert.True(t, food.Found)
	assert.Equal(t, StatusValid, food.Status)
	assert.Nil(t, food.ExpiryDate)

	assert.True(t, Evaluate(mustRequirement(t, "first-aid-training"), snap, testNow).Found)
	assert.False(t, Evaluate(mustRequirement(t, "allergen-training"), snap, testNow).Found, "cancelled bookings do not count")
}

func TestRecordMatching(t *testing.T) {
	t.Run("temperature logs are a presence check", func(t *testing.T) {
		snap := emptySnapshot()
		req := mustRequirement(t, "temperature-records")
		assert.False(t, Evaluate(req, snap, testNow).Found)

		snap.TemperatureLogs = []evidence.TemperatureLog{{ID: "a", RecordedAt: testNow}, {ID: "b", RecordedAt: testNow}}
		e := Evaluate(req, snap, testNow)
		assert.True(t, e.Found)
		assert.Equal(t, "2 temperature logs in the last 30 days", e.MatchedDescription)
	})

	t.Run("incident log is a presence check over full history", func(t *testing.T) {
		snap := emptySnapshot()
		snap.Incidents = []evidence.Incident{{ID: "old", OccurredAt: daysFromNow(-700)}}

		e := Evaluate(mustRequirement(t, "accident-book"), snap, testNow)

		assert.True(t, e.Found)
		assert.Equal(t, "1 incident recorded", e.MatchedDescription)
	})

	t.Run("RIDDOR only counts reportable incidents", func(t *testing.T) {
		req := mustRequirement(t, "riddor-reports")
		snap := emptySnapshot()
		snap.Incidents = []evidence.Incident{{ID: "minor"}}
		assert.False(t, Evaluate(req, snap, testNow).Found)

		snap.Incidents = append(snap.Incidents,
			evidence.Incident{ID: "r1", RIDDORReportable: true, ReportedDate: daysFromNow(-3)},
			evidence.Incident{ID: "r2", RIDDORReportable: true},
		)
		e := Evaluate(req, snap, testNow)
		assert.True(t, e.Found)
		assert.Equal(t, "2 RIDDOR-reportable incidents, 1 reported", e.MatchedDescription)
	})

	t.Run("PAT reports a fraction", func(t *testing.T) {
		req := mustRequirement(t, "pat-testing")
		snap := emptySnapshot()
		snap.Appliances = []evidence.Appliance{
			{ID: "1", HasCurrentTestLabel: true},
			{ID: "2", HasCurrentTestLabel: true},
			{ID: "3", HasCurrentTestLabel: true},
			{ID: "4"},
			{ID: "5"},
		}

		e := Evaluate(req, snap, testNow)

		assert.True(t, e.Found)
		assert.Equal(t, "3 of 5 appliances", e.MatchedDescription)
	})

	t.Run("PAT with no labelled appliances is missing", func(t *testing.T) {
		snap := emptySnapshot()
		snap.Appliances = []evidence.Appliance{{ID: "1"}}

		assert.False(t, Evaluate(mustRequirement(t, "pat-testing"), snap, testNow).Found)
	})
}

func TestCompletionMatching(t *testing.T) {
	snap := emptySnapshot()
	snap.Completions = []evidence.TaskCompletion{
		{TemplateID: "t1", Category: "Cleaning", Name: "Close down clean", CompletedAt: testNow.Add(-time.Hour)},
		{TemplateID: "t1", Category: "cleaning", Name: "Close down clean", CompletedAt: testNow.Add(-25 * time.Hour)},
		{TemplateID: "t2", Category: "safety", Name: "Weekly fire alarm test", CompletedAt: testNow.Add(-72 * time.Hour)},
	}

	cleaning := Evaluate(mustRequirement(t, "cleaning-records"), snap, testNow)
	assert.True(t, cleaning.Found)
	assert.Equal(t, StatusValid, cleaning.Status)
	assert.Equal(t, "2 completions in the last 30 days", cleaning.MatchedDescription)

	alarm := Evaluate(mustRequirement(t, "fire-alarm-tests"), snap, testNow)
	assert.Equal(t, "1 completion in the last 30 days", alarm.MatchedDescription)

	assert.False(t, Evaluate(mustRequirement(t, "fire-drills"), snap, testNow).Found)
}

func TestTemplateMatching(t *testing.T) {
	snap := emptySnapshot()
	snap.Templates = []evidence.TaskTemplate{
		{ID: "t1", Category: "food_safety", Name: "Opening Checks"},
		{ID: "t2", Category: "cleaning", Name: "Deep Clean Rota"},
	}

	opening := Evaluate(mustRequirement(t, "opening-closing-checks"), snap, testNow)
	assert.True(t, opening.Found)
	assert.Equal(t, "Opening Checks", opening.MatchedDescription)

	schedule := Evaluate(mustRequirement(t, "cleaning-schedule"), snap, testNow)
	assert.True(t, schedule.Found)
	assert.Equal(t, "Deep Clean Rota", schedule.MatchedDescription)

	assert.False(t, Evaluate(mustRequirement(t, "due-diligence-checklist"), snap, testNow).Found)
}

func TestCOSHHRuleCoversBothRequirements(t *testing.T) {
	snap := emptySnapshot()
	snap.Documents = []evidence.Document{{Name: "COSHH Register"}}

	register := Evaluate(mustRequirement(t, "coshh-register"), snap, testNow)
	assert.False(t, register.Found, "a document named after the register is not a COSHH sheet")

	snap.COSHHSheets = []evidence.COSHHSheet{{ProductName: "Sanitiser", ExpiryDate: daysFromNow(-10)}}
	for _, reqID := range []string{"coshh-register", "coshh-data-sheets"} {
		e := Evaluate(mustRequirement(t, reqID), snap, testNow)
		assert.True(t, e.Found, reqID)
		assert.Equal(t, StatusValid, e.Status, "%s: sheet expiry does not drive status", reqID)
		assert.Nil(t, e.ExpiryDate, reqID)
		assert.Equal(t, "1 COSHH sheet on file", e.MatchedDescription)
	}
}

func TestEvaluateNilSnapshotIsMissing(t *testing.T) {
	for _, req := range catalog.Requirements() {
		e := Evaluate(req, nil, testNow)
		assert.False(t, e.Found, req.ID)
		assert.Equal(t, StatusMissing, e.Status, req.ID)
	}
}

func TestEvaluateUnknownEvidenceType(t *testing.T) {
	req := catalog.Requirement{ID: "x", Name: "Mystery", Category: catalog.CategoryLegal, EvidenceType: "telepathy"}
	snap := emptySnapshot()
	snap.Documents = []evidence.Document{{Name: "Mystery"}}

	assert.Equal(t, StatusMissing, Evaluate(req, snap, testNow).Status)
}

func TestEvaluationInvariants(t *testing.T) {
	snap := richSnapshot()
	for _, e := range EvaluateAll(catalog.Requirements(), snap, testNow) {
		if !e.Found {
			assert.Equal(t, StatusMissing, e.Status, e.RequirementID)
			assert.Nil(t, e.ExpiryDate, e.RequirementID)
			assert.Empty(t, e.MatchedDescription, e.RequirementID)
		}
		if e.Status == StatusExpired {
			assert.True(t, e.Found, e.RequirementID)
			require.NotNil(t, e.ExpiryDate, e.RequirementID)
			assert.True(t, e.ExpiryDate.Before(testNow), e.RequirementID)
		}
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	snap := richSnapshot()
	reqs := catalog.Requirements()

	first := BuildReport(reqs, snap, testNow)
	second := BuildReport(reqs, snap, testNow)

	assert.Equal(t, first, second)
}

// richSnapshot has a mix of valid, expiring, expired and missing evidence.
func richSnapshot() *evidence.Snapshot {
	snap := emptySnapshot()
	snap.Documents = []evidence.Document{
		{Name: "Fire Safety Policy", IsActive: true},
		{Name: "Premises Licence", IsActive: true},
		{Name: "Gas Safety Certificate", ExpiryDate: daysFromNow(12), IsActive: true},
		{Name: "Public Liability Insurance", ExpiryDate: daysFromNow(-3), IsActive: true},
		{Name: "Allergen Information Matrix", ExpiryDate: daysFromNow(180), IsActive: true},
	}
	snap.COSHHSheets = []evidence.COSHHSheet{{ProductName: "Degreaser"}}
	snap.Assessments = []evidence.Assessment{{TemplateType: "fire", Title: "Fire Risk Assessment", NextReviewDate: daysFromNow(-30)}}
	snap.Training = []evidence.TrainingRecord{{Course: "Food Hygiene Level 2", Status: evidence.TrainingCompleted}}
	snap.Templates = []evidence.TaskTemplate{{ID: "t1", Category: "cleaning", Name: "Daily Clean"}}
	snap.Completions = []evidence.TaskCompletion{{TemplateID: "t1", Category: "cleaning", Name: "Daily Clean", CompletedAt: testNow.Add(-time.Hour)}}
	snap.TemperatureLogs = []evidence.TemperatureLog{{ID: "l1", RecordedAt: testNow.Add(-time.Hour)}}
	snap.Incidents = []evidence.Incident{{ID: "i1", Type: "cut", OccurredAt: daysFromNow(-2)}}
	snap.Appliances = []evidence.Appliance{{ID: "a1", HasCurrentTestLabel: true}, {ID: "a2"}}
	return snap
}
