package dashboard

import (
	"testing"
	"time"

	"jobmatch-backend/internal/applications"
	"jobmatch-backend/internal/events"
)

func app(status string, score int) applications.Application {
	return applications.Application{Status: status, MatchScore: score}
}

func TestSummarizeEmptySet(t *testing.T) {
	summary := Summarize(nil, nil)

	if summary.KPIs.Total != 0 || summary.KPIs.AvgMatch != 0 {
		t.Errorf("kpis = %+v", summary.KPIs)
	}
	if summary.KPIs.InterviewRate != 0 || summary.KPIs.OfferRate != 0 || summary.KPIs.HireRate != 0 {
		t.Errorf("rates should be 0 with empty denominators: %+v", summary.KPIs)
	}
	if len(summary.Recommendations) != 1 || summary.Recommendations[0].ID != "healthy" {
		t.Errorf("recommendations = %+v, want healthy fallback", summary.Recommendations)
	}
	if summary.RecentEvents == nil || len(summary.RecentEvents) != 0 {
		t.Errorf("recent events = %#v, want empty slice", summary.RecentEvents)
	}
}

func TestSummarizeCountsAndRates(t *testing.T) {
	apps := []applications.Application{
		app(applications.StatusDraftPreview, 90),
		app(applications.StatusSubmitted, 80),
		app(applications.StatusSubmitted, 70),
		app(applications.StatusInterview, 85),
		app(applications.StatusOffer, 95),
		app(applications.StatusHired, 88),
		app(applications.StatusRejected, 60),
	}
	k := Summarize(apps, nil).KPIs

	if k.Total != 7 || k.Drafts != 1 || k.Submitted != 2 || k.Interviews != 1 || k.Offers != 1 || k.Hired != 1 || k.Rejected != 1 {
		t.Fatalf("counts = %+v", k)
	}
	// (90+80+70+85+95+88+60)/7 = 81.14 -> 81
	if k.AvgMatch != 81 {
		t.Errorf("avgMatch = %d, want 81", k.AvgMatch)
	}
	if k.InterviewRate != 50 {
		t.Errorf("interviewRate = %d, want 50", k.InterviewRate)
	}
	if k.OfferRate != 100 || k.HireRate != 100 {
		t.Errorf("offerRate/hireRate = %d/%d", k.OfferRate, k.HireRate)
	}
}

func TestRecommendationPriorityOrder(t *testing.T) {
	// Low average, pending drafts, submitted with no interviews, and
	// rejections exceeding offers all at once.
	apps := []applications.Application{
		app(applications.StatusDraftPreview, 40),
		app(applications.StatusSubmitted, 45),
		app(applications.StatusRejected, 50),
	}
	recs := Summarize(apps, nil).Recommendations

	want := []string{"low-avg-match", "pending-drafts", "no-interviews", "rejections-outpace-offers"}
	if len(recs) != len(want) {
		t.Fatalf("got %d recommendations: %+v", len(recs), recs)
	}
	for i, id := range want {
		if recs[i].ID != id {
			t.Errorf("recommendation[%d] = %s, want %s", i, recs[i].ID, id)
		}
	}
}

func TestRecommendationsOnlyTriggeredSubset(t *testing.T) {
	apps := []applications.Application{
		app(applications.StatusSubmitted, 90),
		app(applications.StatusInterview, 85),
	}
	recs := Summarize(apps, nil).Recommendations

	if len(recs) != 1 || recs[0].ID != "healthy" {
		t.Errorf("recommendations = %+v, want healthy only", recs)
	}
}

func TestSummarizeTruncatesRecentEvents(t *testing.T) {
	recent := make([]events.Event, 0, 25)
	for i := 0; i < 25; i++ {
		recent = append(recent, events.Event{ID: "e", CreatedAt: time.Now()})
	}
	summary := Summarize(nil, recent)

	if len(summary.RecentEvents) != recentEventLimit {
		t.Errorf("recent events = %d, want %d", len(summary.RecentEvents), recentEventLimit)
	}
}
