package dashboard

import (
	"fmt"
	"math"

	"jobmatch-backend/internal/applications"
	"jobmatch-backend/internal/events"
)

const recentEventLimit = 20

// lowMatchThreshold is the average score below which the pipeline is
// flagged as poorly targeted.
const lowMatchThreshold = 60

// KPIs are the funnel aggregates for one user's application set.
type KPIs struct {
	Total         int `json:"total"`
	Drafts        int `json:"drafts"`
	Submitted     int `json:"submitted"`
	Interviews    int `json:"interviews"`
	Offers        int `json:"offers"`
	Hired         int `json:"hired"`
	Rejected      int `json:"rejected"`
	AvgMatch      int `json:"avgMatch"`
	InterviewRate int `json:"interviewRate"`
	OfferRate     int `json:"offerRate"`
	HireRate      int `json:"hireRate"`
}

// Recommendation is one actionable observation about the funnel.
type Recommendation struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Summary is the on-demand dashboard snapshot. It is never stored;
// every read recomputes it from the current application set.
type Summary struct {
	KPIs            KPIs             `json:"kpis"`
	Recommendations []Recommendation `json:"recommendations"`
	RecentEvents    []events.Event   `json:"recentEvents"`
}

// Summarize computes funnel KPIs and recommendations from the user's
// applications, attaching up to 20 recent events.
func Summarize(apps []applications.Application, recent []events.Event) Summary {
	kpis := computeKPIs(apps)
	if len(recent) > recentEventLimit {
		recent = recent[:recentEventLimit]
	}
	if recent == nil {
		recent = []events.Event{}
	}
	return Summary{
		KPIs:            kpis,
		Recommendations: recommend(kpis),
		RecentEvents:    recent,
	}
}

func computeKPIs(apps []applications.Application) KPIs {
	var k KPIs
	k.Total = len(apps)

	scoreSum := 0
	for _, app := range apps {
		scoreSum += app.MatchScore
		switch app.Status {
		case applications.StatusDraftPreview:
			k.Drafts++
		case applications.StatusSubmitted:
			k.Submitted++
		case applications.StatusInterview:
			k.Interviews++
		case applications.StatusOffer:
			k.Offers++
		case applications.StatusHired:
			k.Hired++
		case applications.StatusRejected:
			k.Rejected++
		}
	}

	if k.Total > 0 {
		k.AvgMatch = int(math.Round(float64(scoreSum) / float64(k.Total)))
	}
	k.InterviewRate = rate(k.Interviews, k.Submitted)
	k.OfferRate = rate(k.Offers, k.Interviews)
	k.HireRate = rate(k.Hired, k.Offers)
	return k
}

// rate is round(100*part/whole), 0 when the denominator is 0.
func rate(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// recommend evaluates the funnel rules in fixed priority order and
// returns every triggered one, or the healthy fallback when none fire.
func recommend(k KPIs) []Recommendation {
	out := make([]Recommendation, 0, 4)

	if k.Total > 0 && k.AvgMatch < lowMatchThreshold {
		out = append(out, Recommendation{
			ID:      "low-avg-match",
			Message: fmt.Sprintf("Average match score is %d. Broaden your skills list or relax work mode and domain filters to surface stronger roles.", k.AvgMatch),
		})
	}
	if k.Drafts > 0 {
		out = append(out, Recommendation{
			ID:      "pending-drafts",
			Message: fmt.Sprintf("%d draft application(s) are waiting for review. Approve or reject them to keep the pipeline moving.", k.Drafts),
		})
	}
	if k.Submitted > 0 && k.Interviews == 0 {
		out = append(out, Recommendation{
			ID:      "no-interviews",
			Message: "Applications are going out but none have reached an interview yet. Consider raising your minimum match score or refreshing your resume.",
		})
	}
	if k.Rejected > k.Offers {
		out = append(out, Recommendation{
			ID:      "rejections-outpace-offers",
			Message: "Rejections currently outpace offers. Target fewer, higher-scoring roles.",
		})
	}

	if len(out) == 0 {
		out = append(out, Recommendation{
			ID:      "healthy",
			Message: "Your pipeline looks healthy. Keep your profile current so new roles score accurately.",
		})
	}
	return out
}
