package autoapply

import (
	"context"
	"strings"
	"testing"
	"time"

	"jobmatch-backend/internal/applications"
	"jobmatch-backend/internal/automation"
	"jobmatch-backend/internal/events"
	"jobmatch-backend/internal/match"
	"jobmatch-backend/internal/quota"
	"jobmatch-backend/internal/roles"
)

type stubConfigs struct {
	cfg automation.Config
}

func (s stubConfigs) GetOrDefault(context.Context, string) (automation.Config, error) {
	return s.cfg, nil
}

type stubProfile struct {
	text string
}

func (s stubProfile) CandidateTermsSource(context.Context, string) (string, error) {
	return s.text, nil
}

func runClock() time.Time {
	return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
}

func baseConfig() automation.Config {
	return automation.Config{
		UserID:        "u1",
		ApplyMode:     automation.ModePreview,
		DailyLimit:    2,
		MinMatchScore: 70,
		WorkModes:     roles.AllWorkModes(),
		Domains:       roles.AllDomains(),
	}
}

// Three engineering roles whose term overlap with the candidate text
// "alpha beta gamma delta epsilon zeta" yields scores 80, 75, and 60.
func seedRoles(t *testing.T, repo roles.Repo) {
	t.Helper()
	ctx := context.Background()
	seed := []roles.Role{
		{ID: "r-a", Title: "Alpha Beta Gamma Delta", Company: "Acme", Domain: "engineering", WorkMode: roles.WorkModeRemote},
		{ID: "r-b", Title: "Alpha Beta Gamma", Company: "Globex", Domain: "engineering", WorkMode: roles.WorkModeRemote},
		{ID: "r-c", Title: "Alpha Beta Gamma Rho", Company: "Initech", Domain: "engineering", WorkMode: roles.WorkModeRemote},
	}
	for _, role := range seed {
		if err := repo.Upsert(ctx, role); err != nil {
			t.Fatalf("seed role %s: %v", role.ID, err)
		}
	}
}

func newTestService(t *testing.T, cfg automation.Config) (*Service, applications.Repo, events.Repo) {
	t.Helper()
	eventRepo := events.NewMemoryRepo()
	appRepo := applications.NewMemoryRepo(eventRepo)
	roleRepo := roles.NewMemoryRepo()
	seedRoles(t, roleRepo)

	svc := NewService(
		stubConfigs{cfg: cfg},
		stubProfile{text: "alpha beta gamma delta epsilon zeta"},
		roleRepo,
		appRepo,
		quota.NewService(),
		nil,
		runClock,
	)
	return svc, appRepo, eventRepo
}

func TestRunShortlistsAboveThresholdCappedAndOrdered(t *testing.T) {
	svc, appRepo, eventRepo := newTestService(t, baseConfig())
	ctx := context.Background()

	result, err := svc.Run(ctx, "u1", "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Created) != 2 {
		t.Fatalf("created %d applications, want 2", len(result.Created))
	}
	if result.Created[0].RoleID != "r-a" || result.Created[1].RoleID != "r-b" {
		t.Errorf("shortlist order = %s, %s", result.Created[0].RoleID, result.Created[1].RoleID)
	}
	if result.Created[0].MatchScore != 80 || result.Created[1].MatchScore != 75 {
		t.Errorf("scores = %d, %d", result.Created[0].MatchScore, result.Created[1].MatchScore)
	}
	for _, app := range result.Created {
		if app.Status != applications.StatusDraftPreview {
			t.Errorf("status = %q in preview mode", app.Status)
		}
		if app.Mode != automation.ModePreview {
			t.Errorf("mode = %q", app.Mode)
		}
		if app.CoverLetter == "" {
			t.Errorf("application %s has no cover letter", app.RoleID)
		}
	}

	// The 60-score role never becomes an application.
	stored, err := appRepo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, app := range stored {
		if app.RoleID == "r-c" {
			t.Errorf("below-threshold role was applied to")
		}
	}

	logged, err := eventRepo.ListByUser(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(logged) != 1 || logged[0].Action != events.ActionAutoApplyRun {
		t.Fatalf("events = %+v, want one run event", logged)
	}
	if !strings.Contains(logged[0].Details, "created 2") {
		t.Errorf("run event details = %q", logged[0].Details)
	}
}

func TestRunNeverDuplicatesExistingApplications(t *testing.T) {
	svc, appRepo, eventRepo := newTestService(t, baseConfig())
	ctx := context.Background()

	if _, err := svc.Run(ctx, "u1", ""); err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.Run(ctx, "u1", "")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(second.Created) != 0 {
		t.Fatalf("second run created %d applications", len(second.Created))
	}

	stored, err := appRepo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored %d applications after two runs, want 2", len(stored))
	}

	// The empty second run still leaves an audit trail.
	logged, err := eventRepo.ListByUser(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(logged) != 2 {
		t.Fatalf("logged %d events, want 2", len(logged))
	}
	if !strings.Contains(logged[0].Details, "created 0") {
		t.Errorf("second run event details = %q", logged[0].Details)
	}
}

func TestRunModeOverrideSubmitsImmediately(t *testing.T) {
	svc, _, _ := newTestService(t, baseConfig())

	result, err := svc.Run(context.Background(), "u1", automation.ModeAuto)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Mode != automation.ModeAuto {
		t.Errorf("effective mode = %q", result.Mode)
	}
	for _, app := range result.Created {
		if app.Status != applications.StatusSubmitted {
			t.Errorf("status = %q in auto mode", app.Status)
		}
		if app.Mode != automation.ModeAuto {
			t.Errorf("recorded mode = %q", app.Mode)
		}
	}
}

func TestRunUnknownModeOverrideFallsBackToConfig(t *testing.T) {
	svc, _, _ := newTestService(t, baseConfig())

	result, err := svc.Run(context.Background(), "u1", "yolo")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Mode != automation.ModePreview {
		t.Errorf("effective mode = %q, want config's preview", result.Mode)
	}
}

func TestRunQuotaCapsBelowDailyLimit(t *testing.T) {
	cfg := baseConfig()
	cfg.DailyLimit = 5
	svc, _, _ := newTestService(t, cfg)
	ctx := context.Background()

	// One unit left in today's budget.
	day := quota.DayKey(runClock())
	if _, err := svc.Quota.Consume(ctx, "u1", day, 4, cfg.DailyLimit); err != nil {
		t.Fatalf("pre-consume: %v", err)
	}

	result, err := svc.Run(ctx, "u1", "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("created %d applications, want 1 (quota remainder)", len(result.Created))
	}
	if result.Created[0].RoleID != "r-a" {
		t.Errorf("kept role = %s, want the top-scored one", result.Created[0].RoleID)
	}
	if result.QuotaLeft != 0 {
		t.Errorf("quota remaining = %d", result.QuotaLeft)
	}
}

func TestRunFiltersPoolByConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*automation.Config)
		want   int
	}{
		{"work mode excludes all", func(c *automation.Config) { c.WorkModes = []string{roles.WorkModeOnsite} }, 0},
		{"domain excludes all", func(c *automation.Config) { c.Domains = []string{"marketing"} }, 0},
		{"excluded keyword drops one role", func(c *automation.Config) { c.ExcludedKeywords = []string{"delta"} }, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig()
			tc.mutate(&cfg)
			svc, _, _ := newTestService(t, cfg)

			result, err := svc.Run(context.Background(), "u1", "")
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if len(result.Created) != tc.want {
				t.Errorf("created %d applications, want %d", len(result.Created), tc.want)
			}
		})
	}
}

func TestRunMatchAndTopMatches(t *testing.T) {
	svc, _, _ := newTestService(t, baseConfig())
	ctx := context.Background()

	single, err := svc.RunMatch(ctx, "u1", "r-b")
	if err != nil {
		t.Fatalf("run match: %v", err)
	}
	if single.Match.Score != 75 {
		t.Errorf("score = %d, want 75", single.Match.Score)
	}

	if _, err := svc.RunMatch(ctx, "u1", "ghost"); err != roles.ErrNotFound {
		t.Errorf("unknown role err = %v", err)
	}

	top, err := svc.TopMatches(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("top matches: %v", err)
	}
	if len(top) != 2 || top[0].Role.ID != "r-a" || top[1].Role.ID != "r-b" {
		t.Fatalf("top matches = %+v", top)
	}
}

func TestCoverLetterFallsBackToPlaceholderCompany(t *testing.T) {
	letter := coverLetter(
		roles.Role{Title: "Data Analyst"},
		match.Result{Score: 67, Matched: []string{"sql", "python"}},
	)
	if !strings.Contains(letter, "your team") {
		t.Errorf("letter missing company placeholder: %q", letter)
	}
	if !strings.Contains(letter, "sql, python") {
		t.Errorf("letter missing matched terms: %q", letter)
	}
}
