package autoapply

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobmatch-backend/internal/applications"
	"jobmatch-backend/internal/automation"
	"jobmatch-backend/internal/events"
	"jobmatch-backend/internal/match"
	"jobmatch-backend/internal/quota"
	"jobmatch-backend/internal/roles"
	"jobmatch-backend/internal/shared/metrics"
	"jobmatch-backend/internal/shared/telemetry"
	"jobmatch-backend/internal/shared/util"
)

// ProfileSource supplies the candidate's aggregated free text for
// keyword extraction.
type ProfileSource interface {
	CandidateTermsSource(ctx context.Context, userID string) (string, error)
}

// ConfigSource resolves the user's effective automation policy.
type ConfigSource interface {
	GetOrDefault(ctx context.Context, userID string) (automation.Config, error)
}

// Service selects, scores, filters, ranks, and caps roles for a user,
// then creates the resulting applications. Runs for the same user are
// serialized so concurrent requests cannot both pass the duplicate and
// quota checks on the same snapshot.
type Service struct {
	Configs  ConfigSource
	Profiles ProfileSource
	Roles    roles.Repo
	Apps     applications.Repo
	Quota    *quota.Service
	Scorer   match.Scorer
	Now      func() time.Time

	locks *util.KeyedMutex
}

// NewService constructs a Service.
func NewService(configs ConfigSource, profiles ProfileSource, roleRepo roles.Repo, apps applications.Repo, q *quota.Service, scorer match.Scorer, now func() time.Time) *Service {
	if scorer == nil {
		scorer = match.LexicalScorer{}
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		Configs:  configs,
		Profiles: profiles,
		Roles:    roleRepo,
		Apps:     apps,
		Quota:    q,
		Scorer:   scorer,
		Now:      now,
		locks:    util.NewKeyedMutex(),
	}
}

// RoleMatch pairs a role with its score against the caller's profile.
type RoleMatch struct {
	Role  roles.Role   `json:"role"`
	Match match.Result `json:"match"`
}

// RunResult is the outcome of one auto-apply run.
type RunResult struct {
	Mode        string                     `json:"mode"`
	Threshold   int                        `json:"threshold"`
	Created     []applications.Application `json:"created"`
	QuotaLeft   int                        `json:"quotaRemaining"`
	PoolSize    int                        `json:"poolSize"`
	Shortlisted int                        `json:"shortlisted"`
}

// Run executes one auto-apply pass for the user. modeOverride replaces
// the config's apply mode when it names a known mode; anything else is
// ignored. An empty shortlist is not an error: the run event is still
// written with a count of zero.
func (s *Service) Run(ctx context.Context, userID, modeOverride string) (RunResult, error) {
	started := time.Now()
	result, err := s.run(ctx, userID, modeOverride)
	metrics.ObserveAutoApplyRunDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncAutoApplyRunFailed()
		return RunResult{}, err
	}
	metrics.IncAutoApplyRun()
	metrics.AddApplicationsCreated(len(result.Created))
	return result, nil
}

func (s *Service) run(ctx context.Context, userID, modeOverride string) (RunResult, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	cfg, err := s.Configs.GetOrDefault(ctx, userID)
	if err != nil {
		return RunResult{}, fmt.Errorf("load config: %w", err)
	}
	mode := cfg.ApplyMode
	if modeOverride == automation.ModePreview || modeOverride == automation.ModeAuto {
		mode = modeOverride
	}

	candidateTerms, err := s.candidateTerms(ctx, userID)
	if err != nil {
		return RunResult{}, err
	}

	pool, err := s.candidatePool(ctx, userID, cfg)
	if err != nil {
		return RunResult{}, err
	}

	scored := make([]RoleMatch, 0, len(pool))
	for _, role := range pool {
		result := s.Scorer.Score(candidateTerms, role)
		if result.Score >= cfg.MinMatchScore {
			scored = append(scored, RoleMatch{Role: role, Match: result})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Match.Score > scored[j].Match.Score
	})

	now := s.Now()
	day := quota.DayKey(now)
	remaining, err := s.Quota.Remaining(ctx, userID, day, cfg.DailyLimit)
	if err != nil {
		return RunResult{}, fmt.Errorf("check quota: %w", err)
	}
	take := min(len(scored), cfg.DailyLimit, remaining)
	shortlist := scored[:take]

	status := applications.StatusDraftPreview
	if mode == automation.ModeAuto {
		status = applications.StatusSubmitted
	}

	created := make([]applications.Application, 0, len(shortlist))
	for _, entry := range shortlist {
		created = append(created, applications.Application{
			ID:           uuid.NewString(),
			UserID:       userID,
			RoleID:       entry.Role.ID,
			RoleTitle:    entry.Role.Title,
			Domain:       entry.Role.Domain,
			Company:      entry.Role.Company,
			Mode:         mode,
			Status:       status,
			MatchScore:   entry.Match.Score,
			MatchedTerms: entry.Match.Matched,
			MissingTerms: entry.Match.Missing,
			Reason:       entry.Match.Reason,
			CoverLetter:  coverLetter(entry.Role, entry.Match),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	audit := events.Event{
		ID:     uuid.NewString(),
		UserID: userID,
		Action: events.ActionAutoApplyRun,
		Details: fmt.Sprintf("Auto-apply run (mode=%s, threshold=%d): created %d application(s)",
			mode, cfg.MinMatchScore, len(created)),
		CreatedAt: now,
	}
	if err := s.Apps.CreateBatch(ctx, created, audit); err != nil {
		return RunResult{}, fmt.Errorf("persist run: %w", err)
	}

	if len(created) > 0 {
		if _, err := s.Quota.Consume(ctx, userID, day, len(created), cfg.DailyLimit); err != nil {
			// The applications are already durable; a counter failure
			// here must not undo the run.
			telemetry.Error("autoapply.quota_consume_failed", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		remaining -= len(created)
	}

	return RunResult{
		Mode:        mode,
		Threshold:   cfg.MinMatchScore,
		Created:     created,
		QuotaLeft:   remaining,
		PoolSize:    len(pool),
		Shortlisted: len(shortlist),
	}, nil
}

// RunMatch scores a single role against the caller's profile.
func (s *Service) RunMatch(ctx context.Context, userID, roleID string) (RoleMatch, error) {
	role, err := s.Roles.GetByID(ctx, roleID)
	if err != nil {
		return RoleMatch{}, err
	}
	candidateTerms, err := s.candidateTerms(ctx, userID)
	if err != nil {
		return RoleMatch{}, err
	}
	return RoleMatch{Role: role, Match: s.Scorer.Score(candidateTerms, role)}, nil
}

// TopMatches scores the whole catalog and returns the best count roles,
// highest score first, catalog order on ties.
func (s *Service) TopMatches(ctx context.Context, userID string, count int) ([]RoleMatch, error) {
	if count <= 0 {
		count = 5
	}
	all, err := s.Roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	candidateTerms, err := s.candidateTerms(ctx, userID)
	if err != nil {
		return nil, err
	}
	scored := make([]RoleMatch, 0, len(all))
	for _, role := range all {
		scored = append(scored, RoleMatch{Role: role, Match: s.Scorer.Score(candidateTerms, role)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Match.Score > scored[j].Match.Score
	})
	if len(scored) > count {
		scored = scored[:count]
	}
	return scored, nil
}

func (s *Service) candidateTerms(ctx context.Context, userID string) ([]string, error) {
	text, err := s.Profiles.CandidateTermsSource(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile text: %w", err)
	}
	return match.Terms(text), nil
}

// candidatePool is every catalog role the user could still apply to
// under the config: no existing application in any status, allowed work
// mode and domain, and no excluded keyword in the role's combined text.
func (s *Service) candidatePool(ctx context.Context, userID string, cfg automation.Config) ([]roles.Role, error) {
	taken, err := s.Apps.RoleIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list applied roles: %w", err)
	}
	all, err := s.Roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	allowedModes := toSet(cfg.WorkModes)
	allowedDomains := toSet(cfg.Domains)

	pool := make([]roles.Role, 0, len(all))
	for _, role := range all {
		if _, applied := taken[role.ID]; applied {
			continue
		}
		if _, ok := allowedModes[role.WorkMode]; !ok {
			continue
		}
		if _, ok := allowedDomains[role.Domain]; !ok {
			continue
		}
		if containsExcluded(role, cfg.ExcludedKeywords) {
			continue
		}
		pool = append(pool, role)
	}
	return pool, nil
}

func containsExcluded(role roles.Role, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	combined := strings.ToLower(strings.Join([]string{
		role.Title, role.Domain, role.Summary, strings.Join(role.Tags, " "),
	}, " "))
	for _, kw := range keywords {
		if kw != "" && strings.Contains(combined, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func coverLetter(role roles.Role, result match.Result) string {
	company := role.Company
	if company == "" {
		company = "your team"
	}
	highlights := "the areas this role calls for"
	if len(result.Matched) > 0 {
		highlights = strings.Join(result.Matched, ", ")
	}
	return fmt.Sprintf(
		"Dear Hiring Team at %s,\n\nI'm excited to apply for the %s position. My background in %s lines up directly with what you're looking for, and I'd welcome the chance to put it to work for you.\n\nBest regards",
		company, role.Title, highlights)
}
