package automation

import "context"

// Repo defines persistence for automation configs. Configs are created
// lazily on first save and never deleted.
type Repo interface {
	Get(ctx context.Context, userID string) (Config, error)
	Save(ctx context.Context, cfg Config) error
}
