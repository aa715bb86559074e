package roles

import "context"

// Repo defines read and cache-refresh operations on the role catalog.
type Repo interface {
	List(ctx context.Context) ([]Role, error)
	GetByID(ctx context.Context, roleID string) (Role, error)
	Upsert(ctx context.Context, role Role) error
}
