// Package store persists the local session and the recent-activity log
// in SQLite. Nothing remote lives here; the prediction service owns all
// shared state.
package store

import (
	"context"

	"github.com/nmdsi/sponsor-cli/internal/model"
)

// Store defines the local persistence interface.
type Store interface {
	// Session. At most one session exists; SaveSession replaces any
	// previous one, GetSession returns nil when none is stored.
	SaveSession(ctx context.Context, session model.Session) error
	GetSession(ctx context.Context) (*model.Session, error)
	DeleteSession(ctx context.Context) error

	// Activity log
	LogActivity(ctx context.Context, activity model.Activity) (*model.Activity, error)
	RecentActivity(ctx context.Context, limit int) ([]model.Activity, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
