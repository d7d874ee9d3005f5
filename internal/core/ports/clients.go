package ports

import (
	"context"
	"time"

	"github.com/brieflab/briefkit/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=clients.go -destination=mocks/mock_clients.go -package=mocks

// TicketTracker reads tickets from the issue tracker.
type TicketTracker interface {
	// Search returns issues matching the query, at most limit of them.
	Search(ctx context.Context, query string, limit int) ([]domain.Issue, error)
	// Issue fetches a single issue by key.
	Issue(ctx context.Context, key string) (*domain.Issue, error)
}

// Completer calls the AI completion service.
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// Workspace reads mail, calendar, and chat.
type Workspace interface {
	UnreadMail(ctx context.Context, since time.Time) ([]domain.Message, error)
	Events(ctx context.Context, day time.Time) ([]domain.Event, error)
	Mentions(ctx context.Context, since time.Time) ([]domain.Message, error)
}

// ChangeLog reads version-control history.
type ChangeLog interface {
	Commits(ctx context.Context, repo string, since time.Time) ([]domain.Commit, error)
}
