package ports

import (
	"context"

	"github.com/bnema/recruit-chat-cli/internal/domain"
)

// SessionService is the remote chat collaborator. Every failure wraps one of
// domain.ErrUnauthorized, domain.ErrNotFound, domain.ErrUnreachable or
// domain.ErrInvalid; no call ever returns a partial result.
type SessionService interface {
	CreateAndSend(ctx context.Context, content string, jobID domain.JobID) (domain.Session, domain.Exchange, error)
	SendToExisting(ctx context.Context, id domain.SessionID, content string) (domain.Exchange, error)
	ListSessions(ctx context.Context) ([]domain.Session, error)
	FetchSession(ctx context.Context, id domain.SessionID) (domain.Session, error)
	DeleteSession(ctx context.Context, id domain.SessionID) error
	ClearAllSessions(ctx context.Context) error
}
