package ports

import (
	"context"

	"github.com/bnema/recruit-chat-cli/internal/domain"
)

type ProfileRepository interface {
	GetByName(ctx context.Context, name domain.ProfileName) (domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
}
