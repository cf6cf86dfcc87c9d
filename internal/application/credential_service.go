package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/recruit-chat-cli/internal/domain"
	"github.com/bnema/recruit-chat-cli/internal/ports"
)

// CredentialService keeps the bearer token of one server profile in the
// secret store and the reference to it in the profile repository.
type CredentialService struct {
	profiles ports.ProfileRepository
	store    ports.SecretStore
	auth     ports.Authenticator
	clock    ports.Clock
	profile  domain.ProfileName
}

var (
	_ ports.CredentialSource = (*CredentialService)(nil)
	_ CredentialResetter     = (*CredentialService)(nil)
)

func NewCredentialService(profiles ports.ProfileRepository, store ports.SecretStore, auth ports.Authenticator, clock ports.Clock, profile domain.ProfileName) *CredentialService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if strings.TrimSpace(string(profile)) == "" {
		profile = domain.DefaultProfileName
	}

	return &CredentialService{
		profiles: profiles,
		store:    store,
		auth:     auth,
		clock:    clock,
		profile:  profile,
	}
}

func (s *CredentialService) ProfileName() domain.ProfileName {
	return s.profile
}

// Profile returns the active profile, or a blank one carrying only the name
// when nothing was saved yet.
func (s *CredentialService) Profile(ctx context.Context) (domain.Profile, error) {
	profile, err := s.profiles.GetByName(ctx, s.profile)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return domain.Profile{}, fmt.Errorf("get profile by name: %w", err)
		}
		return domain.Profile{Name: s.profile}, nil
	}

	return profile, nil
}

// Login exchanges email and password for a bearer token and stores it.
func (s *CredentialService) Login(ctx context.Context, baseURL, email, password string) (domain.Profile, error) {
	if s.auth == nil {
		return domain.Profile{}, errors.New("no authenticator configured")
	}

	profile, err := s.Profile(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	if strings.TrimSpace(baseURL) != "" {
		profile.BaseURL = strings.TrimSpace(baseURL)
	}
	if err := profile.Validate(); err != nil {
		return domain.Profile{}, err
	}

	token, err := s.auth.Login(ctx, profile.BaseURL, email, password)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("login: %w", err)
	}

	profile.Email = strings.TrimSpace(email)
	return s.StoreToken(ctx, profile, token)
}

// StoreToken writes token to the secret store and points the profile at it.
// A failed profile save removes the freshly written secret again.
func (s *CredentialService) StoreToken(ctx context.Context, profile domain.Profile, token string) (domain.Profile, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Profile{}, fmt.Errorf("%w: empty bearer token", domain.ErrInvalid)
	}
	if profile.Name == "" {
		profile.Name = s.profile
	}

	previousRef := profile.Auth.SecretRef
	secretKey := domain.TokenSecretKey(profile.Name)

	if err := s.store.Put(ctx, secretKey, token); err != nil {
		return domain.Profile{}, fmt.Errorf("store bearer token: %w", err)
	}

	profile.Auth = domain.Auth{SecretRef: secretKey}
	profile.LastLoginAt = s.clock.Now()

	if err := s.profiles.Save(ctx, profile); err != nil {
		if rollbackErr := s.store.Delete(ctx, secretKey); rollbackErr != nil {
			return domain.Profile{}, fmt.Errorf("save profile and rollback stored token: %w", errors.Join(err, rollbackErr))
		}
		return domain.Profile{}, fmt.Errorf("save profile: %w", err)
	}

	if previousRef != "" && previousRef != secretKey {
		if err := s.store.Delete(ctx, previousRef); err != nil {
			return profile, fmt.Errorf("delete previous bearer token: %w", err)
		}
	}

	return profile, nil
}

// Token returns the stored bearer token. A missing token wraps
// domain.ErrCredentialNotFound.
func (s *CredentialService) Token(ctx context.Context) (string, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return "", err
	}
	if !profile.HasCredential() {
		return "", fmt.Errorf("profile %s: %w", profile.Name, domain.ErrCredentialNotFound)
	}

	token, err := s.store.Get(ctx, profile.Auth.SecretRef)
	if err != nil {
		return "", fmt.Errorf("load bearer token: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("profile %s: empty token: %w", profile.Name, domain.ErrCredentialNotFound)
	}

	return token, nil
}

// HasToken reports whether Token would succeed. Lookup failures count as no
// token.
func (s *CredentialService) HasToken(ctx context.Context) bool {
	_, err := s.Token(ctx)
	return err == nil
}

// Clear forgets the token. The profile is saved first so a failed secret
// delete leaves the reference restored rather than dangling.
func (s *CredentialService) Clear(ctx context.Context) error {
	profile, err := s.profiles.GetByName(ctx, s.profile)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil
		}
		return fmt.Errorf("get profile by name: %w", err)
	}
	if !profile.HasCredential() {
		return nil
	}

	original := profile
	profile.Auth = domain.Auth{}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile credential: %w", err)
	}

	if err := s.store.Delete(ctx, original.Auth.SecretRef); err != nil {
		if restoreErr := s.profiles.Save(ctx, original); restoreErr != nil {
			return fmt.Errorf("delete bearer token and restore profile: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("delete bearer token: %w", err)
	}

	return nil
}
