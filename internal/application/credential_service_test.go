package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/recruit-chat-cli/internal/domain"
	"github.com/bnema/recruit-chat-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://localhost:8080/api"

func TestCredentialServiceLoginStoresTokenAndProfile(t *testing.T) {
	profiles := mocks.NewMockProfileRepository(t)
	store := mocks.NewMockSecretStore(t)
	clock := mocks.NewMockClock(t)
	auth := &fakeAuthenticator{token: "jwt-1"}
	service := NewCredentialService(profiles, store, auth, clock, "")

	loginAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	profiles.EXPECT().GetByName(mockAnyContext(), domain.DefaultProfileName).Return(domain.Profile{}, domain.ErrProfileNotFound)
	store.EXPECT().Put(mockAnyContext(), "rc/profiles/default/token", "jwt-1").Return(nil)
	clock.EXPECT().Now().Return(loginAt)
	profiles.EXPECT().Save(mockAnyContext(), domain.Profile{
		Name:        domain.DefaultProfileName,
		BaseURL:     testBaseURL,
		Email:       "ada@example.com",
		Auth:        domain.Auth{SecretRef: "rc/profiles/default/token"},
		LastLoginAt: loginAt,
	}).Return(nil)

	profile, err := service.Login(context.Background(), testBaseURL, " ada@example.com ", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.Equal(t, testBaseURL, auth.baseURL)
	assert.Equal(t, "hunter2", auth.password)
}

func TestCredentialServiceLoginRequiresBaseURL(t *testing.T) {
	profiles := mocks.NewMockProfileRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewCredentialService(profiles, store, &fakeAuthenticator{token: "jwt"}, nil, "work")

	profiles.EXPECT().GetByName(mockAnyContext(), domain.ProfileName("work")).Return(domain.Profile{}, domain.ErrProfileNotFound)

	_, err := service.Login(context.Background(), "", "ada@example.com", "pw")
	require.ErrorContains(t, err, "base url is required")
}

func TestCredentialServiceLoginPropagatesRejectedCredentials(t *testing.T) {
	profiles := mocks.NewMockProfileRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewCredentialService(profiles, store, &fakeAuthenticator{err: domain.ErrUnauthorized}, nil, "")

	profiles.EXPECT().GetByName(mockAnyContext(), domain.DefaultProfileName).
		Return(domain.Profile{Name: domain.DefaultProfileName, BaseURL: testBaseURL}, nil)

	_, err := service.Login(context.Background(), "", "ada@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCredentialServiceStoreTokenRotationDeletesPreviousRef(t *testing.T) {
	profiles := mocks.NewMockProfileRepository(t)
	store := mocks.NewMockSecretStore(t)
	clock := mocks.NewMockClock(t)
	service := NewCredentialService(profiles, store, nil, clock, "")

	loginAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	profile := domain.Profile{Name: "default", BaseURL: testBaseURL, Auth: domain.Auth{SecretRef: "legacy/token"}}
	store.EXPECT().Put(mockAnyContext(), "rc/profiles/default/token", "jwt-2").Return(nil)
	clock.EXPECT().Now().Return(loginAt)
	profiles.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(p domain.Profile) bool {
		return p.Auth.SecretRef == "rc/profiles/default/token" && p.LastLoginAt.Equal(loginAt)
	})).Return(nil)
	store.EXPECT().Delete(mockAnyContext(), "legacy/token").Return(nil)

	_, err := service.StoreToken(context.Background(), profile, "jwt-2")
	require.NoError(t, err)
}

func TestCredentialServiceStoreTokenRejectsEmptyToken(t *testing.T) {
	service := NewCredentialService(mocks.NewMockProfileRepository(t), mocks.NewMockSecretStore(t), nil, nil, "")

	_, err := service.StoreToken(context.Background(), domain.Profile{Name: "default", BaseURL: testBaseURL}, "  ")
	require.ErrorIs(t, err, domain.ErrInvalid)
}

func TestCredentialServiceStoreTokenCompensatesFailedSave(t *testing.T) {
	profiles := mocks.NewMockProfileRepository(t)
	store := mocks.NewMockSecretStore(t)
	clock := mocks.NewMockClock(t)
	service := NewCredentialService(profiles, store, nil, clock, "")

	saveErr := errors.New("save failed")
	store.EXPECT().Put(mockAnyContext(), "rc/profiles/default/token", "jwt").Return(nil)
	clock.EXPECT().Now().Return(time.Now())
	profiles.EXPECT().Save(mockAnyContext(), mock.Anything).Return(saveErr)
	store.EXPECT().Delete(mockAnyContext(), "rc/profiles/default/token").Return(nil)

	_, err := service.StoreToken(context.Background(), domain.Profile{Name: "default", BaseURL: testBaseURL}, "jwt")
	require.ErrorIs(t, err, saveErr)
}

func TestCredentialServiceStoreTokenReportsRollbackFailure(t *testing.T) {
	profiles := mocks.NewMockProfileRepository(t)
	store := mocks.NewMockSecretStore(t)
	clock := mocks.NewMockClock(t)
	service := NewCredentialService(profiles, store, nil, clock, "")

	saveErr := errors.New("save failed")
	rollbackErr := errors.New("rollback failed")
	store.EXPECT().Put(mockAnyContext(), "rc/profiles/default/token", "jwt").Return(nil)
	clock.EXPECT().Now().Return(time.Now())
	profiles.EXPECT().Save(mockAnyContext(), mock.Anything).Return(saveErr)
	store.EXPECT().Delete(mockAnyContext(), "rc/profiles/default/token").Return(rollbackErr)

	_, err := service.StoreToken(context.Background(), domain.Profile{Name: "default", BaseURL: testBaseURL}, "jwt")
	require.ErrorIs(t, err, saveErr)
	require.ErrorIs(t, err, rollbackErr)
}

func TestCredentialServiceTokenWithoutCredential(t *testing.T) {
	profiles := mocks.NewMockProfileRepository(t)
	service := NewCredentialService(profiles, mocks.NewMockSecretStore(t), nil, nil, "")

	profiles.EXPECT().GetByName(mockAnyContext(), domain.DefaultProfileName).Return(domain.Profile{}, domain.ErrProfileNotFound)

	_, err := service.Token(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
	assert.Equal(t, domain.FailureUnauthorized, domain.KindOf(err))
	assert.False(t, service.HasToken(context.Background()))
}

func TestCredentialServiceTokenTrimsStoredValue(t *testing.T) {
	profiles := mocks.NewMockProfileRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewCredentialService(profiles, store, nil, nil, "")

	profiles.EXPECT().GetByName(mockAnyContext(), domain.DefaultProfileName).
		Return(domain.Profile{Name: "default", BaseURL: testBaseURL, Auth: domain.Auth{SecretRef: "rc/profiles/default/token"}}, nil)
	store.EXPECT().Get(mockAnyContext(), "rc/profiles/default/token").Return("jwt\n", nil)

	token, err := service.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jwt", token)
}

func TestCredentialServiceClearSavesProfileThenDeletesSecret(t *testing.T) {
	profiles := mocks.NewMockProfileRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewCredentialService(profiles, store, nil, nil, "")

	stored := domain.Profile{Name: "default", BaseURL: testBaseURL, Email: "ada@example.com", Auth: domain.Auth{SecretRef: "rc/profiles/default/token"}}
	cleared := stored
	cleared.Auth = domain.Auth{}

	profiles.EXPECT().GetByName(mockAnyContext(), domain.DefaultProfileName).Return(stored, nil)
	profiles.EXPECT().Save(mockAnyContext(), cleared).Return(nil)
	store.EXPECT().Delete(mockAnyContext(), "rc/profiles/default/token").Return(nil)

	require.NoError(t, service.Clear(context.Background()))
}

func TestCredentialServiceClearRestoresProfileWhenDeleteFails(t *testing.T) {
	profiles := mocks.NewMockProfileRepository(t)
	store := mocks.NewMockSecretStore(t)
	service := NewCredentialService(profiles, store, nil, nil, "")

	deleteErr := errors.New("delete failed")
	stored := domain.Profile{Name: "default", BaseURL: testBaseURL, Auth: domain.Auth{SecretRef: "rc/profiles/default/token"}}
	cleared := stored
	cleared.Auth = domain.Auth{}

	profiles.EXPECT().GetByName(mockAnyContext(), domain.DefaultProfileName).Return(stored, nil)
	profiles.EXPECT().Save(mockAnyContext(), cleared).Return(nil).Once()
	store.EXPECT().Delete(mockAnyContext(), "rc/profiles/default/token").Return(deleteErr)
	profiles.EXPECT().Save(mockAnyContext(), stored).Return(nil).Once()

	err := service.Clear(context.Background())
	require.ErrorIs(t, err, deleteErr)
}

func TestCredentialServiceClearWithoutProfileIsNoOp(t *testing.T) {
	profiles := mocks.NewMockProfileRepository(t)
	service := NewCredentialService(profiles, mocks.NewMockSecretStore(t), nil, nil, "")

	profiles.EXPECT().GetByName(mockAnyContext(), domain.DefaultProfileName).Return(domain.Profile{}, domain.ErrProfileNotFound)

	require.NoError(t, service.Clear(context.Background()))
}

type fakeAuthenticator struct {
	token    string
	err      error
	baseURL  string
	password string
}

func (f *fakeAuthenticator) Login(_ context.Context, baseURL, _ string, password string) (string, error) {
	f.baseURL = baseURL
	f.password = password
	return f.token, f.err
}

func mockAnyContext() interface{} {
	return mock.Anything
}
