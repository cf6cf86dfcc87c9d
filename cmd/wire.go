package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	authadapter "github.com/bnema/recruit-chat-cli/internal/adapters/auth"
	"github.com/bnema/recruit-chat-cli/internal/adapters/remote/rest"
	tomlrepo "github.com/bnema/recruit-chat-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/recruit-chat-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/recruit-chat-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/recruit-chat-cli/internal/adapters/secrets/pass"
	"github.com/bnema/recruit-chat-cli/internal/application"
	"github.com/bnema/recruit-chat-cli/internal/domain"
	"github.com/bnema/recruit-chat-cli/internal/observability"
	"github.com/bnema/recruit-chat-cli/internal/ports"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	profileKey       = "profile"
	baseURLKey       = "remote.base_url"
	timeoutKey       = "remote.timeout"
	secretBackendKey = "secrets.backend"
	logLevelKey      = "log.level"
	eventLogKey      = "log.events_file"

	secretBackendChain = "chain"
	secretBackendFile  = "file"
	secretBackendPass  = "pass"
)

type app struct {
	profiles      *tomlrepo.Repository
	credentials   *application.CredentialService
	authenticator authadapter.PasswordLoginAdapter
	controller    *application.Controller
	baseURL       string
	markdownStyle string
	httpClient    *http.Client
	now           func() time.Time
	closers       []io.Closer
}

func (a *app) wire(cmd *cobra.Command, cfg *viper.Viper) error {
	configureDefaults(cfg)

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("wire profile repository: %w", err)
	}

	secretStore, err := newSecretStore(cfg.GetString(secretBackendKey))
	if err != nil {
		return fmt.Errorf("wire secret store: %w", err)
	}

	observer, err := a.newObserver(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	timeout := cfg.GetDuration(timeoutKey)
	a.httpClient = http.DefaultClient
	a.now = time.Now
	a.profiles = repo
	a.authenticator = authadapter.PasswordLoginAdapter{
		API:            authadapter.DefaultAPI(),
		HTTPClient:     a.httpClient,
		RequestTimeout: timeout,
	}
	a.credentials = application.NewCredentialService(
		repo,
		secretStore,
		a.authenticator,
		ports.SystemClock{},
		domain.ProfileName(cfg.GetString(profileKey)),
	)

	baseURL, err := resolveBaseURL(cmd.Context(), cfg, a.credentials)
	if err != nil {
		return err
	}
	a.baseURL = baseURL

	remote := rest.Client{
		BaseURL:        baseURL,
		HTTPClient:     a.httpClient,
		Credentials:    a.credentials,
		Clock:          ports.SystemClock{},
		RequestTimeout: timeout,
	}
	a.controller = application.NewController(remote, a.credentials, ports.SystemClock{}, observer)
	a.markdownStyle = cfg.GetString("render.style")

	return nil
}

func (a *app) close() error {
	var errs []error
	for _, closer := range a.closers {
		errs = append(errs, closer.Close())
	}
	a.closers = nil

	return errors.Join(errs...)
}

func configureDefaults(cfg *viper.Viper) {
	cfg.SetDefault(profileKey, string(domain.DefaultProfileName))
	cfg.SetDefault(timeoutKey, rest.DefaultRequestTimeout)
	cfg.SetDefault(secretBackendKey, secretBackendChain)
	cfg.SetDefault(logLevelKey, "warn")
	cfg.SetDefault("render.style", "auto")

	_ = cfg.BindEnv(profileKey, "RC_PROFILE")
	_ = cfg.BindEnv(baseURLKey, "RC_BASE_URL")
	_ = cfg.BindEnv(timeoutKey, "RC_TIMEOUT")
	_ = cfg.BindEnv(secretBackendKey, "RC_SECRET_BACKEND")
	_ = cfg.BindEnv(logLevelKey, "RC_LOG_LEVEL")
	_ = cfg.BindEnv(eventLogKey, "RC_EVENT_LOG")
	_ = cfg.BindEnv("render.style", "RC_STYLE")
}

// resolveBaseURL prefers the flag, env and config file, then the URL saved
// with the profile at login, then the built-in default.
func resolveBaseURL(ctx context.Context, cfg *viper.Viper, credentials *application.CredentialService) (string, error) {
	if configured := strings.TrimSpace(cfg.GetString(baseURLKey)); configured != "" {
		return configured, nil
	}

	profile, err := credentials.Profile(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve base url: %w", err)
	}
	if profile.BaseURL != "" {
		return profile.BaseURL, nil
	}

	return rest.DefaultBaseURL, nil
}

func newSecretStore(backend string) (ports.SecretStore, error) {
	configDir, err := tomlrepo.ConfigDir()
	if err != nil {
		return nil, err
	}
	fileRoot := filepath.Join(configDir, "secrets")

	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", secretBackendChain:
		return chainstore.NewPassFirstWithFileFallback(fileRoot)
	case secretBackendFile:
		return filestore.NewStore(fileRoot), nil
	case secretBackendPass:
		return passstore.NewStore(), nil
	default:
		return nil, fmt.Errorf("unsupported secret backend %q (want chain|file|pass)", backend)
	}
}

// newObserver logs controller events as text to stderr and, when
// log.events_file is set, appends them as JSON lines to that file.
func (a *app) newObserver(stderr io.Writer, cfg *viper.Viper) (observability.Observer, error) {
	level, err := observability.ParseLevel(cfg.GetString(logLevelKey))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	console := observability.NewSlogObserver(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	eventsPath := strings.TrimSpace(cfg.GetString(eventLogKey))
	if eventsPath == "" {
		return console, nil
	}

	if err := os.MkdirAll(filepath.Dir(eventsPath), 0o700); err != nil {
		return nil, fmt.Errorf("create event log directory: %w", err)
	}
	file, err := os.OpenFile(eventsPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	a.closers = append(a.closers, file)

	events := observability.NewSlogObserver(slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})))

	return observability.NewMultiObserver(console, events), nil
}
