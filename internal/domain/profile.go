package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

type ProfileName string

const DefaultProfileName ProfileName = "default"

type Auth struct {
	// SecretRef points to the secret-store entry holding the bearer token.
	SecretRef string
}

type Profile struct {
	Name        ProfileName
	BaseURL     string
	Email       string
	Auth        Auth
	LastLoginAt time.Time
}

func (p Profile) Validate() error {
	if strings.TrimSpace(string(p.Name)) == "" {
		return fmt.Errorf("profile name is required")
	}
	if strings.TrimSpace(p.BaseURL) == "" {
		return fmt.Errorf("profile %s: base url is required", p.Name)
	}
	parsed, err := url.Parse(p.BaseURL)
	if err != nil {
		return fmt.Errorf("profile %s: parse base url: %w", p.Name, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("profile %s: unsupported base url scheme %q", p.Name, parsed.Scheme)
	}

	return nil
}

func (p Profile) HasCredential() bool {
	return strings.TrimSpace(p.Auth.SecretRef) != ""
}

// TokenSecretKey is the secret-store key used for the profile bearer token.
func TokenSecretKey(name ProfileName) string {
	return fmt.Sprintf("rc/profiles/%s/token", name)
}
