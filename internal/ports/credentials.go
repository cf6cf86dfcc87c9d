package ports

import "context"

// CredentialSource hands out the bearer token attached to remote calls.
type CredentialSource interface {
	Token(ctx context.Context) (string, error)
}

type Authenticator interface {
	Login(ctx context.Context, baseURL, email, password string) (string, error)
}
