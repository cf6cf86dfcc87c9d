// Package version holds build metadata set through -ldflags.
package version

// Version is overridden at build time with
// -ldflags "-X github.com/bnema/recruit-chat-cli/internal/version.Version=v1.2.3".
var Version = "dev"
