package github

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Token is a resolved GitHub access token together with where it came from.
// Source is one of "explicit", "env:GITHUB_TOKEN", or "gh". A zero Token
// means no credential could be found.
type Token struct {
	Value  string
	Source string
}

func (t Token) IsZero() bool {
	return t.Value == ""
}

// LookupToken resolves a GitHub access token without ever printing it.
//
// Precedence: explicit value, then the GITHUB_TOKEN environment variable,
// then GitHub CLI authentication (`gh auth token -h github.com`).
func LookupToken(ctx context.Context, explicit string) (Token, error) {
	if v := strings.TrimSpace(explicit); v != "" {
		return Token{Value: v, Source: "explicit"}, nil
	}

	if v := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); v != "" {
		return Token{Value: v, Source: "env:GITHUB_TOKEN"}, nil
	}

	v, err := tokenFromGitHubCLI(ctx)
	if err != nil {
		return Token{}, err
	}
	if v != "" {
		return Token{Value: v, Source: "gh"}, nil
	}
	return Token{}, nil
}

// tokenFromGitHubCLI asks an installed gh CLI for its stored token. A missing
// or logged-out gh is not an error; it just yields an empty token.
func tokenFromGitHubCLI(ctx context.Context) (string, error) {
	if _, err := exec.LookPath("gh"); err != nil {
		return "", nil
	}

	// Keep this bounded so a broken gh config or credential helper
	// doesn't hang the run.
	cmdCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(cmdCtx, "gh", "auth", "token", "-h", "github.com")
	// Pin GH_PAGER so gh never blocks on a pager (no duplicate entries).
	env := os.Environ()
	filtered := env[:0]
	for _, entry := range env {
		if strings.HasPrefix(entry, "GH_PAGER=") {
			continue
		}
		filtered = append(filtered, entry)
	}
	cmd.Env = append(filtered, "GH_PAGER=cat")

	out, runErr := cmd.CombinedOutput()
	if runErr != nil {
		// Surface cancellation and timeouts; anything else (gh present but
		// not logged in, broken config) is treated as "no token". The raw gh
		// output is intentionally not included in errors.
		if cmdCtx.Err() != nil {
			return "", cmdCtx.Err()
		}
		return "", nil
	}

	tok := strings.TrimSpace(string(out))
	if tok == "" {
		return "", nil
	}
	// Basic sanity: tokens must not contain whitespace.
	if strings.ContainsAny(tok, " \t\n\r") {
		return "", errors.New("invalid token returned by gh: contains whitespace")
	}
	return tok, nil
}
