package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	// RepoSelector is the target repository as OWNER/REPO (see --repo).
	// If empty, the GITHUB_REPOSITORY environment variable is used instead.
	RepoSelector string

	// PolicyFile is an optional YAML file with per-branch policy overrides
	// (see --policy). Empty means the built-in policies are used as-is.
	PolicyFile string

	Output  Output
	Runtime Runtime
}

type Output struct {
	// Format controls the console output format (see --format).
	// Allowed values: text, json.
	Format string
}

type Runtime struct {
	// Timeout bounds the whole run, including every GitHub API round trip
	// (see --timeout). Must be > 0.
	Timeout time.Duration

	// Verbose enables per-request API logging on stderr.
	Verbose bool
}

func New() *Config {
	return &Config{
		Output: Output{
			Format: "text",
		},
		Runtime: Runtime{
			Timeout: 2 * time.Minute,
		},
	}
}

func (c *Config) Validate() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.Format != "text" && c.Output.Format != "json" {
		return fmt.Errorf("unsupported --format: %s (must be one of: text, json)", c.Output.Format)
	}

	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}

	if c.RepoSelector != "" {
		if _, err := ParseRepo(c.RepoSelector); err != nil {
			return fmt.Errorf("invalid --repo value: %w", err)
		}
	}

	return nil
}

// Repo identifies the target repository. Both fields are required before any
// network call is attempted.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepo parses an OWNER/REPO selector as found in the GITHUB_REPOSITORY
// environment variable or the --repo flag.
func ParseRepo(raw string) (Repo, error) {
	raw = strings.TrimSpace(raw)
	owner, name, ok := strings.Cut(raw, "/")
	if !ok {
		return Repo{}, fmt.Errorf("invalid repository %q: expected OWNER/REPO", raw)
	}
	owner = strings.TrimSpace(owner)
	name = strings.TrimSpace(name)
	if owner == "" || name == "" || strings.Contains(name, "/") {
		return Repo{}, fmt.Errorf("invalid repository %q: expected OWNER/REPO", raw)
	}
	return Repo{Owner: owner, Name: name}, nil
}
