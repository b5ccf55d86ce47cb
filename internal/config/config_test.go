package config

import (
	"strings"
	"testing"
	"time"
)

func TestParseRepo(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Repo
		wantErr bool
	}{
		{name: "valid", input: "acme/widgets", want: Repo{Owner: "acme", Name: "widgets"}},
		{name: "surrounding whitespace", input: "  acme/widgets  ", want: Repo{Owner: "acme", Name: "widgets"}},
		{name: "missing separator", input: "acme-widgets", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "empty owner", input: "/widgets", wantErr: true},
		{name: "empty name", input: "acme/", wantErr: true},
		{name: "extra separator", input: "acme/widgets/extra", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRepo(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRepo(%q): expected error, got %+v", tt.input, got)
				}
				if !strings.Contains(err.Error(), "OWNER/REPO") {
					t.Fatalf("error should mention expected format, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepo(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseRepo(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRepoString(t *testing.T) {
	r := Repo{Owner: "acme", Name: "widgets"}
	if r.String() != "acme/widgets" {
		t.Fatalf("String() = %q", r.String())
	}
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		if err := New().Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
	})

	t.Run("format normalized", func(t *testing.T) {
		c := New()
		c.Output.Format = " JSON "
		if err := c.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if c.Output.Format != "json" {
			t.Fatalf("Format = %q, want json", c.Output.Format)
		}
	})

	t.Run("empty format falls back to text", func(t *testing.T) {
		c := New()
		c.Output.Format = ""
		if err := c.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if c.Output.Format != "text" {
			t.Fatalf("Format = %q, want text", c.Output.Format)
		}
	})

	t.Run("unsupported format rejected", func(t *testing.T) {
		c := New()
		c.Output.Format = "ndjson"
		if err := c.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("non-positive timeout rejected", func(t *testing.T) {
		c := New()
		c.Runtime.Timeout = 0
		if err := c.Validate(); err == nil {
			t.Fatal("expected error")
		}
		c.Runtime.Timeout = -time.Second
		if err := c.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("bad repo selector rejected", func(t *testing.T) {
		c := New()
		c.RepoSelector = "no-separator"
		if err := c.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})
}
