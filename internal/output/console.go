package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"branchguard/internal/apply"

	"github.com/fatih/color"
)

// Reporter writes per-branch outcomes to the console. In "text" format each
// outcome is printed as it arrives; in "json" format outcomes are collected
// and flushed as one indented array on Close.
type Reporter struct {
	writer   io.Writer
	format   string // "text" or "json"
	mu       sync.Mutex
	outcomes []apply.Outcome
}

func NewReporter(w io.Writer, format string) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}
	return &Reporter{writer: w, format: format}
}

func (r *Reporter) Write(o apply.Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.format {
	case "json":
		r.outcomes = append(r.outcomes, o)
		return nil
	case "text":
		_, err := fmt.Fprintf(r.writer, "[%s] %s - %s\n", statusTag(o.Status), o.Branch, o.Message)
		return err
	default:
		return fmt.Errorf("unsupported console format: %s", r.format)
	}
}

func (r *Reporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.format == "json" {
		encoder := json.NewEncoder(r.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r.outcomes)
	}
	if r.format != "text" {
		return fmt.Errorf("unsupported console format: %s", r.format)
	}
	return nil
}

// Summary prints the closing per-status tally plus follow-up guidance. It is
// printed regardless of per-branch outcomes.
func (r *Reporter) Summary(repo string, outcomes []apply.Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.format != "text" {
		return nil
	}

	var applied, skipped, failed int
	for _, o := range outcomes {
		switch o.Status {
		case apply.StatusApplied:
			applied++
		case apply.StatusSkipped:
			skipped++
		case apply.StatusFailed:
			failed++
		}
	}

	if _, err := fmt.Fprintf(r.writer, "\nDone: %d applied, %d skipped, %d failed\n", applied, skipped, failed); err != nil {
		return err
	}
	_, err := fmt.Fprintf(r.writer, "Review the result at https://github.com/%s/settings/branches\n", repo)
	return err
}

func statusTag(s apply.Status) string {
	switch s {
	case apply.StatusApplied:
		return color.GreenString("OK")
	case apply.StatusSkipped:
		return color.YellowString("SKIP")
	case apply.StatusFailed:
		return color.RedString("FAIL")
	default:
		return string(s)
	}
}
