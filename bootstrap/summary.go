package bootstrap

import (
	"fmt"
	"io"
	"time"

	"github.com/kbukum/dotfiles/observability"
)

// Summary tracks and displays the outcome of a dotfiles run.
type Summary struct {
	serviceName string
	version     string
	duration    time.Duration
	dryRun      bool
	steps       []StepReport
}

// NewSummary creates a new run summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		steps:       make([]StepReport, 0),
	}
}

// SetDuration records the total run time.
func (s *Summary) SetDuration(d time.Duration) {
	s.duration = d
}

// TrackStep adds a step outcome to the summary.
func (s *Summary) TrackStep(step StepReport) {
	s.steps = append(s.steps, step)
}

// TrackReport adds every step of r and marks the summary as a dry run when
// r was one.
func (s *Summary) TrackReport(r *Report) {
	if r == nil {
		return
	}
	s.dryRun = s.dryRun || r.DryRun
	for _, step := range r.Steps {
		s.TrackStep(step)
	}
}

// Display writes the step tree and a one-line verdict to w.
func (s *Summary) Display(w io.Writer) {
	fmt.Fprintf(w, "\n")
	title := fmt.Sprintf("%s %s finished in %.2fs", s.serviceName, s.version, s.duration.Seconds())
	if s.dryRun {
		title += " (dry run)"
	}
	fmt.Fprintf(w, "🚀 %s\n\n", title)

	if len(s.steps) == 0 {
		fmt.Fprintf(w, "   └── No steps ran\n\n")
		return
	}

	fmt.Fprintf(w, "📦 Steps\n")
	ok, failed := 0, 0
	for i, step := range s.steps {
		icon := statusIcon(step.Status)
		switch step.Status {
		case observability.StepStatusOK:
			ok++
		case observability.StepStatusFailed:
			failed++
		}
		line := fmt.Sprintf("%s %s (%s", icon, step.Name, step.Status)
		if step.Status != observability.StepStatusSkipped {
			line += ", " + step.Duration.Round(time.Millisecond).String()
		}
		line += ")"
		if step.Err != nil {
			line += " — " + step.Err.Error()
		}
		fmt.Fprintf(w, "   %s %s\n", treePrefix(i, len(s.steps)), line)
	}
	fmt.Fprintf(w, "\n")

	total := len(s.steps)
	if failed == 0 && ok == total {
		fmt.Fprintf(w, "✅ All steps succeeded (%d/%d)\n", ok, total)
	} else {
		fmt.Fprintf(w, "❌ %d step(s) failed, %d/%d succeeded\n", failed, ok, total)
	}
	fmt.Fprintf(w, "\n")
}

// DisplayHealth writes a doctor report to w.
func DisplayHealth(w io.Writer, sh *observability.ServiceHealth) {
	fmt.Fprintf(w, "\n🏥 %s %s: %s\n", sh.Service, sh.Version, sh.Status)
	for i, h := range sh.Components {
		msg := ""
		if h.Message != "" {
			msg = " — " + h.Message
		} else if p := h.Details["path"]; p != "" {
			msg = " (" + p + ")"
		}
		fmt.Fprintf(w, "   %s %s %s: %s%s\n", treePrefix(i, len(sh.Components)), healthStatusIcon(h.Status), h.Name, h.Status, msg)
	}
	fmt.Fprintf(w, "\n")
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func statusIcon(status string) string {
	switch status {
	case observability.StepStatusOK:
		return "✅"
	case observability.StepStatusSkipped:
		return "⏸️"
	case observability.StepStatusFailed:
		return "❌"
	default:
		return "⚠️"
	}
}

func healthStatusIcon(status observability.HealthStatus) string {
	switch status {
	case observability.HealthStatusUp:
		return "✅"
	case observability.HealthStatusDegraded:
		return "⚠️"
	case observability.HealthStatusDown:
		return "❌"
	default:
		return "❓"
	}
}
