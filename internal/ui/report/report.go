// Package report renders reconciliation results for the operator.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/natdeps/internal/ui/output"
	"go.trai.ch/natdeps/internal/ui/style"
)

// none is printed in place of a missing version.
const none = "None"

// Renderer writes check and plan reports.
type Renderer struct {
	out *termenv.Output
}

// New creates a Renderer writing to w with the detected color profile.
func New(w io.Writer) *Renderer {
	return &Renderer{out: output.New(w)}
}

// NewWithProfile creates a Renderer writing to w with a fixed color profile.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Renderer {
	return &Renderer{out: output.NewWithProfile(w, func() termenv.Profile { return profile })}
}

// Check prints one line per action in the order given:
//
//	<name>: installed = <version|None>, wanted = <version|None> (<kind> required)
//
// Actions that need no work end after the wanted version.
func (r *Renderer) Check(actions []domain.PendingAction) error {
	for _, action := range actions {
		current, ok := action.CurrentVersion()
		if !ok {
			current = none
		}
		wanted, ok := action.TargetVersion()
		if !ok {
			wanted = none
		}

		line := fmt.Sprintf("%s: installed = %s, wanted = %s", action.Name(), current, wanted)
		if suffix := r.requirement(action.Kind); suffix != "" {
			line += " " + suffix
		}
		if _, err := fmt.Fprintln(r.out, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) requirement(kind domain.ActionKind) string {
	switch kind {
	case domain.ActionInstall:
		return r.paint("(install required)", style.Yellow)
	case domain.ActionReplace:
		return r.paint("(replace required)", style.Blue)
	case domain.ActionRemove:
		return r.paint("(removal required)", style.Red)
	default:
		return ""
	}
}

// Plan prints the non-empty groups of plan, each followed by its packages.
func (r *Renderer) Plan(plan *domain.Plan) error {
	groups := []struct {
		title   string
		color   lipgloss.Color
		actions []domain.PendingAction
	}{
		{title: "Packages to install:", color: style.Yellow, actions: plan.Install},
		{title: "Packages to replace:", color: style.Blue, actions: plan.Replace},
		{title: "Packages to remove:", color: style.Red, actions: plan.Remove},
	}

	for _, group := range groups {
		if len(group.actions) == 0 {
			continue
		}
		title := r.out.String(group.title).Bold().Foreground(r.out.Color(string(group.color))).String()
		if _, err := fmt.Fprintln(r.out, title); err != nil {
			return err
		}
		for _, action := range group.actions {
			if _, err := fmt.Fprintf(r.out, "  %s %s\n", style.Circle, entry(action)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Summary prints the final line of an install run.
func (r *Renderer) Summary(state domain.RunState, completed int) error {
	var line string
	switch state {
	case domain.RunCommitted:
		if completed == 0 {
			line = r.paint(style.Check, style.Green) + " Everything is up to date"
			break
		}
		line = r.paint(style.Check, style.Green) + fmt.Sprintf(" %d package action(s) applied", completed)
	case domain.RunAborted:
		line = r.paint(style.Warning, style.Yellow) + " Aborted, nothing was changed"
	case domain.RunFailed:
		line = r.paint(style.Cross, style.Red) + fmt.Sprintf(" Failed after %d package action(s), lock file unchanged", completed)
	default:
		return nil
	}
	_, err := fmt.Fprintln(r.out, line)
	return err
}

func (r *Renderer) paint(s string, color lipgloss.Color) string {
	return r.out.String(s).Foreground(r.out.Color(string(color))).String()
}

func entry(action domain.PendingAction) string {
	switch action.Kind {
	case domain.ActionReplace:
		current, _ := action.CurrentVersion()
		target, _ := action.TargetVersion()
		return fmt.Sprintf("%s %s -> %s", action.Name(), current, target)
	case domain.ActionRemove:
		return action.Current.String()
	default:
		return action.Target.String()
	}
}
