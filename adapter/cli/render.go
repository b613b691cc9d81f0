package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
)

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderAnalysis prints a ranked analysis.
func RenderAnalysis(w io.Writer, a *domain.Analysis) {
	for _, warning := range a.Warnings {
		fmt.Fprintln(w, Warning(warning))
	}
	if a.CircularWarning != nil {
		fmt.Fprintln(w, Warning(*a.CircularWarning))
		for _, chain := range a.CircularDependencies {
			fmt.Fprintln(w, Muted("  "+chain))
		}
	}
	if len(a.Tasks) == 0 {
		return
	}

	fmt.Fprintln(w, Title(fmt.Sprintf("Ranked tasks (%d):", len(a.Tasks))))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for i, t := range a.Tasks {
		renderScoredTask(w, i+1, t)
		for _, e := range t.Explanations {
			fmt.Fprintln(w, Muted("     - "+e))
		}
		fmt.Fprintln(w)
	}
}

func renderScoredTask(w io.Writer, rank int, t domain.ScoredTask) {
	marker := ""
	if t.IsOverdue {
		marker = " " + Overdue()
	}
	fmt.Fprintf(w, "%2d. %s %6.2f  %s%s\n", rank, LabelBadge(t.PriorityLabel), t.PriorityScore, t.Title, marker)
	fmt.Fprintf(w, "     %s\n", Muted(fmt.Sprintf("id %s | due %s %s | %.1fh | importance %d",
		t.ID, t.DueDate, t.DueTime, t.EstimatedHours, t.Importance)))
}

// RenderSuggestions prints the top suggestions with their explanations.
func RenderSuggestions(w io.Writer, s *domain.Suggestions) {
	for _, warning := range s.Warnings {
		fmt.Fprintln(w, Warning(warning))
	}
	if len(s.Suggestions) == 0 {
		fmt.Fprintln(w, "No tasks to suggest.")
		return
	}

	fmt.Fprintln(w, Title(fmt.Sprintf("Top %d of %d tasks (%s, %s):",
		len(s.Suggestions), s.TotalTasks, s.Strategy.DisplayName(), s.Role.DisplayName())))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for i, sg := range s.Suggestions {
		renderScoredTask(w, i+1, sg.ScoredTask)
		fmt.Fprintf(w, "     %s\n\n", sg.Explanation)
	}
}
