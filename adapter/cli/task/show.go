package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show task details",
	Long: `Display one stored task.

Examples:
  taskanalyzer task show 3
  taskanalyzer task show 3 --json`,
	Aliases: []string{"get", "view"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		app, err := cli.RequireApp(cmd.Context())
		if err != nil {
			return err
		}

		t, err := app.GetTaskHandler.Handle(cmd.Context(), queries.GetTaskQuery{TaskID: taskID})
		if errors.Is(err, task.ErrTaskNotFound) {
			return fmt.Errorf("task %d not found", taskID)
		}
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}

		out := cmd.OutOrStdout()
		if showJSON {
			return cli.WriteJSON(out, t)
		}

		fmt.Fprintf(out, "Task: %d\n", t.ID)
		fmt.Fprintf(out, "  Title:        %s\n", t.Title)
		fmt.Fprintf(out, "  Due:          %s %s\n", t.DueDate, t.DueTime)
		fmt.Fprintf(out, "  Estimate:     %.1fh\n", t.EstimatedHours)
		fmt.Fprintf(out, "  Importance:   %d\n", t.Importance)
		fmt.Fprintf(out, "  Role:         %s\n", t.Role)
		if len(t.Dependencies) > 0 {
			ids := make([]string, len(t.Dependencies))
			for i, d := range t.Dependencies {
				ids[i] = fmt.Sprint(d)
			}
			fmt.Fprintf(out, "  Depends on:   %s\n", strings.Join(ids, ", "))
		}
		if t.Notes != "" {
			fmt.Fprintf(out, "  Notes:        %s\n", t.Notes)
		}
		fmt.Fprintf(out, "  Created:      %s\n", t.CreatedAt.In(app.Location).Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print JSON")
}
