package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/commands"
)

var (
	addDue        string
	addDueTime    string
	addHours      float64
	addImportance int
	addDepends    string
	addRole       string
	addNotes      string
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Long: `Add a task to the local task store.

Examples:
  taskanalyzer task add "Fix login bug" --due 2025-06-01 --hours 2 --importance 9
  taskanalyzer task add "Release notes" --due 2025-06-03 --due-time 17:00 --depends 1,2
  taskanalyzer task add "Roadmap review" --due 2025-06-10 --role program_manager`,
	Aliases: []string{"create"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp(cmd.Context())
		if err != nil {
			return err
		}

		deps, err := parseDependencies(addDepends)
		if err != nil {
			return err
		}

		createCmd := commands.CreateTaskCommand{
			Title:        args[0],
			DueDate:      addDue,
			Dependencies: deps,
			Role:         addRole,
			Notes:        addNotes,
		}
		if cmd.Flags().Changed("due-time") {
			createCmd.DueTime = &addDueTime
		}
		if cmd.Flags().Changed("hours") {
			createCmd.EstimatedHours = &addHours
		}
		if cmd.Flags().Changed("importance") {
			createCmd.Importance = &addImportance
		}

		result, err := app.CreateTaskHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Task added: %d\n", result.TaskID)
		fmt.Fprintf(out, "  title: %s\n", args[0])
		fmt.Fprintf(out, "  due:   %s\n", addDue)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addDueTime, "due-time", "", "due time (HH:MM), default end of day")
	addCmd.Flags().Float64VarP(&addHours, "hours", "e", 1, "estimated hours")
	addCmd.Flags().IntVarP(&addImportance, "importance", "i", 5, "importance 1-10")
	addCmd.Flags().StringVar(&addDepends, "depends", "", "comma-separated ids of tasks this one waits on")
	addCmd.Flags().StringVarP(&addRole, "role", "r", "", "developer or program_manager")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "free-form notes")
	_ = addCmd.MarkFlagRequired("due")
}
