package task

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/commands"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
)

var (
	updateTitle      string
	updateDue        string
	updateDueTime    string
	updateHours      float64
	updateImportance int
	updateDepends    string
	updateRole       string
	updateNotes      string
)

var updateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Update a task",
	Long: `Change some fields of a stored task. Fields without a flag keep their value.

Examples:
  taskanalyzer task update 3 --importance 10
  taskanalyzer task update 3 --due 2025-07-01 --due-time 09:00
  taskanalyzer task update 3 --depends ""   # clear dependencies`,
	Aliases: []string{"edit"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		updateCmd := commands.UpdateTaskCommand{TaskID: taskID}
		flags := cmd.Flags()
		changed := 0
		if flags.Changed("title") {
			updateCmd.Title = &updateTitle
			changed++
		}
		if flags.Changed("due") {
			updateCmd.DueDate = &updateDue
			changed++
		}
		if flags.Changed("due-time") {
			updateCmd.DueTime = &updateDueTime
			changed++
		}
		if flags.Changed("hours") {
			updateCmd.EstimatedHours = &updateHours
			changed++
		}
		if flags.Changed("importance") {
			updateCmd.Importance = &updateImportance
			changed++
		}
		if flags.Changed("depends") {
			deps, err := parseDependencies(updateDepends)
			if err != nil {
				return err
			}
			updateCmd.Dependencies = &deps
			changed++
		}
		if flags.Changed("role") {
			updateCmd.Role = &updateRole
			changed++
		}
		if flags.Changed("notes") {
			updateCmd.Notes = &updateNotes
			changed++
		}
		if changed == 0 {
			return errors.New("nothing to update: pass at least one field flag")
		}

		app, err := cli.RequireApp(cmd.Context())
		if err != nil {
			return err
		}
		err = app.UpdateTaskHandler.Handle(cmd.Context(), updateCmd)
		if errors.Is(err, task.ErrTaskNotFound) {
			return fmt.Errorf("task %d not found", taskID)
		}
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task updated: %d\n", taskID)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "new title")
	updateCmd.Flags().StringVarP(&updateDue, "due", "d", "", "due date (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&updateDueTime, "due-time", "", "due time (HH:MM)")
	updateCmd.Flags().Float64VarP(&updateHours, "hours", "e", 0, "estimated hours")
	updateCmd.Flags().IntVarP(&updateImportance, "importance", "i", 0, "importance 1-10")
	updateCmd.Flags().StringVar(&updateDepends, "depends", "", "comma-separated dependency ids; empty clears them")
	updateCmd.Flags().StringVarP(&updateRole, "role", "r", "", "developer or program_manager")
	updateCmd.Flags().StringVar(&updateNotes, "notes", "", "free-form notes")
}
