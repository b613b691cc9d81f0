package task

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/commands"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Short:   "Delete a task",
	Long:    `Delete a stored task. Other tasks that listed it as a dependency keep the id.`,
	Aliases: []string{"rm"},
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

		err = app.DeleteTaskHandler.Handle(cmd.Context(), commands.DeleteTaskCommand{TaskID: taskID})
		if errors.Is(err, task.ErrTaskNotFound) {
			return fmt.Errorf("task %d not found", taskID)
		}
		if err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task deleted: %d\n", taskID)
		return nil
	},
}
