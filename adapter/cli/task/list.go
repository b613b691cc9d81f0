package task

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/queries"
)

var (
	listRole    string
	listOverdue bool
	listLimit   int
	listJSON    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored tasks",
	Long: `List stored tasks in the order they were added.

Examples:
  taskanalyzer task list
  taskanalyzer task list --overdue
  taskanalyzer task list --role program_manager --limit 5`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp(cmd.Context())
		if err != nil {
			return err
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			Role:     listRole,
			Overdue:  listOverdue,
			Limit:    listLimit,
			Now:      time.Now(),
			Location: app.Location,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		out := cmd.OutOrStdout()
		if listJSON {
			return cli.WriteJSON(out, tasks)
		}
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}

		fmt.Fprintln(out, cli.Title(fmt.Sprintf("Tasks (%d):", len(tasks))))
		for _, t := range tasks {
			fmt.Fprintf(out, "%4d  %-40s  due %s %s  %.1fh  imp %d\n",
				t.ID, truncate(t.Title, 40), t.DueDate, t.DueTime, t.EstimatedHours, t.Importance)
		}
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	listCmd.Flags().StringVarP(&listRole, "role", "r", "", "only tasks for this role")
	listCmd.Flags().BoolVar(&listOverdue, "overdue", false, "only overdue tasks")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "maximum number of tasks (0 = all)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON")
}
