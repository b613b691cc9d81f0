// Package task holds the commands that manage the local task store.
package task

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage stored tasks",
	Long: `Add, list, show, update and delete tasks in the local task store.

Stored tasks can be ranked with "taskanalyzer analyze --stored".`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(deleteCmd)
}

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task ID %q: must be a positive integer", s)
	}
	return id, nil
}

// parseDependencies parses "1,2,3". An empty string is an empty list.
func parseDependencies(s string) ([]int64, error) {
	deps := []int64{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := parseTaskID(part)
		if err != nil {
			return nil, fmt.Errorf("invalid dependency: %w", err)
		}
		deps = append(deps, id)
	}
	return deps, nil
}
