package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Layouts for task due dates and times.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Defaults applied to missing task fields.
const (
	DefaultTitle          = "Untitled Task"
	DefaultDueTime        = "23:59"
	DefaultEstimatedHours = 1.0
	DefaultImportance     = 5
	DefaultRole           = RoleDeveloper
	DefaultDueIn          = 7 * 24 * time.Hour
)

var dueTimePattern = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)

// TaskID identifies a task within a batch. JSON strings and integers are both
// accepted and compared by their string form.
type TaskID string

// UnmarshalJSON accepts a string, a number or null.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id must be a string or integer: %s", data)
	}
	*id = TaskID(n.String())
	return nil
}

// TaskIDFromInt formats a stored integer id.
func TaskIDFromInt(id int64) TaskID {
	return TaskID(strconv.FormatInt(id, 10))
}

func (id TaskID) String() string { return string(id) }

// Dependencies lists the ids a task waits on. Any JSON value other than an
// array decodes to an empty list, and null or non-scalar entries are skipped.
type Dependencies []TaskID

// UnmarshalJSON never fails; malformed input yields an empty list.
func (d *Dependencies) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*d = Dependencies{}
		return nil
	}
	out := make(Dependencies, 0, len(raw))
	for _, item := range raw {
		var id TaskID
		if err := id.UnmarshalJSON(item); err != nil || id == "" {
			continue
		}
		out = append(out, id)
	}
	*d = out
	return nil
}

// TaskInput is a task as supplied by a caller. Zero values and nil pointers
// mean the field was not provided.
type TaskInput struct {
	ID             TaskID       `json:"id,omitempty"`
	Title          string       `json:"title,omitempty"`
	DueDate        string       `json:"due_date,omitempty"`
	DueTime        string       `json:"due_time,omitempty"`
	EstimatedHours *float64     `json:"estimated_hours,omitempty"`
	Importance     *int         `json:"importance,omitempty"`
	Dependencies   Dependencies `json:"dependencies,omitempty"`
	Role           Role         `json:"role,omitempty"`
	Notes          string       `json:"notes,omitempty"`
}

// Task is a task with every field filled in and its due instant resolved.
type Task struct {
	ID             TaskID   `json:"id"`
	Title          string   `json:"title"`
	DueDate        string   `json:"due_date"`
	DueTime        string   `json:"due_time"`
	EstimatedHours float64  `json:"estimated_hours"`
	Importance     int      `json:"importance"`
	Dependencies   []TaskID `json:"dependencies"`
	Role           Role     `json:"role"`
	Notes          string   `json:"notes"`

	// Due is DueDate and DueTime combined in the analysis location.
	Due time.Time `json:"-"`

	placeholderID bool
}

// HasCallerID reports whether the id came from the caller rather than the
// positional placeholder.
func (t Task) HasCallerID() bool {
	return t.ID != "" && !t.placeholderID
}

// Normalize fills defaults and resolves the due instant. index is the task's
// position in its batch and names the placeholder id.
func (in TaskInput) Normalize(index int, now time.Time, loc *time.Location) (Task, error) {
	if loc == nil {
		loc = time.UTC
	}

	task := Task{
		ID:             in.ID,
		Title:          in.Title,
		DueDate:        in.DueDate,
		DueTime:        in.DueTime,
		EstimatedHours: DefaultEstimatedHours,
		Importance:     DefaultImportance,
		Dependencies:   []TaskID(in.Dependencies),
		Role:           in.Role,
		Notes:          in.Notes,
	}
	if task.ID == "" {
		task.ID = TaskID(fmt.Sprintf("task_%d", index))
		task.placeholderID = true
	}
	if task.Title == "" {
		task.Title = DefaultTitle
	}
	if in.EstimatedHours != nil {
		task.EstimatedHours = *in.EstimatedHours
	}
	if in.Importance != nil {
		task.Importance = *in.Importance
	}
	if task.Dependencies == nil {
		task.Dependencies = []TaskID{}
	}
	if task.Role == "" {
		task.Role = DefaultRole
	}
	if task.DueDate == "" {
		task.DueDate = now.In(loc).Add(DefaultDueIn).Format(DateLayout)
	}
	if task.DueTime == "" {
		task.DueTime = DefaultDueTime
	}

	malformed := func(field, value string, err error) error {
		return &MalformedTaskError{Index: index, TaskID: task.ID, Field: field, Value: value, Err: err}
	}

	date, err := time.ParseInLocation(DateLayout, task.DueDate, loc)
	if err != nil {
		return Task{}, malformed("due_date", task.DueDate, err)
	}
	if !dueTimePattern.MatchString(task.DueTime) {
		return Task{}, malformed("due_time", task.DueTime, nil)
	}
	task.DueTime = task.DueTime[:5]
	clock, err := time.Parse(TimeLayout, task.DueTime)
	if err != nil {
		return Task{}, malformed("due_time", task.DueTime, err)
	}

	task.Due = time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
	return task, nil
}

// NormalizeTasks applies Normalize to every input in order.
func NormalizeTasks(inputs []TaskInput, now time.Time, loc *time.Location) ([]Task, error) {
	tasks := make([]Task, 0, len(inputs))
	for i, in := range inputs {
		task, err := in.Normalize(i, now, loc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
