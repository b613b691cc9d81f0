package task

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/domain"
)

// Field limits enforced on stored tasks.
const (
	MaxTitleLength    = 200
	MinEstimatedHours = 0.1
	MinImportance     = 1
	MaxImportance     = 10

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrEmptyTitle            = errors.New("task title cannot be empty")
	ErrTitleTooLong          = errors.New("task title cannot exceed 200 characters")
	ErrInvalidDueDate        = errors.New("date must be in YYYY-MM-DD format (e.g., 2024-12-31)")
	ErrInvalidDueTime        = errors.New("time must be in HH:MM format (e.g., 14:30)")
	ErrInvalidEstimatedHours = errors.New("estimated hours must be at least 0.1")
	ErrInvalidImportance     = errors.New("importance must be between 1 and 10")
	ErrInvalidRole           = errors.New("role must be developer or program_manager")
	ErrInvalidDependency     = errors.New("dependencies must be positive task ids")
)

var dueTimePattern = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)

// Role is who the task is planned for.
type Role string

const (
	RoleDeveloper      Role = "developer"
	RoleProgramManager Role = "program_manager"
)

// ParseRole validates a role name. Empty means developer.
func ParseRole(s string) (Role, error) {
	switch Role(strings.TrimSpace(s)) {
	case "", RoleDeveloper:
		return RoleDeveloper, nil
	case RoleProgramManager:
		return RoleProgramManager, nil
	default:
		return "", ErrInvalidRole
	}
}

// Task is a stored work item.
type Task struct {
	domain.BaseAggregateRoot
	title          string
	dueDate        time.Time
	dueTime        string
	estimatedHours float64
	importance     int
	dependencies   []int64
	role           Role
	notes          string
}

// NewTask creates a task due at the end of dueDate with default effort,
// importance and role.
func NewTask(title string, dueDate time.Time) (*Task, error) {
	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		dueDate:           truncateToDate(dueDate),
		dueTime:           "23:59",
		estimatedHours:    1.0,
		importance:        5,
		dependencies:      []int64{},
		role:              RoleDeveloper,
	}
	if err := t.setTitle(title); err != nil {
		return nil, err
	}
	return t, nil
}

// RehydrateTask recreates a task from persisted state.
func RehydrateTask(
	id int64,
	title string,
	dueDate time.Time,
	dueTime string,
	estimatedHours float64,
	importance int,
	dependencies []int64,
	role Role,
	notes string,
	createdAt, updatedAt time.Time,
) *Task {
	if dependencies == nil {
		dependencies = []int64{}
	}
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(domain.RehydrateBaseEntity(id, createdAt, updatedAt), 0),
		title:             title,
		dueDate:           truncateToDate(dueDate),
		dueTime:           dueTime,
		estimatedHours:    estimatedHours,
		importance:        importance,
		dependencies:      dependencies,
		role:              role,
		notes:             notes,
	}
}

func (t *Task) Title() string           { return t.title }
func (t *Task) DueDate() time.Time      { return t.dueDate }
func (t *Task) DueTime() string         { return t.dueTime }
func (t *Task) EstimatedHours() float64 { return t.estimatedHours }
func (t *Task) Importance() int         { return t.importance }
func (t *Task) Role() Role              { return t.role }
func (t *Task) Notes() string           { return t.notes }

// Dependencies returns a copy of the ids this task waits on.
func (t *Task) Dependencies() []int64 {
	return append([]int64(nil), t.dependencies...)
}

// DueAt combines the due date and time in loc.
func (t *Task) DueAt(loc *time.Location) time.Time {
	clock, _ := time.Parse(TimeLayout, t.dueTime)
	return time.Date(t.dueDate.Year(), t.dueDate.Month(), t.dueDate.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
}

// IsOverdue reports whether the due instant has passed.
func (t *Task) IsOverdue(now time.Time, loc *time.Location) bool {
	return now.After(t.DueAt(loc))
}

func (t *Task) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	t.title = title
	return nil
}

// SetTitle updates the task title.
func (t *Task) SetTitle(title string) error {
	if err := t.setTitle(title); err != nil {
		return err
	}
	t.Touch()
	return nil
}

// SetDueDate updates the due calendar date.
func (t *Task) SetDueDate(dueDate time.Time) {
	t.dueDate = truncateToDate(dueDate)
	t.Touch()
}

// SetDueTime accepts HH:MM or HH:MM:SS and stores HH:MM.
func (t *Task) SetDueTime(dueTime string) error {
	dueTime = strings.TrimSpace(dueTime)
	if !dueTimePattern.MatchString(dueTime) {
		return ErrInvalidDueTime
	}
	t.dueTime = dueTime[:5]
	t.Touch()
	return nil
}

// SetEstimatedHours updates the effort estimate.
func (t *Task) SetEstimatedHours(hours float64) error {
	if hours < MinEstimatedHours {
		return ErrInvalidEstimatedHours
	}
	t.estimatedHours = hours
	t.Touch()
	return nil
}

// SetImportance updates the 1-10 rating.
func (t *Task) SetImportance(importance int) error {
	if importance < MinImportance || importance > MaxImportance {
		return ErrInvalidImportance
	}
	t.importance = importance
	t.Touch()
	return nil
}

// SetDependencies replaces the dependency list. Duplicates are dropped.
func (t *Task) SetDependencies(ids []int64) error {
	deps := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return ErrInvalidDependency
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		deps = append(deps, id)
	}
	t.dependencies = deps
	t.Touch()
	return nil
}

// SetRole updates the planning role.
func (t *Task) SetRole(role Role) error {
	if role != RoleDeveloper && role != RoleProgramManager {
		return ErrInvalidRole
	}
	t.role = role
	t.Touch()
	return nil
}

// SetNotes updates the free-text notes.
func (t *Task) SetNotes(notes string) {
	t.notes = notes
	t.Touch()
}

// ParseDueDate parses a YYYY-MM-DD date.
func ParseDueDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDueDate
	}
	return d, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
