package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	prioritizationQueries "github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
)

// Validation messages shown to API callers.
const (
	msgRequired      = "This field is required."
	msgBlank         = "This field may not be blank."
	msgTitleTooLong  = "Ensure this field has no more than 200 characters."
	msgDateFormat    = "Date must be in YYYY-MM-DD format (e.g., 2024-12-31)"
	msgTimeFormat    = "Time must be in HH:MM format (e.g., 14:30)"
	msgHoursMin      = "Ensure this value is greater than or equal to 0.1."
	msgImportanceMin = "Ensure this value is greater than or equal to 1."
	msgImportanceMax = "Ensure this value is less than or equal to 10."
	msgTasksRequired = "Tasks list is required"
	msgTasksEmpty    = "At least one task is required"
	msgInvalidInt    = "A valid integer is required."
	msgInvalidNumber = "A valid number is required."
	msgInvalidString = "Not a valid string."
	maxTitleLength   = 200
)

var dueTimePattern = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)

// fieldErrors maps a field name to its messages ([]string) or, for lists of
// objects, to nested fieldErrors keyed by index.
type fieldErrors map[string]any

func (f fieldErrors) add(field, message string) {
	msgs, _ := f[field].([]string)
	f[field] = append(msgs, message)
}

func (f fieldErrors) empty() bool { return len(f) == 0 }

// jsonKind names the JSON type of raw for error messages.
func jsonKind(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "empty"
	}
	switch raw[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func listTypeError(raw json.RawMessage) string {
	return fmt.Sprintf("Expected a list of items but got type %q.", jsonKind(raw))
}

func choiceError(value string) string {
	return fmt.Sprintf("%q is not a valid choice.", value)
}

// decodeObject splits a JSON object into its raw members.
func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("request body must be a JSON object")
	}
	return obj, nil
}

func decodeString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func decodeInt(raw json.RawMessage) (int, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		// Integers sent as strings are accepted, as they are in form input.
		s, ok := decodeString(raw)
		if !ok {
			return 0, false
		}
		n = json.Number(s)
	}
	v, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, false
	}
	return v, true
}

func decodeFloat(raw json.RawMessage) (float64, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		s, ok := decodeString(raw)
		if !ok {
			return 0, false
		}
		n = json.Number(s)
	}
	v, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return v, true
}

// taskFields is a task body after field-level validation. Nil means absent.
type taskFields struct {
	ID             domain.TaskID
	Title          *string
	DueDate        *string
	DueTime        *string
	EstimatedHours *float64
	Importance     *int
	Dependencies   []json.RawMessage
	HasDeps        bool
	Role           *string
	Notes          *string
}

// parseTaskFields validates the members shared by analysis input and stored
// tasks. requireTitle is false for partial updates.
func parseTaskFields(obj map[string]json.RawMessage, requireTitle bool) (taskFields, fieldErrors) {
	var out taskFields
	errs := fieldErrors{}

	if raw, ok := obj["id"]; ok && !isNull(raw) {
		if err := out.ID.UnmarshalJSON(raw); err != nil {
			errs.add("id", msgInvalidInt)
		}
	}

	if raw, ok := obj["title"]; ok && !isNull(raw) {
		title, valid := decodeString(raw)
		switch {
		case !valid:
			errs.add("title", msgInvalidString)
		case title == "":
			errs.add("title", msgBlank)
		case utf8.RuneCountInString(title) > maxTitleLength:
			errs.add("title", msgTitleTooLong)
		default:
			out.Title = &title
		}
	} else if requireTitle {
		errs.add("title", msgRequired)
	}

	if raw, ok := obj["due_date"]; ok && !isNull(raw) {
		date, valid := decodeString(raw)
		if !valid {
			errs.add("due_date", msgInvalidString)
		} else if date != "" {
			if _, err := time.Parse(domain.DateLayout, date); err != nil {
				errs.add("due_date", msgDateFormat)
			} else {
				out.DueDate = &date
			}
		}
	}

	if raw, ok := obj["due_time"]; ok && !isNull(raw) {
		tm, valid := decodeString(raw)
		if !valid {
			errs.add("due_time", msgInvalidString)
		} else if tm != "" {
			if !dueTimePattern.MatchString(tm) {
				errs.add("due_time", msgTimeFormat)
			} else {
				tm = tm[:5]
				out.DueTime = &tm
			}
		}
	}

	if raw, ok := obj["estimated_hours"]; ok && !isNull(raw) {
		hours, valid := decodeFloat(raw)
		switch {
		case !valid:
			errs.add("estimated_hours", msgInvalidNumber)
		case hours < task.MinEstimatedHours:
			errs.add("estimated_hours", msgHoursMin)
		default:
			out.EstimatedHours = &hours
		}
	}

	if raw, ok := obj["importance"]; ok && !isNull(raw) {
		importance, valid := decodeInt(raw)
		switch {
		case !valid:
			errs.add("importance", msgInvalidInt)
		case importance < task.MinImportance:
			errs.add("importance", msgImportanceMin)
		case importance > task.MaxImportance:
			errs.add("importance", msgImportanceMax)
		default:
			out.Importance = &importance
		}
	}

	if raw, ok := obj["dependencies"]; ok {
		out.HasDeps = true
		if !isNull(raw) {
			if err := json.Unmarshal(raw, &out.Dependencies); err != nil {
				errs.add("dependencies", listTypeError(raw))
			}
		}
	}

	if raw, ok := obj["role"]; ok && !isNull(raw) {
		role, valid := decodeString(raw)
		if !valid || !domain.Role(role).IsKnown() {
			errs.add("role", choiceError(role))
		} else {
			out.Role = &role
		}
	}

	if raw, ok := obj["notes"]; ok && !isNull(raw) {
		notes, valid := decodeString(raw)
		if !valid {
			errs.add("notes", msgInvalidString)
		} else {
			out.Notes = &notes
		}
	}

	return out, errs
}

// taskInput converts validated analysis fields into engine input. Dependency
// entries may be integers or strings.
func (f taskFields) taskInput(errs fieldErrors) domain.TaskInput {
	in := domain.TaskInput{
		ID:             f.ID,
		EstimatedHours: f.EstimatedHours,
		Importance:     f.Importance,
		Dependencies:   domain.Dependencies{},
	}
	if f.Title != nil {
		in.Title = *f.Title
	}
	if f.DueDate != nil {
		in.DueDate = *f.DueDate
	}
	if f.DueTime != nil {
		in.DueTime = *f.DueTime
	}
	if f.Role != nil {
		in.Role = domain.Role(*f.Role)
	}
	if f.Notes != nil {
		in.Notes = *f.Notes
	}
	nested := fieldErrors{}
	for i, raw := range f.Dependencies {
		var id domain.TaskID
		kind := jsonKind(raw)
		if (kind != "string" && kind != "number") || id.UnmarshalJSON(raw) != nil {
			nested[strconv.Itoa(i)] = []string{msgInvalidInt}
			continue
		}
		in.Dependencies = append(in.Dependencies, id)
	}
	if !nested.empty() {
		errs["dependencies"] = nested
	}
	return in
}

// storedDependencies converts dependency entries to stored task ids.
func (f taskFields) storedDependencies(errs fieldErrors) []int64 {
	ids := make([]int64, 0, len(f.Dependencies))
	nested := fieldErrors{}
	for i, raw := range f.Dependencies {
		id, ok := decodeInt(raw)
		if !ok || id <= 0 {
			nested[strconv.Itoa(i)] = []string{msgInvalidInt}
			continue
		}
		ids = append(ids, int64(id))
	}
	if !nested.empty() {
		errs["dependencies"] = nested
	}
	return ids
}

// parseAnalyzeBody validates an analyze or suggest request body.
func parseAnalyzeBody(body []byte) (prioritizationQueries.AnalyzeTasksQuery, fieldErrors, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return prioritizationQueries.AnalyzeTasksQuery{}, nil, err
	}

	var q prioritizationQueries.AnalyzeTasksQuery
	errs := fieldErrors{}

	if raw, ok := obj["use_stored"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &q.UseStored); err != nil {
			errs.add("use_stored", "Must be a valid boolean.")
		}
	}

	raw, hasTasks := obj["tasks"]
	switch {
	case q.UseStored:
	case !hasTasks || isNull(raw):
		errs.add("tasks", msgTasksRequired)
	default:
		q.Tasks = parseTaskList(raw, errs)
	}

	parseChoices(obj, &q, errs)
	return q, errs, nil
}

// parseTaskList validates a JSON array of analysis tasks.
func parseTaskList(raw json.RawMessage, errs fieldErrors) []domain.TaskInput {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		errs.add("tasks", listTypeError(raw))
		return nil
	}
	if len(items) == 0 {
		errs.add("tasks", msgTasksEmpty)
		return nil
	}

	inputs := make([]domain.TaskInput, 0, len(items))
	itemErrs := fieldErrors{}
	for i, item := range items {
		obj, err := decodeObject(item)
		if err != nil {
			itemErrs[strconv.Itoa(i)] = fieldErrors{"non_field_errors": []string{
				fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", jsonKind(item)),
			}}
			continue
		}
		fields, fe := parseTaskFields(obj, true)
		in := fields.taskInput(fe)
		if !fe.empty() {
			itemErrs[strconv.Itoa(i)] = fe
			continue
		}
		inputs = append(inputs, in)
	}
	if !itemErrs.empty() {
		errs["tasks"] = itemErrs
	}
	return inputs
}

// parseChoices validates strategy, role and custom_weights.
func parseChoices(obj map[string]json.RawMessage, q *prioritizationQueries.AnalyzeTasksQuery, errs fieldErrors) {
	if raw, ok := obj["strategy"]; ok && !isNull(raw) {
		s, valid := decodeString(raw)
		if !valid || !slices.Contains(domain.Strategies, domain.Strategy(s)) {
			errs.add("strategy", choiceError(s))
		} else {
			q.Strategy = s
		}
	}

	if raw, ok := obj["role"]; ok && !isNull(raw) {
		r, valid := decodeString(raw)
		if !valid || !domain.Role(r).IsKnown() {
			errs.add("role", choiceError(r))
		} else {
			q.Role = r
		}
	}

	if raw, ok := obj["custom_weights"]; ok && !isNull(raw) {
		var weights map[string]any
		if err := json.Unmarshal(raw, &weights); err != nil {
			errs.add("custom_weights", fmt.Sprintf("Expected a dictionary of items but got type %q.", jsonKind(raw)))
			return
		}
		parsed, err := domain.ParsePercentWeights(weights)
		if err != nil {
			errs.add("custom_weights", err.Error())
			return
		}
		q.CustomWeights = &parsed
	}
}

// storedTaskFieldErrors maps a task aggregate validation error to the field
// that caused it.
var storedTaskFieldErrors = []struct {
	err   error
	field string
}{
	{task.ErrEmptyTitle, "title"},
	{task.ErrTitleTooLong, "title"},
	{task.ErrInvalidDueDate, "due_date"},
	{task.ErrInvalidDueTime, "due_time"},
	{task.ErrInvalidEstimatedHours, "estimated_hours"},
	{task.ErrInvalidImportance, "importance"},
	{task.ErrInvalidRole, "role"},
	{task.ErrInvalidDependency, "dependencies"},
}

// taskValidationErrors converts an aggregate error into field errors, or
// returns nil if err is not a validation failure.
func taskValidationErrors(err error) fieldErrors {
	for _, m := range storedTaskFieldErrors {
		if errors.Is(err, m.err) {
			msg := err.Error()
			if msg != "" {
				msg = string(bytes.ToUpper([]byte(msg[:1]))) + msg[1:]
			}
			return fieldErrors{m.field: []string{msg}}
		}
	}
	return nil
}
