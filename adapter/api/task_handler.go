package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/commands"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/domain/task"
)

func writeTaskNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: "Task not found"})
}

// pathTaskID parses {id}. Anything but a positive integer cannot name a task.
func pathTaskID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleListTasks handles GET /api/tasks/?role=&overdue=&limit=
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := queries.ListTasksQuery{
		Role:     params.Get("role"),
		Overdue:  params.Get("overdue") == "true",
		Now:      time.Now(),
		Location: s.deps.Location,
	}
	if v := params.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeValidation(w, fieldErrors{"limit": []string{msgInvalidInt}})
			return
		}
		query.Limit = n
	}

	tasks, err := s.deps.ListTasks.Handle(r.Context(), query)
	if err != nil {
		if errors.Is(err, task.ErrInvalidRole) {
			writeValidation(w, fieldErrors{"role": []string{choiceError(query.Role)}})
			return
		}
		s.logger.Error("failed to list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve tasks", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// handleCreateTask handles POST /api/tasks/
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	obj, err := decodeObject(body)
	if err != nil {
		writeInvalidJSON(w)
		return
	}

	fields, errs := parseTaskFields(obj, true)
	if fields.DueDate == nil {
		if _, invalid := errs["due_date"]; !invalid {
			errs.add("due_date", msgRequired)
		}
	}
	deps := fields.storedDependencies(errs)
	if !errs.empty() {
		writeValidation(w, errs)
		return
	}

	cmd := commands.CreateTaskCommand{
		Title:          *fields.Title,
		DueDate:        *fields.DueDate,
		DueTime:        fields.DueTime,
		EstimatedHours: fields.EstimatedHours,
		Importance:     fields.Importance,
		Dependencies:   deps,
	}
	if fields.Role != nil {
		cmd.Role = *fields.Role
	}
	if fields.Notes != nil {
		cmd.Notes = *fields.Notes
	}

	result, err := s.deps.CreateTask.Handle(r.Context(), cmd)
	if err != nil {
		if fe := taskValidationErrors(err); fe != nil {
			writeValidation(w, fe)
			return
		}
		s.logger.Error("failed to create task", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create task", err.Error())
		return
	}
	s.writeStoredTask(w, r, result.TaskID, http.StatusCreated)
}

// handleGetTask handles GET /api/tasks/{id}/
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTaskID(r)
	if !ok {
		writeTaskNotFound(w)
		return
	}
	s.writeStoredTask(w, r, id, http.StatusOK)
}

// handleUpdateTask handles PUT /api/tasks/{id}/ as a partial update.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTaskID(r)
	if !ok {
		writeTaskNotFound(w)
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	obj, err := decodeObject(body)
	if err != nil {
		writeInvalidJSON(w)
		return
	}

	fields, errs := parseTaskFields(obj, false)
	cmd := commands.UpdateTaskCommand{
		TaskID:         id,
		Title:          fields.Title,
		DueDate:        fields.DueDate,
		DueTime:        fields.DueTime,
		EstimatedHours: fields.EstimatedHours,
		Importance:     fields.Importance,
		Role:           fields.Role,
		Notes:          fields.Notes,
	}
	if fields.HasDeps {
		deps := fields.storedDependencies(errs)
		cmd.Dependencies = &deps
	}
	if !errs.empty() {
		writeValidation(w, errs)
		return
	}

	if err := s.deps.UpdateTask.Handle(r.Context(), cmd); err != nil {
		switch {
		case errors.Is(err, task.ErrTaskNotFound):
			writeTaskNotFound(w)
		case taskValidationErrors(err) != nil:
			writeValidation(w, taskValidationErrors(err))
		default:
			s.logger.Error("failed to update task", "task_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update task", err.Error())
		}
		return
	}
	s.writeStoredTask(w, r, id, http.StatusOK)
}

// handleDeleteTask handles DELETE /api/tasks/{id}/
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathTaskID(r)
	if !ok {
		writeTaskNotFound(w)
		return
	}
	if err := s.deps.DeleteTask.Handle(r.Context(), commands.DeleteTaskCommand{TaskID: id}); err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			writeTaskNotFound(w)
			return
		}
		s.logger.Error("failed to delete task", "task_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete task", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeStoredTask(w http.ResponseWriter, r *http.Request, id int64, status int) {
	dto, err := s.deps.GetTask.Handle(r.Context(), queries.GetTaskQuery{TaskID: id})
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			writeTaskNotFound(w)
			return
		}
		s.logger.Error("failed to load task", "task_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve task", err.Error())
		return
	}
	writeJSON(w, status, dto)
}
