package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/security"
)

// TaskFile is the object form of a task file. A bare list of tasks is also
// accepted.
type TaskFile struct {
	Tasks         []domain.TaskInput     `json:"tasks"`
	Strategy      string                 `json:"strategy,omitempty"`
	Role          string                 `json:"role,omitempty"`
	CustomWeights *domain.PercentWeights `json:"custom_weights,omitempty"`
}

// LoadTaskFile reads tasks from a JSON or YAML file. YAML is chosen by the
// .yaml or .yml extension; "-" reads JSON from stdin.
func LoadTaskFile(path string) (*TaskFile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = security.ReadLimited(os.Stdin)
	} else {
		data, err = security.ReadInputFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return ParseTaskJSON(data)
}

// ParseTaskJSON decodes either a list of tasks or a {"tasks": [...]} object.
func ParseTaskJSON(data []byte) (*TaskFile, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var tasks []domain.TaskInput
		if err := json.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("decode tasks: %w", err)
		}
		return &TaskFile{Tasks: tasks}, nil
	}

	var f TaskFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return &f, nil
}

// yamlToJSON re-encodes a YAML document as JSON so both formats share one
// decoder. Unquoted YAML dates and times come back as strings.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(normalizeYAML(doc))
}

func normalizeYAML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, item := range x {
			x[k] = normalizeYAML(item)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range x {
			x[i] = normalizeYAML(item)
		}
		return x
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format(domain.DateLayout)
		}
		return x.Format(time.RFC3339)
	default:
		return v
	}
}

// ParseWeightsFlag parses "u,i,e,d" percentages, e.g. "40,30,20,10".
func ParseWeightsFlag(s string) (*domain.PercentWeights, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("--weights needs four comma-separated percentages (urgency,importance,effort,dependencies), got %q", s)
	}
	values := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("--weights: %q is not a number", p)
		}
		values[i] = v
	}
	w := domain.PercentWeights{
		Urgency:      values[0],
		Importance:   values[1],
		Effort:       values[2],
		Dependencies: values[3],
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}
