package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
)

const (
	fractionTolerance = 0.01
	percentTolerance  = 0.01
)

// PercentWeightKeys are the keys required in caller-supplied percentage weights.
var PercentWeightKeys = []string{"urgency", "importance", "effort", "dependencies"}

// FractionWeights is the weight vector used by the aggregator. Values are in
// [0,1] and sum to 1.
type FractionWeights struct {
	Urgency    float64 `json:"urgency"`
	Importance float64 `json:"importance"`
	Effort     float64 `json:"effort"`
	Dependency float64 `json:"dependency"`
}

// Sum returns the total of the four weights.
func (w FractionWeights) Sum() float64 {
	return w.Urgency + w.Importance + w.Effort + w.Dependency
}

// Validate checks the sum-to-one constraint.
func (w FractionWeights) Validate() error {
	total := w.Sum()
	if math.Abs(total-1.0) > fractionTolerance {
		return weightsErrorf("Custom weights must sum to 1.0. Current sum: %.4f", total)
	}
	return nil
}

// PercentWeights is the caller-facing weight input: whole percentages that
// sum to 100.
type PercentWeights struct {
	Urgency      float64 `json:"urgency" yaml:"urgency"`
	Importance   float64 `json:"importance" yaml:"importance"`
	Effort       float64 `json:"effort" yaml:"effort"`
	Dependencies float64 `json:"dependencies" yaml:"dependencies"`
}

// ParsePercentWeights validates a decoded JSON object of percentage weights.
// Every entry must be a number in [0,100] and all entries must sum to 100.
func ParsePercentWeights(raw map[string]any) (PercentWeights, error) {
	for _, key := range PercentWeightKeys {
		if _, ok := raw[key]; !ok {
			return PercentWeights{}, weightsErrorf("Custom weights must include: urgency, importance, effort, dependencies")
		}
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make(map[string]float64, len(raw))
	var total float64
	for _, key := range keys {
		value, ok := toFloat(raw[key])
		if !ok {
			return PercentWeights{}, weightsErrorf("Weight '%s' must be a number", key)
		}
		if value < 0 || value > 100 {
			return PercentWeights{}, weightsErrorf("Weight '%s' must be between 0 and 100", key)
		}
		values[key] = value
		total += value
	}
	if math.Abs(total-100) > percentTolerance {
		return PercentWeights{}, weightsErrorf("Weights must sum to 100%%. Current sum: %.2f%%", total)
	}

	return PercentWeights{
		Urgency:      values["urgency"],
		Importance:   values["importance"],
		Effort:       values["effort"],
		Dependencies: values["dependencies"],
	}, nil
}

// UnmarshalJSON decodes a weights object through ParsePercentWeights, so a
// missing key is rejected instead of defaulting to zero.
func (p *PercentWeights) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return weightsErrorf("Custom weights must be an object")
	}
	parsed, err := ParsePercentWeights(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Validate checks ranges and the sum-to-100 constraint.
func (p PercentWeights) Validate() error {
	fields := []struct {
		key   string
		value float64
	}{
		{"urgency", p.Urgency},
		{"importance", p.Importance},
		{"effort", p.Effort},
		{"dependencies", p.Dependencies},
	}
	for _, f := range fields {
		if f.value < 0 || f.value > 100 {
			return weightsErrorf("Weight '%s' must be between 0 and 100", f.key)
		}
	}
	total := p.Urgency + p.Importance + p.Effort + p.Dependencies
	if math.Abs(total-100) > percentTolerance {
		return weightsErrorf("Weights must sum to 100%%. Current sum: %.2f%%", total)
	}
	return nil
}

// ToFractions validates p and converts it to a FractionWeights vector.
func (p PercentWeights) ToFractions() (FractionWeights, error) {
	if err := p.Validate(); err != nil {
		return FractionWeights{}, err
	}
	return FractionWeights{
		Urgency:    p.Urgency / 100,
		Importance: p.Importance / 100,
		Effort:     p.Effort / 100,
		Dependency: p.Dependencies / 100,
	}, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
