package domain

// Label buckets a priority score.
type Label string

const (
	LabelHigh   Label = "HIGH"
	LabelMedium Label = "MEDIUM"
	LabelLow    Label = "LOW"
)

// Label thresholds on the weighted priority score.
const (
	HighThreshold   = 80.0
	MediumThreshold = 50.0
)

// LabelFor maps a priority score to its label.
func LabelFor(score float64) Label {
	switch {
	case score >= HighThreshold:
		return LabelHigh
	case score >= MediumThreshold:
		return LabelMedium
	default:
		return LabelLow
	}
}

// ComponentScores holds the four sub-scores of a task.
type ComponentScores struct {
	Urgency    float64 `json:"urgency"`
	Importance float64 `json:"importance"`
	Effort     float64 `json:"effort"`
	Dependency float64 `json:"dependency"`
}

// Component names one of the four sub-scores.
type Component string

const (
	ComponentUrgency    Component = "urgency"
	ComponentImportance Component = "importance"
	ComponentEffort     Component = "effort"
	ComponentDependency Component = "dependency"
)

// RankedComponent pairs a component with its score.
type RankedComponent struct {
	Component Component
	Score     float64
}

// Ordered returns the components in urgency, importance, effort, dependency order.
func (c ComponentScores) Ordered() []RankedComponent {
	return []RankedComponent{
		{ComponentUrgency, c.Urgency},
		{ComponentImportance, c.Importance},
		{ComponentEffort, c.Effort},
		{ComponentDependency, c.Dependency},
	}
}

// ScoredTask is a task with its priority breakdown.
type ScoredTask struct {
	Task
	PriorityScore   float64         `json:"priority_score"`
	PriorityLabel   Label           `json:"priority_label"`
	ComponentScores ComponentScores `json:"component_scores"`
	Explanations    []string        `json:"explanations"`
	IsOverdue       bool            `json:"is_overdue"`
}

// Analysis is the ranked result of one batch.
type Analysis struct {
	Tasks                []ScoredTask `json:"tasks"`
	CircularDependencies []string     `json:"circular_dependencies"`
	AffectedTaskIDs      []TaskID     `json:"affected_task_ids"`
	CircularWarning      *string      `json:"circular_warning"`
	Warnings             []string     `json:"warnings"`
}

// Suggestion is a top-ranked task with a narrative rationale.
type Suggestion struct {
	ScoredTask
	Explanation string `json:"explanation"`
}

// Suggestions is the top of an analysis with explanations.
type Suggestions struct {
	Suggestions []Suggestion `json:"suggestions"`
	Strategy    Strategy     `json:"strategy"`
	Role        Role         `json:"role"`
	TotalTasks  int          `json:"total_tasks"`
	Warnings    []string     `json:"warnings"`
}

// CycleReport lists the dependency cycles found in a batch.
type CycleReport struct {
	Chains      []string   `json:"chains"`
	AffectedIDs []TaskID   `json:"affected_task_ids"`
	Cycles      [][]TaskID `json:"cycles"`
}
