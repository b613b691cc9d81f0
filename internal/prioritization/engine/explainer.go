package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
)

// ExplainSuggestion writes a short narrative of why a task ranks highly,
// focused on its two strongest components.
func ExplainSuggestion(
	task domain.Task,
	strategy domain.Strategy,
	role domain.Role,
	scores domain.ComponentScores,
	all []domain.Task,
) string {
	strategy = domain.ParseStrategy(string(strategy))
	roleTuned := strategy == domain.StrategySmartBalance && role != ""

	var sentences []string
	if roleTuned {
		sentences = append(sentences, fmt.Sprintf(
			"This task was prioritized using the %s strategy, which is optimized for %ss.",
			strategy.DisplayName(), role.DisplayName()))
	} else {
		sentences = append(sentences, fmt.Sprintf(
			"This task was prioritized using the %s strategy.", strategy.DisplayName()))
	}

	ranked := scores.Ordered()
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	top := ranked[0].Component
	inTopTwo := func(c domain.Component) bool {
		return top == c || ranked[1].Component == c
	}

	if inTopTwo(domain.ComponentUrgency) {
		if scores.Urgency >= maxComponentScore {
			days := int((scores.Urgency - maxComponentScore) / overduePointsPerDay)
			sentences = append(sentences, fmt.Sprintf(
				"It's overdue by %d day(s), making it extremely urgent with an urgency score of %.1f/100+.",
				days, scores.Urgency))
		} else {
			days := int((maxComponentScore - scores.Urgency) / urgencyDecayPerDay)
			sentences = append(sentences, fmt.Sprintf(
				"It's due in %d day(s), giving it a high urgency score of %.1f/100.",
				days, scores.Urgency))
		}
	}

	if inTopTwo(domain.ComponentDependency) {
		if count := CountDependents(task.ID, all); count > 0 {
			sentences = append(sentences, fmt.Sprintf(
				"It blocks %d other task(s), making it a critical dependency with a dependency score of %.1f/100.",
				count, scores.Dependency))
		}
	}

	if inTopTwo(domain.ComponentImportance) {
		sentences = append(sentences, fmt.Sprintf(
			"It has a high importance rating of %d/10, contributing %.1f/100 to the priority score.",
			task.Importance, scores.Importance))
	}

	if strategy == domain.StrategyFastestWins && top == domain.ComponentEffort {
		sentences = append(sentences, fmt.Sprintf(
			"With an estimated %.1f hours, it's a quick win that can be completed efficiently, contributing %.1f/100 to the score.",
			task.EstimatedHours, scores.Effort))
	}

	if roleTuned {
		switch {
		case role == domain.RoleProgramManager:
			if top == domain.ComponentUrgency || top == domain.ComponentImportance {
				sentences = append(sentences,
					"For Program Managers, urgent and high-importance tasks are weighted more heavily to ensure stakeholder needs and deadlines are met.")
			}
		case top == domain.ComponentDependency || top == domain.ComponentEffort:
			sentences = append(sentences,
				"For Developers, tasks that block other work or can be completed quickly are prioritized to maintain development momentum.")
		}
	}

	return strings.Join(sentences, " ")
}
