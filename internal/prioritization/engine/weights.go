package engine

import "github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"

var (
	smartBalanceDeveloper      = domain.FractionWeights{Urgency: 0.30, Importance: 0.30, Effort: 0.20, Dependency: 0.20}
	smartBalanceProgramManager = domain.FractionWeights{Urgency: 0.40, Importance: 0.35, Effort: 0.10, Dependency: 0.15}
	fastestWins                = domain.FractionWeights{Urgency: 0.15, Importance: 0.15, Effort: 0.60, Dependency: 0.10}
	highImpact                 = domain.FractionWeights{Urgency: 0.10, Importance: 0.70, Effort: 0.10, Dependency: 0.10}
	deadlineDriven             = domain.FractionWeights{Urgency: 0.70, Importance: 0.15, Effort: 0.05, Dependency: 0.10}
)

// ResolveWeights returns the weight vector for a strategy. Custom weights
// replace the preset only under smart_balance and must sum to 1. Unknown
// strategies resolve to the smart_balance developer preset.
func ResolveWeights(strategy domain.Strategy, role domain.Role, custom *domain.FractionWeights) (domain.FractionWeights, error) {
	switch domain.ParseStrategy(string(strategy)) {
	case domain.StrategySmartBalance:
		if custom != nil {
			if err := custom.Validate(); err != nil {
				return domain.FractionWeights{}, err
			}
			return *custom, nil
		}
		if role == domain.RoleProgramManager {
			return smartBalanceProgramManager, nil
		}
		return smartBalanceDeveloper, nil
	case domain.StrategyFastestWins:
		return fastestWins, nil
	case domain.StrategyHighImpact:
		return highImpact, nil
	case domain.StrategyDeadlineDriven:
		return deadlineDriven, nil
	default:
		return smartBalanceDeveloper, nil
	}
}
