package domain

import "strings"

// Strategy names a weight preset.
type Strategy string

const (
	StrategySmartBalance   Strategy = "smart_balance"
	StrategyFastestWins    Strategy = "fastest_wins"
	StrategyHighImpact     Strategy = "high_impact"
	StrategyDeadlineDriven Strategy = "deadline_driven"
)

// Strategies lists the known presets in display order.
var Strategies = []Strategy{
	StrategySmartBalance,
	StrategyFastestWins,
	StrategyHighImpact,
	StrategyDeadlineDriven,
}

var strategyDisplayNames = map[Strategy]string{
	StrategySmartBalance:   "Smart Balance",
	StrategyFastestWins:    "Fastest Wins",
	StrategyHighImpact:     "High Impact",
	StrategyDeadlineDriven: "Deadline Driven",
}

// ParseStrategy normalizes a strategy name. Unknown names are kept as given
// so they can be reported; weight resolution treats them as smart_balance.
func ParseStrategy(name string) Strategy {
	return Strategy(strings.ToLower(strings.TrimSpace(name)))
}

// IsKnown reports whether s is one of the presets.
func (s Strategy) IsKnown() bool {
	_, ok := strategyDisplayNames[s]
	return ok
}

// DisplayName returns the human name, or the raw value for unknown strategies.
func (s Strategy) DisplayName() string {
	if name, ok := strategyDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

func (s Strategy) String() string { return string(s) }

// Role is the kind of person the smart_balance preset is tuned for.
type Role string

const (
	RoleDeveloper      Role = "developer"
	RoleProgramManager Role = "program_manager"
)

// Roles lists the known roles.
var Roles = []Role{RoleDeveloper, RoleProgramManager}

// IsKnown reports whether r is a known role.
func (r Role) IsKnown() bool {
	return r == RoleDeveloper || r == RoleProgramManager
}

// DisplayName returns "Program Manager" or "Developer".
func (r Role) DisplayName() string {
	if r == RoleProgramManager {
		return "Program Manager"
	}
	return "Developer"
}

func (r Role) String() string { return string(r) }
