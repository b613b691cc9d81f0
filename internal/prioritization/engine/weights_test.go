package engine

import (
	"testing"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWeights_Presets(t *testing.T) {
	tests := []struct {
		strategy domain.Strategy
		role     domain.Role
		want     domain.FractionWeights
	}{
		{domain.StrategySmartBalance, domain.RoleDeveloper, domain.FractionWeights{Urgency: 0.30, Importance: 0.30, Effort: 0.20, Dependency: 0.20}},
		{domain.StrategySmartBalance, "", domain.FractionWeights{Urgency: 0.30, Importance: 0.30, Effort: 0.20, Dependency: 0.20}},
		{domain.StrategySmartBalance, domain.RoleProgramManager, domain.FractionWeights{Urgency: 0.40, Importance: 0.35, Effort: 0.10, Dependency: 0.15}},
		{domain.StrategyFastestWins, domain.RoleProgramManager, domain.FractionWeights{Urgency: 0.15, Importance: 0.15, Effort: 0.60, Dependency: 0.10}},
		{domain.StrategyHighImpact, domain.RoleDeveloper, domain.FractionWeights{Urgency: 0.10, Importance: 0.70, Effort: 0.10, Dependency: 0.10}},
		{domain.StrategyDeadlineDriven, "", domain.FractionWeights{Urgency: 0.70, Importance: 0.15, Effort: 0.05, Dependency: 0.10}},
		{"Deadline_Driven", "", domain.FractionWeights{Urgency: 0.70, Importance: 0.15, Effort: 0.05, Dependency: 0.10}},
		{"unknown", domain.RoleProgramManager, domain.FractionWeights{Urgency: 0.30, Importance: 0.30, Effort: 0.20, Dependency: 0.20}},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy)+"/"+string(tt.role), func(t *testing.T) {
			got, err := ResolveWeights(tt.strategy, tt.role, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.InDelta(t, 1.0, got.Sum(), 1e-9)
		})
	}
}

func TestResolveWeights_PresetShape(t *testing.T) {
	resolve := func(s domain.Strategy, r domain.Role) domain.FractionWeights {
		w, err := ResolveWeights(s, r, nil)
		require.NoError(t, err)
		return w
	}

	assert.Greater(t, resolve(domain.StrategyFastestWins, "").Effort, 0.5)
	assert.Greater(t, resolve(domain.StrategyHighImpact, "").Importance, 0.5)
	assert.Greater(t, resolve(domain.StrategyDeadlineDriven, "").Urgency, 0.5)

	pm := resolve(domain.StrategySmartBalance, domain.RoleProgramManager)
	dev := resolve(domain.StrategySmartBalance, domain.RoleDeveloper)
	assert.Greater(t, pm.Urgency, dev.Urgency)
	assert.Less(t, pm.Effort, dev.Effort)
}

func TestResolveWeights_Custom(t *testing.T) {
	custom := domain.FractionWeights{Urgency: 0.25, Importance: 0.25, Effort: 0.25, Dependency: 0.25}

	t.Run("honored under smart_balance", func(t *testing.T) {
		got, err := ResolveWeights(domain.StrategySmartBalance, domain.RoleProgramManager, &custom)
		require.NoError(t, err)
		assert.Equal(t, custom, got)
	})

	t.Run("ignored under other strategies", func(t *testing.T) {
		got, err := ResolveWeights(domain.StrategyHighImpact, "", &custom)
		require.NoError(t, err)
		assert.Equal(t, 0.70, got.Importance)
	})

	t.Run("rejects vectors that do not sum to one", func(t *testing.T) {
		bad := domain.FractionWeights{Urgency: 0.5, Importance: 0.5, Effort: 0.5, Dependency: 0}
		_, err := ResolveWeights(domain.StrategySmartBalance, "", &bad)
		require.ErrorIs(t, err, domain.ErrInvalidWeights)
		assert.Equal(t, "Custom weights must sum to 1.0. Current sum: 1.5000", err.Error())
	})
}
