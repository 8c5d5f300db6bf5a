package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

func pick(side models.Side) *models.Prediction {
	return &models.Prediction{Recommended: side}
}

func TestValidateTwoOfThree(t *testing.T) {
	v := Validate(pick(models.SideHome), []*models.Prediction{
		pick(models.SideHome), pick(models.SideHome), pick(models.SideAway),
	})

	require.NotNil(t, v)
	assert.Equal(t, 3, v.AlgorithmsCompared)
	assert.Equal(t, 2, v.AlgorithmsAgreeing)
	assert.InDelta(t, 2.0/3.0, v.AgreementRate, 1e-9)
	assert.Equal(t, LevelMedium, v.AgreementLevel)
	assert.Equal(t, 67, v.ConsensusScore)
}

func TestValidateLevels(t *testing.T) {
	tests := []struct {
		name  string
		sides []models.Side
		level string
	}{
		{"unanimous", []models.Side{models.SideHome, models.SideHome, models.SideHome}, LevelHigh},
		{"one of three", []models.Side{models.SideHome, models.SideAway, models.SideAway}, LevelLow},
		{"none", []models.Side{models.SideAway, models.SideAway, models.SideAway}, LevelConflicted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variants := make([]*models.Prediction, 0, len(tt.sides))
			for _, s := range tt.sides {
				variants = append(variants, pick(s))
			}
			v := Validate(pick(models.SideHome), variants)
			assert.Equal(t, tt.level, v.AgreementLevel)
		})
	}
}

func TestValidateDegenerateInputs(t *testing.T) {
	v := Validate(nil, nil)
	require.NotNil(t, v)
	assert.Equal(t, LevelConflicted, v.AgreementLevel)
	assert.Zero(t, v.AlgorithmsCompared)

	v = Validate(pick(models.SideHome), nil)
	assert.Equal(t, LevelConflicted, v.AgreementLevel)

	// Nil variants in the slice count as disagreement, not a crash.
	v = Validate(pick(models.SideHome), []*models.Prediction{nil, pick(models.SideHome)})
	assert.Equal(t, 1, v.AlgorithmsAgreeing)
}
