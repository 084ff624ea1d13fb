package businessflow

import (
	"testing"

	"github.com/amirphl/Izanagi/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func screenWith(name string, price float64, traffic int) *models.Screen {
	return &models.Screen{
		ID:           uuid.New(),
		Name:         name,
		PricePerTime: price,
		Traffic:      traffic,
	}
}

func TestSelectOptimalScreens(t *testing.T) {
	t.Run("PrefersHigherTrafficPerPrice", func(t *testing.T) {
		candidates := []*models.Screen{
			screenWith("low-density", 100, 500),   // 5 per unit
			screenWith("high-density", 100, 2000), // 20 per unit
			screenWith("mid-density", 100, 1000),  // 10 per unit
		}

		result := SelectOptimalScreens(candidates, 200)

		require.Len(t, result.Screens, 2)
		assert.Equal(t, "high-density", result.Screens[0].Name)
		assert.Equal(t, "mid-density", result.Screens[1].Name)
		assert.Equal(t, float64(200), result.TotalCost)
		assert.Equal(t, 3000, result.TotalTraffic)
		assert.Equal(t, float64(0), result.RemainingBudget)
	})

	t.Run("NeverExceedsBudget", func(t *testing.T) {
		candidates := []*models.Screen{
			screenWith("a", 70, 700),
			screenWith("b", 50, 450),
			screenWith("c", 90, 720),
		}

		result := SelectOptimalScreens(candidates, 150)

		assert.LessOrEqual(t, result.TotalCost, float64(150))
		assert.Equal(t, result.RemainingBudget, 150-result.TotalCost)
	})

	t.Run("SkippedScreenFreesBudgetForLaterOnes", func(t *testing.T) {
		candidates := []*models.Screen{
			screenWith("expensive", 500, 10000), // best density but over budget
			screenWith("affordable", 100, 1000),
		}

		result := SelectOptimalScreens(candidates, 200)

		require.Len(t, result.Screens, 1)
		assert.Equal(t, "affordable", result.Screens[0].Name)
		assert.Equal(t, float64(100), result.RemainingBudget)
	})

	t.Run("EqualDensityKeepsInputOrder", func(t *testing.T) {
		first := screenWith("first", 100, 1000)
		second := screenWith("second", 100, 1000)
		candidates := []*models.Screen{first, second}

		// Budget fits only one of the two equal-density screens.
		result := SelectOptimalScreens(candidates, 150)

		require.Len(t, result.Screens, 1)
		assert.Equal(t, "first", result.Screens[0].Name)
	})

	t.Run("EqualDensityDifferentScale", func(t *testing.T) {
		// 300/30 and 100/10 have the same density; cross multiplication
		// must treat them as a tie rather than letting rounding decide.
		first := screenWith("first", 30, 300)
		second := screenWith("second", 10, 100)
		candidates := []*models.Screen{first, second}

		result := SelectOptimalScreens(candidates, 40)

		require.Len(t, result.Screens, 2)
		assert.Equal(t, "first", result.Screens[0].Name)
		assert.Equal(t, "second", result.Screens[1].Name)
	})

	t.Run("TiedDensitiesBothFitBudget", func(t *testing.T) {
		candidates := []*models.Screen{
			screenWith("a", 100, 1000),  // density 10
			screenWith("b", 50, 500),    // density 10
			screenWith("c", 1000, 2000), // density 2
		}

		result := SelectOptimalScreens(candidates, 150)

		require.Len(t, result.Screens, 2)
		assert.Equal(t, "a", result.Screens[0].Name)
		assert.Equal(t, "b", result.Screens[1].Name)
		assert.Equal(t, float64(150), result.TotalCost)
	})

	t.Run("Deterministic", func(t *testing.T) {
		candidates := []*models.Screen{
			screenWith("a", 30, 300),
			screenWith("b", 20, 300),
			screenWith("c", 50, 500),
			screenWith("d", 10, 100),
		}

		baseline := SelectOptimalScreens(candidates, 75)
		for i := 0; i < 10; i++ {
			result := SelectOptimalScreens(candidates, 75)
			require.Len(t, result.Screens, len(baseline.Screens))
			for j := range result.Screens {
				assert.Equal(t, baseline.Screens[j].ID, result.Screens[j].ID)
			}
		}
	})

	t.Run("ZeroBudgetSelectsNothing", func(t *testing.T) {
		candidates := []*models.Screen{screenWith("a", 10, 100)}

		result := SelectOptimalScreens(candidates, 0)

		assert.Empty(t, result.Screens)
		assert.Equal(t, float64(0), result.TotalCost)
		assert.Equal(t, float64(0), result.RemainingBudget)
	})

	t.Run("NegativeBudgetSelectsNothing", func(t *testing.T) {
		result := SelectOptimalScreens([]*models.Screen{screenWith("a", 10, 100)}, -5)

		assert.Empty(t, result.Screens)
		assert.Equal(t, float64(0), result.RemainingBudget)
	})

	t.Run("ExcludesNonPositivePrices", func(t *testing.T) {
		candidates := []*models.Screen{
			screenWith("free", 0, 9999),
			screenWith("negative", -10, 9999),
			screenWith("priced", 50, 100),
		}

		result := SelectOptimalScreens(candidates, 100)

		require.Len(t, result.Screens, 1)
		assert.Equal(t, "priced", result.Screens[0].Name)
	})

	t.Run("EmptyCandidates", func(t *testing.T) {
		result := SelectOptimalScreens(nil, 100)

		assert.Empty(t, result.Screens)
		assert.Equal(t, float64(100), result.RemainingBudget)
	})
}
