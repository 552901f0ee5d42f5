package ledger

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestToggleService_PointsConservation property-tests that after any toggle
// sequence UsedPlanPoints equals the point cost of the checked set and never
// exceeds the budget.
func TestToggleService_PointsConservation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	services := planServices()
	costByID := make(map[string]int, len(services))
	for _, s := range services {
		costByID[s.ID] = s.PointCost
	}

	properties.Property("used points equal the sum of checked costs", prop.ForAll(
		func(ops []int, extra int) bool {
			l := New(2)
			l.SelectPlan(testPlan(), services, nil)
			if extra > 0 {
				if err := l.PurchaseExtraPoints(extra); err != nil {
					return false
				}
			}

			for _, op := range ops {
				id := services[op/2].ID
				_ = l.ToggleService(id, op%2 == 0)

				sum := 0
				for _, checked := range l.CheckedIDs() {
					sum += costByID[checked]
				}
				s := l.State()
				if s.UsedPlanPoints != sum {
					return false
				}
				if s.UsedPlanPoints > s.Budget() {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 2*len(services)-1)),
		gen.IntRange(0, 8),
	))

	properties.TestingRun(t)
}
