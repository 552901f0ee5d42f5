package selection

import (
	"testing"

	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/ledger"
	"github.com/alexanderramin/cotizador/internal/testutil"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var propertyEvents = []Event{
	SwitchMode{Mode: domain.ModePuntual},
	SwitchMode{Mode: domain.ModeMensual},
	SelectPackage{ID: "pkg-basic"},
	SelectPackage{ID: "pkg-pro"},
	ClearPackage{},
	SelectPlan{ID: "plan-s"},
	SelectPlan{ID: "plan-m"},
	ClearPlan{},
	ToggleStandard{ID: "landing", Checked: true},
	ToggleStandard{ID: "seo", Checked: true},
	ToggleStandard{ID: "landing", Checked: false},
	TogglePlanService{ID: "shop", Checked: true},
	TogglePlanService{ID: "ads", Checked: true},
	TogglePlanService{ID: "shop", Checked: false},
	PurchaseExtraPoints{Amount: 3},
	AddCustom{Name: "Extra", Price: 25},
}

// TestReconcile_ExclusivityHolds property-tests that any event sequence
// yields a selection with at most one exclusive item, and that an exclusive
// item excludes every standard item.
func TestReconcile_ExclusivityHolds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("at most one exclusive item and no standard beside it", prop.ForAll(
		func(ops []int) bool {
			d := NewDraft(testutil.NewTestStore(t), ledger.New(5), domain.ModePuntual)
			for _, op := range ops {
				_ = d.Apply(propertyEvents[op])

				exclusive, standard, planServices := 0, 0, 0
				for _, it := range Reconcile(d) {
					switch it.Type {
					case domain.ItemPackage, domain.ItemPlan:
						exclusive++
					case domain.ItemStandard:
						standard++
					case domain.ItemPlanService:
						planServices++
					}
				}
				if exclusive > 1 {
					return false
				}
				if exclusive == 1 && standard > 0 {
					return false
				}
				if planServices > 0 && d.Plan() == nil {
					return false
				}
				s := d.Ledger().State()
				if s.UsedPlanPoints > s.Budget() {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, len(propertyEvents)-1)),
	))

	properties.TestingRun(t)
}
