package forecast

import (
	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/isoweek"
)

const (
	// NoDepletion is reported when inventory survives the full projection
	// horizon.
	NoDepletion = -1

	// reorderHorizonWeeks sizes the replenishment window after depletion.
	reorderHorizonWeeks = 26

	// maxWalkSteps bounds the greedy walk so a pathological series can never
	// loop forever.
	maxWalkSteps = 500
)

// Project walks inventory forward week by week from the current ISO week and
// produces the depletion point plus a 26-week reorder plan.
//
// Demand is blended: near-future weeks consume the prior year's same-week
// demand first, because the current year has no realized sales there yet;
// once the prior-year cycle (weeks up to 53) is exhausted the walk continues
// on current-year actuals from week 1. This order is deliberate and must not
// be re-blended. Negative stored demand never replenishes inventory.
func Project(curYear, curWeek, onHand int, prior, current *Series) domain.ReorderPlan {
	if onHand <= 0 {
		year, week := isoweek.Normalize(curYear, curWeek)
		plan := domain.ReorderPlan{
			WeeksUntilDepletion: 0,
			DepletionISOYear:    year,
			DepletionISOWeek:    week,
		}
		extendReorderPlan(&plan, curYear, curWeek, 0, prior, current)
		return plan
	}

	// Both series together cover roughly one year of projected demand.
	horizon := isoweek.WeeksPerYear + 1 + isoweek.WeeksPerYear - curWeek

	inventory := onHand
	for step := 1; step <= horizon && step <= maxWalkSteps; step++ {
		inventory -= blendedDemand(curWeek, step, prior, current)
		if inventory <= 0 {
			year, week := isoweek.Normalize(curYear, curWeek+step)
			plan := domain.ReorderPlan{
				WeeksUntilDepletion: step,
				DepletionISOYear:    year,
				DepletionISOWeek:    week,
			}
			extendReorderPlan(&plan, curYear, curWeek, step, prior, current)
			return plan
		}
	}

	return domain.ReorderPlan{
		WeeksUntilDepletion:    NoDepletion,
		PostReorderNoDepletion: true,
	}
}

// blendedDemand resolves the projected demand of walk step n: prior-year
// weeks first (current week + n up to week 53 of that cycle), then
// current-year actuals from week 1 upward. Demand is floored at 0.
func blendedDemand(curWeek, step int, prior, current *Series) int {
	week := curWeek + step
	var demand int
	if week <= isoweek.WeeksPerYear+1 {
		demand = prior.WeekTotal(week)
	} else {
		demand = current.WeekTotal(week - isoweek.WeeksPerYear - 1)
	}
	if demand < 0 {
		return 0
	}
	return demand
}

// extendReorderPlan sums the 26 weeks of blended demand following the
// depletion step into the reorder quantity, then walks those same weeks a
// second time assuming the quantity lands at the depletion week, yielding the
// post-reorder depletion point.
func extendReorderPlan(plan *domain.ReorderPlan, curYear, curWeek, depletionStep int, prior, current *Series) {
	reorderQty := 0
	for step := depletionStep + 1; step <= depletionStep+reorderHorizonWeeks && step <= maxWalkSteps; step++ {
		reorderQty += blendedDemand(curWeek, step, prior, current)
	}
	plan.ReorderQuantity = reorderQty

	inventory := reorderQty
	for step := depletionStep + 1; step <= depletionStep+reorderHorizonWeeks && step <= maxWalkSteps; step++ {
		inventory -= blendedDemand(curWeek, step, prior, current)
		if inventory <= 0 {
			year, week := isoweek.Normalize(curYear, curWeek+step)
			plan.PostReorderISOYear = year
			plan.PostReorderISOWeek = week
			return
		}
	}
	plan.PostReorderNoDepletion = true
}
