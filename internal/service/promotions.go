package service

import (
	"sort"

	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// groupOutcome is the priced result of one promotion group. Discounts is
// parallel to the group's items.
type groupOutcome struct {
	Discounts    []decimal.Decimal
	Contribution decimal.Decimal
}

var (
	tierTwoItems   = decimal.RequireFromString("0.10")
	tierThreeItems = decimal.RequireFromString("0.15")
	percentBase    = decimal.NewFromInt(100)
)

// QuantityTier returns the cart-wide discount rate for a total unit count:
// 0 for one unit, 0.10 for exactly two, 0.15 for three or more.
func QuantityTier(totalQuantity int) decimal.Decimal {
	switch {
	case totalQuantity >= 3:
		return tierThreeItems
	case totalQuantity == 2:
		return tierTwoItems
	default:
		return decimal.Zero
	}
}

func unitCount(item model.LineItem) int64 {
	if item.Quantity < 0 {
		return 0
	}
	return int64(item.Quantity)
}

func qty(item model.LineItem) decimal.Decimal {
	return decimal.NewFromInt(int64(item.Quantity))
}

// priceStatic prices items that have no usable promotion. The tier applies
// to the effective (static) price.
func priceStatic(items []model.LineItem, tier decimal.Decimal) groupOutcome {
	out := groupOutcome{Discounts: make([]decimal.Decimal, len(items)), Contribution: decimal.Zero}
	for i, item := range items {
		base := item.Product.BasePrice
		effective := item.Product.StaticPrice()
		q := qty(item)

		lineValue := effective.Mul(q)
		tierAmount := lineValue.Mul(tier)

		out.Discounts[i] = base.Sub(effective).Mul(q).Add(tierAmount)
		out.Contribution = out.Contribution.Add(lineValue.Sub(tierAmount))
	}
	return out
}

// dynamicPrice applies a percentage or fixed markdown to the base price.
func dynamicPrice(base decimal.Decimal, rule model.PromotionRule) decimal.Decimal {
	switch rule.Kind {
	case model.PromotionPercentage:
		return base.Mul(decimal.NewFromInt(1).Sub(rule.Value.Div(percentBase)))
	case model.PromotionFixed:
		return decimal.Max(decimal.Zero, base.Sub(rule.Value))
	default:
		return base
	}
}

// priceMarkdown prices a percentage-off or fixed-off group. Each item takes
// the lower of its static and promotional price; the tier is computed on the
// static price.
func priceMarkdown(items []model.LineItem, rule model.PromotionRule, tier decimal.Decimal) groupOutcome {
	out := groupOutcome{Discounts: make([]decimal.Decimal, len(items)), Contribution: decimal.Zero}
	for i, item := range items {
		base := item.Product.BasePrice
		static := item.Product.StaticPrice()
		effective := decimal.Min(static, dynamicPrice(base, rule))
		q := qty(item)

		tierAmount := static.Mul(q).Mul(tier)

		out.Discounts[i] = base.Sub(effective).Mul(q).Add(tierAmount)
		out.Contribution = out.Contribution.Add(effective.Mul(q).Sub(tierAmount))
	}
	return out
}

// priceBundle prices a take-X-pay-Y group. Units are ranked by static price
// descending (ties keep line order) and, inside each full chunk of take
// ranks, the ranks past pay are free. Each line holds a contiguous run of
// ranks, so free units are counted per run without expanding quantities.
//
// A line's discount carries its tier amount plus its free units. When that
// exceeds the line's gross, Price clamps the line discount but the group
// contribution keeps the full tier, so per-line (gross - discount) may sum
// above the total.
func priceBundle(items []model.LineItem, take, pay int, tier decimal.Decimal) groupOutcome {
	out := groupOutcome{Discounts: make([]decimal.Decimal, len(items)), Contribution: decimal.Zero}

	order := make([]int, len(items))
	var units int64
	for i, item := range items {
		order[i] = i
		units += unitCount(item)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return items[order[a]].Product.StaticPrice().GreaterThan(items[order[b]].Product.StaticPrice())
	})

	chunk := int64(take)
	fullRanks := units / chunk * chunk
	freeBefore := func(rank int64) int64 {
		if rank > fullRanks {
			rank = fullRanks
		}
		free := rank / chunk * (chunk - int64(pay))
		if rem := rank%chunk - int64(pay); rem > 0 {
			free += rem
		}
		return free
	}

	gross := decimal.Zero
	tierTotal := decimal.Zero
	var rank int64
	for _, i := range order {
		item := items[i]
		static := item.Product.StaticPrice()
		q := unitCount(item)
		lineValue := static.Mul(decimal.NewFromInt(q))
		tierAmount := lineValue.Mul(tier)
		tierTotal = tierTotal.Add(tierAmount)

		free := freeBefore(rank+q) - freeBefore(rank)
		rank += q
		freeValue := static.Mul(decimal.NewFromInt(free))

		out.Discounts[i] = item.Product.BasePrice.Sub(static).Mul(decimal.NewFromInt(q)).Add(tierAmount).Add(freeValue)
		gross = gross.Add(lineValue.Sub(freeValue))
	}

	out.Contribution = gross.Sub(tierTotal)
	return out
}
