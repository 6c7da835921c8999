// Package service contains the business logic for the cart service.
package service

import (
	"time"

	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/guttosm/cart-service/internal/metrics"
	"github.com/shopspring/decimal"
)

// PricingEngine prices a list of line items.
type PricingEngine interface {
	// Price recomputes every line discount and the cart total. It never fails.
	Price(items []model.LineItem) model.PricingResult
}

// PricingOption configures a PricingEngineService.
type PricingOption func(*PricingEngineService)

// PricingEngineService layers static prices, the quantity tier and grouped
// promotions additively over a cart.
type PricingEngineService struct {
	clock func() time.Time
}

// NewPricingEngine creates a pricing engine with the given options.
func NewPricingEngine(opts ...PricingOption) *PricingEngineService {
	s := &PricingEngineService{clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithPricingClock sets the clock used to evaluate promotion windows.
func WithPricingClock(clock func() time.Time) PricingOption {
	return func(s *PricingEngineService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

type promotionGroup struct {
	rule    model.PromotionRule
	indexes []int
}

// Price runs one pricing pass. The input slice is not modified.
func (s *PricingEngineService) Price(items []model.LineItem) model.PricingResult {
	start := time.Now()

	lines := make([]model.LineItem, len(items))
	copy(lines, items)
	for i := range lines {
		lines[i].Discount = decimal.Zero
	}

	totalQuantity := 0
	for _, line := range lines {
		totalQuantity += line.Quantity
	}
	tier := QuantityTier(totalQuantity)

	var plain []int
	groups := make(map[string]*promotionGroup)
	var order []string

	now := s.clock()
	for i, line := range lines {
		promo, rule, ok := line.Product.ActivePromotion(now)
		if !ok {
			plain = append(plain, i)
			continue
		}
		key := promo.GroupKey()
		g, exists := groups[key]
		if !exists {
			g = &promotionGroup{rule: rule}
			groups[key] = g
			order = append(order, key)
		}
		g.indexes = append(g.indexes, i)
	}

	total := s.apply(lines, plain, func(group []model.LineItem) groupOutcome {
		return priceStatic(group, tier)
	})

	for _, key := range order {
		g := groups[key]
		rule := g.rule
		var price func([]model.LineItem) groupOutcome

		switch rule.Kind {
		case model.PromotionPercentage, model.PromotionFixed:
			price = func(group []model.LineItem) groupOutcome { return priceMarkdown(group, rule, tier) }
		case model.PromotionTwoForOne, model.PromotionThreeForTwo, model.PromotionTakeXPayY:
			price = func(group []model.LineItem) groupOutcome { return priceBundle(group, rule.Take, rule.Pay, tier) }
		default:
			price = func(group []model.LineItem) groupOutcome { return priceStatic(group, tier) }
		}
		total = total.Add(s.apply(lines, g.indexes, price))
	}

	for i := range lines {
		lines[i].Discount = clampDiscount(lines[i].Discount, lines[i].Gross())
	}

	if total.IsNegative() {
		total = decimal.Zero
	}

	metrics.RecordPricing(time.Since(start), len(order))

	return model.PricingResult{
		Items:         lines,
		TotalQuantity: totalQuantity,
		TierPercent:   tier.Mul(percentBase),
		Total:         total,
	}
}

// apply prices the lines at indexes as one group and writes the discounts back.
func (s *PricingEngineService) apply(lines []model.LineItem, indexes []int, price func([]model.LineItem) groupOutcome) decimal.Decimal {
	if len(indexes) == 0 {
		return decimal.Zero
	}
	group := make([]model.LineItem, len(indexes))
	for i, idx := range indexes {
		group[i] = lines[idx]
	}
	outcome := price(group)
	for i, idx := range indexes {
		lines[idx].Discount = lines[idx].Discount.Add(outcome.Discounts[i])
	}
	return outcome.Contribution
}

// clampDiscount keeps a line discount within [0, gross].
func clampDiscount(discount, gross decimal.Decimal) decimal.Decimal {
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(gross) {
		return gross
	}
	return discount
}
