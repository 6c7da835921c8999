package model

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PromotionKind is the pricing category of a promotion.
type PromotionKind int

const (
	// PromotionUnknown is a category the engine does not recognize; it prices like no promotion.
	PromotionUnknown PromotionKind = iota
	// PromotionPercentage takes a percentage off the base price.
	PromotionPercentage
	// PromotionFixed takes a fixed amount off the base price.
	PromotionFixed
	// PromotionTwoForOne makes every second unit free.
	PromotionTwoForOne
	// PromotionThreeForTwo makes every third unit free.
	PromotionThreeForTwo
	// PromotionTakeXPayY makes X-Y units free out of every X.
	PromotionTakeXPayY
)

// String returns the canonical category name.
func (k PromotionKind) String() string {
	switch k {
	case PromotionPercentage:
		return "descuento_porcentaje"
	case PromotionFixed:
		return "descuento_fijo"
	case PromotionTwoForOne:
		return "2x1"
	case PromotionThreeForTwo:
		return "3x2"
	case PromotionTakeXPayY:
		return "llevas_x_paga_y"
	default:
		return "unknown"
	}
}

// IsBundle reports whether the kind frees whole units instead of marking prices down.
func (k PromotionKind) IsBundle() bool {
	return k == PromotionTwoForOne || k == PromotionThreeForTwo || k == PromotionTakeXPayY
}

var takePayPattern = regexp.MustCompile(`llevas_(\d+)_paga_(\d+)`)

// ParsePromotionKind maps a catalog category name to a kind.
// For "llevas_X_paga_Y" names it also returns X and Y.
func ParsePromotionKind(name string) (kind PromotionKind, take, pay int) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.Contains(n, "2x1"):
		return PromotionTwoForOne, 2, 1
	case strings.Contains(n, "3x2"):
		return PromotionThreeForTwo, 3, 2
	case strings.Contains(n, "porcentaje"), strings.Contains(n, "percent"):
		return PromotionPercentage, 0, 0
	case strings.Contains(n, "fijo"), strings.Contains(n, "fixed"):
		return PromotionFixed, 0, 0
	}
	if m := takePayPattern.FindStringSubmatch(n); m != nil {
		x, errX := strconv.Atoi(m[1])
		y, errY := strconv.Atoi(m[2])
		if errX == nil && errY == nil {
			return PromotionTakeXPayY, x, y
		}
	}
	return PromotionUnknown, 0, 0
}

// Promotion is a time-bounded discount rule attached to a product.
//
// @Description Promotion attached to a product
type Promotion struct {
	ID       int64           `json:"id,omitempty" example:"7"`
	Kind     string          `json:"kind" example:"descuento_porcentaje"`
	Value    decimal.Decimal `json:"value" swaggertype:"string" example:"20"`
	Active   bool            `json:"active" example:"true"`
	StartsAt *time.Time      `json:"starts_at,omitempty"`
	EndsAt   *time.Time      `json:"ends_at,omitempty"`
} // @name Promotion

// PromotionRule is the validated, typed form of a promotion.
type PromotionRule struct {
	Kind  PromotionKind
	Value decimal.Decimal
	Take  int
	Pay   int
}

// GroupKey identifies the promotion group an item belongs to.
func (p Promotion) GroupKey() string {
	if p.ID != 0 {
		return "promo_" + strconv.FormatInt(p.ID, 10)
	}
	return "type_" + p.Kind
}

// IsActiveAt reports whether the promotion is enabled and inside its window.
func (p Promotion) IsActiveAt(at time.Time) bool {
	if !p.Active {
		return false
	}
	if p.StartsAt != nil && at.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && at.After(*p.EndsAt) {
		return false
	}
	return true
}

var hundred = decimal.NewFromInt(100)

// Rule validates the promotion and returns its typed form.
// Malformed promotions return false and must be priced as no promotion.
func (p Promotion) Rule() (PromotionRule, bool) {
	kind, take, pay := ParsePromotionKind(p.Kind)
	rule := PromotionRule{Kind: kind, Value: p.Value, Take: take, Pay: pay}

	switch kind {
	case PromotionPercentage:
		if !p.Value.IsPositive() {
			return PromotionRule{}, false
		}
		if p.Value.GreaterThan(hundred) {
			rule.Value = hundred
		}
	case PromotionFixed:
		if !p.Value.IsPositive() {
			return PromotionRule{}, false
		}
	case PromotionTakeXPayY:
		if take <= 0 || pay < 0 || pay >= take {
			return PromotionRule{}, false
		}
	}
	return rule, true
}
