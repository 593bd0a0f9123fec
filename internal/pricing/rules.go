package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/customer"
	"github.com/noah-isme/toko-checkout/internal/money"
)

// Discount codes in application order.
const (
	DiscountBuyThreePayTwo = "L3P2"
	DiscountVIP            = "VIP5"
	DiscountEtic10         = "ETIC10"
	DiscountFreeShipping   = "FRETEGRATIS"
	DiscountThreshold      = "FIXO30"
)

var (
	// DefaultShipping is charged unless a free shipping coupon zeroes it.
	DefaultShipping = decimal.RequireFromString("20.00")
	// ThresholdAmount is the running total that unlocks the fixed discount.
	ThresholdAmount = decimal.RequireFromString("500.00")
	// ThresholdDiscount is the fixed amount taken off at the threshold.
	ThresholdDiscount = decimal.RequireFromString("30.00")

	vipRate    = decimal.RequireFromString("0.05")
	etic10Rate = decimal.RequireFromString("0.10")
)

// State is threaded through the discount rules. Discounted holds the sum of
// every discount granted so far at full precision.
type State struct {
	Customer   customer.Classification
	Coupon     Coupon
	Units      []UnitRecord
	Subtotal   decimal.Decimal
	Discounted decimal.Decimal
	Shipping   decimal.Decimal
}

// Running is the subtotal minus the discounts granted so far.
func (s State) Running() decimal.Decimal {
	return s.Subtotal.Sub(s.Discounted)
}

// Rule inspects the state and optionally grants one discount. A rule may
// change non-discount fields such as Shipping; the amount it grants is
// accumulated by the caller.
type Rule func(State) (State, *DiscountLine)

// pipeline is the fixed rule order. Later rules see the running total left
// by earlier ones.
var pipeline = []Rule{
	BuyThreePayTwo,
	VIPDiscount,
	CouponDiscount,
	ThresholdRule,
}

// BuyThreePayTwo gives away the cheapest apparel unit of every three.
func BuyThreePayTwo(s State) (State, *DiscountLine) {
	apparel := make([]UnitRecord, 0, len(s.Units))
	for _, u := range s.Units {
		if u.Category == catalog.CategoryApparel {
			apparel = append(apparel, u)
		}
	}
	free := len(apparel) / 3
	if free == 0 {
		return s, nil
	}
	sort.SliceStable(apparel, func(i, j int) bool {
		return apparel[i].UnitPrice.LessThan(apparel[j].UnitPrice)
	})
	amount := decimal.Zero
	for _, u := range apparel[:free] {
		amount = amount.Add(u.UnitPrice)
	}
	return s, &DiscountLine{Code: DiscountBuyThreePayTwo, Description: "Buy 3 pay 2 on apparel", Amount: amount}
}

// VIPDiscount takes 5% off the running total for VIP customers unless the
// coupon opts them out.
func VIPDiscount(s State) (State, *DiscountLine) {
	if s.Customer != customer.VIP || s.Coupon.SuppressesVIP() {
		return s, nil
	}
	return s, &DiscountLine{Code: DiscountVIP, Description: "VIP customer 5% off", Amount: s.Running().Mul(vipRate)}
}

// CouponDiscount applies the coupon effect. SEM-VIP has no line of its own.
func CouponDiscount(s State) (State, *DiscountLine) {
	switch s.Coupon.Kind {
	case CouponEtic10:
		return s, &DiscountLine{Code: DiscountEtic10, Description: "Coupon ETIC10 10% off", Amount: s.Running().Mul(etic10Rate)}
	case CouponFreeShipping:
		s.Shipping = decimal.Zero
		return s, &DiscountLine{Code: DiscountFreeShipping, Description: "Free shipping", Amount: decimal.Zero}
	default:
		return s, nil
	}
}

// ThresholdRule takes a fixed 30.00 off once the running total reaches 500.00.
func ThresholdRule(s State) (State, *DiscountLine) {
	if s.Running().LessThan(ThresholdAmount) {
		return s, nil
	}
	return s, &DiscountLine{Code: DiscountThreshold, Description: "30.00 off orders from 500.00", Amount: ThresholdDiscount}
}

// applyRules folds the rules over the state. Returned lines carry amounts
// rounded to cents while the state keeps full precision.
func applyRules(rules []Rule, s State) (State, []DiscountLine) {
	lines := make([]DiscountLine, 0, len(rules))
	for _, rule := range rules {
		next, line := rule(s)
		if line != nil {
			next.Discounted = next.Discounted.Add(line.Amount)
			lines = append(lines, DiscountLine{
				Code:        line.Code,
				Description: line.Description,
				Amount:      money.Round2(line.Amount),
			})
		}
		s = next
	}
	return s, lines
}
