package pricing

// CouponKind enumerates the coupons the engine understands.
type CouponKind int

const (
	CouponNone CouponKind = iota
	CouponEtic10
	CouponFreeShipping
	CouponNoVIP
	CouponInvalid
)

// Recognised coupon codes.
const (
	CodeEtic10       = "ETIC10"
	CodeFreeShipping = "FRETEGRATIS"
	CodeNoVIP        = "SEM-VIP"
)

var couponKinds = map[string]CouponKind{
	CodeEtic10:       CouponEtic10,
	CodeFreeShipping: CouponFreeShipping,
	CodeNoVIP:        CouponNoVIP,
}

func (k CouponKind) String() string {
	switch k {
	case CouponNone:
		return "none"
	case CouponEtic10:
		return CodeEtic10
	case CouponFreeShipping:
		return CodeFreeShipping
	case CouponNoVIP:
		return CodeNoVIP
	case CouponInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Coupon is a parsed coupon code. Raw keeps the caller's input so invalid
// codes can be reported back verbatim.
type Coupon struct {
	Kind CouponKind
	Raw  string
}

// ParseCoupon classifies a coupon code. The empty string means no coupon;
// codes are matched exactly.
func ParseCoupon(code string) Coupon {
	if code == "" {
		return Coupon{Kind: CouponNone}
	}
	if kind, ok := couponKinds[code]; ok {
		return Coupon{Kind: kind, Raw: code}
	}
	return Coupon{Kind: CouponInvalid, Raw: code}
}

// Validate rejects unrecognised codes.
func (c Coupon) Validate() error {
	if c.Kind == CouponInvalid {
		return &InvalidCouponError{Code: c.Raw}
	}
	return nil
}

// SuppressesVIP reports whether the coupon opts the customer out of VIP pricing.
func (c Coupon) SuppressesVIP() bool {
	return c.Kind == CouponNoVIP
}
