package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-checkout/internal/common"
	"github.com/noah-isme/toko-checkout/internal/money"
)

// MaxInstallmentsLimit caps how many installments any product may offer.
const MaxInstallmentsLimit = 24

// Product is a sellable catalog entry.
type Product struct {
	SKU             string          `json:"sku" validate:"required"`
	Name            string          `json:"name" validate:"required"`
	Price           decimal.Decimal `json:"price" validate:"gt=0"`
	Manufacturer    string          `json:"manufacturer"`
	Category        Category        `json:"category" validate:"required"`
	MaxInstallments int             `json:"maxInstallments" validate:"min=1,max=24"`
}

// Validate checks the product fields.
func (p Product) Validate() error {
	if err := common.Validator().Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: %w %q", ErrInvalidProduct, ErrInvalidCategory, p.Category)
	}
	return nil
}

// InstallmentValue returns the value of each installment when paying the
// product price in n installments.
func (p Product) InstallmentValue(n int) (decimal.Decimal, error) {
	if n < 1 {
		return decimal.Zero, fmt.Errorf("%w: %d must be at least 1", ErrInvalidInstallments, n)
	}
	if n > p.MaxInstallments {
		return decimal.Zero, fmt.Errorf("%w: %s allows between 1 and %d, got %d", ErrInvalidInstallments, p.SKU, p.MaxInstallments, n)
	}
	return money.Round2(p.Price.Div(decimal.NewFromInt(int64(n)))), nil
}
