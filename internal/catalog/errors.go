package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSKU is returned when a SKU is not registered in the catalog.
	ErrUnknownSKU = errors.New("catalog: unknown sku")
	// ErrDuplicateSKU is returned when adding a product whose SKU already exists.
	ErrDuplicateSKU = errors.New("catalog: duplicate sku")
	// ErrInvalidProduct wraps product validation failures.
	ErrInvalidProduct = errors.New("catalog: invalid product")
	// ErrInvalidCategory is returned for categories outside the recognised set.
	ErrInvalidCategory = errors.New("catalog: invalid category")
	// ErrInvalidInstallments is returned when an installment count is out of range.
	ErrInvalidInstallments = errors.New("catalog: invalid installments")
)

// UnknownSKUError names the SKU that could not be resolved.
type UnknownSKUError struct {
	SKU string
}

func (e *UnknownSKUError) Error() string {
	return fmt.Sprintf("catalog: unknown sku %q", e.SKU)
}

// Is lets errors.Is match ErrUnknownSKU.
func (e *UnknownSKUError) Is(target error) bool {
	return target == ErrUnknownSKU
}
