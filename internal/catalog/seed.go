package catalog

import "github.com/noah-isme/toko-checkout/internal/money"

// DemoProducts returns the fixture catalog used by the demo and local runs.
func DemoProducts() []Product {
	return []Product{
		{SKU: "ARROZ", Name: "Arroz 1kg", Price: money.New("6.00"), Manufacturer: "Marca A", Category: CategoryFood, MaxInstallments: 1},
		{SKU: "FEIJAO", Name: "Feijão 1kg", Price: money.New("7.50"), Manufacturer: "Marca B", Category: CategoryFood, MaxInstallments: 1},
		{SKU: "OLEO", Name: "Óleo 900ml", Price: money.New("8.00"), Manufacturer: "Marca C", Category: CategoryFood, MaxInstallments: 1},
		{SKU: "CAMISETA", Name: "Camiseta", Price: money.New("30.00"), Manufacturer: "Hering", Category: CategoryApparel, MaxInstallments: 6},
		{SKU: "CALCA", Name: "Calça Jeans", Price: money.New("120.00"), Manufacturer: "Levis", Category: CategoryApparel, MaxInstallments: 6},
		{SKU: "MEIA", Name: "Meia", Price: money.New("10.00"), Manufacturer: "Puket", Category: CategoryApparel, MaxInstallments: 6},
		{SKU: "MICRO", Name: "Micro-ondas", Price: money.New("499.90"), Manufacturer: "LG", Category: CategoryAppliance, MaxInstallments: 12},
		{SKU: "LIQUID", Name: "Liquidificador", Price: money.New("199.90"), Manufacturer: "Philco", Category: CategoryAppliance, MaxInstallments: 10},
		{SKU: "VASO", Name: "Vaso Decorativo", Price: money.New("89.90"), Manufacturer: "Tok&Stok", Category: CategoryDecor, MaxInstallments: 5},
		{SKU: "CIMENTO", Name: "Cimento 25kg", Price: money.New("35.00"), Manufacturer: "Holcim", Category: CategoryConstructionMaterials, MaxInstallments: 3},
	}
}

// DemoStockLevels returns the initial on-hand quantity for each demo SKU.
func DemoStockLevels() map[string]int {
	return map[string]int{
		"ARROZ":    50,
		"FEIJAO":   50,
		"OLEO":     50,
		"CAMISETA": 20,
		"CALCA":    10,
		"MEIA":     30,
		"MICRO":    5,
		"LIQUID":   8,
		"VASO":     10,
		"CIMENTO":  100,
	}
}

// Seed builds a catalog holding DemoProducts.
func Seed() (*Catalog, error) {
	c := New()
	for _, p := range DemoProducts() {
		if err := c.Add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}
