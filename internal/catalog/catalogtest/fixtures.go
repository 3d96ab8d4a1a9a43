package catalogtest

import "powersite-catalog/internal/models"

// Product construye un producto válido para pruebas
func Product(sku, title, brand, category string, power models.PowerSource, incVAT float64) models.Product {
	p := models.Product{
		SKU:         sku,
		Title:       title,
		Brand:       brand,
		Category:    category,
		PowerSource: power,
		Price:       models.Price(incVAT, incVAT/1.2),
		Media:       models.Media{Images: []string{"https://images.example.com/" + sku + ".jpg"}},
		Stock:       models.DefaultStock,
	}
	if err := p.Validate(); err != nil {
		panic(err)
	}
	return p
}

// Demo devuelve un almacén con el catálogo de ejemplo
func Demo() *Store {
	s := New()

	generator := Product("HY2000i", "Hyundai 2000W Inverter Generator", "hyundai", "generators", models.PowerPetrol, 599.99)
	generator.Accessories = []string{"HYCABLE1", "HYMISSING"}
	generator.RelatedSKUs = []string{"HY3000i"}

	s.AddProducts(
		generator,
		Product("HY3000i", "Hyundai 3000W Inverter Generator", "hyundai", "generators", models.PowerPetrol, 799.00),
		Product("HYCABLE1", "Hyundai Parallel Cable", "hyundai", "generators", "", 49.99),
		Product("JCB-18V-IMPACT", "JCB 18V Brushless Impact Driver", "jcb", "chainsaws", models.PowerBattery, 129.99),
		Product("JCB-PW", "JCB Petrol Pressure Washer", "jcb", "pressure-washers", models.PowerPetrol, 499.00),
	)
	s.AddBrands(
		models.Brand{Name: "Hyundai Power Products", Slug: "hyundai", Color: "#1e40af"},
		models.Brand{Name: "JCB Tools", Slug: "jcb", Color: "#ffcc00"},
	)
	s.AddCategories(
		models.Category{Name: "Generators", Slug: "generators"},
		models.Category{Name: "Chainsaws", Slug: "chainsaws"},
	)
	s.AddSpares(
		models.SparePart{SKU: "SP-PLUG", Title: "Spark Plug", CompatibleSKUs: []string{"HY2000i", "HY3000i"}, Price: models.Price(6, 5)},
		models.SparePart{SKU: "SP-FILTER", Title: "Air Filter", CompatibleSKUs: []string{"HY3000i"}, Price: models.Price(12, 10)},
		models.SparePart{SKU: "SP-BAT", Title: "JCB 18V Battery", CompatibleSKUs: []string{"JCB-18V-IMPACT"}, Price: models.Price(89, 74.17)},
	)
	return s
}
