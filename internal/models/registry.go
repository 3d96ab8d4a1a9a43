package models

// Colecciones de MongoDB por entidad
const (
	BrandCollection     = "brand"
	CategoryCollection  = "category"
	ProductCollection   = "product"
	ReviewCollection    = "review"
	BundleCollection    = "bundle"
	SparePartCollection = "sparepart"
	OrderCollection     = "order"
)

// Schema asocia un esquema con su colección; los embebidos no tienen colección
type Schema struct {
	Name       string
	Collection string
}

var schemas = []Schema{
	{Name: "Brand", Collection: BrandCollection},
	{Name: "Category", Collection: CategoryCollection},
	{Name: "PriceInfo"},
	{Name: "Media"},
	{Name: "SpecItem"},
	{Name: "Product", Collection: ProductCollection},
	{Name: "Review", Collection: ReviewCollection},
	{Name: "Bundle", Collection: BundleCollection},
	{Name: "SparePart", Collection: SparePartCollection},
	{Name: "Address"},
	{Name: "OrderItem"},
	{Name: "Order", Collection: OrderCollection},
	{Name: "SearchSuggestion"},
}

// SchemaNames devuelve los nombres de todos los esquemas conocidos
func SchemaNames() []string {
	names := make([]string, 0, len(schemas))
	for _, s := range schemas {
		names = append(names, s.Name)
	}
	return names
}

// CollectionFor devuelve la colección de un esquema
func CollectionFor(name string) (string, bool) {
	for _, s := range schemas {
		if s.Name == name && s.Collection != "" {
			return s.Collection, true
		}
	}
	return "", false
}
