package services

// defaultTaxonomy is the seed taxonomy every new tenant starts with.
// Names are Spanish since that is the product's primary market.
type taxonomyCategory struct {
	Name          string
	Color         string
	Subcategories []string
}

var defaultTaxonomy = []taxonomyCategory{
	{
		Name:          "Vivienda",
		Color:         "#4CAF50",
		Subcategories: []string{"Alquiler", "Expensas", "Servicios", "Mantenimiento"},
	},
	{
		Name:          "Alimentación",
		Color:         "#FF9800",
		Subcategories: []string{"Supermercado", "Restaurantes", "Delivery"},
	},
	{
		Name:          "Transporte",
		Color:         "#2196F3",
		Subcategories: []string{"Combustible", "Transporte público", "Taxi"},
	},
	{
		Name:          "Salud",
		Color:         "#E91E63",
		Subcategories: []string{"Obra social", "Farmacia", "Consultas"},
	},
	{
		Name:          "Entretenimiento",
		Color:         "#9C27B0",
		Subcategories: []string{"Suscripciones", "Salidas", "Viajes"},
	},
	{
		Name:          "Ingresos",
		Color:         "#009688",
		Subcategories: []string{"Sueldo", "Honorarios", "Otros ingresos"},
	},
	{
		Name:          "Otros",
		Color:         "#607D8B",
		Subcategories: []string{"Varios"},
	},
}
