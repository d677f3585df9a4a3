package server

// defaultCatalog is the built-in content pack used when a room is created
// without custom categories. Prices are in euros.
func defaultCatalog() []Category {
	return []Category{
		{
			Name: "Electronics",
			Items: []Item{
				{Name: "Wireless noise-cancelling headphones", Price: 279.99},
				{Name: "Robot vacuum cleaner", Price: 449},
				{Name: "55-inch OLED TV", Price: 1299},
				{Name: "Mechanical keyboard", Price: 119.90},
			},
		},
		{
			Name: "Groceries",
			Items: []Item{
				{Name: "Wheel of Parmigiano Reggiano (whole)", Price: 520},
				{Name: "Jar of manuka honey", Price: 39.95},
				{Name: "Kilogram of saffron", Price: 3800},
				{Name: "Bottle of aged balsamic vinegar", Price: 89},
			},
		},
		{
			Name: "Travel",
			Items: []Item{
				{Name: "Round-trip flight Berlin to Tokyo", Price: 780},
				{Name: "Night in an ice hotel suite", Price: 650},
				{Name: "Two-week Transsiberian railway ticket", Price: 1200},
				{Name: "Hot air balloon ride over Cappadocia", Price: 210},
			},
		},
		{
			Name: "Absurd",
			Items: []Item{
				{Name: "Taxidermied flamingo", Price: 1450},
				{Name: "Gold-plated stapler", Price: 320},
				{Name: "One hour with a professional cuddler", Price: 80},
				{Name: "Vintage gumball machine", Price: 240},
			},
		},
	}
}
