package catalog

import "github.com/shopspring/decimal"

func usd(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var beverages = []Beverage{
	{ID: "espresso", Name: "Espresso", Description: "Double shot", Price: usd("3.50"), Image: "/beverages/espresso.png"},
	{ID: "latte", Name: "Latte", Description: "With steamed milk", Price: usd("4.50"), Image: "/beverages/latte.png"},
	{ID: "cappuccino", Name: "Cappuccino", Description: "Foamy and balanced", Price: usd("4.50"), Image: "/beverages/cappuccino.png"},
	{ID: "cold-brew", Name: "Cold Brew", Description: "Slow steeped", Price: usd("4.00"), Image: "/beverages/cold-brew.png"},
	{ID: "lemon-iced-tea", Name: "Lemon Iced Tea", Description: "Black tea, lemon slice", Price: usd("3.50"), Image: "/beverages/lemon-iced-tea.png"},
}

var beverageMenuItems = func() []MenuItem {
	items := make([]MenuItem, 0, len(beverages))
	for _, b := range beverages {
		price := b.Price
		items = append(items, MenuItem{Name: b.Name, Image: b.Image, Price: &price})
	}
	return items
}()

var menuCategories = []MenuCategory{
	{
		Name: "BREAD",
		Slug: "bread",
		Items: []MenuItem{
			{Name: "Coconut Charcoal Croissant", Ingredients: []string{"Coconut", "Milk", "Charcoal"}},
			{Name: "Corn Sausage Croissant", Ingredients: []string{"Sausage", "Corn", "Cheese", "Egg"}},
			{Name: "Cream Cheese Brioche", Ingredients: []string{"Creamcheese", "Egg", "Milk"}},
			{Name: "Baguette", Ingredients: []string{"Flour", "Levain", "Water"}},
			{Name: "Crookie", Ingredients: []string{"Butter", "Egg", "Chocolate"}},
			{Name: "Dark Chocolate Donut", Ingredients: []string{"Dark chocolate", "Milk chocolate", "Egg"}},
			{Name: "Diamant Croissant", Ingredients: []string{"Almond", "Milk", "Butter"}},
			{Name: "Coffee Bun", Ingredients: []string{"Almond", "Coffee", "Butter", "Egg"}},
			{Name: "Egg Tart Portugal", Ingredients: []string{"Egg", "Fresh cream", "Vanilla"}},
			{Name: "Fig Campagne", Ingredients: []string{"Fig", "Walnut", "Cranberry"}},
			{Name: "French Croissant", Ingredients: []string{"Butter", "Egg", "Milk"}},
			{Name: "Garlic Baguette", Ingredients: []string{"Garlic", "Butter", "Milk", "Egg"}},
			{Name: "Honey Toast", Ingredients: []string{"Milk", "Egg", "Honey"}},
			{Name: "Kouign Amann", Ingredients: []string{"Sugar", "Butter", "Milk"}},
			{Name: "Milk Toast", Ingredients: []string{"Milk", "Egg", "Butter"}},
			{Name: "Olive Ciabatta", Ingredients: []string{"Olive", "Potato"}},
			{Name: "Plain Bagel", Ingredients: []string{"Flour", "Water", "Olive oil"}},
			{Name: "Salted Butter Roll", Ingredients: []string{"Sea salt", "Butter", "Milk"}},
			{Name: "Soboro", Ingredients: []string{"Chocolate", "Peanut", "Milk", "Egg"}},
			{Name: "Chocolate Almond Croissant"},
		},
	},
	{
		Name: "BRUNCH",
		Slug: "brunch",
		Items: []MenuItem{
			{Name: "Bacon Corn Cheese Mayo Toast", Ingredients: []string{"Bacon", "Corn", "Cheese", "Mayo", "Toast"}},
			{Name: "Bagel Roll Sausage", Ingredients: []string{"Sausage", "Mozzarella", "Mustard"}},
			{Name: "Banh Mi Salad", Ingredients: []string{"Sausage", "Potato", "Pickle"}},
			{Name: "Curry Croquette", Ingredients: []string{"Onion", "Curry", "Sausage", "Egg"}},
			{Name: "Jalapeno", Ingredients: []string{"Jalapeno", "Olive", "Sausage"}},
			{Name: "Kimchi Croquette", Ingredients: []string{"Kimchi", "Sausage", "Potato", "Egg"}},
			{Name: "Onion Sausage Pizza", Ingredients: []string{"Sausage", "Olive", "Onion", "Egg"}},
			{Name: "Red Pepper Sausage", Ingredients: []string{"Sausage", "Korean chile sauce", "Garlic", "Egg"}},
			{Name: "Sriracha Sausage Pastry", Ingredients: []string{"Sausage", "Sriracha", "Cheese"}},
		},
	},
	{
		Name: "CAKE",
		Slug: "cake",
		Items: []MenuItem{
			{Name: "Mont Blanc", Ingredients: []string{"Butter", "Egg", "Milk"}},
			{Name: "Patisserie Cream Bread", Ingredients: []string{"Milk", "Egg", "Butter"}},
			{Name: "Snow Bean Cream", Ingredients: []string{"Fresh cream", "Red bean", "Egg"}},
			{Name: "Snow Milk Cream Bun", Ingredients: []string{"Milk", "Butter", "Sugar"}},
			{Name: "Strawberry Cream Donut", Ingredients: []string{"Strawberry", "Sugar", "Fresh cream"}},
			{Name: "Cream Twist Donut", Ingredients: []string{"Fresh cream", "Milk", "Egg"}},
		},
	},
	{
		Name: "COOKIES",
		Slug: "cookies",
		Items: []MenuItem{
			{Name: "Plain Scone", Ingredients: []string{"Butter", "Milk", "Egg"}},
			{Name: "Palmier Carre", Ingredients: []string{"Butter", "Sugar", "Dark chocolat"}},
			{Name: "Cruncky Twist", Ingredients: []string{"Walnut", "Cashew nut", "Redbean"}},
			{Name: "Soboro Fries", Ingredients: []string{"Butter", "Red bean", "Milk"}},
		},
	},
	{
		Name: "DESSERT",
		Slug: "dessert",
		Items: []MenuItem{
			{Name: "Croffle", Ingredients: []string{"Butter", "Egg", "Milk"}},
			{Name: "Glutinous Red Bean Donut", Ingredients: []string{"Glutinous rice", "Redbean", "Sugar"}},
			{Name: "Glutinous Rice Donut", Ingredients: []string{"Sugar", "Glutinous rice"}},
			{Name: "Original Glazed Donut", Ingredients: []string{"Sugar powder", "Milk", "Butter"}},
			{Name: "Sweet Potato Redbean Toast", Ingredients: []string{"Redbean", "Peanut butter", "Sweet potato"}},
		},
	},
	{
		Name: "MACAROON",
		Slug: "macaroon",
		Items: []MenuItem{
			{Name: "Strawberry Soboro", Ingredients: []string{"Strawberry", "Peanut", "Fresh cream"}},
			{Name: "Cream Soboro", Ingredients: []string{"Chocolate", "Peanut", "Fresh cream", "Egg"}},
		},
	},
	{
		Name:  "BEVERAGES",
		Slug:  "beverages",
		Items: beverageMenuItems,
	},
}
