// Package menu holds the fixed in-memory product catalog. Prices are VND.
package menu

import "strings"

type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Icon     string `json:"icon"`
}

var products = []Product{
	{ID: "cf_1", Name: "Espresso", Category: "coffee", Price: 25000, Icon: "☕"},
	{ID: "cf_2", Name: "Americano", Category: "coffee", Price: 30000, Icon: "☕"},
	{ID: "cf_3", Name: "Cappuccino", Category: "coffee", Price: 40000, Icon: "☕"},
	{ID: "cf_4", Name: "Latte", Category: "coffee", Price: 40000, Icon: "☕"},
	{ID: "cf_5", Name: "Cold Brew", Category: "coffee", Price: 35000, Icon: "☕"},
	{ID: "t_1", Name: "Green Tea", Category: "tea", Price: 25000, Icon: "🍵"},
	{ID: "t_2", Name: "Black Tea", Category: "tea", Price: 25000, Icon: "🍵"},
	{ID: "t_3", Name: "Oolong Tea", Category: "tea", Price: 30000, Icon: "🍵"},
	{ID: "j_1", Name: "Orange Juice", Category: "juice", Price: 30000, Icon: "🧃"},
	{ID: "j_2", Name: "Apple Juice", Category: "juice", Price: 30000, Icon: "🧃"},
	{ID: "j_3", Name: "Mango Juice", Category: "juice", Price: 35000, Icon: "🧃"},
	{ID: "f_1", Name: "Croissant", Category: "food", Price: 35000, Icon: "🥐"},
	{ID: "f_2", Name: "Sandwich", Category: "food", Price: 45000, Icon: "🥪"},
	{ID: "f_3", Name: "Cake", Category: "food", Price: 40000, Icon: "🍰"},
}

// All returns every menu product.
func All() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// ByCategory returns the products of one category, empty when unknown.
func ByCategory(category string) []Product {
	var out []Product
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Search matches product names case-insensitively.
func Search(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Product
	if q == "" {
		return out
	}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

// Find looks a product up by ID.
func Find(id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
