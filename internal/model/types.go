package model

import "time"

// ShoppingListItem is one recipe queued on the server's shopping list. The
// same recipe may appear several times.
type ShoppingListItem struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	Scale     float64   `json:"scale"`
	CreatedAt time.Time `json:"created_at"`
}

// CheckedIngredient is an ingredient ticked off while shopping.
type CheckedIngredient struct {
	Name      string    `json:"name"`
	CheckedAt time.Time `json:"checked_at"`
}
