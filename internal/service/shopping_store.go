package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cooklang/cookcli-sub000/internal/model"
)

var ErrShoppingItemNotFound = errors.New("shopping list item not found")

type AddShoppingListItemInput struct {
	Path  string  `json:"path" validate:"required"`
	Name  string  `json:"name"`
	Scale float64 `json:"scale" validate:"gte=0"`
}

func AddShoppingListItem(db *sql.DB, in AddShoppingListItemInput) (model.ShoppingListItem, error) {
	path := strings.TrimSpace(in.Path)
	if path == "" {
		return model.ShoppingListItem{}, fmt.Errorf("shopping list item path is required")
	}
	if in.Scale < 0 {
		return model.ShoppingListItem{}, fmt.Errorf("scale must be > 0")
	}
	if in.Scale == 0 {
		in.Scale = 1
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = path
	}

	item := model.ShoppingListItem{ID: uuid.NewString(), Path: path, Name: name, Scale: in.Scale}
	if _, err := db.Exec(`
INSERT INTO shopping_list_items(id, path, name, scale, position)
VALUES(?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM shopping_list_items))
`, item.ID, item.Path, item.Name, item.Scale); err != nil {
		return model.ShoppingListItem{}, fmt.Errorf("insert shopping list item: %w", err)
	}
	if err := db.QueryRow(`SELECT created_at FROM shopping_list_items WHERE id = ?`, item.ID).Scan(&item.CreatedAt); err != nil {
		return model.ShoppingListItem{}, fmt.Errorf("read shopping list item: %w", err)
	}
	return item, nil
}

func ListShoppingListItems(db *sql.DB) ([]model.ShoppingListItem, error) {
	rows, err := db.Query(`SELECT id, path, name, scale, created_at FROM shopping_list_items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list shopping list items: %w", err)
	}
	defer rows.Close()

	out := make([]model.ShoppingListItem, 0)
	for rows.Next() {
		var it model.ShoppingListItem
		if err := rows.Scan(&it.ID, &it.Path, &it.Name, &it.Scale, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shopping list item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// RemoveShoppingListItemByPath removes the earliest instance of path only.
func RemoveShoppingListItemByPath(db *sql.DB, path string) error {
	res, err := db.Exec(`
DELETE FROM shopping_list_items
WHERE id = (SELECT id FROM shopping_list_items WHERE path = ? ORDER BY position LIMIT 1)
`, strings.TrimSpace(path))
	if err != nil {
		return fmt.Errorf("remove shopping list item %q: %w", path, err)
	}
	return expectOneRow(res, path)
}

func RemoveShoppingListItem(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM shopping_list_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove shopping list item %s: %w", id, err)
	}
	return expectOneRow(res, id)
}

func ClearShoppingList(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin clear shopping list: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM shopping_list_items`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear shopping list items: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM shopping_list_checked`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear checked ingredients: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear shopping list: %w", err)
	}
	return nil
}

// SetIngredientChecked ticks an ingredient off, or back on when checked is
// false. Names match case-insensitively.
func SetIngredientChecked(db *sql.DB, name string, checked bool) error {
	norm := normalizeName(name)
	if norm == "" {
		return fmt.Errorf("ingredient name is required")
	}
	if !checked {
		if _, err := db.Exec(`DELETE FROM shopping_list_checked WHERE name_norm = ?`, norm); err != nil {
			return fmt.Errorf("uncheck ingredient %q: %w", name, err)
		}
		return nil
	}
	if _, err := db.Exec(`
INSERT INTO shopping_list_checked(name_norm, name) VALUES(?, ?)
ON CONFLICT(name_norm) DO NOTHING
`, norm, strings.TrimSpace(name)); err != nil {
		return fmt.Errorf("check ingredient %q: %w", name, err)
	}
	return nil
}

func ListCheckedIngredients(db *sql.DB) ([]model.CheckedIngredient, error) {
	rows, err := db.Query(`SELECT name, checked_at FROM shopping_list_checked ORDER BY name_norm`)
	if err != nil {
		return nil, fmt.Errorf("list checked ingredients: %w", err)
	}
	defer rows.Close()

	out := make([]model.CheckedIngredient, 0)
	for rows.Next() {
		var c model.CheckedIngredient
		if err := rows.Scan(&c.Name, &c.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan checked ingredient: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func expectOneRow(res sql.Result, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrShoppingItemNotFound, key)
	}
	return nil
}
