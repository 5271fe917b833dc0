package models

import "strings"

// ClothingItem represents a single wardrobe item owned by a user.
type ClothingItem struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category"`
	Color    string `db:"color" json:"color"`
	Season   string `db:"season" json:"season"`
	Notes    string `db:"notes" json:"notes"`
	UserID   int64  `db:"user_id" json:"user_id"`
}

// ItemCreateRequest defines the structure for the add-item form.
type ItemCreateRequest struct {
	Name     string `form:"name" binding:"required,min=2,max=100"`
	Category string `form:"category" binding:"required"`
	Color    string `form:"color" binding:"required"`
	Season   string `form:"season" binding:"required"`
	Notes    string `form:"notes"`
}

// ItemUpdateRequest defines the structure for the update-item form.
// Nil fields are left untouched by the update.
type ItemUpdateRequest struct {
	ItemID   int64   `form:"item_id" binding:"required"`
	Name     *string `form:"name" binding:"omitempty,min=2,max=100"`
	Category *string `form:"category"`
	Color    *string `form:"color"`
	Season   *string `form:"season"`
	Notes    *string `form:"notes"`
}

// ItemFilter narrows an owner-scoped item listing. Empty or "all" fields
// are ignored.
type ItemFilter struct {
	Category string `form:"category"`
	Color    string `form:"color"`
	Season   string `form:"season"`
}

// NormalizeAttribute canonicalizes a category/color/season value for
// storage: trimmed and lower-cased. The write path must apply this to every
// attribute it persists.
func NormalizeAttribute(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
