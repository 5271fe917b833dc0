package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"wardrobe/internal/api/models"
)

// ItemRepository defines the interface for clothing-item data operations.
// Listing is always owner-scoped; single-item lookups return the row
// regardless of owner, and the service layer applies the ownership check.
type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.ClothingItem) error
	GetItemByID(ctx context.Context, id int64) (*models.ClothingItem, error)
	UpdateItem(ctx context.Context, item *models.ClothingItem) error
	DeleteItem(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64, filter models.ItemFilter) ([]models.ClothingItem, error)
}

type sqliteItemRepository struct {
	db *sqlx.DB
}

// NewItemRepository creates a new SQLite-based ItemRepository.
func NewItemRepository(db *sqlx.DB) ItemRepository {
	return &sqliteItemRepository{db: db}
}

// CreateItem inserts a new clothing item and fills in its generated id.
func (r *sqliteItemRepository) CreateItem(ctx context.Context, item *models.ClothingItem) error {
	query := `INSERT INTO clothing_items (name, category, color, season, notes, user_id) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, item.Name, item.Category, item.Color, item.Season, item.Notes, item.UserID)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		item.ID = id
	}
	return nil
}

// GetItemByID retrieves a clothing item by id. A missing item returns
// (nil, nil).
func (r *sqliteItemRepository) GetItemByID(ctx context.Context, id int64) (*models.ClothingItem, error) {
	var item models.ClothingItem
	query := `SELECT id, name, category, color, season, notes, user_id FROM clothing_items WHERE id = ?`
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item by id: %w", err)
	}
	return &item, nil
}

// UpdateItem writes every mutable column of the item row. The service layer
// merges partial updates before calling this.
func (r *sqliteItemRepository) UpdateItem(ctx context.Context, item *models.ClothingItem) error {
	query := `UPDATE clothing_items SET name = ?, category = ?, color = ?, season = ?, notes = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, item.Name, item.Category, item.Color, item.Season, item.Notes, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

// DeleteItem removes a clothing item by id.
func (r *sqliteItemRepository) DeleteItem(ctx context.Context, id int64) error {
	query := `DELETE FROM clothing_items WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// ListByUser returns the user's items, narrowed by any filter fields that
// are set and not "all".
func (r *sqliteItemRepository) ListByUser(ctx context.Context, userID int64, filter models.ItemFilter) ([]models.ClothingItem, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, name, category, color, season, notes, user_id FROM clothing_items WHERE user_id = ?`)
	args := []any{userID}

	for _, pred := range []struct {
		column, value string
	}{
		{"category", filter.Category},
		{"color", filter.Color},
		{"season", filter.Season},
	} {
		if pred.value != "" && pred.value != "all" {
			sb.WriteString(fmt.Sprintf(" AND %s = ?", pred.column))
			args = append(args, pred.value)
		}
	}
	sb.WriteString(" ORDER BY id")

	items := []models.ClothingItem{}
	if err := r.db.SelectContext(ctx, &items, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}
