package service

import (
	"context"
	"errors"

	"wardrobe/internal/api/models"
	"wardrobe/internal/api/repository"
)

// ErrItemNotFound covers both a genuinely missing item and an item owned by
// another user. The caller must not be able to tell the two apart.
var ErrItemNotFound = errors.New("item not found")

// ItemService defines the interface for wardrobe-item business logic. Every
// operation is scoped to the requesting user.
type ItemService interface {
	AddItem(ctx context.Context, user *models.User, req *models.ItemCreateRequest) (*models.ClothingItem, error)
	UpdateItem(ctx context.Context, user *models.User, req *models.ItemUpdateRequest) (*models.ClothingItem, error)
	DeleteItem(ctx context.Context, user *models.User, itemID int64) error
	ListItems(ctx context.Context, user *models.User, filter models.ItemFilter) ([]models.ClothingItem, error)
}

type itemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService creates a new ItemService.
func NewItemService(itemRepo repository.ItemRepository) ItemService {
	return &itemService{itemRepo: itemRepo}
}

// authorize returns the item only when it exists and belongs to the user;
// otherwise ErrItemNotFound, uniformly.
func authorize(item *models.ClothingItem, user *models.User) (*models.ClothingItem, error) {
	if item == nil || item.UserID != user.ID {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// AddItem normalizes the attribute fields and inserts the item for the user.
func (s *itemService) AddItem(ctx context.Context, user *models.User, req *models.ItemCreateRequest) (*models.ClothingItem, error) {
	item := &models.ClothingItem{
		Name:     req.Name,
		Category: models.NormalizeAttribute(req.Category),
		Color:    models.NormalizeAttribute(req.Color),
		Season:   models.NormalizeAttribute(req.Season),
		Notes:    req.Notes,
		UserID:   user.ID,
	}
	if err := s.itemRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem applies a partial update to an item the user owns. Only the
// fields supplied in the request change; attribute fields are normalized on
// the way in.
func (s *itemService) UpdateItem(ctx context.Context, user *models.User, req *models.ItemUpdateRequest) (*models.ClothingItem, error) {
	existing, err := s.itemRepo.GetItemByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	item, err := authorize(existing, user)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = models.NormalizeAttribute(*req.Category)
	}
	if req.Color != nil {
		item.Color = models.NormalizeAttribute(*req.Color)
	}
	if req.Season != nil {
		item.Season = models.NormalizeAttribute(*req.Season)
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}

	if err := s.itemRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item the user owns.
func (s *itemService) DeleteItem(ctx context.Context, user *models.User, itemID int64) error {
	existing, err := s.itemRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	item, err := authorize(existing, user)
	if err != nil {
		return err
	}
	return s.itemRepo.DeleteItem(ctx, item.ID)
}

// ListItems returns the user's items narrowed by the filter. Filter values
// are normalized the same way stored attributes are.
func (s *itemService) ListItems(ctx context.Context, user *models.User, filter models.ItemFilter) ([]models.ClothingItem, error) {
	filter.Category = models.NormalizeAttribute(filter.Category)
	filter.Color = models.NormalizeAttribute(filter.Color)
	filter.Season = models.NormalizeAttribute(filter.Season)
	return s.itemRepo.ListByUser(ctx, user.ID, filter)
}
