package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"wardrobe/internal/api/models"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User, password string) error {
	f.nextID++
	user.ID = f.nextID
	// Mirrors the real repository: the stored credential is a bcrypt
	// hash, never the plaintext password.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	cp := *user
	f.users[user.Username] = &cp
	return nil
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// fakeItemRepo is an in-memory ItemRepository for service tests.
type fakeItemRepo struct {
	items  map[int64]*models.ClothingItem
	nextID int64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[int64]*models.ClothingItem{}}
}

func (f *fakeItemRepo) CreateItem(_ context.Context, item *models.ClothingItem) error {
	f.nextID++
	item.ID = f.nextID
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeItemRepo) GetItemByID(_ context.Context, id int64) (*models.ClothingItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItemRepo) UpdateItem(_ context.Context, item *models.ClothingItem) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeItemRepo) DeleteItem(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) ListByUser(_ context.Context, userID int64, filter models.ItemFilter) ([]models.ClothingItem, error) {
	var out []models.ClothingItem
	for id := int64(1); id <= f.nextID; id++ {
		it, ok := f.items[id]
		if !ok || it.UserID != userID {
			continue
		}
		if filter.Category != "" && filter.Category != "all" && it.Category != filter.Category {
			continue
		}
		if filter.Color != "" && filter.Color != "all" && it.Color != filter.Color {
			continue
		}
		if filter.Season != "" && filter.Season != "all" && it.Season != filter.Season {
			continue
		}
		out = append(out, *it)
	}
	return out, nil
}
