package service

import (
	"errors"
	"math/rand/v2"

	"wardrobe/internal/api/models"
)

// ErrInsufficientItems is returned when the inventory is too small to
// suggest an outfit from. It is a hint for the user, not a fault.
var ErrInsufficientItems = errors.New("not enough items to generate an outfit")

// outfitSize is the largest number of items in a suggestion.
const outfitSize = 3

// SampleOutfit picks min(3, len(items)) items uniformly at random without
// replacement. Fewer than 2 items yields ErrInsufficientItems. The input
// slice is left untouched.
func SampleOutfit(items []models.ClothingItem) ([]models.ClothingItem, error) {
	if len(items) < 2 {
		return nil, ErrInsufficientItems
	}

	n := outfitSize
	if len(items) < n {
		n = len(items)
	}

	outfit := make([]models.ClothingItem, 0, n)
	for _, i := range rand.Perm(len(items))[:n] {
		outfit = append(outfit, items[i])
	}
	return outfit, nil
}
