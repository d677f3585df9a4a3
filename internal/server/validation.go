package server

import (
	"fmt"
	"strings"
)

const (
	maxNameLength     = 20
	maxCategoryLength = 40
	maxItemLength     = 80
	maxCategories     = 20
	maxItemsPerEntry  = 50
)

// playerName normalizes a submitted display name, defaulting blank or
// whitespace-only input. index is the player's position in join order.
func playerName(name string, index int) string {
	trimmed := normalizeText(name)
	if trimmed == "" {
		return fmt.Sprintf("Player %d", index+1)
	}
	if len(trimmed) > maxNameLength {
		trimmed = trimmed[:maxNameLength]
	}
	return trimmed
}

func validateCategories(categories []Category) error {
	if len(categories) > maxCategories {
		return fmt.Errorf("at most %d categories allowed", maxCategories)
	}
	for _, category := range categories {
		name := normalizeText(category.Name)
		if name == "" {
			return fmt.Errorf("category name is required")
		}
		if len(name) > maxCategoryLength {
			return fmt.Errorf("category name must be %d characters or fewer", maxCategoryLength)
		}
		if len(category.Items) == 0 {
			return fmt.Errorf("category %q has no items", name)
		}
		if len(category.Items) > maxItemsPerEntry {
			return fmt.Errorf("category %q has more than %d items", name, maxItemsPerEntry)
		}
		for _, item := range category.Items {
			itemName := normalizeText(item.Name)
			if itemName == "" {
				return fmt.Errorf("category %q has an item without a name", name)
			}
			if len(itemName) > maxItemLength {
				return fmt.Errorf("item name must be %d characters or fewer", maxItemLength)
			}
			if item.Price < 0 {
				return fmt.Errorf("item %q has a negative price", itemName)
			}
		}
	}
	return nil
}

// normalizeCategories returns a cleaned copy safe to hand to the room, which
// owns its category slice exclusively from then on.
func normalizeCategories(categories []Category) []Category {
	cleaned := make([]Category, 0, len(categories))
	for _, category := range categories {
		items := make([]Item, 0, len(category.Items))
		for _, item := range category.Items {
			items = append(items, Item{
				Name:     normalizeText(item.Name),
				Price:    item.Price,
				ImageURL: strings.TrimSpace(item.ImageURL),
			})
		}
		cleaned = append(cleaned, Category{
			Name:  normalizeText(category.Name),
			Items: items,
		})
	}
	return cleaned
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}
