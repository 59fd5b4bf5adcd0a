package http

import (
	"fmt"
	"strconv"
	"strings"

	"recipebox/models"
)

// parseIDList parses a comma-separated list of positive integers, the format
// of the "tags" and "ingredients" query parameters. An empty raw value yields
// nil; any malformed element fails the whole list.
func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid identifier", part)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// parseAssignedOnly parses the "assigned_only" query parameter. Only the
// exact values "0" and "1" are accepted; anything else is a client error.
func parseAssignedOnly(raw string) (bool, error) {
	switch raw {
	case "", "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("assigned_only must be 0 or 1, got %q", raw)
	}
}

// parseRecipeFilter assembles a [models.RecipeFilter] from the "tags" and
// "ingredients" query parameters.
func parseRecipeFilter(tagsRaw, ingredientsRaw string) (models.RecipeFilter, error) {
	tagIDs, err := parseIDList(tagsRaw)
	if err != nil {
		return models.RecipeFilter{}, fmt.Errorf("tags: %w", err)
	}

	ingredientIDs, err := parseIDList(ingredientsRaw)
	if err != nil {
		return models.RecipeFilter{}, fmt.Errorf("ingredients: %w", err)
	}

	return models.RecipeFilter{TagIDs: tagIDs, IngredientIDs: ingredientIDs}, nil
}
