package store

import (
	"fmt"
	"strings"
	"sync"

	validator "github.com/go-playground/validator/v10"
)

// Ingredient is a reference ingredient with its measurement unit.
type Ingredient struct {
	Name            string `json:"name" yaml:"name" validate:"required,max=128"`
	MeasurementUnit string `json:"measurement_unit" yaml:"measurement_unit" validate:"required,max=64"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func ingredientValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// NormalizeIngredients trims every ingredient and validates the result.
func NormalizeIngredients(items []Ingredient) ([]Ingredient, error) {
	out := make([]Ingredient, 0, len(items))
	v := ingredientValidator()
	for i, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		item.MeasurementUnit = strings.TrimSpace(item.MeasurementUnit)
		if err := v.Struct(item); err != nil {
			return nil, fmt.Errorf("ingredient %d (%q): %w", i, item.Name, err)
		}
		out = append(out, item)
	}
	return out, nil
}
