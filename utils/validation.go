package utils

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidateNonNegative checks if a number is non-negative
func ValidateNonNegative(value float64, fieldName string) error {
	if value < 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be negative", fieldName))
	}
	return nil
}

// ValidatePercentage checks that an optional rate sits in the 0-100 range
func ValidatePercentage(value *float64, fieldName string) error {
	if value == nil {
		return nil
	}
	if *value < 0 || *value > 100 {
		return NewValidationError(fmt.Sprintf("%s must be between 0 and 100", fieldName))
	}
	return nil
}

// ValidateNotEmpty checks if a slice is not empty
func ValidateNotEmpty[T any](slice []T, fieldName string) error {
	if len(slice) == 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be empty", fieldName))
	}
	return nil
}

// ValidateItemData validates basic item data
func ValidateItemData(name string, price float64, quantity int) error {
	if err := ValidateRequired(name, "item name"); err != nil {
		return err
	}
	if err := ValidateNonNegative(price, "item price"); err != nil {
		return err
	}
	if quantity <= 0 {
		return NewValidationError("item quantity must be positive")
	}
	return nil
}
