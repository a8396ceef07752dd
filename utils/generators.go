package utils

import "github.com/google/uuid"

// GenerateID generates a unique ID for groups, members and receipts
func GenerateID() string {
	return uuid.NewString()
}
