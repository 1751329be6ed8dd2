package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string used for auction and bid ids
func GenerateID() string {
	return uuid.New().String()
}
