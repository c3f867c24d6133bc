package postgres

import (
	"github.com/google/uuid"
)

// UUIDGenerator generates UUID-based IDs.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate generates a new random UUID.
func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}
