package infrastructure

import (
	"github.com/google/uuid"
)

// GenerateUUID is the default IDGenerator used by the entrypoints.
func GenerateUUID() string {
	return uuid.New().String()
}
