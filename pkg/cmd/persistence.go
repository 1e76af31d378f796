// Package cmd wires shared infrastructure for the command-line entrypoints.
package cmd

import (
	"strings"

	"github.com/formforge/formforge/pkg/persistence"
	"github.com/formforge/formforge/pkg/persistence/file"
	"github.com/formforge/formforge/pkg/persistence/redis"
)

var supportedPersistenceProviders = []string{"file", "redis"}

func NewPersistence(databaseURL string) (persistence.Persistence, error) {
	provider := parsePersistenceProvider(databaseURL)

	switch provider {
	case "redis":
		return redis.NewPersistence(databaseURL)
	default:
		return file.NewPersistence(databaseURL), nil
	}
}

func parsePersistenceProvider(databaseURL string) string {
	provider, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	for _, supported := range supportedPersistenceProviders {
		if provider == supported {
			return provider
		}
	}

	return "file"
}
