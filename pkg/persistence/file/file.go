// Package file provides a file-based persistence implementation storing one
// JSON document per journey.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/formforge/formforge/pkg/models"
	"github.com/formforge/formforge/pkg/persistence"
)

const journeysDir = "journeys"

// Persistence implements persistence.Persistence on the local file system.
type Persistence struct {
	root string
}

// NewPersistence creates a file persistence rooted at the given directory.
// A "file://" prefix is accepted and stripped.
func NewPersistence(root string) *Persistence {
	return &Persistence{root: strings.Replace(root, "file://", "", 1)}
}

// Journeys loads every journey document under the root.
func (p *Persistence) Journeys(ctx context.Context) ([]*models.Journey, error) {
	root := os.DirFS(path.Join(p.root, journeysDir))

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list journey files: %w", err)
	}

	journeys := make([]*models.Journey, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		name, err := url.PathUnescape(strings.TrimSuffix(file, ".json"))
		if err != nil {
			continue // not one of ours
		}

		journey, err := p.JourneyByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load journey %s: %w", name, err)
		}

		if journey != nil {
			journeys = append(journeys, journey)
		}
	}

	return journeys, nil
}

// JourneyByName reads one journey document. A missing file yields
// (nil, nil); the not-found decision belongs to the caller.
func (p *Persistence) JourneyByName(_ context.Context, name string) (*models.Journey, error) {
	body, err := os.ReadFile(p.journeyPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch journey %s: %w", name, err)
	}

	var journey models.Journey
	if err := json.Unmarshal(body, &journey); err != nil {
		return nil, fmt.Errorf("failed to unmarshal journey %s: %w", name, err)
	}

	return &journey, nil
}

// SaveJourney writes the journey document, creating the directory on first
// use.
func (p *Persistence) SaveJourney(_ context.Context, journey *models.Journey) error {
	if err := os.MkdirAll(path.Join(p.root, journeysDir), 0750); err != nil {
		return fmt.Errorf("failed to create journeys directory: %w", err)
	}

	data, err := json.MarshalIndent(journey, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journey %s: %w", journey.Name, err)
	}

	return os.WriteFile(p.journeyPath(journey.Name), data, 0600)
}

// DeleteJourney removes a journey document.
func (p *Persistence) DeleteJourney(_ context.Context, name string) error {
	err := os.Remove(p.journeyPath(name))
	if err != nil && os.IsNotExist(err) {
		return persistence.NewJourneyError("Delete", name, persistence.ErrJourneyNotFound)
	}

	if err != nil {
		return fmt.Errorf("failed to delete journey %s: %w", name, err)
	}

	return nil
}

// HealthCheck verifies the root directory exists.
func (p *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(p.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Close performs any necessary cleanup; nothing to do for files.
func (p *Persistence) Close(_ context.Context) error {
	return nil
}

// journeyPath maps a journey name to its document path. Names may contain
// spaces and separators, so they are escaped rather than used raw.
func (p *Persistence) journeyPath(name string) string {
	return filepath.Clean(path.Join(p.root, journeysDir, url.PathEscape(name)+".json"))
}
