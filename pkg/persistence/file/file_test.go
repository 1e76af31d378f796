package file_test

import (
	"context"
	"testing"
	"time"

	"github.com/formforge/formforge/pkg/models"
	"github.com/formforge/formforge/pkg/persistence"
	"github.com/formforge/formforge/pkg/persistence/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJourney(name string) *models.Journey {
	return &models.Journey{
		ID:        "test-id-" + name,
		Name:      name,
		Fields:    models.DefaultFields(),
		Type:      models.JourneyTypeStandard,
		Timestamp: time.Now().UTC().Truncate(time.Second),
		CreatedBy: "tester",
	}
}

func TestSaveAndFetchJourney(t *testing.T) {
	ctx := context.Background()
	p := file.NewPersistence(t.TempDir())

	journey := testJourney("Mortgage application")
	require.NoError(t, p.SaveJourney(ctx, journey))

	loaded, err := p.JourneyByName(ctx, "Mortgage application")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, journey.ID, loaded.ID)
	assert.Equal(t, journey.Fields, loaded.Fields)
	assert.Equal(t, journey.CreatedBy, loaded.CreatedBy)
}

func TestJourneyByName_MissingYieldsNilNil(t *testing.T) {
	p := file.NewPersistence(t.TempDir())

	journey, err := p.JourneyByName(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, journey)
}

func TestJourneys_ListsEverySavedJourney(t *testing.T) {
	ctx := context.Background()
	p := file.NewPersistence(t.TempDir())

	require.NoError(t, p.SaveJourney(ctx, testJourney("Alpha")))
	require.NoError(t, p.SaveJourney(ctx, testJourney("Beta / with separator")))

	journeys, err := p.Journeys(ctx)
	require.NoError(t, err)
	require.Len(t, journeys, 2)

	names := []string{journeys[0].Name, journeys[1].Name}
	assert.ElementsMatch(t, []string{"Alpha", "Beta / with separator"}, names)
}

func TestJourneys_EmptyRoot(t *testing.T) {
	p := file.NewPersistence(t.TempDir())

	journeys, err := p.Journeys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, journeys)
}

func TestSaveJourney_OverwritesExisting(t *testing.T) {
	ctx := context.Background()
	p := file.NewPersistence(t.TempDir())

	journey := testJourney("Alpha")
	require.NoError(t, p.SaveJourney(ctx, journey))

	journey.LastModifiedBy = "editor"
	require.NoError(t, p.SaveJourney(ctx, journey))

	loaded, err := p.JourneyByName(ctx, "Alpha")
	require.NoError(t, err)
	assert.Equal(t, "editor", loaded.LastModifiedBy)

	journeys, err := p.Journeys(ctx)
	require.NoError(t, err)
	assert.Len(t, journeys, 1)
}

func TestDeleteJourney(t *testing.T) {
	ctx := context.Background()
	p := file.NewPersistence(t.TempDir())

	require.NoError(t, p.SaveJourney(ctx, testJourney("Alpha")))
	require.NoError(t, p.DeleteJourney(ctx, "Alpha"))

	journey, err := p.JourneyByName(ctx, "Alpha")
	require.NoError(t, err)
	assert.Nil(t, journey)
}

func TestDeleteJourney_MissingReturnsNotFound(t *testing.T) {
	p := file.NewPersistence(t.TempDir())

	err := p.DeleteJourney(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, persistence.IsJourneyNotFound(err))
}

func TestNewPersistence_StripsFileScheme(t *testing.T) {
	dir := t.TempDir()
	p := file.NewPersistence("file://" + dir)

	require.NoError(t, p.SaveJourney(context.Background(), testJourney("Alpha")))
	assert.NoError(t, p.HealthCheck(context.Background()))
}

func TestHealthCheck_MissingRootFails(t *testing.T) {
	p := file.NewPersistence("/definitely/not/here")
	assert.Error(t, p.HealthCheck(context.Background()))
}
