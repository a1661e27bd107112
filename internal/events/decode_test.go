package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/mediaimport/internal/host"
)

func TestDecode_RoundTripsThroughLog(t *testing.T) {
	log := NewEventLog(setupTestDB(t))

	p := host.Provider{ID: "p1", FriendlyName: "Den", MediaTypes: []string{host.MediaTypeMovie}}
	_, err := log.Append(NewProviderEvent(EventProviderAdded, p))
	require.NoError(t, err)

	records, err := log.ForEntity(EntityProvider, "p1")
	require.NoError(t, err)
	require.Len(t, records, 1)

	e, err := Decode(records[0])
	require.NoError(t, err)
	pe, ok := e.(*ProviderEvent)
	require.True(t, ok)
	assert.Equal(t, EventProviderAdded, pe.EventType())
	assert.Equal(t, "Den", pe.Provider.FriendlyName)
	assert.Equal(t, []string{host.MediaTypeMovie}, pe.Provider.MediaTypes)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(Record{Type: "library.scanned", Payload: `{}`})
	require.ErrorIs(t, err, ErrUnknownType)

	_, err = Decode(Record{Type: EventImportAdded, Payload: `{not json`})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownType)
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(EventProviderDeactivated))
	assert.True(t, Known(EventImportRemoved))
	assert.False(t, Known("provider"))
}
