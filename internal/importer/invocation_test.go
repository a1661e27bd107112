package importer

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvocation(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		query   string
		action  string
		options url.Values
	}{
		{"plugin url", "plugin://mediaimport/import", "?mediatypes=movie&mediatypes=episode", "import", url.Values{"mediatypes": {"movie", "episode"}}},
		{"leading slash", "/canimport", "path=http%3A%2F%2Fhost%2Fa", "canimport", url.Values{"path": {"http://host/a"}}},
		{"bare action", "isproviderready", "", "isproviderready", url.Values{}},
		{"nested path", "plugin://mediaimport/settings/forcesync/", "?", "forcesync", url.Values{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := ParseInvocation(tt.path, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.action, inv.Action)
			assert.Equal(t, tt.options, inv.Options)
		})
	}
}

func TestParseInvocation_NoAction(t *testing.T) {
	_, err := ParseInvocation("plugin://mediaimport/", "")
	assert.ErrorIs(t, err, ErrNoAction)
}

func TestParseInvocation_BadQuery(t *testing.T) {
	_, err := ParseInvocation("import", "?mediatypes=%zz")
	assert.Error(t, err)
}

func TestMediaTypes(t *testing.T) {
	assert.Equal(t, []string{"movie", "set"}, mediaTypes(url.Values{"mediatypes": {"movie", "set"}}))
	assert.Equal(t, []string{"episode"}, mediaTypes(url.Values{"mediatypes[]": {"episode"}}))
	assert.Equal(t, []string{"movie", "set"}, mediaTypes(url.Values{"mediatypes": {"movie, set"}}))
	assert.Empty(t, mediaTypes(url.Values{"mediatypes": {""}}))
	assert.Empty(t, mediaTypes(url.Values{}))
	assert.Empty(t, mediaTypes(nil))
	assert.Equal(t, []string{"movie"}, mediaTypes(url.Values{"mediatypes": {""}, "mediatypes[]": {"movie"}}))
	assert.Equal(t, []string{"set"}, mediaTypes(url.Values{"mediatypes": {" , "}, "mediatypes[]": {"", "set"}}))
	assert.Equal(t, []string{"movie"}, mediaTypes(url.Values{"mediatypes": {"movie"}, "mediatypes[]": {"set"}}))
}

func TestMediaTypes_BlankKeyFallsBack(t *testing.T) {
	inv, err := ParseInvocation("plugin://mediaimport/import", "?mediatypes=&mediatypes[]=movie")
	require.NoError(t, err)
	assert.Equal(t, []string{"movie"}, mediaTypes(inv.Options))
}
