package endpoint

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpointLocal(t *testing.T) {
	ep, err := ParseEndpoint("./data")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(ep.Path))
	assert.Equal(t, "data", filepath.Base(ep.Path))
}

func TestParseEndpointRemoteRejected(t *testing.T) {
	_, err := ParseEndpoint("user@example.com:/var/data")
	require.ErrorIs(t, err, ErrRemoteUnsupported)

	_, err = ParseEndpoint("   ")
	require.Error(t, err)
}

func TestEndpointContains(t *testing.T) {
	root := Endpoint{Path: filepath.FromSlash("/srv/data")}
	assert.True(t, root.Contains(Endpoint{Path: filepath.FromSlash("/srv/data")}))
	assert.True(t, root.Contains(Endpoint{Path: filepath.FromSlash("/srv/data/backup")}))
	assert.False(t, root.Contains(Endpoint{Path: filepath.FromSlash("/srv/data-copy")}))
	assert.False(t, root.Contains(Endpoint{Path: filepath.FromSlash("/srv")}))
}

func TestShouldExclude(t *testing.T) {
	patterns := []string{"*.tmp", "cache/*", " "}
	assert.True(t, ShouldExclude("a/b/c.tmp", patterns))
	assert.True(t, ShouldExclude("cache/x", patterns))
	assert.False(t, ShouldExclude("a/b/c.txt", patterns))
	assert.False(t, ShouldExclude(".", patterns))
	assert.False(t, ShouldExclude("c.tmp", nil))
}
