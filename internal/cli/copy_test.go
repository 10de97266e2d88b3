package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetAngels/openssh-wrapper/internal/errors"
)

func TestBuildSourcesPaths(t *testing.T) {
	sources, err := buildSources([]string{"a.txt", "dir/b.txt"})
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.True(t, sources[0].IsPath())
	assert.True(t, sources[1].IsPath())
}

func TestBuildSourcesStdin(t *testing.T) {
	origName := copyStdinName
	copyStdinName = "dump.sql"
	defer func() { copyStdinName = origName }()

	sources, err := buildSources([]string{"-", "a.txt"})
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.False(t, sources[0].IsPath())
	assert.True(t, sources[1].IsPath())
}

func TestBuildSourcesRejectsDoubleStdin(t *testing.T) {
	_, err := buildSources([]string{"-", "-"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrValidation))
}
