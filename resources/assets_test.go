package resources

import (
	"io/fs"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledLogos(t *testing.T) {
	for _, name := range []string{"work.png", "break.png", "paused.png"} {
		resource, err := Logo(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, resource.Content())
		assert.Same(t, resource, MustLogo(name))
	}

	_, err := Logo("missing.png")
	assert.Error(t, err)
}

func TestBundledChime(t *testing.T) {
	chime, err := Sound("chime.wav")
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(chime[:4]))
}

func TestBundledSprites(t *testing.T) {
	entries, err := fs.ReadDir(Sprites(), path.Join(SpriteRoot, DefaultPet))
	require.NoError(t, err)
	assert.Len(t, entries, 12)
}
