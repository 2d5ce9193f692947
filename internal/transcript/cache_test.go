package transcript

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCachePathReplacesExtension(t *testing.T) {
	require.Equal(t, "/videos/clip.transcript_cache.json", CachePath("/videos/clip.mp4"))
	require.Equal(t, "noext.transcript_cache.json", CachePath("noext"))
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "source.mp4")

	original := &Cache{
		Words: []Word{
			{Text: "hello", StartMS: 0, EndMS: 250, Confidence: 0.98},
			{Text: "world", StartMS: 250, EndMS: 500, Confidence: 0.91},
		},
		Text:     "hello world",
		Language: "en",
	}

	require.NoError(t, Write(mediaPath, original))

	loaded, err := Load(mediaPath)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, original.Words, loaded.Words)
	require.Equal(t, original.Text, loaded.Text)
	require.Equal(t, original.Language, loaded.Language)
}

func TestLoadMissingCacheIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	loaded, err := Load(filepath.Join(dir, "nothing.mp4"))
	require.NoError(t, err)
	require.Nil(t, loaded)
}
