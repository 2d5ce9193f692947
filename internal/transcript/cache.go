package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// CachePath derives the sidecar cache path for a media file, replacing
// its extension with ".transcript_cache.json" the same way the source
// derives it from the media path's suffix.
func CachePath(mediaPath string) string {
	if dot := strings.LastIndexByte(mediaPath, '.'); dot >= 0 {
		return mediaPath[:dot] + ".transcript_cache.json"
	}
	return mediaPath + ".transcript_cache.json"
}

// Write serialises the cache next to the media file. A failure to write
// is logged by the caller and never aborts transcription — the cache is
// an optimisation, not the primary output.
func Write(mediaPath string, cache *Cache) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transcript cache: %w", err)
	}
	if err := os.WriteFile(CachePath(mediaPath), data, 0o644); err != nil {
		return fmt.Errorf("write transcript cache: %w", err)
	}
	return nil
}

// Load reads a previously written cache, if present. A missing cache is
// not an error: callers treat it as "no cache yet" per §3's "either
// fully valid or absent" invariant.
func Load(mediaPath string) (*Cache, error) {
	data, err := os.ReadFile(CachePath(mediaPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read transcript cache: %w", err)
	}
	var cache Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("unmarshal transcript cache: %w", err)
	}
	return &cache, nil
}
