package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/milk9111/campfire/sound"
)

//go:embed sounds/*.wav
var soundsFS embed.FS

// Dir is the on-disk asset directory checked before the embedded copy.
var Dir = "assets"

// LoadFile loads an asset by assets-relative path, preferring the disk copy.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, fmt.Errorf("assets: empty path")
	}
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return soundsFS.ReadFile(clean)
}

// DecodeSound opens a sound resource. Bare names resolve under sounds/ with
// a .wav extension.
func DecodeSound(res sound.Resource) (beep.StreamSeekCloser, beep.Format, error) {
	path := soundPath(res)
	data, err := LoadFile(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("assets: load %s: %w", path, err)
	}
	stream, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("assets: decode wav %q: %w", path, err)
	}
	return stream, format, nil
}

func soundPath(res sound.Resource) string {
	s := cleanAssetPath(strings.TrimSpace(string(res)))
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "/") {
		s = "sounds/" + s
	}
	if filepath.Ext(s) == "" {
		s += ".wav"
	}
	return s
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(s, "assets/")
}
