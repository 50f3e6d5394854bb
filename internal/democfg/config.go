// Package democfg loads the renderer settings for cmd/microvoxeldemo from
// a TOML file, following noisetorch-NoiseTorch's config.go pattern. The
// microvoxel core library itself is never configured this way; it only
// takes functional options (VisibilityOption).
package democfg

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the demo command's renderer and scene settings.
type Config struct {
	MaskWidth        int     `toml:"mask_width"`
	MaskHeight       int     `toml:"mask_height"`
	MaxFootprintSize float64 `toml:"max_footprint_size"`
	MaxGlyphs        int     `toml:"max_glyphs"`

	CameraEyeX float64 `toml:"camera_eye_x"`
	CameraEyeY float64 `toml:"camera_eye_y"`
	CameraEyeZ float64 `toml:"camera_eye_z"`

	CameraTargetX float64 `toml:"camera_target_x"`
	CameraTargetY float64 `toml:"camera_target_y"`
	CameraTargetZ float64 `toml:"camera_target_z"`

	FovYDegrees float64 `toml:"fov_y_degrees"`
}

// Default returns the settings the demo uses when no config file is given.
func Default() Config {
	return Config{
		MaskWidth:        256,
		MaskHeight:       256,
		MaxFootprintSize: 0.3,
		MaxGlyphs:        4096,
		CameraEyeX:       24, CameraEyeY: 18, CameraEyeZ: 24,
		FovYDegrees: 60,
	}
}

// Load reads and decodes a TOML config file, starting from Default() so a
// partial file only overrides the fields it sets.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("democfg: couldn't read config file %q: %w", path, err)
	}
	return cfg, nil
}

// Write encodes cfg as TOML and saves it to path.
func Write(path string, cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(&cfg); err != nil {
		return fmt.Errorf("democfg: couldn't encode config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
