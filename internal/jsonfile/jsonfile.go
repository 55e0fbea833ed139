// Package jsonfile reads the game's JSON data files.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"chosenoffset.com/burrow/internal/core/geom"
)

// ErrMissingKey reports a required key absent from a data file.
var ErrMissingKey = errors.New("missing key")

// Load reads path and unmarshals it into v.
func Load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Missing builds an ErrMissingKey error naming key.
func Missing(key string) error {
	return fmt.Errorf("%w %q", ErrMissingKey, key)
}

// Vec2i converts a two element array into a vector.
func Vec2i(key string, vals []int) (geom.Vec2i, error) {
	if len(vals) != 2 {
		return geom.Vec2i{}, fmt.Errorf("key %q must hold 2 numbers, got %d", key, len(vals))
	}
	return geom.Vec2i{X: vals[0], Y: vals[1]}, nil
}

// Vec3i converts a three element array into a vector.
func Vec3i(key string, vals []int) (geom.Vec3i, error) {
	if len(vals) != 3 {
		return geom.Vec3i{}, fmt.Errorf("key %q must hold 3 numbers, got %d", key, len(vals))
	}
	return geom.Vec3i{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}
