package jsonfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/burrow/internal/core/geom"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title": "Stable"}`), 0o644))

	var v struct {
		Title string `json:"title"`
	}
	require.NoError(t, Load(path, &v))
	assert.Equal(t, "Stable", v.Title)

	require.NoError(t, os.WriteFile(path, []byte(`{"title": 5}`), 0o644))
	assert.Error(t, Load(path, &v))
	assert.True(t, errors.Is(Load(filepath.Join(t.TempDir(), "x.json"), &v), os.ErrNotExist))
}

func TestVectors(t *testing.T) {
	v2, err := Vec2i("coords", []int{3, 4})
	require.NoError(t, err)
	assert.Equal(t, geom.Vec2i{X: 3, Y: 4}, v2)

	_, err = Vec2i("coords", []int{3})
	assert.Error(t, err)

	v3, err := Vec3i("coords", []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, geom.Vec3i{X: 1, Y: 2, Z: 3}, v3)

	_, err = Vec3i("coords", nil)
	assert.Error(t, err)

	assert.ErrorIs(t, Missing("cells"), ErrMissingKey)
}
