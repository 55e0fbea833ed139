package location

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/burrow/internal/core/geom"
	"chosenoffset.com/burrow/internal/jsonfile"
	"chosenoffset.com/burrow/internal/world/room"
)

func TestLoadMeta(t *testing.T) {
	f := newFixture(t)
	l := f.newLocation(t, "tunnels", meta(map[string]any{"rec_lvl": 4, "worldmap_icon_big": true}), nil)

	assert.Equal(t, "tunnels", l.ID())
	assert.Equal(t, "Tunnels", l.Title())
	assert.Equal(t, "Dark and damp", l.Description())
	assert.False(t, l.IsGrind())
	assert.False(t, l.IsBasecamp())
	assert.Equal(t, 4, l.RecommendedLevel())
	assert.Equal(t, "tunnels", l.WorldMapIcon())
	assert.True(t, l.IsWorldMapIconBig())
	assert.Equal(t, geom.Vec2i{X: 120, Y: 340}, l.WorldMapCoords())
	assert.Equal(t, filepath.Join(f.dir, "rooms", "tunnels.json"), l.RoomDataPath())
	assert.False(t, l.ContentLoaded())
}

func TestLoadMetaDefaults(t *testing.T) {
	f := newFixture(t)
	l := f.newLocation(t, "tunnels", meta(map[string]any{"rooms": "shared"}), nil)

	assert.Equal(t, NoRecommendedLevel, l.RecommendedLevel())
	assert.False(t, l.IsWorldMapIconBig())
	assert.Equal(t, filepath.Join(f.dir, "rooms", "shared.json"), l.RoomDataPath())
}

func TestLoadMetaErrors(t *testing.T) {
	for name, m := range map[string]map[string]any{
		"grind basecamp":   meta(map[string]any{"grind": true, "basecamp": true}),
		"coords too large": meta(map[string]any{"worldmap_coords": []int{601, 0}}),
		"coords negative":  meta(map[string]any{"worldmap_coords": []int{-1, 0}}),
		"coords short":     meta(map[string]any{"worldmap_coords": []int{1}}),
		"negative level":   meta(map[string]any{"rec_lvl": -5}),
		"wrong type":       meta(map[string]any{"grind": "yes"}),
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := json.Marshal(m)
			require.NoError(t, err)
			err = New("x", nil, newFixture(t).env).LoadMeta(raw, "c")
			assert.ErrorIs(t, err, ErrBadMeta)
		})
	}

	for _, key := range []string{"title", "description", "grind", "basecamp", "worldmap_icon", "worldmap_coords"} {
		t.Run("missing "+key, func(t *testing.T) {
			m := meta(nil)
			delete(m, key)
			raw, err := json.Marshal(m)
			require.NoError(t, err)
			err = New("x", nil, newFixture(t).env).LoadMeta(raw, "c")
			assert.ErrorIs(t, err, ErrBadMeta)
			assert.ErrorIs(t, err, jsonfile.ErrMissingKey)
		})
	}
}

func TestLoadContent(t *testing.T) {
	f := newFixture(t)
	l := f.newLocation(t, "tunnels", meta(nil), map[string]any{
		"background_full": "canyon",
		"rooms": []any{
			roomNode([]int{1, 0, 0}, false, walledCells()),
			roomNode([]int{0, 0, 0}, true, walledCells()),
			roomNode([]int{0, 1, 0}, false, walledCells()),
		},
	})

	require.NoError(t, l.LoadContent())
	assert.True(t, l.ContentLoaded())
	assert.Equal(t, 3, l.RoomCount())
	assert.Equal(t, geom.Vec3i{}, l.PlayerRoomCoords())
	require.NotNil(t, l.CurrentRoom())
	assert.True(t, l.CurrentRoom().Initialized())
	assert.False(t, l.Room(geom.Vec3i{X: 1}).Initialized())
	assert.Equal(t, 1, f.mgr.RefCount("backgrounds/canyon.png"))
	assert.Greater(t, f.mgr.RefCount("cells/brick.png"), 0)
}

func TestLoadContentErrors(t *testing.T) {
	holed := walledCells()
	holed[5] = row(map[int]string{room.Width - 1: "A"})

	tests := map[string]struct {
		content map[string]any
		err     error
	}{
		"duplicate coords": {
			content: map[string]any{"rooms": []any{
				roomNode([]int{0, 0, 0}, true, walledCells()),
				roomNode([]int{0, 0, 0}, false, walledCells()),
			}},
			err: ErrDuplicateRoom,
		},
		"no start": {
			content: map[string]any{"rooms": []any{roomNode([]int{0, 0, 0}, false, walledCells())}},
			err:     ErrStartRoom,
		},
		"no rooms": {
			content: map[string]any{"rooms": []any{}},
			err:     ErrStartRoom,
		},
		"two starts": {
			content: map[string]any{"rooms": []any{
				roomNode([]int{0, 0, 0}, true, walledCells()),
				roomNode([]int{1, 0, 0}, true, walledCells()),
			}},
			err: ErrStartRoom,
		},
		"missing rooms": {
			content: map[string]any{},
			err:     jsonfile.ErrMissingKey,
		},
		"negative coords": {
			content: map[string]any{"rooms": []any{
				roomNode([]int{-1, 0, 0}, true, walledCells()),
				roomNode([]int{0, 0, 0}, false, walledCells()),
			}},
			err: ErrBadContent,
		},
		"negative layer": {
			content: map[string]any{"rooms": []any{roomNode([]int{0, 0, -2}, true, walledCells())}},
			err:     ErrBadContent,
		},
		"bad coords": {
			content: map[string]any{"rooms": []any{roomNode([]int{0, 0}, true, walledCells())}},
			err:     ErrBadContent,
		},
		"geometry": {
			content: map[string]any{"rooms": []any{
				roomNode([]int{0, 0, 0}, true, walledCells()),
				roomNode([]int{1, 0, 0}, false, holed),
			}},
			err: ErrGeometry,
		},
		"bad room": {
			content: map[string]any{"rooms": []any{roomNode([]int{0, 0, 0}, true, walledCells()[:3])}},
			err:     room.ErrBadRoom,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			l := f.newLocation(t, "tunnels", meta(nil), tt.content)

			err := l.LoadContent()
			assert.ErrorIs(t, err, tt.err)
			assert.False(t, l.ContentLoaded())
			assert.Zero(t, l.RoomCount())
			assert.Nil(t, l.CurrentRoom())
			assert.Zero(t, f.mgr.RefCount("cells/brick.png"))
			assert.Zero(t, f.renderer.Live())
			assert.Contains(t, f.log.String(), "Failed to load location tunnels")
		})
	}
}

func TestLoadContentMissingFile(t *testing.T) {
	f := newFixture(t)
	l := f.newLocation(t, "tunnels", meta(nil), nil)
	assert.ErrorIs(t, l.LoadContent(), ErrBadContent)
	assert.False(t, l.ContentLoaded())
}

func TestGrindSkipsGeometry(t *testing.T) {
	holed := walledCells()
	holed[5] = row(map[int]string{room.Width - 1: "A"})

	f := newFixture(t)
	l := f.newLocation(t, "arena", meta(map[string]any{"grind": true}), map[string]any{"rooms": []any{
		roomNode([]int{0, 0, 0}, true, walledCells()),
		roomNode([]int{1, 0, 0}, false, holed),
	}})
	require.NoError(t, l.LoadContent())
	assert.Equal(t, 2, l.RoomCount())
}

func TestUnloadContent(t *testing.T) {
	f := newFixture(t)
	l := f.newLocation(t, "tunnels", meta(nil), map[string]any{
		"background_full": "canyon",
		"rooms":           []any{roomNode([]int{0, 0, 0}, true, walledCells())},
	})
	require.NoError(t, l.LoadContent())

	l.UnloadContent()
	assert.False(t, l.ContentLoaded())
	assert.Zero(t, l.RoomCount())
	assert.Zero(t, f.mgr.RefCount("backgrounds/canyon.png"))
	assert.Zero(t, f.renderer.Live())
	assert.Greater(t, f.mgr.CleanUnused(), 0)
	assert.Equal(t, "Tunnels", l.Title())

	// loading again works from scratch
	require.NoError(t, l.LoadContent())
	assert.True(t, l.ContentLoaded())
}
