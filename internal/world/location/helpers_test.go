package location

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chosenoffset.com/burrow/internal/entity"
	"chosenoffset.com/burrow/internal/logging"
	"chosenoffset.com/burrow/internal/render/rendertest"
	"chosenoffset.com/burrow/internal/resources"
	"chosenoffset.com/burrow/internal/world/material"
	"chosenoffset.com/burrow/internal/world/object"
	"chosenoffset.com/burrow/internal/world/room"
)

type testPaths struct{}

func (testPaths) CellTexture(name string) string       { return path.Join("cells", name+".png") }
func (testPaths) BackgroundTexture(name string) string { return path.Join("backgrounds", name+".png") }

type fixture struct {
	dir      string
	env      *Env
	renderer *rendertest.Renderer
	mgr      *resources.Manager
	player   *entity.Player
	log      *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mats := material.NewManager()
	mats.Add(material.Material{Symbol: 'A', Type: material.Solid, Texture: "brick"})
	mats.Add(material.Material{Symbol: 'b', Type: material.Background, Texture: "wall"})

	objs := object.NewManager("objs")
	objs.AddBackObject("door", object.BackObject{MainCount: 1})

	r := &rendertest.Renderer{}
	mgr := resources.NewManager(&rendertest.Loader{})
	var buf bytes.Buffer
	return &fixture{
		dir: t.TempDir(),
		env: &Env{
			Renderer:  r,
			Resources: mgr,
			Materials: mats,
			Objects:   objs,
			Paths:     testPaths{},
			Rand:      rand.New(rand.NewPCG(1, 2)),
			Log:       logging.New(&buf, logging.DEBUG),

			TransitionDuration: 400 * time.Millisecond,
		},
		renderer: r,
		mgr:      mgr,
		player:   entity.NewPlayer(),
		log:      &buf,
	}
}

func writeJSON(t *testing.T, file string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	require.NoError(t, os.WriteFile(file, data, 0o644))
}

func meta(extra map[string]any) map[string]any {
	m := map[string]any{
		"title":           "Tunnels",
		"description":     "Dark and damp",
		"grind":           false,
		"basecamp":        false,
		"worldmap_icon":   "tunnels",
		"worldmap_coords": []int{120, 340},
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

// newLocation creates a location with metadata and writes its rooms file.
func (f *fixture) newLocation(t *testing.T, id string, m map[string]any, content map[string]any) *Location {
	t.Helper()
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	l := New(id, f.player, f.env)
	require.NoError(t, l.LoadMeta(raw, f.dir))
	if content != nil {
		writeJSON(t, l.RoomDataPath(), content)
	}
	return l
}

func roomNode(coords []int, start bool, cells []string) map[string]any {
	return map[string]any{
		"coords":   coords,
		"is_start": start,
		"cells":    cells,
	}
}

func row(groups map[int]string) string {
	parts := make([]string, room.Width)
	for i := range parts {
		parts[i] = "_"
	}
	for x, g := range groups {
		parts[x] = g
	}
	return strings.Join(parts, "|")
}

func walledCells() []string {
	rows := make([]string, room.Height)
	full := map[int]string{}
	for x := 0; x < room.Width; x++ {
		full[x] = "A"
	}
	for y := range rows {
		if y == 0 || y == room.Height-1 {
			rows[y] = row(full)
			continue
		}
		rows[y] = row(map[int]string{0: "A", room.Width - 1: "A"})
	}
	return rows
}

// openCells returns rows without any solid.
func openCells() []string {
	rows := make([]string, room.Height)
	for y := range rows {
		rows[y] = row(nil)
	}
	return rows
}
