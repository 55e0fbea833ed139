// Package location implements a playable area made of rooms: its world map
// metadata, loading and unloading of its rooms, and moving the player
// between them with a sliding transition.
package location

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"chosenoffset.com/burrow/internal/core/geom"
	"chosenoffset.com/burrow/internal/entity"
	"chosenoffset.com/burrow/internal/jsonfile"
	"chosenoffset.com/burrow/internal/logging"
	"chosenoffset.com/burrow/internal/render"
	"chosenoffset.com/burrow/internal/resources"
	"chosenoffset.com/burrow/internal/world/grid"
	"chosenoffset.com/burrow/internal/world/object"
	"chosenoffset.com/burrow/internal/world/room"
)

// WorldMapMax is the largest world map coordinate of a location icon.
const WorldMapMax = 600

// NoRecommendedLevel marks a location without a recommended level.
const NoRecommendedLevel = -1

var (
	ErrBadMeta       = errors.New("invalid location metadata")
	ErrBadContent    = errors.New("invalid location content")
	ErrDuplicateRoom = errors.New("duplicate room coordinates")
	ErrStartRoom     = errors.New("location needs exactly one start room")
	ErrGeometry      = errors.New("room borders do not match")
	ErrNotLoaded     = errors.New("location content not loaded")
)

// Paths maps texture names to files.
type Paths interface {
	CellTexture(name string) string
	BackgroundTexture(name string) string
}

// Env holds the shared services a location works with.
type Env struct {
	Renderer  render.Renderer
	Resources *resources.Manager
	Materials room.MaterialSource
	Objects   *object.Manager
	Paths     Paths
	Rand      *rand.Rand
	Log       *logging.Logger

	TransitionDuration time.Duration
	DebugBoxes         bool
}

// Location is one location of a campaign. Metadata stays loaded for the
// whole campaign; rooms are loaded only while needed.
type Location struct {
	id     string
	env    *Env
	player *entity.Player

	title            string
	description      string
	grind            bool
	basecamp         bool
	recommendedLevel int
	worldMapIcon     string
	worldMapIconBig  bool
	worldMapCoords   geom.Vec2i
	roomDataPath     string

	loaded         bool
	rooms          *grid.Grid
	scope          *resources.Scope
	assets         *room.Assets
	backgroundFull render.Image
	transition     transition
}

// New creates a location without metadata.
func New(id string, player *entity.Player, env *Env) *Location {
	return &Location{
		id:               id,
		env:              env,
		player:           player,
		recommendedLevel: NoRecommendedLevel,
		rooms:            grid.New(),
	}
}

type metaNode struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Grind           *bool   `json:"grind"`
	Basecamp        *bool   `json:"basecamp"`
	RecommendedLvl  *int    `json:"rec_lvl"`
	Rooms           string  `json:"rooms"`
	WorldMapIcon    *string `json:"worldmap_icon"`
	WorldMapCoords  []int   `json:"worldmap_coords"`
	WorldMapIconBig bool    `json:"worldmap_icon_big"`
}

// LoadMeta reads the world map metadata of the location. The rooms file is
// "<campaignDir>/rooms/<rooms or id>.json".
func (l *Location) LoadMeta(raw json.RawMessage, campaignDir string) error {
	var n metaNode
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("location %q: %w: %v", l.id, ErrBadMeta, err)
	}

	missing := func(key string) error {
		return fmt.Errorf("location %q: %w: %w", l.id, ErrBadMeta, jsonfile.Missing(key))
	}
	switch {
	case n.Title == nil:
		return missing("title")
	case n.Description == nil:
		return missing("description")
	case n.Grind == nil:
		return missing("grind")
	case n.Basecamp == nil:
		return missing("basecamp")
	case n.WorldMapIcon == nil:
		return missing("worldmap_icon")
	case n.WorldMapCoords == nil:
		return missing("worldmap_coords")
	}

	if *n.Grind && *n.Basecamp {
		return fmt.Errorf("location %q: %w: cannot be both grind and basecamp", l.id, ErrBadMeta)
	}
	if len(n.WorldMapCoords) != 2 {
		return fmt.Errorf("location %q: %w: \"worldmap_coords\" must hold 2 numbers", l.id, ErrBadMeta)
	}
	if n.RecommendedLvl != nil && *n.RecommendedLvl < 0 {
		return fmt.Errorf("location %q: %w: negative \"rec_lvl\" %d", l.id, ErrBadMeta, *n.RecommendedLvl)
	}
	x, y := n.WorldMapCoords[0], n.WorldMapCoords[1]
	if x < 0 || y < 0 || x > WorldMapMax || y > WorldMapMax {
		return fmt.Errorf("location %q: %w: world map coordinates [%d, %d] outside 0..%d", l.id, ErrBadMeta, x, y, WorldMapMax)
	}

	l.title = *n.Title
	l.description = *n.Description
	l.grind = *n.Grind
	l.basecamp = *n.Basecamp
	l.recommendedLevel = NoRecommendedLevel
	if n.RecommendedLvl != nil {
		l.recommendedLevel = *n.RecommendedLvl
	}
	l.worldMapIcon = *n.WorldMapIcon
	l.worldMapIconBig = n.WorldMapIconBig
	l.worldMapCoords = geom.Vec2i{X: x, Y: y}

	rooms := n.Rooms
	if rooms == "" {
		rooms = l.id
	}
	l.roomDataPath = filepath.Join(campaignDir, "rooms", rooms+".json")
	return nil
}

func (l *Location) ID() string                 { return l.id }
func (l *Location) Title() string              { return l.title }
func (l *Location) Description() string        { return l.description }
func (l *Location) IsGrind() bool              { return l.grind }
func (l *Location) IsBasecamp() bool           { return l.basecamp }
func (l *Location) RecommendedLevel() int      { return l.recommendedLevel }
func (l *Location) WorldMapIcon() string       { return l.worldMapIcon }
func (l *Location) IsWorldMapIconBig() bool    { return l.worldMapIconBig }
func (l *Location) WorldMapCoords() geom.Vec2i { return l.worldMapCoords }

// RoomDataPath returns the file the rooms are loaded from.
func (l *Location) RoomDataPath() string { return l.roomDataPath }

// ContentLoaded reports whether the rooms are resident.
func (l *Location) ContentLoaded() bool { return l.loaded }

// RoomCount returns the number of loaded rooms.
func (l *Location) RoomCount() int { return l.rooms.Len() }

// CurrentRoom returns the room the player is in, or nil when unloaded.
func (l *Location) CurrentRoom() *room.Room {
	if !l.loaded {
		return nil
	}
	return l.rooms.Current()
}

// Room returns the loaded room at coords, or nil.
func (l *Location) Room(coords geom.Vec3i) *room.Room { return l.rooms.Get(coords) }
