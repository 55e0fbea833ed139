// Package campaign holds the locations of a campaign and decides which of
// them keep their rooms loaded as the player travels between them.
package campaign

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"sort"
	"time"

	"chosenoffset.com/burrow/internal/config"
	"chosenoffset.com/burrow/internal/core/geom"
	"chosenoffset.com/burrow/internal/entity"
	"chosenoffset.com/burrow/internal/jsonfile"
	"chosenoffset.com/burrow/internal/logging"
	"chosenoffset.com/burrow/internal/render"
	"chosenoffset.com/burrow/internal/resources"
	"chosenoffset.com/burrow/internal/world/location"
	"chosenoffset.com/burrow/internal/world/material"
	"chosenoffset.com/burrow/internal/world/object"
)

const (
	IndexFile     = "_index.json"
	LocationsFile = "locations.json"
)

var (
	ErrBadIndex        = errors.New("invalid campaign index")
	ErrUnknownLocation = errors.New("unknown location")
	ErrNotLoaded       = errors.New("no campaign loaded")
)

type indexNode struct {
	Title              *string `json:"title"`
	Description        *string `json:"description"`
	StartLocation      *string `json:"start_location"`
	WorldMapBackground string  `json:"worldmap_background"`
}

// Campaign is the top level of the loaded game world.
type Campaign struct {
	cfg      *config.Config
	renderer render.Renderer
	res      *resources.Manager
	log      *logging.Logger
	rng      *rand.Rand

	player    *entity.Player
	materials *material.Manager
	objects   *object.Manager
	env       *location.Env

	title              string
	description        string
	startLocation      string
	worldMapBackground string

	locations      map[string]*location.Location
	current        *location.Location
	lastUnloadable *location.Location
	loaded         bool
}

// New creates an empty campaign.
func New(cfg *config.Config, r render.Renderer, res *resources.Manager, log *logging.Logger, rng *rand.Rand) *Campaign {
	return &Campaign{
		cfg:       cfg,
		renderer:  r,
		res:       res,
		log:       log,
		rng:       rng,
		player:    entity.NewPlayer(),
		locations: make(map[string]*location.Location),
	}
}

// Load unloads the current campaign and loads the one with the given id
// from the campaigns directory. Metadata of every location is read; rooms
// are loaded only for the start location.
func (c *Campaign) Load(id string) error {
	c.Unload()

	dir := c.cfg.CampaignDir(id)
	c.log.Infof("Loading campaign %s", dir)

	if err := c.load(dir); err != nil {
		c.log.Errorf("Failed to load campaign %s: %v", id, err)
		c.Unload()
		return err
	}

	c.loaded = true
	c.log.Infof("Loaded campaign %q with %d locations", c.title, len(c.locations))
	return nil
}

func (c *Campaign) load(dir string) error {
	indexPath := filepath.Join(dir, IndexFile)
	var idx indexNode
	if err := jsonfile.Load(indexPath, &idx); err != nil {
		return fmt.Errorf("%w: %w", ErrBadIndex, err)
	}
	switch {
	case idx.Title == nil:
		return fmt.Errorf("%s: %w: %w", indexPath, ErrBadIndex, jsonfile.Missing("title"))
	case idx.Description == nil:
		return fmt.Errorf("%s: %w: %w", indexPath, ErrBadIndex, jsonfile.Missing("description"))
	case idx.StartLocation == nil:
		return fmt.Errorf("%s: %w: %w", indexPath, ErrBadIndex, jsonfile.Missing("start_location"))
	}
	c.title = *idx.Title
	c.description = *idx.Description
	c.startLocation = *idx.StartLocation
	c.worldMapBackground = idx.WorldMapBackground

	c.materials = material.NewManager()
	if err := c.materials.Load(c.cfg.MaterialsFile()); err != nil {
		return fmt.Errorf("materials: %w", err)
	}
	c.objects = object.NewManager(c.cfg.BackObjectsDir())
	if err := c.objects.Load(c.cfg.ObjectsFile()); err != nil {
		return fmt.Errorf("objects: %w", err)
	}

	c.env = &location.Env{
		Renderer:           c.renderer,
		Resources:          c.res,
		Materials:          c.materials,
		Objects:            c.objects,
		Paths:              c.cfg,
		Rand:               c.rng,
		Log:                c.log,
		TransitionDuration: c.cfg.RoomTransition(),
		DebugBoxes:         c.cfg.DebugBoundingBoxes,
	}

	var metas map[string]json.RawMessage
	if err := jsonfile.Load(filepath.Join(dir, LocationsFile), &metas); err != nil {
		return err
	}
	for id, raw := range metas {
		loc := location.New(id, c.player, c.env)
		if err := loc.LoadMeta(raw, dir); err != nil {
			return err
		}
		c.locations[id] = loc
	}

	return c.ChangeLocation(c.startLocation)
}

// Unload drops every location and frees their textures.
func (c *Campaign) Unload() {
	if c.current != nil {
		c.current.Leave()
	}
	for _, loc := range c.locations {
		loc.UnloadContent()
	}
	c.locations = make(map[string]*location.Location)
	c.current = nil
	c.lastUnloadable = nil
	c.title = ""
	c.description = ""
	c.startLocation = ""
	c.worldMapBackground = ""
	c.materials = nil
	c.objects = nil
	c.env = nil
	c.loaded = false
	if n := c.res.CleanUnused(); n > 0 {
		c.log.Debugf("Freed %d textures", n)
	}
}

// Loaded reports whether a campaign is loaded.
func (c *Campaign) Loaded() bool { return c.loaded }

// ChangeLocation travels to the location with the given id. The destination
// is loaded before anything else changes, so a failed load leaves the
// current location playable.
//
// Basecamps stay loaded once visited. Going from a non-basecamp to a
// basecamp keeps the outgoing location as the last unloadable one, which is
// dropped when the player leaves the basecamp for somewhere else.
func (c *Campaign) ChangeLocation(id string) error {
	if c.current != nil && c.current.ID() == id {
		return nil
	}
	next, ok := c.locations[id]
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownLocation, id)
		c.log.Errorf("Cannot change location: %v", err)
		return err
	}

	if !next.ContentLoaded() {
		if err := next.LoadContent(); err != nil {
			return err
		}
	}

	prev := c.current
	if prev != nil {
		switch {
		case !prev.IsBasecamp() && next.IsBasecamp():
			c.lastUnloadable = prev
		case !prev.IsBasecamp() && !next.IsBasecamp():
			prev.UnloadContent()
			c.lastUnloadable = nil
		case prev.IsBasecamp() && !next.IsBasecamp():
			if c.lastUnloadable != nil && c.lastUnloadable != next {
				c.lastUnloadable.UnloadContent()
			}
			c.lastUnloadable = nil
		}
		prev.Leave()
	}

	c.current = next
	next.Enter()
	c.player.SetVelocity(geom.Vec2f{})
	c.player.SetPosition(next.SpawnPosition())

	if n := c.res.CleanUnused(); n > 0 {
		c.log.Debugf("Freed %d textures", n)
	}
	c.log.Infof("Changed location to %s", id)
	return nil
}

// GotoRoom moves to the room next to the current one. The player keeps its
// place on screen.
func (c *Campaign) GotoRoom(dir geom.Direction) error {
	if !c.loaded {
		return ErrNotLoaded
	}
	if err := c.current.GotoRoom(dir, c.player.Center()); err != nil {
		c.log.Warnf("Cannot go %s: %v", dir, err)
		return err
	}
	return nil
}

// GotoRoomCoords jumps to the room at coords of the current location.
func (c *Campaign) GotoRoomCoords(coords geom.Vec3i) error {
	if !c.loaded {
		return ErrNotLoaded
	}
	if err := c.current.GotoRoomCoords(coords); err != nil {
		c.log.Warnf("Cannot go to %s: %v", coords, err)
		return err
	}
	return nil
}

// Redraw rebuilds the cached textures of the current room.
func (c *Campaign) Redraw() {
	if c.loaded {
		c.current.Redraw()
	}
}

// SetDebugBoxes switches back object outlines and redraws the current room.
func (c *Campaign) SetDebugBoxes(on bool) {
	if !c.loaded {
		return
	}
	c.env.DebugBoxes = on
	for _, loc := range c.locations {
		loc.SetDebugBoxes(on)
	}
	c.Redraw()
}

// DebugBoxes reports whether back object outlines are drawn.
func (c *Campaign) DebugBoxes() bool {
	return c.env != nil && c.env.DebugBoxes
}

// Tick advances the current location by d.
func (c *Campaign) Tick(d time.Duration) {
	if c.loaded {
		c.current.Tick(d)
	}
}

// NextFrame advances animations.
func (c *Campaign) NextFrame() {
	c.player.NextFrame()
}

// Draw draws the current location.
func (c *Campaign) Draw(target render.Image) {
	if c.loaded {
		c.current.Draw(target)
	}
}

// LogWhereAmI logs the current location, room and player position.
func (c *Campaign) LogWhereAmI() {
	if !c.loaded {
		c.log.Infof("No campaign loaded")
		return
	}
	pos := c.player.Position()
	c.log.Infof("Location %s, room %s, player at [%.0f, %.0f]",
		c.current.ID(), c.current.PlayerRoomCoords(), pos.X, pos.Y)
}

// Locations returns every location ordered by id.
func (c *Campaign) Locations() []*location.Location {
	out := make([]*location.Location, 0, len(c.locations))
	for _, loc := range c.locations {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Location returns the location with the given id, or nil.
func (c *Campaign) Location(id string) *location.Location { return c.locations[id] }

func (c *Campaign) CurrentLocation() *location.Location { return c.current }
func (c *Campaign) LastUnloadable() *location.Location  { return c.lastUnloadable }
func (c *Campaign) Player() *entity.Player              { return c.player }
func (c *Campaign) Title() string                       { return c.title }
func (c *Campaign) Description() string                 { return c.description }
func (c *Campaign) StartLocation() string               { return c.startLocation }
func (c *Campaign) WorldMapBackground() string          { return c.worldMapBackground }
