package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chosenoffset.com/burrow/internal/core/geom"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadOperands    = errors.New("invalid operands")
)

// Exec runs one console command:
//
//	where, whereami     log the current position
//	goto X Y [Z]        jump to a room of the current location
//	loc ID              travel to another location
//	box, boxen          toggle back object outlines
//	redraw              rebuild the current room
func (m *Manager) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch cmd, args := fields[0], fields[1:]; cmd {
	case "where", "whereami":
		m.World.LogWhereAmI()
	case "goto":
		coords, err := parseCoords(args)
		if err != nil {
			return err
		}
		if err := m.World.GotoRoomCoords(coords); err != nil {
			return err
		}
		m.World.LogWhereAmI()
	case "loc":
		if len(args) != 1 {
			return fmt.Errorf("%w: loc takes a location id", ErrBadOperands)
		}
		return m.World.ChangeLocation(args[0])
	case "box", "boxen":
		m.World.SetDebugBoxes(!m.World.DebugBoxes())
	case "redraw":
		m.World.Redraw()
	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, cmd)
	}
	return nil
}

// parseCoords reads 2 or 3 integers; Z defaults to 0.
func parseCoords(args []string) (geom.Vec3i, error) {
	if len(args) < 2 || len(args) > 3 {
		return geom.Vec3i{}, fmt.Errorf("%w: goto takes 2 or 3 numbers", ErrBadOperands)
	}
	var v [3]int
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return geom.Vec3i{}, fmt.Errorf("%w: %q", ErrBadOperands, a)
		}
		v[i] = n
	}
	return geom.Vec3i{X: v[0], Y: v[1], Z: v[2]}, nil
}

// ReadCommands sends every non-empty line of r on the returned channel until
// r ends or ctx is done. The channel is closed afterwards.
func ReadCommands(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case ch <- line:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
