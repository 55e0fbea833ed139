package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"chosenoffset.com/burrow/internal/campaign"
	"chosenoffset.com/burrow/internal/config"
	"chosenoffset.com/burrow/internal/game"
	"chosenoffset.com/burrow/internal/logging"
	ebitenrender "chosenoffset.com/burrow/internal/render/ebiten"
	"chosenoffset.com/burrow/internal/resources"
	"chosenoffset.com/burrow/internal/world/room"
)

func main() {
	configPath := flag.String("config", "burrow.yaml", "settings file")
	campaignID := flag.String("campaign", "", "campaign to load")
	list := flag.Bool("list", false, "list the available campaigns and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if *list {
		entries, err := campaign.Scan(cfg.Paths.Campaigns)
		if err != nil {
			log.Fatalf("Failed to scan campaigns: %v", err)
		}
		for _, e := range entries {
			fmt.Printf("%-20s %s\n", e.ID, e.Title)
		}
		return
	}

	if err := run(cfg, *campaignID); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config, campaignID string) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, err := logging.Open(cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer logger.Close()

	if campaignID == "" {
		entries, err := campaign.Scan(cfg.Paths.Campaigns)
		if err != nil {
			return fmt.Errorf("failed to scan campaigns: %w", err)
		}
		if len(entries) == 0 {
			return fmt.Errorf("no campaigns found in %s", cfg.Paths.Campaigns)
		}
		campaignID = entries[0].ID
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	seed := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewPCG(seed, seed>>32))

	res := resources.NewManager(loader)
	world := campaign.New(cfg, renderer, res, logger, rng)
	if err := world.Load(campaignID); err != nil {
		return err
	}
	defer world.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gameManager := game.NewManager(world, inputMgr, logger)
	gameManager.SetCommands(game.ReadCommands(ctx, os.Stdin))

	engine.SetWindowSize(int(room.GameAreaWidth*cfg.Window.Scale), int(room.GameAreaHeight*cfg.Window.Scale))
	engine.SetWindowTitle(cfg.Window.Title + " - " + world.Title())
	engine.SetWindowResizable(cfg.Window.Resizable)

	logger.Infof("Starting campaign %s", campaignID)
	if err := engine.RunGame(gameManager); err != nil && !errors.Is(err, game.ErrQuit) {
		return err
	}
	return nil
}
