package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"chosenoffset.com/burrow/internal/config"
	"chosenoffset.com/burrow/internal/logging"
	"chosenoffset.com/burrow/internal/placeholders"
	"chosenoffset.com/burrow/internal/world/material"
	"chosenoffset.com/burrow/internal/world/object"
)

func main() {
	configPath := flag.String("config", "burrow.yaml", "settings file")
	overwrite := flag.Bool("overwrite", false, "replace textures that already exist")
	backgrounds := flag.String("backgrounds", "", "comma separated background names to generate")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Placeholder Texture Generator")
	fmt.Println("=============================")

	if err := generate(cfg, *overwrite, *backgrounds); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func generate(cfg *config.Config, overwrite bool, backgrounds string) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stdout, level)

	mats := material.NewManager()
	if err := mats.Load(cfg.MaterialsFile()); err != nil {
		return err
	}
	objs := object.NewManager(cfg.BackObjectsDir())
	if err := objs.Load(cfg.ObjectsFile()); err != nil {
		return err
	}

	gen := &placeholders.Generator{Paths: cfg, Overwrite: overwrite, Log: logger}
	if err := gen.Materials(mats); err != nil {
		return err
	}
	if err := gen.Objects(objs); err != nil {
		return err
	}
	for _, name := range strings.Split(backgrounds, ",") {
		if name = strings.TrimSpace(name); name != "" {
			if err := gen.Background(name); err != nil {
				return err
			}
		}
	}

	fmt.Printf("Done! Wrote %d placeholder textures.\n", len(gen.Written()))
	return nil
}
