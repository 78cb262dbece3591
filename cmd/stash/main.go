package main

import (
	"context"
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"stash/internal/assist"
	"stash/internal/config"
	"stash/internal/inventory"
	"stash/internal/store"
	"stash/internal/ui"
)

var (
	configFile = flag.String("config", "stash.yaml", "path to configuration file")
	dbPath     = flag.String("db", "", "path to the slot database (overrides config)")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	// The terminal belongs to the UI, so logs go to a file.
	logger, err := newLogger(cfg.LogPath)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logger.Sync()

	// Initialize the LLM
	model, err := assist.NewModel(context.Background(), cfg.Provider, cfg.APIKey, cfg.ChatModel)
	if err != nil {
		log.Fatalf("Failed to initialize LLM: %v", err)
	}
	client := assist.NewClient(model, cfg.ChatModel, cfg.VisionModel, logger)

	// Open the persistence slot
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	slot := store.NewSlotStore(db, cfg.Slot, logger)
	items := slot.Load()
	collection := inventory.NewCollection(items, slot)
	logger.Info("inventory loaded", zap.Int("items", len(items)))

	p := tea.NewProgram(ui.New(collection, client))
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}

func newLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
