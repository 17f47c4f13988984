package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/npc-engine/internal/config"
	"github.com/jwebster45206/npc-engine/internal/events"
	"github.com/jwebster45206/npc-engine/internal/logger"
	"github.com/jwebster45206/npc-engine/internal/storage"
	"github.com/jwebster45206/npc-engine/pkg/sim"
)

const snapshotInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)
	log.Info("Starting NPC simulation daemon",
		"environment", cfg.Environment,
		"tick", cfg.TickInterval,
		"data_dir", cfg.DataDir)

	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer storageCancel()
	if err := store.Ping(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established")

	worldID := uuid.New()
	if cfg.WorldID != "" {
		parsed, err := uuid.Parse(cfg.WorldID)
		if err != nil {
			log.Error("WORLD_ID must be a UUID", "world_id", cfg.WorldID, "error", err)
			os.Exit(1)
		}
		worldID = parsed
	}

	broadcaster, err := events.NewBroadcaster(cfg.RedisURL, worldID.String(), log)
	if err != nil {
		log.Error("Failed to create event broadcaster", "error", err)
		os.Exit(1)
	}

	manager := sim.NewManager(log, sim.WithEvents(broadcaster))

	defs, err := store.LoadAllDefinitions(storageCtx)
	if err != nil {
		log.Error("Failed to load NPC definitions", "error", err)
		os.Exit(1)
	}
	spawned := manager.SpawnAll(defs)
	log.Info("World populated", "world", worldID, "npcs", spawned, "definitions", len(defs))

	if cfg.WorldID != "" {
		ws, err := store.LoadWorldState(storageCtx, worldID)
		if err != nil {
			log.Error("Failed to load world state", "world", worldID, "error", err)
			os.Exit(1)
		}
		if ws != nil {
			manager.Restore(ws)
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()
	snapshots := time.NewTicker(snapshotInterval)
	defer snapshots.Stop()

	log.Info("Simulation loop running", "events_channel", broadcaster.Channel())
	last := time.Now()

loop:
	for {
		select {
		case now := <-ticker.C:
			manager.Tick(now.Sub(last))
			last = now
		case <-snapshots.C:
			saveSnapshot(store, manager, worldID, log)
		case <-quit:
			break loop
		}
	}

	log.Info("Simulation shutting down...")
	saveSnapshot(store, manager, worldID, log)

	if err := broadcaster.Close(); err != nil {
		log.Error("Error closing broadcaster", "error", err)
	}
	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}
	log.Info("Simulation exited")
}

func saveSnapshot(store storage.Storage, manager *sim.Manager, worldID uuid.UUID, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.SaveWorldState(ctx, worldID, manager.Snapshot(worldID)); err != nil {
		log.Error("Failed to save world state", "world", worldID, "error", err)
	}
}
