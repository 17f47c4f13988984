package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/npc-engine/internal/storage"
	"github.com/jwebster45206/npc-engine/pkg/actor"
	"github.com/jwebster45206/npc-engine/pkg/mission"
	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/relationship"
	"github.com/jwebster45206/npc-engine/pkg/shop"
	"github.com/jwebster45206/npc-engine/pkg/sim"
)

func main() {
	dataDir := getEnv("DATA_DIR", "./data")

	// The TUI owns stdout; simulation logs are discarded.
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	feed := &eventFeed{}
	manager := sim.NewManager(quiet, sim.WithEvents(feed))

	defs, err := storage.ReadAllDefinitions(dataDir, quiet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load NPC definitions from %s: %v\n", dataDir, err)
		os.Exit(1)
	}
	if manager.SpawnAll(defs) == 0 {
		fmt.Fprintf(os.Stderr, "No valid NPC definitions in %s/npcs\n", dataDir)
		os.Exit(1)
	}

	player, err := actor.NewPCFromSpec(&actor.PCSpec{
		ID:      "console-player",
		Name:    "Console Pilot",
		Rank:    2,
		Credits: 2500,
		Skills:  map[string]int{"gunnery": 2, "scanning": 1},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create player: %v\n", err)
		os.Exit(1)
	}
	// Start the player next to the first NPC so range checks pass.
	if all := manager.All(); len(all) > 0 {
		player.MoveTo(all[0].Position())
	}

	p := tea.NewProgram(NewConsoleUI(manager, player, feed), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// eventFeed buffers simulation events for the transcript. The console is
// single-threaded (bubbletea update loop drives the ticks), so no locking.
type eventFeed struct {
	lines []string
}

var _ npc.Events = (*eventFeed)(nil)

func (f *eventFeed) Drain() []string {
	out := f.lines
	f.lines = nil
	return out
}

func (f *eventFeed) TierChanged(npcID string, player actor.PlayerID, change relationship.TierChange) {
	f.lines = append(f.lines, fmt.Sprintf("* %s now regards you as %s (was %s)", npcID, change.New, change.Old))
}

func (f *eventFeed) StateChanged(npcID string, from, to npc.ActivityState) {
	f.lines = append(f.lines, fmt.Sprintf("* %s: %s -> %s", npcID, from, to))
}

func (f *eventFeed) TradeCompleted(npcID string, player actor.PlayerID, direction string, receipt shop.Receipt) {
	f.lines = append(f.lines, fmt.Sprintf("* trade with %s: %s %dx %s for %.2f cr", npcID, direction, receipt.Quantity, receipt.Name, receipt.Total))
}

func (f *eventFeed) MissionAccepted(npcID string, player actor.PlayerID, offer mission.Offer) {
	f.lines = append(f.lines, fmt.Sprintf("* mission accepted from %s: %s", npcID, offer.Title))
}
