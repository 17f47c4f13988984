package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/npc-engine/pkg/actor"
	"github.com/jwebster45206/npc-engine/pkg/dialogue"
	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/sim"
)

const placeHolderText = "Type a command (help for a list)..."

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	npcStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	manager *sim.Manager
	player  *actor.PC
	feed    *eventFeed

	current *npc.Entity // NPC the player is focused on

	viewport viewport.Model
	textarea textarea.Model
	ready    bool
	width    int
	height   int

	transcript []string
	lastTick   time.Time
}

type tickMsg time.Time

func NewConsoleUI(manager *sim.Manager, player *actor.PC, feed *eventFeed) *ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = placeHolderText
	ta.Focus()
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	ui := &ConsoleUI{
		manager:  manager,
		player:   player,
		feed:     feed,
		textarea: ta,
		lastTick: time.Now(),
	}
	ui.addLine(titleStyle.Render("NPC world console"))
	ui.addLine("Commands: npcs, use <id>, talk, options, shop, buy <item> <qty>, sell <item> <qty>, missions, accept <n>, end, status, help, quit")
	return ui
}

func (ui *ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (ui *ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)
	ui.textarea, taCmd = ui.textarea.Update(msg)
	ui.viewport, vpCmd = ui.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.height = msg.Height
		if !ui.ready {
			ui.viewport = viewport.New(msg.Width, msg.Height-4)
			ui.ready = true
		} else {
			ui.viewport.Width = msg.Width
			ui.viewport.Height = msg.Height - 4
		}
		ui.textarea.SetWidth(msg.Width)
		ui.refreshViewport()

	case tickMsg:
		now := time.Time(msg)
		ui.manager.Tick(now.Sub(ui.lastTick))
		ui.lastTick = now
		for _, line := range ui.feed.Drain() {
			ui.addLine(eventStyle.Render(line))
		}
		return ui, tea.Batch(taCmd, vpCmd, tickCmd())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return ui, tea.Quit
		case tea.KeyCtrlY:
			_ = clipboard.WriteAll(strings.Join(ui.transcript, "\n"))
			ui.addLine(statusStyle.Render("Transcript copied to clipboard."))
		case tea.KeyEnter:
			input := strings.TrimSpace(ui.textarea.Value())
			ui.textarea.Reset()
			if input == "" {
				return ui, tea.Batch(taCmd, vpCmd)
			}
			ui.addLine("> " + input)
			if quit := ui.handleCommand(input); quit {
				return ui, tea.Quit
			}
		}
	}

	return ui, tea.Batch(taCmd, vpCmd)
}

func (ui *ConsoleUI) handleCommand(input string) (quit bool) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "quit", "exit":
		return true

	case "help":
		ui.addLine("npcs              list NPCs in the world")
		ui.addLine("use <id>          focus an NPC")
		ui.addLine("talk              start a conversation with the focused NPC")
		ui.addLine("options           list current dialogue options")
		ui.addLine("shop              list shop stock")
		ui.addLine("buy <item> <qty>  buy from the focused NPC")
		ui.addLine("sell <item> <qty> sell to the focused NPC")
		ui.addLine("missions          list open mission offers")
		ui.addLine("accept <n>        accept the n-th listed offer")
		ui.addLine("end               end the conversation")
		ui.addLine("status            show credits and standing")
		ui.addLine("ctrl+y            copy transcript, esc/ctrl+c quit")

	case "npcs":
		for _, e := range ui.manager.All() {
			marker := " "
			if ui.current != nil && e.ID() == ui.current.ID() {
				marker = "*"
			}
			ui.addLine(fmt.Sprintf("%s %s (%s) [%s] %s/%s", marker, e.ID(), e.Name(), e.State(), e.System(), e.Station()))
		}

	case "use":
		if len(args) != 1 {
			ui.addError("usage: use <id>")
			return false
		}
		e, ok := ui.manager.Get(args[0])
		if !ok {
			ui.addError("no such NPC: " + args[0])
			return false
		}
		ui.current = e
		ui.player.MoveTo(e.Position())
		ui.addLine(statusStyle.Render("Now near " + e.Name()))

	case "talk":
		e := ui.current
		if e == nil {
			ui.addError("no NPC focused; use <id> first")
			return false
		}
		options, err := e.StartConversation(ui.player)
		if err != nil {
			ui.addError(err.Error())
			return false
		}
		ui.showOptions(e, options)

	case "options":
		e := ui.current
		if e == nil {
			ui.addError("no NPC focused")
			return false
		}
		ui.showOptions(e, e.Options(ui.player))

	case "shop":
		e := ui.current
		if e == nil {
			ui.addError("no NPC focused")
			return false
		}
		items := e.Shop().Items("")
		if len(items) == 0 {
			ui.addLine("Nothing for sale.")
			return false
		}
		for _, it := range items {
			ui.addLine(fmt.Sprintf("  %-18s %-22s %6.0f cr  x%d", it.ID, it.Name, it.Price*e.Shop().Modifier(), it.Quantity))
		}

	case "buy", "sell":
		e := ui.current
		if e == nil {
			ui.addError("no NPC focused")
			return false
		}
		if len(args) != 2 {
			ui.addError("usage: " + cmd + " <item> <qty>")
			return false
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			ui.addError("qty must be a number")
			return false
		}
		if cmd == "buy" {
			_, err = e.Buy(ui.player, args[0], qty)
		} else {
			_, err = e.Sell(ui.player, args[0], qty)
		}
		if err != nil {
			ui.addError(err.Error())
		}

	case "missions":
		e := ui.current
		if e == nil {
			ui.addError("no NPC focused")
			return false
		}
		offers := e.ActiveOffers()
		if len(offers) == 0 {
			ui.addLine("No open offers.")
			return false
		}
		for i, o := range offers {
			gate := ""
			if !e.IsOfferAvailable(o, ui.player) {
				gate = errorStyle.Render(" (requirements not met)")
			}
			ui.addLine(fmt.Sprintf("  %d. [%s/%s] %s - %.0f cr%s", i+1, o.Type, o.Difficulty, o.Title, o.Reward.Credits, gate))
		}

	case "accept":
		e := ui.current
		if e == nil {
			ui.addError("no NPC focused")
			return false
		}
		if len(args) != 1 {
			ui.addError("usage: accept <n>")
			return false
		}
		n, err := strconv.Atoi(args[0])
		offers := e.ActiveOffers()
		if err != nil || n < 1 || n > len(offers) {
			ui.addError("no such offer")
			return false
		}
		if _, err := e.AcceptMission(ui.player, offers[n-1].ID); err != nil {
			ui.addError(err.Error())
		}

	case "end":
		if ui.current != nil {
			ui.current.EndConversation()
			ui.addLine("Conversation ended.")
		}

	case "status":
		ui.addLine(fmt.Sprintf("Credits: %.2f  Rank: %d", ui.player.Credits(), ui.player.Rank()))
		if e := ui.current; e != nil {
			ui.addLine(fmt.Sprintf("Standing with %s: %.1f (%s)", e.Name(), e.Standing(ui.player.ID()), e.Tier(ui.player.ID())))
		}

	default:
		ui.addError("unknown command: " + cmd)
	}
	return false
}

func (ui *ConsoleUI) showOptions(e *npc.Entity, options []dialogue.Node) {
	ui.addLine(npcStyle.Render(e.Name() + ":"))
	for i, n := range options {
		ui.addLine(npcStyle.Render(fmt.Sprintf("  %d. %s", i+1, n.Text)))
	}
}

func (ui *ConsoleUI) addLine(line string) {
	ui.transcript = append(ui.transcript, line)
	ui.refreshViewport()
}

func (ui *ConsoleUI) addError(msg string) {
	ui.addLine(errorStyle.Render(msg))
}

func (ui *ConsoleUI) refreshViewport() {
	if !ui.ready {
		return
	}
	width := ui.viewport.Width
	if width <= 0 {
		width = 80
	}
	ui.viewport.SetContent(wordwrap.String(strings.Join(ui.transcript, "\n"), width))
	ui.viewport.GotoBottom()
}

func (ui *ConsoleUI) View() string {
	if !ui.ready {
		return "Loading..."
	}
	return fmt.Sprintf("%s\n%s\n%s",
		ui.viewport.View(),
		strings.Repeat("─", max(ui.width, 1)),
		ui.textarea.View(),
	)
}
