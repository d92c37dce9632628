// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model implementation with batch runner integration

// Package tui provides an interactive terminal dashboard for live worker pool tuning.
package tui

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"task-runner/config"
	"task-runner/pool"
)

// Panel identifiers
const (
	panelParams = "params"
	panelFeed   = "feed"
)

// Layout constants for UI dimensions
const (
	paramPanelWidth = 36 // Left panel width for parameter controls
	panelPadding    = 2  // Horizontal spacing between panels

	// UI chrome heights (elements that reduce available viewport space)
	titleHeight     = 2 // Panel title bars
	statusBarHeight = 1 // Bottom status bar
	helpHeight      = 1 // Help text line
	spacingHeight   = 2 // Vertical spacing between elements
	totalUIChrome   = titleHeight + statusBarHeight + helpHeight + spacingHeight

	// Minimum viewport dimensions to ensure usability
	minViewportWidth  = 20
	minViewportHeight = 5
)

// Interaction constants
const (
	statusMessageDuration = 5 * time.Second // How long to show transient status messages
	maxUndoStackSize      = 50              // Maximum undo/redo history items
	maxFeedLines          = 500             // Event lines kept in the feed
	updateChanBuffer      = 16              // Runner update buffer, see initModel
)

// model holds the TUI state
type model struct {
	// Dependencies (concrete types following Go philosophy)
	opts         Options
	sharedConfig *config.SharedConfig
	runner       RunnerFunc
	logf         LogFunc

	// Configuration
	localConfig *config.Config // Local config that params point to (pointer so addresses stay valid)
	paramMgr    *ParamManager
	undoMgr     *UndoManager

	// Runner lifecycle
	// Framework exception: Context stored in struct because Bubble Tea's Init/Update/View
	// pattern doesn't allow passing context through function parameters. The framework owns
	// the model lifecycle, making context-in-struct the idiomatic pattern for cancellation.
	ctx        context.Context    //nolint:containedctx // See framework exception above
	cancel     context.CancelFunc // Cancel function for ctx
	updateChan chan Update        // Channel for runner updates
	epoch      int                // Increments each batch restart to track stale updates

	// Batch state
	stats     pool.Stats // Latest pool counters
	rate      float64    // Finished jobs per second
	running   bool       // Current epoch's batch still has workers up
	startedAt time.Time  // When the current epoch started

	// Event feed
	feed     []string       // Rolling worker event lines
	viewport viewport.Model // Viewport for scrolling the feed
	follow   bool           // Keep feed pinned to the newest line

	// UI state
	width        int
	height       int
	quitting     bool
	statusMsg    string    // Temporary status message (e.g., "Nothing to undo")
	statusMsgAge time.Time // When status message was set
	focusedPanel string    // "params" or "feed" - which panel has focus
}

// Key bindings
type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	// Feed navigation
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	// Batch control
	Rerun key.Binding
	Reset key.Binding
	Undo  key.Binding
	Redo  key.Binding
	// Panel switching
	Tab       key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "navigate"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "decrease param"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "increase param"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "oldest events"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "newest events"),
	),
	Rerun: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run again"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset params"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "redo"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch panel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit (drains queue)"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit now"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	paramStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedParamStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true).
				Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Run starts the TUI mode with injected dependencies
func Run(opts Options, sharedConfig *config.SharedConfig, runner RunnerFunc, logf LogFunc) error {
	m := initModel(opts, sharedConfig, runner, logf)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(opts Options, sharedConfig *config.SharedConfig, runner RunnerFunc, logf LogFunc) model {
	cfg := sharedConfig.Get()

	// Allocate localConfig on heap so parameter pointers remain valid
	localConfig := &cfg

	// Create context for batch cancellation
	ctx, cancel := context.WithCancel(context.Background())

	return model{
		opts:         opts,
		sharedConfig: sharedConfig,
		runner:       runner,
		logf:         logf,

		localConfig: localConfig,
		paramMgr:    NewParamManager(buildParams(localConfig)),
		undoMgr:     NewUndoManager(maxUndoStackSize),

		ctx:    ctx,
		cancel: cancel,
		// Buffer absorbs bursts from the runner's event hooks. The runner
		// drops updates with select-default when the buffer is full, so a
		// slow terminal never blocks the pool
		updateChan: make(chan Update, updateChanBuffer),

		running:   true,
		startedAt: time.Now(),

		viewport:     viewport.New(0, 0), // Width and height set on first WindowSizeMsg
		follow:       true,
		focusedPanel: panelParams,
	}
}

// buildParams builds the tunable parameter list with pointers into cfg
func buildParams(cfg *config.Config) []Parameter {
	return []Parameter{
		{"Workers", &cfg.Workers, 1, 64, 1},
		{"Jobs", &cfg.Jobs, 0, 5000, 25},
		{"Job duration (ms)", &cfg.JobMs, 0, 2000, 25},
		{"Fail every", &cfg.FailEvery, 0, 50, 1},
	}
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.startRunner(m.ctx, m.epoch),
		waitForUpdate(m.updateChan),
		tea.EnterAltScreen,
	)
}

// startRunner launches the batch runner in a goroutine and returns a command
func (m *model) startRunner(ctx context.Context, epoch int) tea.Cmd {
	cfg := m.sharedConfig.Get()
	updates := m.updateChan
	runner := m.runner
	logf := m.logf

	return func() tea.Msg {
		defer func() {
			if r := recover(); r != nil {
				logf("[PANIC] startRunner panic: %v", r)
				logf("[PANIC] Stack trace: %s", string(debug.Stack()))
				panic(r) // Re-panic so Bubble Tea can handle it
			}
		}()

		// Blocks until the pool drains or ctx cancels submission
		runner(ctx, cfg, updates, epoch)

		return nil
	}
}

// waitForUpdate waits for runner updates and returns them as messages
func waitForUpdate(updateChan <-chan Update) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updateChan
		if !ok {
			// Channel closed
			return nil
		}

		return update
	}
}

// applyParamChange publishes the edited config, records the undo snapshot
// and restarts the batch with a new epoch
func (m *model) applyParamChange(previous config.Config) tea.Cmd {
	if selected := m.paramMgr.GetSelected(); selected != nil {
		m.logf("[TUI] Parameter changed - %s: %d (workers: %d, jobs: %d)",
			selected.Name, *selected.Value, m.localConfig.Workers, m.localConfig.Jobs)
	}

	m.undoMgr.Push(previous)
	m.sharedConfig.Update(*m.localConfig)

	return m.restartRunner()
}

// restartRunner cancels the current batch and starts a new epoch
//
// The old pool drains in the background; updates it still sends carry the
// old epoch and are dropped in Update.
func (m *model) restartRunner() tea.Cmd {
	m.cancel()

	ctx, cancel := context.WithCancel(context.Background())
	m.ctx = ctx
	m.cancel = cancel

	m.epoch++
	m.running = true
	m.startedAt = time.Now()
	m.stats = pool.Stats{}
	m.rate = 0

	m.appendFeedLine(fmt.Sprintf("-- restarting: %d workers, %d jobs --",
		m.localConfig.Workers, m.localConfig.Jobs))
	m.logf("[TUI] Restarting batch with epoch %d", m.epoch)

	return m.startRunner(m.ctx, m.epoch)
}

// undo restores the previous config snapshot and restarts the batch
func (m *model) undo() tea.Cmd {
	snapshot, ok := m.undoMgr.Undo(*m.localConfig)
	if !ok {
		m.setStatusMsg("Nothing to undo")

		return nil
	}

	*m.localConfig = snapshot
	m.sharedConfig.Update(snapshot)
	m.setStatusMsg(fmt.Sprintf("Undo (Undo: %d, Redo: %d)", m.undoMgr.UndoSize(), m.undoMgr.RedoSize()))

	return m.restartRunner()
}

// redo restores the next config snapshot and restarts the batch
func (m *model) redo() tea.Cmd {
	snapshot, ok := m.undoMgr.Redo(*m.localConfig)
	if !ok {
		m.setStatusMsg("Nothing to redo")

		return nil
	}

	*m.localConfig = snapshot
	m.sharedConfig.Update(snapshot)
	m.setStatusMsg(fmt.Sprintf("Redo (Undo: %d, Redo: %d)", m.undoMgr.UndoSize(), m.undoMgr.RedoSize()))

	return m.restartRunner()
}

// appendFeedLine adds one line to the event feed, trimming the oldest lines
// once the feed exceeds maxFeedLines
func (m *model) appendFeedLine(line string) {
	m.feed = append(m.feed, line)
	if len(m.feed) > maxFeedLines {
		m.feed = m.feed[len(m.feed)-maxFeedLines:]
	}

	m.updateViewportContent()
}

// updateViewportContent rebuilds the feed view and keeps it pinned to the
// newest line unless the user scrolled away
func (m *model) updateViewportContent() {
	width := m.viewport.Width
	if width <= 0 {
		width = minViewportWidth
	}

	lines := make([]string, len(m.feed))
	for i, line := range m.feed {
		lines[i] = truncate(line, width)
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))

	if m.follow {
		m.viewport.GotoBottom()
	}
}

// setStatusMsg sets a transient status message with current timestamp
func (m *model) setStatusMsg(msg string) {
	m.statusMsg = msg
	m.statusMsgAge = time.Now()
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}
