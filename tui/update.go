// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function and message handlers

package tui

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"task-runner/config"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.logf("[PANIC] Update panic: %v", r)
			m.logf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Right panel width: total width - left panel - padding
		viewportWidth := msg.Width - paramPanelWidth - panelPadding
		if viewportWidth < minViewportWidth {
			viewportWidth = minViewportWidth
		}

		// Height: total height minus all UI chrome (titles, status, help, spacing)
		viewportHeight := msg.Height - totalUIChrome
		if viewportHeight < minViewportHeight {
			viewportHeight = minViewportHeight
		}

		m.viewport.Width = viewportWidth
		m.viewport.Height = viewportHeight
		m.updateViewportContent()

		return m, nil

	case Update:
		// Ignore stale updates from cancelled batches
		if msg.Epoch != m.epoch {
			m.logf("[TUI] Ignoring stale update: epoch %d != current %d", msg.Epoch, m.epoch)

			return m, waitForUpdate(m.updateChan)
		}

		m.stats = msg.Stats
		m.rate = msg.Rate

		if msg.Line != "" {
			m.appendFeedLine(msg.Line)
		}

		if msg.Finished {
			m.running = false
			m.appendFeedLine(fmt.Sprintf("-- batch complete: %d done, %d failed in %s --",
				msg.Stats.Completed, msg.Stats.Failed, time.Since(m.startedAt).Round(time.Second)))

			if m.quitting {
				// Queue drained, safe to exit now
				return m.finishQuit()
			}

			m.setStatusMsg("Batch complete - adjust parameters or press enter to run again")
		}

		// Queue next update
		return m, waitForUpdate(m.updateChan)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.ForceQuit):
			return m.finishQuit()

		case key.Matches(msg, keys.Quit):
			return m.handleQuitKey()

		case key.Matches(msg, keys.Tab):
			m.handleTabKey()

		case key.Matches(msg, keys.Up):
			m.handleUpKey()

		case key.Matches(msg, keys.Down):
			m.handleDownKey()

		case key.Matches(msg, keys.PageUp):
			m.handlePageUpKey()

		case key.Matches(msg, keys.PageDown):
			m.handlePageDownKey()

		case key.Matches(msg, keys.Home):
			m.handleHomeKey()

		case key.Matches(msg, keys.End):
			m.handleEndKey()

		case key.Matches(msg, keys.Left):
			return m, m.handleLeftKey()

		case key.Matches(msg, keys.Right):
			return m, m.handleRightKey()

		case key.Matches(msg, keys.Rerun):
			return m, m.handleRerunKey()

		case key.Matches(msg, keys.Reset):
			return m, m.handleResetKey()

		case key.Matches(msg, keys.Undo):
			return m, m.undo()

		case key.Matches(msg, keys.Redo):
			return m, m.redo()
		}
	}

	return m, nil
}

// handleQuitKey starts a graceful exit: stop submitting, let the queue drain
func (m *model) handleQuitKey() (model, tea.Cmd) {
	if m.running {
		m.quitting = true
		m.cancel()
		m.setStatusMsg("Draining queued jobs before exit... (ctrl+c to quit now)")

		return *m, nil
	}

	return m.finishQuit()
}

// finishQuit saves the tuned config and exits
func (m *model) finishQuit() (model, tea.Cmd) {
	m.quitting = true
	m.cancel()

	if err := config.SaveConfig(m.opts.ConfigPath, m.sharedConfig.Get()); err != nil {
		m.logf("[TUI] Failed to save config on quit: %v", err)
		// Continue anyway - don't block quit on config save failure
	}

	return *m, tea.Quit
}

// handleTabKey handles panel switching
func (m *model) handleTabKey() {
	if m.focusedPanel == panelParams {
		m.focusedPanel = panelFeed
	} else {
		m.focusedPanel = panelParams
	}
}

// handleUpKey handles Up/k key press (context-aware navigation)
func (m *model) handleUpKey() {
	if m.focusedPanel == panelParams {
		m.paramMgr.SelectPrevious()

		return
	}

	// Scroll the feed; leaving the bottom suspends auto-follow
	m.viewport.SetYOffset(m.viewport.YOffset - 1)
	m.follow = m.viewport.AtBottom()
}

// handleDownKey handles Down/j key press (context-aware navigation)
func (m *model) handleDownKey() {
	if m.focusedPanel == panelParams {
		m.paramMgr.SelectNext()

		return
	}

	m.viewport.SetYOffset(m.viewport.YOffset + 1)
	m.follow = m.viewport.AtBottom()
}

// handlePageUpKey handles PageUp key press
func (m *model) handlePageUpKey() {
	m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
	m.follow = m.viewport.AtBottom()
}

// handlePageDownKey handles PageDown key press
func (m *model) handlePageDownKey() {
	m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
	m.follow = m.viewport.AtBottom()
}

// handleHomeKey handles Home/g key press
func (m *model) handleHomeKey() {
	m.viewport.GotoTop()
	m.follow = false
}

// handleEndKey handles End/G key press
func (m *model) handleEndKey() {
	m.viewport.GotoBottom()
	m.follow = true
}

// handleLeftKey handles Left/h key press (decrease parameter when params focused)
func (m *model) handleLeftKey() tea.Cmd {
	if m.focusedPanel != panelParams {
		return nil
	}

	previous := *m.localConfig
	if !m.paramMgr.Decrease() {
		return nil
	}

	return m.applyParamChange(previous)
}

// handleRightKey handles Right/l key press (increase parameter when params focused)
func (m *model) handleRightKey() tea.Cmd {
	if m.focusedPanel != panelParams {
		return nil
	}

	previous := *m.localConfig
	if !m.paramMgr.Increase() {
		return nil
	}

	return m.applyParamChange(previous)
}

// handleRerunKey starts a fresh batch with the current parameters
func (m *model) handleRerunKey() tea.Cmd {
	if m.running {
		m.setStatusMsg("Batch already running")

		return nil
	}

	return m.restartRunner()
}

// handleResetKey resets all parameters to their defaults and restarts
func (m *model) handleResetKey() tea.Cmd {
	previous := *m.localConfig
	m.paramMgr.ResetToDefaults(config.DefaultConfig())

	if *m.localConfig == previous {
		return nil
	}

	m.undoMgr.Push(previous)
	m.sharedConfig.Update(*m.localConfig)
	m.setStatusMsg("Parameters reset to defaults")

	return m.restartRunner()
}
