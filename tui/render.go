// ABOUTME: Rendering functions for TUI panels
// ABOUTME: Handles parameter list, event feed, status bar and help formatting

package tui

import (
	"fmt"
	"time"
)

// renderParameters renders the parameter control panel
func (m model) renderParameters() string {
	var s string

	title := "Pool parameters"
	if m.focusedPanel == panelParams {
		title = "► " + title + " [FOCUSED]"
	}

	s += titleStyle.Render(title) + "\n\n"

	for i, param := range m.paramMgr.All() {
		value := "N/A"
		if param.Value != nil {
			value = fmt.Sprintf("%d", *param.Value)
		}

		// Fixed width formatting to prevent column misalignment
		prefix := "  "
		if i == m.paramMgr.Selected() {
			prefix = "► "
		}

		line := fmt.Sprintf("%s%-20s %6s", prefix, param.Name, value)

		if i == m.paramMgr.Selected() {
			s += selectedParamStyle.Render(line) + "\n"
		} else {
			s += paramStyle.Render(line) + "\n"
		}
	}

	s += "\n" + helpStyle.Render(fmt.Sprintf("  workload: %s", m.localConfig.Workload))

	return s
}

// renderFeed renders the worker event feed with viewport scrolling
func (m model) renderFeed() string {
	var s string

	title := "Worker events"
	if !m.follow {
		title = "Worker events (scrolled)"
	}

	if m.focusedPanel == panelFeed {
		title = "► " + title + " [FOCUSED]"
	}

	s += titleStyle.Render(title) + "\n\n"

	// Render viewport (content is set in Update())
	s += m.viewport.View()

	return s
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	// Show status message if recent
	if m.statusMsg != "" && time.Since(m.statusMsgAge) < statusMessageDuration {
		return statusStyle.Width(m.width).Render(m.statusMsg)
	}

	state := "RUNNING"
	switch {
	case m.quitting:
		state = "DRAINING"
	case !m.running:
		state = "DONE"
	}

	status := fmt.Sprintf("[%s] epoch %d | %d workers | %d submitted | %d done | %d failed | %d queued | %.1f jobs/s | %s",
		state,
		m.epoch,
		m.stats.Workers,
		m.stats.Submitted,
		m.stats.Completed,
		m.stats.Failed,
		m.stats.Queued,
		m.rate,
		time.Since(m.startedAt).Round(time.Second),
	)

	if m.undoMgr.UndoSize() > 0 || m.undoMgr.RedoSize() > 0 {
		status += fmt.Sprintf(" | U:%d R:%d", m.undoMgr.UndoSize(), m.undoMgr.RedoSize())
	}

	return statusStyle.Width(m.width).Render(status)
}

// renderHelp renders the help text
func (m model) renderHelp() string {
	return helpStyle.Render(" Tab: switch panel | ↑/↓/j/k: navigate | ←/→/h/l: adjust param | enter: run again | u: undo | ctrl+r: redo | r: reset | q: quit")
}
