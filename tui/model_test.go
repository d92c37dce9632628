// ABOUTME: Unit tests for TUI model behavior
// ABOUTME: Tests model initialization, parameter handling, and restart bookkeeping

package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"task-runner/config"
)

// createTestModel creates a model with mock dependencies for testing
func createTestModel(t *testing.T) model {
	t.Helper()

	opts := Options{
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
	}

	sharedCfg := config.NewSharedConfig(config.DefaultConfig())

	// Mock functions for testing
	mockRunner := func(_ context.Context, _ config.Config, _ chan<- Update, _ int) {
		// Don't send any updates in tests
	}

	mockLogf := func(_ string, _ ...interface{}) {
		// Silent in tests
	}

	return initModel(opts, sharedCfg, mockRunner, mockLogf)
}

func TestModelInitialization(t *testing.T) {
	m := createTestModel(t)

	if m.paramMgr.Len() != 4 {
		t.Errorf("Expected 4 parameters, got %d", m.paramMgr.Len())
	}

	if m.paramMgr.Selected() != 0 {
		t.Errorf("Expected selected parameter 0, got %d", m.paramMgr.Selected())
	}

	if m.focusedPanel != panelParams {
		t.Errorf("Expected focusedPanel to be %q, got %q", panelParams, m.focusedPanel)
	}

	if !m.running {
		t.Error("Expected model to start in running state")
	}

	if m.epoch != 0 {
		t.Errorf("Expected initial epoch 0, got %d", m.epoch)
	}

	if !m.follow {
		t.Error("Expected feed to start in follow mode")
	}
}

func TestParameterAdjustmentRestartsBatch(t *testing.T) {
	m := createTestModel(t)
	m.focusedPanel = panelParams
	m.paramMgr.SetSelected(0) // Workers

	// Defaults derive from NumCPU, park mid-range so the step cannot clamp
	m.localConfig.Workers = 4
	originalWorkers := m.localConfig.Workers

	cmd := m.handleRightKey()
	if cmd == nil {
		t.Fatal("Expected a restart command after parameter change")
	}

	if m.localConfig.Workers != originalWorkers+1 {
		t.Errorf("Expected workers %d, got %d", originalWorkers+1, m.localConfig.Workers)
	}

	// The shared config must see the new value before the next epoch starts
	if got := m.sharedConfig.Get().Workers; got != originalWorkers+1 {
		t.Errorf("Expected shared config workers %d, got %d", originalWorkers+1, got)
	}

	// Epoch bump invalidates updates still in flight from the old batch
	if m.epoch != 1 {
		t.Errorf("Expected epoch 1 after parameter change, got %d", m.epoch)
	}

	if m.undoMgr.UndoSize() != 1 {
		t.Errorf("Expected 1 undo snapshot, got %d", m.undoMgr.UndoSize())
	}
}

func TestParameterAdjustmentAtBoundaryIsNoOp(t *testing.T) {
	m := createTestModel(t)
	m.focusedPanel = panelParams
	m.paramMgr.SetSelected(0) // Workers, min 1

	m.localConfig.Workers = 1

	cmd := m.handleLeftKey()
	if cmd != nil {
		t.Error("Expected no restart command at the minimum boundary")
	}

	if m.epoch != 0 {
		t.Errorf("Expected epoch to stay 0, got %d", m.epoch)
	}

	if m.undoMgr.UndoSize() != 0 {
		t.Errorf("Expected no undo snapshot, got %d", m.undoMgr.UndoSize())
	}
}

func TestParameterAdjustmentIgnoredWhenFeedFocused(t *testing.T) {
	m := createTestModel(t)
	m.focusedPanel = panelFeed

	originalWorkers := m.localConfig.Workers

	if cmd := m.handleRightKey(); cmd != nil {
		t.Error("Expected no command when the feed panel is focused")
	}

	if m.localConfig.Workers != originalWorkers {
		t.Errorf("Expected workers unchanged at %d, got %d", originalWorkers, m.localConfig.Workers)
	}
}

func TestUndoRestoresPreviousConfig(t *testing.T) {
	m := createTestModel(t)
	m.focusedPanel = panelParams
	m.paramMgr.SetSelected(0)

	m.localConfig.Workers = 4
	originalWorkers := m.localConfig.Workers
	_ = m.handleRightKey()

	cmd := m.undo()
	if cmd == nil {
		t.Fatal("Expected a restart command from undo")
	}

	if m.localConfig.Workers != originalWorkers {
		t.Errorf("Expected workers restored to %d, got %d", originalWorkers, m.localConfig.Workers)
	}

	if got := m.sharedConfig.Get().Workers; got != originalWorkers {
		t.Errorf("Expected shared config workers %d, got %d", originalWorkers, got)
	}

	if m.undoMgr.RedoSize() != 1 {
		t.Errorf("Expected 1 redo snapshot after undo, got %d", m.undoMgr.RedoSize())
	}
}

func TestUndoEmptyShowsStatusOnly(t *testing.T) {
	m := createTestModel(t)

	if cmd := m.undo(); cmd != nil {
		t.Error("Expected no restart command when there is nothing to undo")
	}

	if m.statusMsg != "Nothing to undo" {
		t.Errorf("Expected status message, got %q", m.statusMsg)
	}

	if m.epoch != 0 {
		t.Errorf("Expected epoch to stay 0, got %d", m.epoch)
	}
}

func TestRedoReappliesChange(t *testing.T) {
	m := createTestModel(t)
	m.focusedPanel = panelParams
	m.paramMgr.SetSelected(0)

	m.localConfig.Workers = 4
	_ = m.handleRightKey()
	changedWorkers := m.localConfig.Workers

	_ = m.undo()
	_ = m.redo()

	if m.localConfig.Workers != changedWorkers {
		t.Errorf("Expected workers %d after redo, got %d", changedWorkers, m.localConfig.Workers)
	}
}

func TestResetToDefaultsRestoresAllParams(t *testing.T) {
	m := createTestModel(t)

	m.localConfig.Workers = 1
	m.localConfig.Jobs = 2500

	cmd := m.handleResetKey()
	if cmd == nil {
		t.Fatal("Expected a restart command after reset")
	}

	defaults := config.DefaultConfig()
	if m.localConfig.Workers != defaults.Workers {
		t.Errorf("Workers not reset: got %d, want %d", m.localConfig.Workers, defaults.Workers)
	}

	if m.localConfig.Jobs != defaults.Jobs {
		t.Errorf("Jobs not reset: got %d, want %d", m.localConfig.Jobs, defaults.Jobs)
	}

	if m.undoMgr.UndoSize() != 1 {
		t.Errorf("Expected a single undo snapshot for reset, got %d", m.undoMgr.UndoSize())
	}
}

func TestResetWhenAlreadyDefaultIsNoOp(t *testing.T) {
	m := createTestModel(t)

	if cmd := m.handleResetKey(); cmd != nil {
		t.Error("Expected no restart command when params already match defaults")
	}

	if m.epoch != 0 {
		t.Errorf("Expected epoch to stay 0, got %d", m.epoch)
	}
}

func TestRerunOnlyWhenIdle(t *testing.T) {
	m := createTestModel(t)

	if cmd := m.handleRerunKey(); cmd != nil {
		t.Error("Expected no command while a batch is running")
	}

	m.running = false

	cmd := m.handleRerunKey()
	if cmd == nil {
		t.Fatal("Expected a restart command when idle")
	}

	if !m.running {
		t.Error("Expected running state after rerun")
	}

	if m.epoch != 1 {
		t.Errorf("Expected epoch 1 after rerun, got %d", m.epoch)
	}
}

func TestTabSwitchesPanels(t *testing.T) {
	m := createTestModel(t)

	m.handleTabKey()

	if m.focusedPanel != panelFeed {
		t.Errorf("Expected focus on %q, got %q", panelFeed, m.focusedPanel)
	}

	m.handleTabKey()

	if m.focusedPanel != panelParams {
		t.Errorf("Expected focus back on %q, got %q", panelParams, m.focusedPanel)
	}
}

func TestAppendFeedLineTrimsHistory(t *testing.T) {
	m := createTestModel(t)

	for i := range maxFeedLines + 100 {
		m.appendFeedLine(string(rune('a' + i%26)))
	}

	if len(m.feed) != maxFeedLines {
		t.Errorf("Expected feed capped at %d lines, got %d", maxFeedLines, len(m.feed))
	}
}

func TestQuitWhileRunningDefersExit(t *testing.T) {
	m := createTestModel(t)

	updated, cmd := m.handleQuitKey()
	if cmd != nil {
		t.Error("Expected no quit command while the batch is still draining")
	}

	if !updated.quitting {
		t.Error("Expected quitting flag to be set")
	}

	select {
	case <-updated.ctx.Done():
	default:
		t.Error("Expected context to be cancelled so submission stops")
	}
}

func TestQuitWhenIdleSavesConfig(t *testing.T) {
	m := createTestModel(t)
	m.running = false

	m.localConfig.Workers = 3
	m.sharedConfig.Update(*m.localConfig)

	_, cmd := m.handleQuitKey()
	if cmd == nil {
		t.Fatal("Expected a quit command when idle")
	}

	// LoadConfig silently falls back to defaults for missing files, so
	// check the file really exists first
	if _, err := os.Stat(m.opts.ConfigPath); err != nil {
		t.Fatalf("Expected config file written on quit: %v", err)
	}

	saved, err := config.LoadConfig(m.opts.ConfigPath)
	if err != nil {
		t.Fatalf("Expected config saved on quit: %v", err)
	}

	if saved.Workers != 3 {
		t.Errorf("Expected saved workers 3, got %d", saved.Workers)
	}
}
