// ABOUTME: Undo/redo stack manager for parameter tuning
// ABOUTME: Manages config snapshot history with maximum stack size limit

package tui

import "task-runner/config"

// UndoManager manages undo/redo stacks of config snapshots with a maximum
// size limit. Config is a plain value type, so snapshots copy cleanly
type UndoManager struct {
	undoStack []config.Config
	redoStack []config.Config
	maxSize   int
}

// NewUndoManager creates a new undo manager with the specified max stack size
func NewUndoManager(maxSize int) *UndoManager {
	return &UndoManager{
		undoStack: []config.Config{},
		redoStack: []config.Config{},
		maxSize:   maxSize,
	}
}

// Push saves a new snapshot to the undo stack
// Clears the redo stack (you can't redo after a new change)
func (um *UndoManager) Push(snapshot config.Config) {
	um.undoStack = append(um.undoStack, snapshot)

	// Enforce max size
	if len(um.undoStack) > um.maxSize {
		um.undoStack = um.undoStack[1:]
	}

	// Clear redo stack on new change
	um.redoStack = []config.Config{}
}

// Undo restores the previous snapshot
// Returns the snapshot and true if undo was successful, or zero value and false if nothing to undo
func (um *UndoManager) Undo(current config.Config) (config.Config, bool) {
	if len(um.undoStack) == 0 {
		return config.Config{}, false
	}

	um.redoStack = append(um.redoStack, current)

	// Enforce max size on redo stack
	if len(um.redoStack) > um.maxSize {
		um.redoStack = um.redoStack[1:]
	}

	snapshot := um.undoStack[len(um.undoStack)-1]
	um.undoStack = um.undoStack[:len(um.undoStack)-1]

	return snapshot, true
}

// Redo restores the next snapshot
// Returns the snapshot and true if redo was successful, or zero value and false if nothing to redo
func (um *UndoManager) Redo(current config.Config) (config.Config, bool) {
	if len(um.redoStack) == 0 {
		return config.Config{}, false
	}

	um.undoStack = append(um.undoStack, current)

	// Enforce max size on undo stack
	if len(um.undoStack) > um.maxSize {
		um.undoStack = um.undoStack[1:]
	}

	snapshot := um.redoStack[len(um.redoStack)-1]
	um.redoStack = um.redoStack[:len(um.redoStack)-1]

	return snapshot, true
}

// UndoSize returns the number of items in the undo stack
func (um *UndoManager) UndoSize() int {
	return len(um.undoStack)
}

// RedoSize returns the number of items in the redo stack
func (um *UndoManager) RedoSize() int {
	return len(um.redoStack)
}

// Clear clears both stacks
func (um *UndoManager) Clear() {
	um.undoStack = []config.Config{}
	um.redoStack = []config.Config{}
}
