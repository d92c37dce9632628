// ABOUTME: Tests for ParamManager parameter adjustment and navigation
// ABOUTME: Verifies boundary checking, clamping, and reset functionality

package tui

import (
	"fmt"
	"testing"

	"task-runner/config"
)

// createTestParams builds count standalone parameters with 0-100 bounds
func createTestParams(count int) []Parameter {
	params := make([]Parameter, count)
	for i := range params {
		value := new(int)
		*value = 50
		params[i] = Parameter{
			Name:  fmt.Sprintf("param-%d", i),
			Value: value,
			Min:   0,
			Max:   100,
			Step:  10,
		}
	}

	return params
}

func TestParamManager_Selection(t *testing.T) {
	tests := []struct {
		name          string
		paramCount    int
		initialIndex  int
		operation     string
		expectedIndex int
	}{
		{"select next", 5, 0, "next", 1},
		{"select next at end", 5, 4, "next", 4},
		{"select previous", 5, 2, "prev", 1},
		{"select previous at start", 5, 0, "prev", 0},
		{"set valid index", 5, 0, "set:3", 3},
		{"set invalid negative", 5, 2, "set:-1", 2},
		{"set invalid too high", 5, 2, "set:10", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewParamManager(createTestParams(tt.paramCount))
			pm.SetSelected(tt.initialIndex)

			switch tt.operation {
			case "next":
				pm.SelectNext()
			case "prev":
				pm.SelectPrevious()
			default:
				var idx int
				if _, err := fmt.Sscanf(tt.operation, "set:%d", &idx); err == nil {
					pm.SetSelected(idx)
				}
			}

			if pm.Selected() != tt.expectedIndex {
				t.Errorf("Expected index %d, got %d", tt.expectedIndex, pm.Selected())
			}
		})
	}
}

func TestParamManager_Increase(t *testing.T) {
	tests := []struct {
		name         string
		initialVal   int
		expectChange bool
		expectedVal  int
	}{
		{"increase from middle", 50, true, 60},
		{"increase clamps to max", 95, true, 100},
		{"increase at max", 100, false, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewParamManager(createTestParams(1))
			*pm.Get(0).Value = tt.initialVal

			changed := pm.Increase()

			if changed != tt.expectChange {
				t.Errorf("Expected changed=%v, got %v", tt.expectChange, changed)
			}

			if *pm.Get(0).Value != tt.expectedVal {
				t.Errorf("Expected value %d, got %d", tt.expectedVal, *pm.Get(0).Value)
			}
		})
	}
}

func TestParamManager_Decrease(t *testing.T) {
	tests := []struct {
		name         string
		initialVal   int
		expectChange bool
		expectedVal  int
	}{
		{"decrease from middle", 50, true, 40},
		{"decrease clamps to min", 5, true, 0},
		{"decrease at min", 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewParamManager(createTestParams(1))
			*pm.Get(0).Value = tt.initialVal

			changed := pm.Decrease()

			if changed != tt.expectChange {
				t.Errorf("Expected changed=%v, got %v", tt.expectChange, changed)
			}

			if *pm.Get(0).Value != tt.expectedVal {
				t.Errorf("Expected value %d, got %d", tt.expectedVal, *pm.Get(0).Value)
			}
		})
	}
}

func TestParamManager_AdjustWritesThroughPointer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Workers = 4

	pm := NewParamManager(buildParams(&cfg))

	if !pm.Increase() {
		t.Fatal("Increase should succeed")
	}

	if cfg.Workers != 5 {
		t.Errorf("Expected config workers 5 after increase, got %d", cfg.Workers)
	}
}

func TestParamManager_ResetToDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	pm := NewParamManager(buildParams(&cfg))

	cfg.Workers = 1
	cfg.Jobs = 9999
	cfg.JobMs = 1
	cfg.FailEvery = 42

	defaults := config.DefaultConfig()
	pm.ResetToDefaults(defaults)

	if cfg.Workers != defaults.Workers {
		t.Errorf("Workers not reset: got %d, want %d", cfg.Workers, defaults.Workers)
	}

	if cfg.Jobs != defaults.Jobs {
		t.Errorf("Jobs not reset: got %d, want %d", cfg.Jobs, defaults.Jobs)
	}

	if cfg.JobMs != defaults.JobMs {
		t.Errorf("JobMs not reset: got %d, want %d", cfg.JobMs, defaults.JobMs)
	}

	if cfg.FailEvery != defaults.FailEvery {
		t.Errorf("FailEvery not reset: got %d, want %d", cfg.FailEvery, defaults.FailEvery)
	}
}

func TestParamManager_GetOutOfRange(t *testing.T) {
	pm := NewParamManager(createTestParams(2))

	if pm.Get(-1) != nil {
		t.Error("Expected nil for negative index")
	}

	if pm.Get(2) != nil {
		t.Error("Expected nil for index past the end")
	}

	if pm.Get(1) == nil {
		t.Error("Expected parameter for valid index")
	}
}

func TestParamManager_Len(t *testing.T) {
	pm := NewParamManager(createTestParams(4))

	if pm.Len() != 4 {
		t.Errorf("Expected 4 parameters, got %d", pm.Len())
	}

	if len(pm.All()) != 4 {
		t.Errorf("Expected All() to return 4 parameters, got %d", len(pm.All()))
	}
}
