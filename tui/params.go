// ABOUTME: Parameter manager for live pool and workload tuning
// ABOUTME: Handles parameter value adjustments with boundary checking

package tui

import "task-runner/config"

// Parameter represents a tunable integer setting with constraints
type Parameter struct {
	Name  string
	Value *int // Pointer to the config field it controls
	Min   int
	Max   int
	Step  int
}

// ParamManager manages parameter selection and adjustment
type ParamManager struct {
	params        []Parameter
	selectedIndex int
}

// NewParamManager creates a new parameter manager
func NewParamManager(params []Parameter) *ParamManager {
	return &ParamManager{
		params:        params,
		selectedIndex: 0,
	}
}

// Selected returns the index of the currently selected parameter
func (pm *ParamManager) Selected() int {
	return pm.selectedIndex
}

// SetSelected sets the selected parameter index
func (pm *ParamManager) SetSelected(index int) {
	if index >= 0 && index < len(pm.params) {
		pm.selectedIndex = index
	}
}

// SelectNext moves selection to the next parameter
func (pm *ParamManager) SelectNext() {
	if pm.selectedIndex < len(pm.params)-1 {
		pm.selectedIndex++
	}
}

// SelectPrevious moves selection to the previous parameter
func (pm *ParamManager) SelectPrevious() {
	if pm.selectedIndex > 0 {
		pm.selectedIndex--
	}
}

// Increase increases the selected parameter value
// Returns true if the value was changed
func (pm *ParamManager) Increase() bool {
	if pm.selectedIndex >= len(pm.params) {
		return false
	}

	param := &pm.params[pm.selectedIndex]

	newVal := *param.Value + param.Step
	if newVal > param.Max {
		newVal = param.Max
	}

	if newVal == *param.Value {
		return false
	}

	*param.Value = newVal

	return true
}

// Decrease decreases the selected parameter value
// Returns true if the value was changed
func (pm *ParamManager) Decrease() bool {
	if pm.selectedIndex >= len(pm.params) {
		return false
	}

	param := &pm.params[pm.selectedIndex]

	newVal := *param.Value - param.Step
	if newVal < param.Min {
		newVal = param.Min
	}

	if newVal == *param.Value {
		return false
	}

	*param.Value = newVal

	return true
}

// ResetToDefaults resets all parameters to their default values
// Uses name-based lookup to avoid fragile array indexing
func (pm *ParamManager) ResetToDefaults(defaults config.Config) {
	for i := range pm.params {
		p := &pm.params[i]
		switch p.Name {
		case "Workers":
			*p.Value = defaults.Workers
		case "Jobs":
			*p.Value = defaults.Jobs
		case "Job duration (ms)":
			*p.Value = defaults.JobMs
		case "Fail every":
			*p.Value = defaults.FailEvery
		}
	}
}

// Get returns the parameter at the given index
func (pm *ParamManager) Get(index int) *Parameter {
	if index >= 0 && index < len(pm.params) {
		return &pm.params[index]
	}

	return nil
}

// GetSelected returns the currently selected parameter
func (pm *ParamManager) GetSelected() *Parameter {
	return pm.Get(pm.selectedIndex)
}

// Len returns the number of parameters
func (pm *ParamManager) Len() int {
	return len(pm.params)
}

// All returns all parameters (for rendering)
func (pm *ParamManager) All() []Parameter {
	return pm.params
}
