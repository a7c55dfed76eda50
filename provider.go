package winstate

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/winstate/internal/shared/types"
)

// Command-surface types, re-exported for host registries.
type (
	Service        = types.Service
	Tool           = types.Tool
	Parameter      = types.Parameter
	Result         = types.Result
	ServiceContext = types.Context
)

// Provider exposes window-state operations through the tool-based command
// surface host registries dispatch on.
type Provider struct {
	m *Manager
}

// NewProvider creates a provider backed by the given manager.
func NewProvider(m *Manager) *Provider {
	return &Provider{m: m}
}

// Definition returns service metadata.
func (p *Provider) Definition() Service {
	return Service{
		ID:          "window_state",
		Name:        "Window State Service",
		Description: "Persists and restores window geometry across restarts",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"save",
			"restore",
			"selective_flags",
			"monitor_clamping",
		},
		Tools: []Tool{
			{
				ID:          "window_state.save",
				Name:        "Save Window State",
				Description: "Force-flush the state of all tracked windows now",
				Parameters: []Parameter{
					{Name: "flags", Type: "array", Description: "Attribute names to persist (default: all)", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "window_state.restore",
				Name:        "Restore Window State",
				Description: "Re-apply saved geometry to one window",
				Parameters: []Parameter{
					{Name: "label", Type: "string", Description: "Window label", Required: true},
					{Name: "flags", Type: "array", Description: "Attribute names to apply (default: all)", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "window_state.restore_current",
				Name:        "Restore Current Window",
				Description: "Re-apply saved geometry to the focused window",
				Parameters: []Parameter{
					{Name: "flags", Type: "array", Description: "Attribute names to apply (default: all)", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "window_state.get",
				Name:        "Get Window State",
				Description: "Return the saved record for a window label",
				Parameters: []Parameter{
					{Name: "label", Type: "string", Description: "Window label", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "window_state.list",
				Name:        "List Window States",
				Description: "Return all labels with saved records",
				Parameters:  []Parameter{},
				Returns:     "array",
			},
			{
				ID:          "window_state.filename",
				Name:        "State File Path",
				Description: "Return the path of the persisted state file",
				Parameters:  []Parameter{},
				Returns:     "string",
			},
		},
	}
}

// Execute runs a window-state operation.
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *ServiceContext) (*Result, error) {
	switch toolID {
	case "window_state.save":
		return p.save(params)
	case "window_state.restore":
		return p.restore(params)
	case "window_state.restore_current":
		return p.restoreCurrent(params)
	case "window_state.get":
		return p.get(params)
	case "window_state.list":
		return p.list()
	case "window_state.filename":
		return success(map[string]interface{}{"path": p.m.Filename()})
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) save(params map[string]interface{}) (*Result, error) {
	flags, err := flagsParam(params)
	if err != nil {
		return failure(err.Error())
	}
	if err := p.m.SaveWindowState(flags); err != nil {
		return failure(fmt.Sprintf("save failed: %v", err))
	}
	return success(map[string]interface{}{"saved": true})
}

func (p *Provider) restore(params map[string]interface{}) (*Result, error) {
	label, ok := params["label"].(string)
	if !ok || label == "" {
		return failure("label parameter required")
	}
	flags, err := flagsParam(params)
	if err != nil {
		return failure(err.Error())
	}
	if err := p.m.RestoreState(label, flags); err != nil {
		return failure(fmt.Sprintf("restore failed: %v", err))
	}
	return success(map[string]interface{}{"restored": true, "label": label})
}

func (p *Provider) restoreCurrent(params map[string]interface{}) (*Result, error) {
	flags, err := flagsParam(params)
	if err != nil {
		return failure(err.Error())
	}
	if err := p.m.RestoreStateCurrent(flags); err != nil {
		return failure(fmt.Sprintf("restore failed: %v", err))
	}
	return success(map[string]interface{}{"restored": true})
}

func (p *Provider) get(params map[string]interface{}) (*Result, error) {
	label, ok := params["label"].(string)
	if !ok || label == "" {
		return failure("label parameter required")
	}
	state, ok := p.m.State(label)
	if !ok {
		return failure(fmt.Sprintf("no saved state for %q", label))
	}
	return success(map[string]interface{}{
		"label":      state.Label,
		"x":          state.X,
		"y":          state.Y,
		"width":      state.Width,
		"height":     state.Height,
		"maximized":  state.Maximized,
		"visible":    state.Visible,
		"decorated":  state.Decorated,
		"fullscreen": state.Fullscreen,
		"monitor":    state.Monitor,
	})
}

func (p *Provider) list() (*Result, error) {
	labels := p.m.Labels()
	return success(map[string]interface{}{"labels": labels, "count": len(labels)})
}

// flagsParam reads the optional "flags" parameter, a list of attribute
// names. Absent means all attributes.
func flagsParam(params map[string]interface{}) (Flags, error) {
	raw, ok := params["flags"]
	if !ok || raw == nil {
		return FlagAll, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return 0, fmt.Errorf("flags parameter must be an array of strings")
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		name, ok := item.(string)
		if !ok {
			return 0, fmt.Errorf("flags parameter must be an array of strings")
		}
		names = append(names, name)
	}
	return types.ParseFlags(names)
}

func success(data map[string]interface{}) (*Result, error) {
	return &Result{Success: true, Data: data}, nil
}

func failure(message string) (*Result, error) {
	errMsg := message
	return &Result{Success: false, Error: &errMsg}, nil
}
