package display

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/curbsense/parking-space-mgmt/pkg/types"
	"gopkg.in/yaml.v2"
)

const (
	CommandSetDisplay = "set_display"
	CommandReboot     = "reboot"

	PriorityReboot   = 1
	PriorityResolved = 3
	PriorityOverride = 5
)

// DefaultPolicy is the built-in state to action table, used when no
// space, site or tenant level policy overrides a state.
var DefaultPolicy = types.SpacePolicy{
	Free:        &types.DisplayAction{Color: "green", Pattern: "solid"},
	Occupied:    &types.DisplayAction{Color: "red", Pattern: "solid"},
	Reserved:    &types.DisplayAction{Color: "blue", Pattern: "blink"},
	Maintenance: &types.DisplayAction{Color: "orange", Pattern: "solid"},
	Unknown:     &types.DisplayAction{Color: "yellow", Pattern: "slow_blink"},
}

// ErrorAction signals a device fault and is not tied to any space state.
var ErrorAction = types.DisplayAction{Color: "red", Pattern: "fast_blink"}

type TenantPolicies struct {
	Policy *types.SpacePolicy            `yaml:"policy"`
	Sites  map[string]*types.SpacePolicy `yaml:"sites"`
}

type Config struct {
	Tenants map[string]TenantPolicies `yaml:"tenants"`
}

func NewConfig(r io.Reader) (*Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not parse display policy configuration: %w", err)
	}

	for tenant, tp := range cfg.Tenants {
		if err := tp.Policy.Validate(); err != nil {
			return nil, fmt.Errorf("tenant %s: %w", tenant, err)
		}
		for site, sp := range tp.Sites {
			if err := sp.Validate(); err != nil {
				return nil, fmt.Errorf("tenant %s site %s: %w", tenant, site, err)
			}
		}
	}

	return cfg, nil
}

//go:generate moq -rm -out commandqueuer_mock.go . CommandQueuer
type CommandQueuer interface {
	QueueCommand(ctx context.Context, tenants []string, deviceID, commandType string, payload json.RawMessage, priority int, confirmed bool) (string, error)
}

type Resolver struct {
	config *Config
}

func NewResolver(config *Config) *Resolver {
	if config == nil {
		config = &Config{}
	}
	return &Resolver{config: config}
}

// Resolve maps a space state to a display action, consulting policies
// in priority order: space override, site, tenant, built-in default.
func (r *Resolver) Resolve(space types.Space, state types.SpaceState) types.DisplayAction {
	if a := space.Policy.Action(state); a != nil {
		return *a
	}

	if tp, ok := r.config.Tenants[space.Tenant]; ok {
		if space.SiteID != "" {
			if a := tp.Sites[space.SiteID].Action(state); a != nil {
				return *a
			}
		}
		if a := tp.Policy.Action(state); a != nil {
			return *a
		}
	}

	if a := DefaultPolicy.Action(state); a != nil {
		return *a
	}

	return *DefaultPolicy.Unknown
}

// SetDisplayPayload is the body of a set_display downlink command.
type SetDisplayPayload struct {
	Color   string `json:"color"`
	Pattern string `json:"pattern"`
}

func EncodeAction(a types.DisplayAction) json.RawMessage {
	b, _ := json.Marshal(SetDisplayPayload{Color: a.Color, Pattern: a.Pattern})
	return b
}

// Submit queues a set_display command for the space's display device.
// Spaces without an assigned display are a no-op.
func (r *Resolver) Submit(ctx context.Context, q CommandQueuer, space types.Space, state types.SpaceState) (types.DisplayAction, error) {
	action := r.Resolve(space, state)

	if space.DisplayDeviceID == "" {
		return action, nil
	}

	_, err := q.QueueCommand(ctx, []string{space.Tenant}, space.DisplayDeviceID, CommandSetDisplay, EncodeAction(action), PriorityResolved, false)
	if err != nil {
		return action, err
	}

	return action, nil
}

// SetColor queues a manual display override, which outranks nothing in
// the queue (lowest priority) but bypasses policy resolution.
func (r *Resolver) SetColor(ctx context.Context, q CommandQueuer, space types.Space, action types.DisplayAction) (string, error) {
	if space.DisplayDeviceID == "" {
		return "", fmt.Errorf("space %s has no display device assigned", space.SpaceID)
	}

	return q.QueueCommand(ctx, []string{space.Tenant}, space.DisplayDeviceID, CommandSetDisplay, EncodeAction(action), PriorityOverride, false)
}

// Reboot queues a confirmed reboot command at the highest priority.
func (r *Resolver) Reboot(ctx context.Context, q CommandQueuer, tenant, deviceID string) (string, error) {
	return q.QueueCommand(ctx, []string{tenant}, deviceID, CommandReboot, json.RawMessage(`{}`), PriorityReboot, true)
}

// RefreshSite re-submits the resolved action for every given space,
// typically after a policy change for a site.
func (r *Resolver) RefreshSite(ctx context.Context, q CommandQueuer, spaces []types.Space) error {
	for _, space := range spaces {
		_, err := r.Submit(ctx, q, space, space.CurrentState)
		if err != nil {
			return err
		}
	}
	return nil
}
