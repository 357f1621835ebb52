package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/nodes"
	"github.com/mitchellh/mapstructure"
)

// Factory builds a node of one kind from loosely typed parameters.
type Factory func(title string, params map[string]any, opts ...domain.NodeOption) (*domain.Node, error)

// Registry manages the available node kinds.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]Factory),
	}
}

// NewDefault returns a registry with every built-in kind wired to the given devices.
func NewDefault(devices nodes.Devices) *Registry {
	r := NewRegistry()
	r.Register(domain.KindStart, func(title string, params map[string]any, opts ...domain.NodeOption) (*domain.Node, error) {
		return nodes.NewStart(title, opts...), nil
	})
	r.Register(domain.KindDelay, func(title string, params map[string]any, opts ...domain.NodeOption) (*domain.Node, error) {
		cfg := nodes.DefaultDelayConfig()
		if err := decode(params, &cfg); err != nil {
			return nil, err
		}
		return nodes.NewDelay(title, cfg, opts...), nil
	})
	r.Register(domain.KindLoop, func(title string, params map[string]any, opts ...domain.NodeOption) (*domain.Node, error) {
		cfg := nodes.DefaultLoopConfig()
		if err := decode(params, &cfg); err != nil {
			return nil, err
		}
		return nodes.NewLoop(title, cfg, opts...), nil
	})
	r.Register(domain.KindMouseClick, func(title string, params map[string]any, opts ...domain.NodeOption) (*domain.Node, error) {
		cfg := nodes.DefaultMouseClickConfig()
		if err := decode(params, &cfg); err != nil {
			return nil, err
		}
		return nodes.NewMouseClick(title, cfg, devices.Pointer, opts...), nil
	})
	r.Register(domain.KindMouseMove, func(title string, params map[string]any, opts ...domain.NodeOption) (*domain.Node, error) {
		cfg := nodes.DefaultMouseMoveConfig()
		if err := decode(params, &cfg); err != nil {
			return nil, err
		}
		return nodes.NewMouseMove(title, cfg, devices.Pointer, opts...), nil
	})
	r.Register(domain.KindKeyboardInput, func(title string, params map[string]any, opts ...domain.NodeOption) (*domain.Node, error) {
		cfg := nodes.DefaultKeyboardInputConfig()
		if err := decode(params, &cfg); err != nil {
			return nil, err
		}
		return nodes.NewKeyboardInput(title, cfg, devices.Keyboard, opts...), nil
	})
	r.Register(domain.KindKeyPress, func(title string, params map[string]any, opts ...domain.NodeOption) (*domain.Node, error) {
		cfg := nodes.DefaultKeyPressConfig()
		if err := decode(params, &cfg); err != nil {
			return nil, err
		}
		return nodes.NewKeyPress(title, cfg, devices.Keyboard, opts...), nil
	})
	return r
}

// Register adds a kind to the registry.
// If a kind with the same name exists, it is overwritten.
func (r *Registry) Register(kind string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[kind] = fn
}

// Build looks up a kind by name and constructs a node.
// Returns an error if the kind is not found or the parameters are invalid.
func (r *Registry) Build(kind, title string, params map[string]any, opts ...domain.NodeOption) (*domain.Node, error) {
	r.mu.RLock()
	fn, ok := r.kinds[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("kind not found: %s", kind)
	}

	node, err := fn(title, params, opts...)
	if err != nil {
		return nil, fmt.Errorf("build %s node %q: %w", kind, title, err)
	}
	return node, nil
}

// Kinds returns the registered kind names, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

type validator interface {
	Validate() error
}

// decode overlays params onto cfg (which holds the kind defaults) and validates it.
// Durations accept strings ("250ms") or integer milliseconds.
func decode[T validator](params map[string]any, cfg *T) error {
	if len(params) > 0 {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				millisecondsHook,
				mapstructure.StringToTimeDurationHookFunc(),
			),
		})
		if err != nil {
			return err
		}
		if err := dec.Decode(params); err != nil {
			return fmt.Errorf("invalid parameters: %w", err)
		}
	}
	return (*cfg).Validate()
}

// millisecondsHook reads bare numbers as milliseconds when the target is a time.Duration.
func millisecondsHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case int64:
		return time.Duration(v) * time.Millisecond, nil
	case float64:
		return time.Duration(v * float64(time.Millisecond)), nil
	}
	return data, nil
}
