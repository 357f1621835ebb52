package nodes

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/cmdflow/cmdflow/pkg/actuator"
	"github.com/cmdflow/cmdflow/pkg/domain"
)

// keySettle is the pause after a key combination.
const keySettle = 50 * time.Millisecond

var errNoKeyboard = errors.New("no keyboard actuator configured")

// KeyboardInputConfig configures a KeyboardInput.
type KeyboardInputConfig struct {
	Text     string        `mapstructure:"text" json:"text"`
	Interval time.Duration `mapstructure:"interval" json:"interval"`
}

// DefaultKeyboardInputConfig returns 50ms between characters.
func DefaultKeyboardInputConfig() KeyboardInputConfig {
	return KeyboardInputConfig{Interval: 50 * time.Millisecond}
}

func (c KeyboardInputConfig) Validate() error {
	if c.Interval < 0 {
		return fmt.Errorf("key interval must not be negative, got %s", c.Interval)
	}
	return nil
}

// KeyboardInput types Text one character at a time.
type KeyboardInput struct {
	detail
	Config   KeyboardInputConfig
	Keyboard actuator.Keyboard
}

func (k *KeyboardInput) Execute(ctx context.Context) error {
	if k.Keyboard == nil {
		return errNoKeyboard
	}
	total := utf8.RuneCountInString(k.Config.Text)
	i := 0
	for _, r := range k.Config.Text {
		if err := ctx.Err(); err != nil {
			return err
		}
		i++
		k.set(fmt.Sprintf("typing %d/%d", i, total))
		if err := k.Keyboard.TypeRune(r); err != nil {
			return fmt.Errorf("type %q: %w", r, err)
		}
		if err := actuator.Sleep(ctx, k.Config.Interval); err != nil {
			return err
		}
	}
	k.set("done")
	return nil
}

// NewKeyboardInput creates a text typing node.
func NewKeyboardInput(title string, cfg KeyboardInputConfig, kb actuator.Keyboard, opts ...domain.NodeOption) *domain.Node {
	return domain.NewNode(domain.KindKeyboardInput, title, &KeyboardInput{Config: cfg, Keyboard: kb}, opts...)
}

// KeyPressConfig configures a KeyPress.
type KeyPressConfig struct {
	Key   actuator.Key `mapstructure:"key" json:"key"`
	Ctrl  bool         `mapstructure:"ctrl" json:"ctrl"`
	Alt   bool         `mapstructure:"alt" json:"alt"`
	Shift bool         `mapstructure:"shift" json:"shift"`
}

// DefaultKeyPressConfig returns a plain Enter.
func DefaultKeyPressConfig() KeyPressConfig {
	return KeyPressConfig{Key: "enter"}
}

func (c KeyPressConfig) Validate() error {
	_, err := actuator.ParseKey(string(c.Key))
	return err
}

func (c KeyPressConfig) modifiers() []actuator.Key {
	var mods []actuator.Key
	if c.Ctrl {
		mods = append(mods, actuator.KeyControl)
	}
	if c.Alt {
		mods = append(mods, actuator.KeyAlt)
	}
	if c.Shift {
		mods = append(mods, actuator.KeyShift)
	}
	return mods
}

// KeyPress presses a key combination: modifiers down, key down and up, modifiers up.
type KeyPress struct {
	detail
	Config   KeyPressConfig
	Keyboard actuator.Keyboard
}

func (k *KeyPress) Execute(ctx context.Context) error {
	if k.Keyboard == nil {
		return errNoKeyboard
	}
	key, err := actuator.ParseKey(string(k.Config.Key))
	if err != nil {
		return err
	}
	k.set(fmt.Sprintf("pressing %s", key))

	mods := k.Config.modifiers()
	for _, m := range mods {
		if err := k.Keyboard.Press(m); err != nil {
			return fmt.Errorf("press %s: %w", m, err)
		}
	}
	pressErr := k.stroke(key)
	for i := len(mods) - 1; i >= 0; i-- {
		// Modifiers are released even when the stroke failed.
		if err := k.Keyboard.Release(mods[i]); err != nil && pressErr == nil {
			pressErr = fmt.Errorf("release %s: %w", mods[i], err)
		}
	}
	if pressErr != nil {
		return pressErr
	}

	if err := actuator.Sleep(ctx, keySettle); err != nil {
		return err
	}
	k.set("done")
	return nil
}

func (k *KeyPress) stroke(key actuator.Key) error {
	if err := k.Keyboard.Press(key); err != nil {
		return fmt.Errorf("press %s: %w", key, err)
	}
	if err := k.Keyboard.Release(key); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}

// NewKeyPress creates a key combination node.
func NewKeyPress(title string, cfg KeyPressConfig, kb actuator.Keyboard, opts ...domain.NodeOption) *domain.Node {
	return domain.NewNode(domain.KindKeyPress, title, &KeyPress{Config: cfg, Keyboard: kb}, opts...)
}
