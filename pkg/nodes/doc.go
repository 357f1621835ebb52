/*
Package nodes implements the built-in node kinds.

Each kind is an Action (see domain.Action) owning its own configuration. Kinds that
take time poll the context between steps so a Stop request interrupts them promptly.

  - Start: entry point, no inputs.
  - Delay: waits for a duration.
  - Loop: runs its "body" output Count times, then continues on "done".
  - MouseClick, MouseMove: drive an actuator.Pointer.
  - KeyboardInput, KeyPress: drive an actuator.Keyboard.
*/
package nodes

import (
	"sync/atomic"

	"github.com/cmdflow/cmdflow/pkg/actuator"
)

// Devices bundles the actuators the input kinds drive.
type Devices struct {
	Pointer  actuator.Pointer
	Keyboard actuator.Keyboard
}

// detail is a progress text readable while the action runs.
type detail struct {
	v atomic.Pointer[string]
}

func (d *detail) set(s string) { d.v.Store(&s) }

func (d *detail) Detail() string {
	if p := d.v.Load(); p != nil {
		return *p
	}
	return ""
}
