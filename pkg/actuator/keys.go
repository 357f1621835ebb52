package actuator

import (
	"fmt"
	"strings"
)

// Key names a virtual key.
type Key string

const (
	KeyControl Key = "ctrl"
	KeyAlt     Key = "alt"
	KeyShift   Key = "shift"
)

// Virtual key codes, as used by the Windows input API.
var keyCodes = map[Key]byte{
	KeyControl:  0x11,
	KeyAlt:      0x12,
	KeyShift:    0x10,
	"enter":     0x0D,
	"tab":       0x09,
	"escape":    0x1B,
	"space":     0x20,
	"backspace": 0x08,
	"delete":    0x2E,
	"home":      0x24,
	"end":       0x23,
	"pageup":    0x21,
	"pagedown":  0x22,
	"up":        0x26,
	"down":      0x28,
	"left":      0x25,
	"right":     0x27,
	"f1":        0x70,
	"f2":        0x71,
	"f3":        0x72,
	"f4":        0x73,
	"f5":        0x74,
	"f6":        0x75,
	"f7":        0x76,
	"f8":        0x77,
	"f9":        0x78,
	"f10":       0x79,
	"f11":       0x7A,
	"f12":       0x7B,
}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		keyCodes[Key(string(c))] = byte(c - 'a' + 'A')
	}
	for c := '0'; c <= '9'; c++ {
		keyCodes[Key(string(c))] = byte(c)
	}
}

// ParseKey validates a key name, case-insensitively.
func ParseKey(s string) (Key, error) {
	k := Key(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := keyCodes[k]; !ok {
		return "", fmt.Errorf("unknown key %q", s)
	}
	return k, nil
}

// Code returns the virtual key code of k.
func (k Key) Code() (byte, bool) {
	c, ok := keyCodes[k]
	return c, ok
}
