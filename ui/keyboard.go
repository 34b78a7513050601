package ui

import (
	"log/slog"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/threerun/input"
)

// keyCodes maps binding key names to raylib key codes. Letters and digits
// are filled in by init.
var keyCodes = map[string][]int32{
	"space":      {rl.KeySpace},
	"shift":      {rl.KeyLeftShift, rl.KeyRightShift},
	"control":    {rl.KeyLeftControl, rl.KeyRightControl},
	"alt":        {rl.KeyLeftAlt, rl.KeyRightAlt},
	"enter":      {rl.KeyEnter},
	"tab":        {rl.KeyTab},
	"arrowup":    {rl.KeyUp},
	"arrowdown":  {rl.KeyDown},
	"arrowleft":  {rl.KeyLeft},
	"arrowright": {rl.KeyRight},
}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		keyCodes[string(c)] = []int32{rl.KeyA + int32(c-'a')}
	}
	for c := '0'; c <= '9'; c++ {
		keyCodes[string(c)] = []int32{rl.KeyZero + int32(c-'0')}
	}
}

// Keyboard polls raylib for the bound keys and forwards state changes to
// a sampler as key down and key up events.
type Keyboard struct {
	names []string
	down  map[string]bool
}

// NewKeyboard creates a keyboard source for the given key names. Names
// with no raylib key are logged and ignored.
func NewKeyboard(keys []string) *Keyboard {
	k := &Keyboard{down: make(map[string]bool)}
	for _, name := range keys {
		name = input.NormalizeKey(name)
		if _, ok := keyCodes[name]; !ok {
			slog.Warn("unknown key in bindings", "key", name)
			continue
		}
		k.names = append(k.names, name)
	}
	sort.Strings(k.names)
	return k
}

// Poll emits events for every bound key whose state changed since the
// last poll. While the sampler is detached nothing is forwarded, and keys
// still held on reattach are sent again.
func (k *Keyboard) Poll(s *input.Sampler) {
	if !s.Attached() {
		clear(k.down)
		return
	}
	for _, name := range k.names {
		held := false
		for _, code := range keyCodes[name] {
			if rl.IsKeyDown(code) {
				held = true
				break
			}
		}
		if held == k.down[name] {
			continue
		}
		k.down[name] = held
		if held {
			s.KeyDown(name)
		} else {
			s.KeyUp(name)
		}
	}
}
