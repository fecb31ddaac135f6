// Package ext holds the extended digital pin capabilities: input pins,
// output pins with read-back and software toggling.
//
// Unlike the core contract in pkg/digital, this surface is less battle
// tested and callers opt into it explicitly. It adds no behaviour to
// OutputPin itself; a driver is free to implement any subset.
package ext

import (
	"digio/pkg/digital"
)

// InputPin is a single digital input pin.
//
// For any physical two-state pin IsHigh() == !IsLow() must hold; the
// contract cannot enforce this, implementations must.
type InputPin interface {
	// IsHigh reports whether the input reads a logical 1.
	IsHigh() bool
	// IsLow reports whether the input reads a logical 0.
	IsLow() bool
}

// StatefulOutputPin is an output pin that can report the level most
// recently commanded through its set operations.
//
// The reported level is the commanded state, not the measured
// electrical state. IsSetHigh() == !IsSetLow() must always hold.
type StatefulOutputPin interface {
	// IsSetHigh reports whether the pin was last set to a logical 1.
	IsSetHigh() bool
	// IsSetLow reports whether the pin was last set to a logical 0.
	IsSetLow() bool
}

// ToggleableOutputPin is an output pin whose commanded level can be
// flipped.
//
// A driver with a hardware toggle register implements this directly;
// anything satisfying Toggleable gets it in software via Toggle or
// Toggler.
type ToggleableOutputPin interface {
	// Toggle flips the commanded level.
	Toggle()
}

// Toggleable is the capability set needed for the software toggle:
// a pin that can be written and read back.
type Toggleable interface {
	digital.OutputPin
	StatefulOutputPin
}

// Toggle flips the commanded level of p by reading the cached state
// and writing the opposite. The two states are exhaustive by the
// StatefulOutputPin invariant, so a single branch suffices.
func Toggle(p Toggleable) {
	if p.IsSetLow() {
		p.SetHigh()
	} else {
		p.SetLow()
	}
}

// Toggler grants ToggleableOutputPin to any Toggleable pin. It is the
// explicit opt-in to the software toggle: wrapping adds no state, all
// other operations pass through to the wrapped pin.
type Toggler struct {
	Toggleable
}

var _ ToggleableOutputPin = Toggler{}

// Toggle flips the commanded level of the wrapped pin.
func (t Toggler) Toggle() {
	Toggle(t.Toggleable)
}
