package ext

import (
	"digio/pkg/digital"
)

// CachedOutputPin wraps an OutputPin that cannot read back its own
// state and makes it a StatefulOutputPin (and thereby toggleable) by
// caching the last commanded level.
//
// The cache mirrors the last write, never the true electrical state.
// The wrapper holds no lock; with concurrent callers the owner must
// serialize access itself.
type CachedOutputPin struct {
	pin   digital.OutputPin
	state digital.Level
}

var (
	_ digital.OutputPin   = (*CachedOutputPin)(nil)
	_ StatefulOutputPin   = (*CachedOutputPin)(nil)
	_ ToggleableOutputPin = (*CachedOutputPin)(nil)
)

// NewCachedOutputPin wraps pin with a state cache initialized to
// initial. The wrapper cannot know the pin's true power-on state, so
// the caller must supply the electrically correct starting assumption.
func NewCachedOutputPin(pin digital.OutputPin, initial digital.Level) *CachedOutputPin {
	return &CachedOutputPin{pin: pin, state: initial}
}

// Unwrap consumes the wrapper and returns the inner pin. The physical
// pin is untouched. The wrapper must not be used afterwards; any
// further set or toggle panics.
func (c *CachedOutputPin) Unwrap() digital.OutputPin {
	pin := c.pin
	c.pin = nil
	return pin
}

// SetHigh commits a logical 1 to the inner pin and caches it.
func (c *CachedOutputPin) SetHigh() {
	c.pin.SetHigh()
	c.state = digital.High
}

// SetLow commits a logical 0 to the inner pin and caches it.
func (c *CachedOutputPin) SetLow() {
	c.pin.SetLow()
	c.state = digital.Low
}

// IsSetHigh reports whether the last commanded level was high. Pure
// cache read, the inner pin is never touched.
func (c *CachedOutputPin) IsSetHigh() bool {
	return c.state == digital.High
}

// IsSetLow reports whether the last commanded level was low.
func (c *CachedOutputPin) IsSetLow() bool {
	return c.state == digital.Low
}

// Toggle flips the commanded level using the software toggle.
func (c *CachedOutputPin) Toggle() {
	Toggle(c)
}
