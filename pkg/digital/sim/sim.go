// Package sim provides digital pins held entirely in software.
//
// A sim pin behaves like a gpio line whose "hardware" is a single
// in-memory level. It serves two purposes: package tests of the
// capability contracts, and running the application on machines
// without any gpio hardware at all.
package sim

import (
	"digio/pkg/digital"
	"digio/pkg/digital/ext"
)

// Pin is a virtual pin with native read-back. It implements the full
// extended capability set except toggling, which it gains through
// ext.Toggler or ext.Toggle.
type Pin struct {
	level digital.Level
}

var (
	_ digital.OutputPin     = (*Pin)(nil)
	_ ext.StatefulOutputPin = (*Pin)(nil)
	_ ext.InputPin          = (*Pin)(nil)
)

// NewPin creates a virtual pin committed to the given level.
func NewPin(initial digital.Level) *Pin {
	return &Pin{level: initial}
}

// SetHigh commits a logical 1.
func (p *Pin) SetHigh() {
	p.level = digital.High
}

// SetLow commits a logical 0.
func (p *Pin) SetLow() {
	p.level = digital.Low
}

// IsSetHigh reports whether the last commanded level was high.
func (p *Pin) IsSetHigh() bool {
	return p.level == digital.High
}

// IsSetLow reports whether the last commanded level was low.
func (p *Pin) IsSetLow() bool {
	return p.level == digital.Low
}

// IsHigh reports the pin level. On a sim pin the measured level always
// equals the commanded level.
func (p *Pin) IsHigh() bool {
	return p.level == digital.High
}

// IsLow reports the inverse of IsHigh.
func (p *Pin) IsLow() bool {
	return p.level == digital.Low
}

// WriteOnlyPin is a virtual pin without read-back, the software
// equivalent of an output register that cannot be read. It is the
// natural candidate for ext.CachedOutputPin.
type WriteOnlyPin struct {
	level  digital.Level
	writes int
}

var _ digital.OutputPin = (*WriteOnlyPin)(nil)

// NewWriteOnlyPin creates a write-only virtual pin committed to the
// given level.
func NewWriteOnlyPin(initial digital.Level) *WriteOnlyPin {
	return &WriteOnlyPin{level: initial}
}

// SetHigh commits a logical 1.
func (p *WriteOnlyPin) SetHigh() {
	p.level = digital.High
	p.writes++
}

// SetLow commits a logical 0.
func (p *WriteOnlyPin) SetLow() {
	p.level = digital.Low
	p.writes++
}

// Level reports the committed level. This is test and diagnostic
// access to the simulated hardware, not part of the pin contract.
func (p *WriteOnlyPin) Level() digital.Level {
	return p.level
}

// Writes reports how many set operations reached the pin.
func (p *WriteOnlyPin) Writes() int {
	return p.writes
}
