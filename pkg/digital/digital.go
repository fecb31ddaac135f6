// Package digital holds the minimal contract for digital output pins.
//
// This is the proven core of the pin abstraction: a concrete driver
// (memory mapped gpio, an i2c port expander, a pin held in software)
// implements OutputPin and nothing more. Read-back, toggling and input
// pins live in the opt-in sub package digital/ext.
package digital

// Level represents the logical state of a digital pin.
//
// Level is independent of the electrical encoding (active-high or
// active-low wiring); mapping a Level onto voltages is the concrete
// driver's job.
type Level bool

const (
	// Low indicates a logical 0.
	Low Level = false
	// High indicates a logical 1.
	High Level = true
)

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// OutputPin is a single digital output pin.
//
// Both operations always succeed. A driver whose pin writes can fail
// (e.g. a bus backed pin) must signal failure through its own
// mechanism outside this contract.
type OutputPin interface {
	// SetHigh commits a logical 1 to the pin.
	SetHigh()
	// SetLow commits a logical 0 to the pin.
	SetLow()
}

// Set commits the given level to the pin.
func Set(p OutputPin, l Level) {
	if l == High {
		p.SetHigh()
		return
	}
	p.SetLow()
}
