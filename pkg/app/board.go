package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/womat/debug"

	"digio/pkg/app/config"
	"digio/pkg/digital"
	"digio/pkg/digital/ext"
	"digio/pkg/digital/sim"
	"digio/pkg/mqtt"
)

var (
	ErrUnknownPin    = errors.New("unknown pin")
	ErrInvalidAction = errors.New("invalid action")
)

// outputPin is the capability set the board exposes for every pin:
// write, read-back of the commanded state, toggle.
type outputPin interface {
	digital.OutputPin
	ext.StatefulOutputPin
	ext.ToggleableOutputPin
}

// addPin builds the board pin for one config entry.
// A pin with native read-back opts into the software toggle directly;
// a write-only pin is wrapped in a state cache first, which makes it
// stateful and thereby toggleable.
func (app *App) addPin(pc config.PinConfig) error {
	if pc.Name == "" {
		return fmt.Errorf("pin without name in configuration")
	}
	if _, ok := app.pins[pc.Name]; ok {
		return fmt.Errorf("pin %q is defined twice", pc.Name)
	}

	var p outputPin
	if pc.Readback {
		p = ext.Toggler{Toggleable: sim.NewPin(pc.InitialLevel)}
	} else {
		p = ext.NewCachedOutputPin(sim.NewWriteOnlyPin(pc.InitialLevel), pc.InitialLevel)
	}

	app.pins[pc.Name] = p
	app.names = append(app.names, pc.Name)

	debug.InfoLog.Printf("pin %s: initial %s, readback %v", pc.Name, pc.InitialLevel, pc.Readback)
	return nil
}

// SetPin applies an action ("high", "low" or "toggle") to the named
// pin and returns the resulting commanded level.
func (app *App) SetPin(name, action string) (digital.Level, error) {
	p, ok := app.pins[name]
	if !ok {
		return digital.Low, fmt.Errorf("%w: %q", ErrUnknownPin, name)
	}

	app.pinLock.Lock()
	switch action {
	case "high":
		p.SetHigh()
	case "low":
		p.SetLow()
	case "toggle":
		p.Toggle()
	default:
		app.pinLock.Unlock()
		return digital.Low, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	l := levelOf(p)
	app.pinLock.Unlock()

	debug.DebugLog.Printf("pin %s set %s", name, l)
	app.publish(name, l)
	return l, nil
}

// PinLevel returns the commanded level of the named pin.
func (app *App) PinLevel(name string) (digital.Level, error) {
	p, ok := app.pins[name]
	if !ok {
		return digital.Low, fmt.Errorf("%w: %q", ErrUnknownPin, name)
	}

	app.pinLock.Lock()
	l := levelOf(p)
	app.pinLock.Unlock()
	return l, nil
}

// levelOf converts the commanded state back to a Level. Exactly one of
// the two predicates holds, so the high check is sufficient.
func levelOf(p ext.StatefulOutputPin) digital.Level {
	if p.IsSetHigh() {
		return digital.High
	}
	return digital.Low
}

// publish sends the level change to the mqtt service channel.
// Without a configured broker the service drops the message.
func (app *App) publish(name string, l digital.Level) {
	payload, err := json.Marshal(struct {
		Pin   string    `json:"pin"`
		Level string    `json:"level"`
		Time  time.Time `json:"time"`
	}{
		Pin:   name,
		Level: l.String(),
		Time:  time.Now(),
	})
	if err != nil {
		debug.ErrorLog.Printf("can't marshal state of pin %s: %v", name, err)
		return
	}

	app.mqtt.C <- mqtt.Message{
		Topic:   app.config.MQTT.Topic + "/" + name,
		Payload: payload,
	}
}
