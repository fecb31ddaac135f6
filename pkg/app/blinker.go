package app

import (
	"time"

	"github.com/womat/debug"
)

// runBlinker toggles the configured pin at a fixed interval.
//  It's designed to run in a separate go function, see app.Run().
//  The blinker stops when the shutdown channel is closed.
func (app *App) runBlinker() {
	name := app.config.Blinker.Pin
	if _, ok := app.pins[name]; !ok {
		debug.ErrorLog.Printf("blinker: unknown pin %q", name)
		return
	}

	debug.InfoLog.Printf("blinking pin %s every %v", name, app.config.Blinker.Interval)

	tick := time.NewTicker(app.config.Blinker.Interval)
	defer tick.Stop()

	for {
		select {
		case <-tick.C:
			// SetPin serializes against the web handlers and publishes
			l, err := app.SetPin(name, "toggle")
			if err != nil {
				debug.ErrorLog.Printf("blinker: %v", err)
				return
			}
			debug.TraceLog.Printf("blinker: pin %s %s", name, l)
		case <-app.shutdown:
			return
		}
	}
}
