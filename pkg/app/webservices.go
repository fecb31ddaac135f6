package app

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/womat/debug"
)

// pinState is the web representation of one board pin.
type pinState struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// runWebServer starts the applications web server and listens for web requests.
//  It's designed to run in a separate go function to not block the main go function.
//  e.g.: go runWebServer()
//  See app.Run()
func (app *App) runWebServer() {
	err := app.web.Listen(app.urlParsed.Host)
	debug.ErrorLog.Print(err)
}

// HandlePins is the get state of all board pins web handler.
func (app *App) HandlePins() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		debug.InfoLog.Print("web request pins")

		states := make([]pinState, 0, len(app.names))
		app.pinLock.Lock()
		for _, n := range app.names {
			states = append(states, pinState{Name: n, Level: levelOf(app.pins[n]).String()})
		}
		app.pinLock.Unlock()
		return ctx.JSON(states)
	}
}

// HandlePin is the get state of a single pin web handler.
func (app *App) HandlePin() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		name := ctx.Params("name")
		debug.InfoLog.Printf("web request pin %s", name)

		l, err := app.PinLevel(name)
		if err != nil {
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.JSON(pinState{Name: name, Level: l.String()})
	}
}

// HandleSetPin is the set pin web handler.
// The level query parameter accepts high, low or toggle.
func (app *App) HandleSetPin() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		name := ctx.Params("name")
		action := ctx.Query("level")
		debug.InfoLog.Printf("web request set pin %s %s", name, action)

		l, err := app.SetPin(name, action)
		switch {
		case errors.Is(err, ErrUnknownPin):
			return ctx.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case err != nil:
			return ctx.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.JSON(pinState{Name: name, Level: l.String()})
	}
}
