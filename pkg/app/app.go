package app

import (
	"net/url"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/womat/debug"

	"digio/pkg/app/config"
	"digio/pkg/mqtt"
)

// App is the main application struct.
// App is where the application is wired up.
type App struct {
	// web is the fiber web framework instance
	web *fiber.App

	// config is the application configuration
	config *config.Config

	// urlParsed contains the parsed Config.Webserver.URL parameter
	urlParsed *url.URL

	// mqtt is the publisher to the mqtt broker
	mqtt *mqtt.Publisher

	// pins is the virtual board: one toggleable output pin per name
	pins map[string]outputPin
	// names keeps the configured pin order for listings
	names []string
	// pinLock serializes access to the board pins. The pin contracts
	// hold no lock themselves and require a single writer; web
	// handlers and the blinker run on concurrent goroutines.
	pinLock sync.Mutex

	// restart signals application restart
	restart chan struct{}
	// shutdown signals application shutdown
	shutdown chan struct{}
}

// New checks the web server URL and initializes the main app structure.
func New(config *config.Config) (*App, error) {
	u, err := url.Parse(config.Webserver.URL)
	if err != nil {
		debug.ErrorLog.Printf("Error parsing url %q: %s", config.Webserver.URL, err.Error())
		return &App{}, err
	}

	return &App{
		config:    config,
		urlParsed: u,

		web:  fiber.New(),
		mqtt: mqtt.New(),
		pins: map[string]outputPin{},

		restart:  make(chan struct{}),
		shutdown: make(chan struct{}),
	}, err
}

// Run starts the application.
func (app *App) Run() error {
	if err := app.init(); err != nil {
		return err
	}

	go app.mqtt.Service()
	go app.runWebServer()

	if app.config.Blinker.Pin != "" {
		go app.runBlinker()
	}

	return nil
}

// init builds the virtual board from the configuration and connects
// the mqtt broker.
func (app *App) init() error {
	for _, pc := range app.config.Pins {
		if err := app.addPin(pc); err != nil {
			debug.ErrorLog.Printf("can't add pin: %v", err)
			return err
		}
	}

	if err := app.mqtt.Connect(app.config.MQTT.Connection, MODULE); err != nil {
		debug.ErrorLog.Printf("can't open mqtt broker: %v", err)
		return err
	}

	// initDefaultRoutes should always be called last because it may
	// access things which must be initialized before
	app.initDefaultRoutes()

	return nil
}

// Restart returns the read only restart channel.
// Restart is used to be able to react on application restart. (see cmd/digio.go)
func (app *App) Restart() <-chan struct{} {
	return app.restart
}

// Shutdown returns the read only shutdown channel.
// Shutdown is used to be able to react on application shutdown. (see cmd/digio.go)
func (app *App) Shutdown() <-chan struct{} {
	return app.shutdown
}

func (app *App) Close() error {
	select {
	case <-app.shutdown:
	default:
		close(app.shutdown)
	}

	if app.mqtt != nil {
		_ = app.mqtt.Disconnect()
	}

	return nil
}
