package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/womat/debug"
	"gopkg.in/yaml.v2"

	"digio/pkg/digital"
)

// Config holds the application configuration.
// Config defines the struct of global config and the struct of the configuration file.
type Config struct {
	Flag      FlagConfig      `yaml:"-"`
	Debug     DebugConfig     `yaml:"debug"`
	Webserver WebserverConfig `yaml:"webserver"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	Pins      []PinConfig     `yaml:"pins"`
	Blinker   BlinkerConfig   `yaml:"blinker"`
}

// FlagConfig defines the configured flags (parameters).
type FlagConfig struct {
	Debug      string
	ConfigFile string
}

// WebserverConfig defines the struct of the webserver and webservice configuration and configuration file.
type WebserverConfig struct {
	URL         string          `yaml:"url"`
	Webservices map[string]bool `yaml:"webservices"`
}

// MQTTConfig defines the struct of the mqtt client configuration and configuration file.
// Level changes are published to <topic>/<pin name>.
type MQTTConfig struct {
	Connection string `yaml:"connection"`
	Topic      string `yaml:"topic"`
}

// PinConfig describes one output pin of the virtual board.
// A pin with readback uses its native commanded state, a pin without
// readback is wrapped in a state cache to become toggleable.
type PinConfig struct {
	Name         string        `yaml:"name"`
	Initial      string        `yaml:"initial"`
	InitialLevel digital.Level `yaml:"-"`
	Readback     bool          `yaml:"readback"`
}

// BlinkerConfig defines the optional blinker: the named pin is toggled
// every interval (milliseconds). An empty pin name disables it.
type BlinkerConfig struct {
	Pin         string        `yaml:"pin"`
	IntervalInt int           `yaml:"interval"`
	Interval    time.Duration `yaml:"-"`
}

// DebugConfig defines the struct of the debug configuration and configuration file.
type DebugConfig struct {
	File       io.WriteCloser `yaml:"-"`
	Flag       int            `yaml:"-"`
	FlagString string         `yaml:"flag"`
	FileString string         `yaml:"file"`
}

func NewConfig() *Config {
	return &Config{
		Flag: FlagConfig{},
		Debug: DebugConfig{
			FileString: "stderr",
			FlagString: "standard",
		},
		Webserver: WebserverConfig{
			URL: "http://0.0.0.0:4000",
			Webservices: map[string]bool{
				"version": true,
				"health":  true,
				"pins":    true,
			},
		},
		MQTT: MQTTConfig{
			Topic: "digio/pins",
		},
		Pins: []PinConfig{
			{Name: "led0", Initial: "low", Readback: true},
		},
		Blinker: BlinkerConfig{
			IntervalInt: 500,
		},
	}
}

func (c *Config) LoadConfig() error {
	if err := c.readConfigFile(); err != nil {
		return fmt.Errorf("error reading config file %q: %w", c.Flag.ConfigFile, err)
	}

	if c.Flag.Debug != "" {
		c.Debug.FlagString = c.Flag.Debug
	}
	if err := c.setDebugConfig(); err != nil {
		return fmt.Errorf("unable to open debug file %q: %w", c.Debug.FileString, err)
	}

	// the interval feeds a ticker, which requires a positive duration
	if c.Blinker.Pin != "" && c.Blinker.IntervalInt <= 0 {
		return fmt.Errorf("blinker interval must be positive, got %d", c.Blinker.IntervalInt)
	}
	c.Blinker.Interval = time.Duration(c.Blinker.IntervalInt) * time.Millisecond

	for i := range c.Pins {
		l, err := parseLevel(c.Pins[i].Initial)
		if err != nil {
			return fmt.Errorf("pin %q: %w", c.Pins[i].Name, err)
		}
		c.Pins[i].InitialLevel = l
	}

	return nil
}

// parseLevel converts the configured initial level to a digital.Level.
// An empty string defaults to low, the safe assumption for most boards.
func parseLevel(s string) (digital.Level, error) {
	switch s {
	case "", "low", "0":
		return digital.Low, nil
	case "high", "1":
		return digital.High, nil
	}
	return digital.Low, fmt.Errorf("invalid initial level %q", s)
}

func (c *Config) readConfigFile() error {
	file, err := os.Open(c.Flag.ConfigFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	decoder := yaml.NewDecoder(file)
	if err = decoder.Decode(c); err != nil {
		return err
	}

	return nil
}

func (c *Config) setDebugConfig() (err error) {
	switch c.Debug.FlagString {
	case "trace", "full":
		c.Debug.Flag = debug.Full
	case "debug":
		c.Debug.Flag = debug.Warning | debug.Info | debug.Error | debug.Fatal | debug.Debug
	case "standard":
		c.Debug.Flag = debug.Standard
	}

	switch c.Debug.FileString {
	case "stderr":
		c.Debug.File = os.Stderr
	case "stdout":
		c.Debug.File = os.Stdout
	default:
		if c.Debug.File, err = os.OpenFile(c.Debug.FileString, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666); err != nil {
			return
		}
	}

	return
}
