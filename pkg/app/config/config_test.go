package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"digio/pkg/digital"
)

const testConfig = `debug:
  flag: debug
  file: stderr
webserver:
  url: http://0.0.0.0:7844
  webservices:
    version: true
    health: false
    pins: true
mqtt:
  connection: tcp://127.0.0.1:1883
  topic: home/pins
pins:
  - name: led0
    initial: high
    readback: true
  - name: relay1
blinker:
  pin: led0
  interval: 250
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "digio.yaml")
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return file
}

func TestLoadConfig(t *testing.T) {
	c := NewConfig()
	c.Flag.ConfigFile = writeConfigFile(t, testConfig)

	if err := c.LoadConfig(); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if c.Webserver.URL != "http://0.0.0.0:7844" {
		t.Errorf("Webserver.URL = %q", c.Webserver.URL)
	}
	if c.Webserver.Webservices["health"] {
		t.Error("webservice health should be disabled")
	}
	if c.MQTT.Topic != "home/pins" {
		t.Errorf("MQTT.Topic = %q", c.MQTT.Topic)
	}
	if c.Blinker.Interval != 250*time.Millisecond {
		t.Errorf("Blinker.Interval = %v, want 250ms", c.Blinker.Interval)
	}

	if len(c.Pins) != 2 {
		t.Fatalf("len(Pins) = %d, want 2", len(c.Pins))
	}
	if c.Pins[0].InitialLevel != digital.High || !c.Pins[0].Readback {
		t.Errorf("Pins[0] = %+v, want initial high with readback", c.Pins[0])
	}
	// initial level defaults to low
	if c.Pins[1].InitialLevel != digital.Low || c.Pins[1].Readback {
		t.Errorf("Pins[1] = %+v, want initial low without readback", c.Pins[1])
	}
}

func TestLoadConfigInvalidLevel(t *testing.T) {
	c := NewConfig()
	c.Flag.ConfigFile = writeConfigFile(t, "pins:\n  - name: led0\n    initial: sideways\n")

	if err := c.LoadConfig(); err == nil {
		t.Error("LoadConfig with invalid initial level did not fail")
	}
}

func TestLoadConfigInvalidBlinkerInterval(t *testing.T) {
	c := NewConfig()
	c.Flag.ConfigFile = writeConfigFile(t, "blinker:\n  pin: led0\n  interval: 0\n")

	if err := c.LoadConfig(); err == nil {
		t.Error("LoadConfig with zero blinker interval did not fail")
	}

	// without a blinker pin the interval is irrelevant
	c = NewConfig()
	c.Flag.ConfigFile = writeConfigFile(t, "blinker:\n  interval: 0\n")

	if err := c.LoadConfig(); err != nil {
		t.Errorf("LoadConfig without blinker pin: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	c := NewConfig()
	c.Flag.ConfigFile = filepath.Join(t.TempDir(), "missing.yaml")

	if err := c.LoadConfig(); err == nil {
		t.Error("LoadConfig with missing file did not fail")
	}
}
