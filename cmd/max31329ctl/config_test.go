package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"periph.io/x/conn/v3/physic"
)

func writeConfig(c *qt.C, body string) string {
	path := filepath.Join(c.TempDir(), "max31329ctl.toml")
	c.Assert(os.WriteFile(path, []byte(body), 0o600), qt.IsNil)
	return path
}

func TestLoadConfigEmptyPath(t *testing.T) {
	c := qt.New(t)
	cfg, err := loadConfig("")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.DeepEquals, defaultConfig())
}

func TestLoadConfigOverlay(t *testing.T) {
	c := qt.New(t)
	path := writeConfig(c, `
bus = " /dev/i2c-3 "
frequency_hz = 100000

[mqtt]
broker = "tcp://broker:1883"
interval = "250ms"
qos = 1
`)
	cfg, err := loadConfig(path)
	c.Assert(err, qt.IsNil)

	want := defaultConfig()
	want.Bus = "/dev/i2c-3"
	want.Frequency = 100 * physic.KiloHertz
	want.MQTT.Broker = "tcp://broker:1883"
	want.MQTT.Interval = 250 * time.Millisecond
	want.MQTT.QoS = 1
	c.Assert(cfg, qt.DeepEquals, want)
}

func TestLoadConfigAddress(t *testing.T) {
	c := qt.New(t)
	cfg, err := loadConfig(writeConfig(c, "address = 0x69\n"))
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Address, qt.Equals, uint16(0x69))
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  string
	}{
		{"address too large", "address = 0x80", `address 0x80 is not a 7-bit i2c address`},
		{"address zero", "address = 0", `address 0x0 is not a 7-bit i2c address`},
		{"frequency", "frequency_hz = -1", `frequency_hz must be positive, got -1`},
		{"interval", "[mqtt]\ninterval = \"soon\"", `parsing mqtt.interval: .*`},
		{"negative interval", "[mqtt]\ninterval = \"-1s\"", `mqtt.interval must be positive, got -1s`},
		{"qos", "[mqtt]\nqos = 3", `mqtt.qos must be 0, 1 or 2, got 3`},
		{"syntax", "bus = ", `(?s)loading config .*`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := qt.New(t)
			_, err := loadConfig(writeConfig(c, test.body))
			c.Assert(err, qt.ErrorMatches, test.err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	c := qt.New(t)
	_, err := loadConfig(filepath.Join(c.TempDir(), "nope.toml"))
	c.Assert(err, qt.Not(qt.IsNil))
}
