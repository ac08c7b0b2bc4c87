package main

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/physic"

	"github.com/kodediy/tinygo-drivers/internal/hostbus"
	"github.com/kodediy/tinygo-drivers/max31329"
)

type config struct {
	Bus       string
	Address   uint16
	Frequency physic.Frequency
	MQTT      mqttConfig
}

type mqttConfig struct {
	Broker   string
	Topic    string
	ClientID string
	Interval time.Duration
	QoS      byte
}

func defaultConfig() config {
	return config{
		Address:   max31329.Address,
		Frequency: hostbus.DefaultFrequency,
		MQTT: mqttConfig{
			Broker:   "tcp://localhost:1883",
			Topic:    "max31329",
			ClientID: "max31329ctl",
			Interval: time.Second,
		},
	}
}

type fileConfig struct {
	Bus         string         `toml:"bus"`
	Address     int64          `toml:"address"`
	FrequencyHz int64          `toml:"frequency_hz"`
	MQTT        fileMQTTConfig `toml:"mqtt"`
}

type fileMQTTConfig struct {
	Broker   string `toml:"broker"`
	Topic    string `toml:"topic"`
	ClientID string `toml:"client_id"`
	Interval string `toml:"interval"`
	QoS      int64  `toml:"qos"`
}

// loadConfig returns the defaults overlaid with the keys present in the TOML file at path. An empty path yields the
// defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, errors.Wrapf(err, "loading config %s", path)
	}

	if meta.IsDefined("bus") {
		cfg.Bus = strings.TrimSpace(raw.Bus)
	}
	if meta.IsDefined("address") {
		if raw.Address < 0x01 || raw.Address > 0x7F {
			return config{}, errors.Errorf("address %#x is not a 7-bit i2c address", raw.Address)
		}
		cfg.Address = uint16(raw.Address)
	}
	if meta.IsDefined("frequency_hz") {
		if raw.FrequencyHz <= 0 {
			return config{}, errors.Errorf("frequency_hz must be positive, got %d", raw.FrequencyHz)
		}
		cfg.Frequency = physic.Frequency(raw.FrequencyHz) * physic.Hertz
	}

	if meta.IsDefined("mqtt", "broker") {
		cfg.MQTT.Broker = strings.TrimSpace(raw.MQTT.Broker)
	}
	if meta.IsDefined("mqtt", "topic") {
		cfg.MQTT.Topic = strings.TrimSpace(raw.MQTT.Topic)
	}
	if meta.IsDefined("mqtt", "client_id") {
		cfg.MQTT.ClientID = strings.TrimSpace(raw.MQTT.ClientID)
	}
	if meta.IsDefined("mqtt", "interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.MQTT.Interval))
		if err != nil {
			return config{}, errors.Wrap(err, "parsing mqtt.interval")
		}
		if d <= 0 {
			return config{}, errors.Errorf("mqtt.interval must be positive, got %s", d)
		}
		cfg.MQTT.Interval = d
	}
	if meta.IsDefined("mqtt", "qos") {
		if raw.MQTT.QoS < 0 || raw.MQTT.QoS > 2 {
			return config{}, errors.Errorf("mqtt.qos must be 0, 1 or 2, got %d", raw.MQTT.QoS)
		}
		cfg.MQTT.QoS = byte(raw.MQTT.QoS)
	}

	return cfg, nil
}
