package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kodediy/tinygo-drivers/max31329"
)

type publisher interface {
	Publish(topic string, qos byte, payload []byte) error
	Close()
}

type mqttPublisher struct {
	client mqtt.Client
}

func dialMQTT(cfg mqttConfig, logger *zap.Logger) (publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logger.Warn("mqtt connection lost", zap.String("broker", cfg.Broker), zap.Error(err))
		})
	client := mqtt.NewClient(opts)
	if tok := client.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, errors.Wrapf(tok.Error(), "connecting to %s", cfg.Broker)
	}
	logger.Info("connected to mqtt broker", zap.String("broker", cfg.Broker))
	return &mqttPublisher{client: client}, nil
}

func (p *mqttPublisher) Publish(topic string, qos byte, payload []byte) error {
	tok := p.client.Publish(topic, qos, false, payload)
	tok.Wait()
	return tok.Error()
}

func (p *mqttPublisher) Close() {
	p.client.Disconnect(250)
}

// sample is the published payload. Reading the status clears its latched flags, so each flag is reported once.
type sample struct {
	Time      time.Time `json:"time"`
	Weekday   int       `json:"weekday"`
	Status    []string  `json:"status"`
	LostPower bool      `json:"lost_power"`
	OnBackup  bool      `json:"on_backup"`
}

func readSample(dev *max31329.Device) (sample, error) {
	t, err := dev.ReadTime()
	if err != nil {
		return sample{}, errors.Wrap(err, "reading time")
	}
	s, err := dev.ReadStatus()
	if err != nil {
		return sample{}, errors.Wrap(err, "reading status")
	}
	return sample{
		Time:      t.Time(),
		Weekday:   t.Weekday,
		Status:    statusList(s),
		LostPower: s.Has(max31329.StatusOscStopped),
		OnBackup:  s.Has(max31329.StatusOnBackup),
	}, nil
}

func (e *env) publishCommand() *cli.Command {
	return &cli.Command{
		Name:  "publish",
		Usage: "publish time and status to an MQTT broker",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: flagCount, Usage: "stop after `N` messages, 0 to run until interrupted"},
			&cli.DurationFlag{Name: flagInterval, Usage: "time between messages, overrides mqtt.interval"},
			&cli.StringFlag{Name: flagTopic, Usage: "topic, overrides mqtt.topic"},
		},
		Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
			cfg := e.cfg.MQTT
			if c.IsSet(flagInterval) {
				cfg.Interval = c.Duration(flagInterval)
				if cfg.Interval <= 0 {
					return errors.Errorf("interval must be positive, got %s", cfg.Interval)
				}
			}
			if c.IsSet(flagTopic) {
				cfg.Topic = c.String(flagTopic)
			}
			count := c.Int(flagCount)
			if count < 0 {
				return errors.Errorf("count must not be negative, got %d", count)
			}

			pub, err := e.dial(cfg, e.log)
			if err != nil {
				return err
			}
			defer pub.Close()

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			sent, err := publishLoop(ctx, dev, pub, cfg, count, e.log)
			fmt.Fprintf(c.App.Writer, "published %d messages to %s\n", sent, cfg.Topic)
			return err
		}),
	}
}

// publishLoop publishes a sample immediately and then every cfg.Interval, until count messages are sent (count 0
// means no limit) or ctx is done.
func publishLoop(ctx context.Context, dev *max31329.Device, pub publisher, cfg mqttConfig, count int, logger *zap.Logger) (int, error) {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	sent := 0
	for {
		s, err := readSample(dev)
		if err != nil {
			return sent, err
		}
		payload, err := json.Marshal(s)
		if err != nil {
			return sent, errors.Wrap(err, "encoding sample")
		}
		if err := pub.Publish(cfg.Topic, cfg.QoS, payload); err != nil {
			return sent, errors.Wrapf(err, "publishing to %s", cfg.Topic)
		}
		sent++
		logger.Debug("published sample", zap.String("topic", cfg.Topic), zap.ByteString("payload", payload))

		if count > 0 && sent >= count {
			return sent, nil
		}
		select {
		case <-ctx.Done():
			return sent, nil
		case <-ticker.C:
		}
	}
}
