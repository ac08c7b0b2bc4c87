// Command max31329ctl drives a MAX31329 real-time clock attached to a Linux I2C bus: it reads and sets the calendar,
// programs alarms, the countdown timer, clock pins, power and trickle charger, accesses the battery-backed RAM and can
// publish the clock's time and status over MQTT.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"

	"github.com/kodediy/tinygo-drivers/internal/hostbus"
	"github.com/kodediy/tinygo-drivers/max31329"
)

const (
	// Global flags.
	flagConfig    = "config"
	flagBus       = "bus"
	flagAddress   = "address"
	flagFrequency = "frequency"
	flagVerbose   = "verbose"

	// Command flags.
	flagCount     = "count"
	flagFreq      = "freq"
	flagRepeat    = "repeat"
	flagThreshold = "threshold"
	flagSupply    = "supply"
	flagMatch     = "match"
	flagTime      = "time"
	flagInterval  = "interval"
	flagTopic     = "topic"
)

type busCloser interface {
	drivers.I2C
	io.Closer
}

// env is the state shared by every command of one invocation, and by every line of a console session.
type env struct {
	cfg   config
	log   *zap.Logger
	ready bool

	in  io.Reader
	out io.Writer
	now func() time.Time

	open func(cfg config, logger *zap.Logger) (busCloser, error)
	dial func(cfg mqttConfig, logger *zap.Logger) (publisher, error)

	bus busCloser
	dev *max31329.Device
}

func newEnv() *env {
	return &env{
		in:  os.Stdin,
		out: os.Stdout,
		now: time.Now,
		open: func(cfg config, logger *zap.Logger) (busCloser, error) {
			return hostbus.Open(cfg.Bus, cfg.Frequency, logger)
		},
		dial: dialMQTT,
	}
}

func main() {
	e := newEnv()
	err := newApp(e).Run(os.Args)
	if cerr := e.close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "max31329ctl: %v\n", err)
		os.Exit(1)
	}
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:      "max31329ctl",
		Usage:     "control a MAX31329 real-time clock",
		Reader:    e.in,
		Writer:    e.out,
		ErrWriter: e.out,
		// errors are reported once by main, or per line by the console
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from TOML `FILE`",
			},
			&cli.StringFlag{
				Name:  flagBus,
				Usage: "i2c bus `NAME`, the first bus found if empty",
			},
			&cli.UintFlag{
				Name:  flagAddress,
				Usage: "7-bit i2c `ADDRESS` of the clock",
				Value: max31329.Address,
			},
			&cli.Int64Flag{
				Name:  flagFrequency,
				Usage: "bus clock in `HZ`",
				Value: int64(hostbus.DefaultFrequency / physic.Hertz),
			},
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "enable debug logging, including every bus transfer",
			},
		},
		Before:   e.before,
		Commands: e.commands(),
	}
}

// before loads the configuration once; flags given on the command line override the file.
func (e *env) before(c *cli.Context) error {
	if e.ready {
		return nil
	}
	cfg, err := loadConfig(c.String(flagConfig))
	if err != nil {
		return err
	}
	if c.IsSet(flagBus) {
		cfg.Bus = c.String(flagBus)
	}
	if c.IsSet(flagAddress) {
		addr := c.Uint(flagAddress)
		if addr < 0x01 || addr > 0x7F {
			return errors.Errorf("address %#x is not a 7-bit i2c address", addr)
		}
		cfg.Address = uint16(addr)
	}
	if c.IsSet(flagFrequency) {
		hz := c.Int64(flagFrequency)
		if hz <= 0 {
			return errors.Errorf("frequency must be positive, got %d", hz)
		}
		cfg.Frequency = physic.Frequency(hz) * physic.Hertz
	}

	if e.log == nil {
		var logger *zap.Logger
		if c.Bool(flagVerbose) {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return errors.Wrap(err, "creating logger")
		}
		e.log = logger
	}

	e.cfg = cfg
	e.ready = true
	return nil
}

// device opens the bus on first use. It does not probe the clock: a probe reads the status register, which would clear
// the flags the status command reports.
func (e *env) device() (*max31329.Device, error) {
	if e.dev != nil {
		return e.dev, nil
	}
	bus, err := e.open(e.cfg, e.log)
	if err != nil {
		return nil, err
	}
	dev := max31329.New(bus)
	dev.Address = e.cfg.Address
	e.bus, e.dev = bus, dev
	return dev, nil
}

func (e *env) close() error {
	var err error
	if e.bus != nil {
		err = e.bus.Close()
		e.bus, e.dev = nil, nil
	}
	if e.log != nil {
		// stderr cannot be synced on some platforms
		_ = e.log.Sync()
	}
	return err
}

// with wraps an action that needs the clock.
func (e *env) with(fn func(c *cli.Context, dev *max31329.Device) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		dev, err := e.device()
		if err != nil {
			return err
		}
		return fn(c, dev)
	}
}

func needArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return errors.Errorf("%s: want %d arguments (%s), got %d", c.Command.Name, n, c.Command.ArgsUsage, c.NArg())
	}
	return nil
}
