package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kodediy/tinygo-drivers/max31329"
)

func (e *env) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "probe",
			Usage: "check that the clock answers, clearing its status flags",
			Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
				if err := dev.Configure(max31329.Config{Address: e.cfg.Address}); err != nil {
					return errors.Wrapf(err, "no answer from %#02x", dev.Address)
				}
				fmt.Fprintf(c.App.Writer, "max31329 at %#02x\n", dev.Address)
				return nil
			}),
		},
		{
			Name:  "time",
			Usage: "read the current time",
			Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
				t, err := dev.ReadTime()
				if err != nil {
					return errors.Wrap(err, "reading time")
				}
				fmt.Fprintf(c.App.Writer, "%s %s\n", t.Time().Format(time.RFC3339), weekdayName(t.Weekday))
				return nil
			}),
		},
		{
			Name:      "set",
			Usage:     "set the clock, from the host clock if no time is given",
			ArgsUsage: "[RFC3339]",
			Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
				t := e.now()
				if c.Args().Present() {
					var err error
					if t, err = time.Parse(time.RFC3339, c.Args().First()); err != nil {
						return errors.Wrap(err, "parsing time")
					}
				}
				if err := dev.Set(t); err != nil {
					return errors.Wrap(err, "setting time")
				}
				t = t.UTC().Truncate(time.Second)
				e.log.Info("set clock", zap.Time("time", t))
				fmt.Fprintln(c.App.Writer, t.Format(time.RFC3339))
				return nil
			}),
		},
		{
			Name:  "status",
			Usage: "read and clear the status flags",
			Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
				s, err := dev.ReadStatus()
				if err != nil {
					return errors.Wrap(err, "reading status")
				}
				fmt.Fprintln(c.App.Writer, formatStatus(s))
				return nil
			}),
		},
		{
			Name:  "irq",
			Usage: "enable or disable interrupts",
			Subcommands: []*cli.Command{
				{
					Name:      "enable",
					ArgsUsage: "a1|a2|timer|din|pfail|dosf...",
					Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
						mask, err := parseInterrupts(c.Args().Slice())
						if err != nil {
							return err
						}
						return dev.EnableInterrupts(mask)
					}),
				},
				{
					Name:      "disable",
					ArgsUsage: "a1|a2|timer|din|pfail|dosf...",
					Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
						mask, err := parseInterrupts(c.Args().Slice())
						if err != nil {
							return err
						}
						return dev.DisableInterrupts(mask)
					}),
				},
			},
		},
		{
			Name:  "osc",
			Usage: "start or stop the oscillator",
			Subcommands: []*cli.Command{
				{Name: "start", Action: e.with(func(_ *cli.Context, dev *max31329.Device) error { return dev.StartOscillator() })},
				{Name: "stop", Action: e.with(func(_ *cli.Context, dev *max31329.Device) error { return dev.StopOscillator() })},
			},
		},
		{
			Name:  "reset",
			Usage: "assert or release the software reset",
			Subcommands: []*cli.Command{
				{Name: "assert", Action: e.with(func(_ *cli.Context, dev *max31329.Device) error { return dev.AssertReset() })},
				{Name: "release", Action: e.with(func(_ *cli.Context, dev *max31329.Device) error { return dev.ReleaseReset() })},
			},
		},
		{
			Name:      "clkout",
			Usage:     "configure the CLKO square wave",
			ArgsUsage: "off|1hz|50hz|60hz|32khz",
			Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
				if err := needArgs(c, 1); err != nil {
					return err
				}
				if c.Args().First() == "off" {
					return dev.DisableClockOut()
				}
				f, err := lookup("clock frequency", clockNames, c.Args().First())
				if err != nil {
					return err
				}
				return dev.EnableClockOut(max31329.ClockOutFreq(f))
			}),
		},
		{
			Name:      "clkin",
			Usage:     "count from an external reference on CLKIN",
			ArgsUsage: "off|1hz|50hz|60hz|32khz",
			Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
				if err := needArgs(c, 1); err != nil {
					return err
				}
				if c.Args().First() == "off" {
					return dev.DisableClockIn()
				}
				f, err := lookup("clock frequency", clockNames, c.Args().First())
				if err != nil {
					return err
				}
				return dev.EnableClockIn(max31329.ClockInFreq(f))
			}),
		},
		e.timerCommand(),
		{
			Name:  "power",
			Usage: "set the power fail threshold and supply selection",
			Flags: []cli.Flag{
				&cli.UintFlag{Name: flagThreshold, Usage: "power fail threshold code, 0-3"},
				&cli.StringFlag{Name: flagSupply, Usage: "auto, vcc or vbackup"},
			},
			Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
				if !c.IsSet(flagThreshold) && !c.IsSet(flagSupply) {
					return errors.Errorf("power: want --%s or --%s", flagThreshold, flagSupply)
				}
				if c.IsSet(flagThreshold) {
					pfvt := c.Uint(flagThreshold)
					if pfvt > 3 {
						return errors.Errorf("threshold must be 0-3, got %d", pfvt)
					}
					if err := dev.SetPowerFailThreshold(max31329.PowerFailThreshold(pfvt)); err != nil {
						return err
					}
				}
				if c.IsSet(flagSupply) {
					s, err := lookup("supply", supplyNames, c.String(flagSupply))
					if err != nil {
						return err
					}
					return dev.SelectSupply(s)
				}
				return nil
			}),
		},
		{
			Name:  "trickle",
			Usage: "control the backup battery charger",
			Subcommands: []*cli.Command{
				{
					Name:      "on",
					ArgsUsage: "PATH",
					Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
						if err := needArgs(c, 1); err != nil {
							return err
						}
						path, err := parseByte("charge path", c.Args().First())
						if err != nil {
							return err
						}
						if path > 0x0F {
							return errors.Errorf("charge path must be 0-15, got %d", path)
						}
						return dev.EnableTrickleCharge(max31329.TricklePath(path))
					}),
				},
				{Name: "off", Action: e.with(func(_ *cli.Context, dev *max31329.Device) error { return dev.DisableTrickleCharge() })},
			},
		},
		e.alarmCommand(1),
		e.alarmCommand(2),
		{
			Name:  "nvram",
			Usage: "access the battery-backed RAM",
			Subcommands: []*cli.Command{
				{
					Name:      "read",
					ArgsUsage: "OFFSET LENGTH",
					Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
						off, buf, err := offsetLength(c)
						if err != nil {
							return err
						}
						if err := dev.ReadNVRAM(off, buf); err != nil {
							return err
						}
						fmt.Fprintln(c.App.Writer, hex.EncodeToString(buf))
						return nil
					}),
				},
				{
					Name:      "write",
					ArgsUsage: "OFFSET HEX",
					Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
						off, data, err := offsetData(c)
						if err != nil {
							return err
						}
						return dev.WriteNVRAM(off, data)
					}),
				},
			},
		},
		{
			Name:  "reg",
			Usage: "raw register access",
			Subcommands: []*cli.Command{
				{
					Name:      "read",
					ArgsUsage: "REGISTER LENGTH",
					Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
						reg, buf, err := offsetLength(c)
						if err != nil {
							return err
						}
						if err := dev.ReadRegister(reg, buf); err != nil {
							return err
						}
						fmt.Fprintln(c.App.Writer, hex.EncodeToString(buf))
						return nil
					}),
				},
				{
					Name:      "write",
					ArgsUsage: "REGISTER HEX",
					Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
						reg, data, err := offsetData(c)
						if err != nil {
							return err
						}
						return dev.WriteRegister(reg, data)
					}),
				},
			},
		},
		e.consoleCommand(),
		e.publishCommand(),
	}
}

func (e *env) timerCommand() *cli.Command {
	return &cli.Command{
		Name:  "timer",
		Usage: "control the countdown timer",
		Subcommands: []*cli.Command{
			{
				Name:  "configure",
				Usage: "load the timer, paused",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: flagCount, Usage: "initial count, 0-255", Value: 255},
					&cli.StringFlag{Name: flagFreq, Usage: "1024hz, 256hz, 64hz or 16hz", Value: "16hz"},
					&cli.BoolFlag{Name: flagRepeat, Usage: "reload the count when it reaches zero"},
				},
				Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
					count := c.Uint(flagCount)
					if count > 0xFF {
						return errors.Errorf("count must be 0-255, got %d", count)
					}
					freq, err := lookup("timer frequency", timerFreqNames, c.String(flagFreq))
					if err != nil {
						return err
					}
					return dev.ConfigureTimer(uint8(count), c.Bool(flagRepeat), freq)
				}),
			},
			{Name: "start", Action: e.with(func(_ *cli.Context, dev *max31329.Device) error { return dev.StartTimer() })},
			{Name: "pause", Action: e.with(func(_ *cli.Context, dev *max31329.Device) error { return dev.PauseTimer() })},
			{Name: "continue", Action: e.with(func(_ *cli.Context, dev *max31329.Device) error { return dev.ContinueTimer() })},
			{Name: "stop", Action: e.with(func(_ *cli.Context, dev *max31329.Device) error { return dev.StopTimer() })},
			{
				Name:  "read",
				Usage: "print the current count",
				Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
					n, err := dev.TimerCount()
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, n)
					return nil
				}),
			},
		},
	}
}

func (e *env) alarmCommand(n int) *cli.Command {
	set, get := (*max31329.Device).SetAlarm1, (*max31329.Device).Alarm1
	if n == 2 {
		set, get = (*max31329.Device).SetAlarm2, (*max31329.Device).Alarm2
	}
	return &cli.Command{
		Name:  "alarm" + strconv.Itoa(n),
		Usage: fmt.Sprintf("program alarm %d", n),
		Subcommands: []*cli.Command{
			{
				Name: "show",
				Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
					a, err := get(dev)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, formatAlarm(a))
					return nil
				}),
			},
			{
				Name: "set",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagMatch, Usage: "fields to match: " + keys(alarmMatchNames), Required: true},
					&cli.StringFlag{Name: flagTime, Usage: "RFC3339 `TIME` supplying the matched fields"},
				},
				Action: e.with(func(c *cli.Context, dev *max31329.Device) error {
					m, err := lookup("alarm match", alarmMatchNames, c.String(flagMatch))
					if err != nil {
						return err
					}
					a := max31329.Alarm{Match: m}
					if c.IsSet(flagTime) {
						t, err := time.Parse(time.RFC3339, c.String(flagTime))
						if err != nil {
							return errors.Wrap(err, "parsing time")
						}
						a.When = max31329.FromTime(t.UTC())
					}
					if err := set(dev, a); err != nil {
						return errors.Wrapf(err, "setting alarm %d", n)
					}
					e.log.Info("set alarm", zap.Int("alarm", n), zap.String("match", c.String(flagMatch)))
					return nil
				}),
			},
		},
	}
}

func formatAlarm(a max31329.Alarm) string {
	t := a.When
	return fmt.Sprintf("match=%s year=%d month=%d day=%d weekday=%d time=%02d:%02d:%02d",
		matchName(a.Match), t.Year, t.Month, t.Day, t.Weekday, t.Hour, t.Minute, t.Second)
}

func offsetLength(c *cli.Context) (uint8, []byte, error) {
	if err := needArgs(c, 2); err != nil {
		return 0, nil, err
	}
	off, err := parseByte("offset", c.Args().Get(0))
	if err != nil {
		return 0, nil, err
	}
	n, err := strconv.ParseUint(c.Args().Get(1), 0, 16)
	if err != nil {
		return 0, nil, errors.Wrap(err, "parsing length")
	}
	if n == 0 {
		return 0, nil, errors.New("length must be positive")
	}
	return off, make([]byte, n), nil
}

func offsetData(c *cli.Context) (uint8, []byte, error) {
	if err := needArgs(c, 2); err != nil {
		return 0, nil, err
	}
	off, err := parseByte("offset", c.Args().Get(0))
	if err != nil {
		return 0, nil, err
	}
	data, err := parseHex(c.Args().Get(1))
	if err != nil {
		return 0, nil, err
	}
	return off, data, nil
}
