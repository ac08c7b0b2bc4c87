package main

import (
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/kodediy/tinygo-drivers/max31329"
)

func TestConsole(t *testing.T) {
	c := qt.New(t)
	bus := &regBus{}
	bus.setTime(0x00, 0x30, 0x14, 0x01, 0x15, 0x06, 0x25)
	bus.regs[max31329.RegStatus] = 0x80
	e, out := newTestEnv(c, bus, `time
clkout 2hz

status
nvram write 0 "de" ad
console
irq enable "a1" timer
quit
status
`)

	c.Assert(run(e, "console"), qt.IsNil)
	got := out.String()
	c.Assert(got, qt.Contains, "> 2025-06-15T14:30:00Z Sunday\n")
	c.Assert(got, qt.Contains, `> error: unknown clock frequency "2hz", want one of 1hz, 32khz, 50hz, 60hz`+"\n")
	c.Assert(got, qt.Contains, "> on-backup\n")
	c.Assert(got, qt.Contains, "> error: write: want 2 arguments (OFFSET HEX), got 3\n")
	c.Assert(got, qt.Contains, "> error: already in a console\n")
	c.Assert(strings.Count(got, "> "), qt.Equals, 8)
	c.Assert(strings.HasSuffix(got, "> "), qt.IsTrue)
	c.Assert(bus.regs[max31329.RegIntEnable], qt.Equals, uint8(0x05))
}

func TestConsoleEOF(t *testing.T) {
	c := qt.New(t)
	bus := &regBus{}
	e, out := newTestEnv(c, bus, "osc start")

	c.Assert(run(e, "console"), qt.IsNil)
	c.Assert(bus.regs[max31329.RegConfig1], qt.Equals, uint8(0x01))
	c.Assert(out.String(), qt.Equals, "> > \n")
}

func TestConsoleBadQuoting(t *testing.T) {
	c := qt.New(t)
	e, out := newTestEnv(c, &regBus{}, "time 'unterminated\n")

	c.Assert(run(e, "console"), qt.IsNil)
	c.Assert(out.String(), qt.Matches, `> error: .*\n> \n`)
}
