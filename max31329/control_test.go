package max31329

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestStatus(t *testing.T) {
	c, dev, bus := newTestDevice(t)
	bus.regs[RegStatus] = uint8(StatusAlarm1 | StatusTimer | StatusOnBackup)

	s, err := dev.ReadStatus()
	c.Assert(err, qt.IsNil)
	c.Assert(s.Has(StatusAlarm1), qt.IsTrue)
	c.Assert(s.Has(StatusTimer), qt.IsTrue)
	c.Assert(s.Has(StatusOnBackup), qt.IsTrue)
	c.Assert(s.Has(StatusAlarm2), qt.IsFalse)

	s, err = dev.ReadStatus()
	c.Assert(err, qt.IsNil)
	c.Assert(s, qt.Equals, Status(0))
}

func TestClearStatus(t *testing.T) {
	c, dev, bus := newTestDevice(t)
	bus.regs[RegStatus] = 0xFF
	c.Assert(dev.ClearStatus(), qt.IsNil)
	c.Assert(bus.regs[RegStatus], qt.Equals, uint8(0))
	c.Assert(bus.writes, qt.Equals, 0)
}

func TestLostPower(t *testing.T) {
	c, dev, bus := newTestDevice(t)
	bus.regs[RegStatus] = uint8(StatusOscStopped)
	lost, err := dev.LostPower()
	c.Assert(err, qt.IsNil)
	c.Assert(lost, qt.IsTrue)
	lost, err = dev.LostPower()
	c.Assert(err, qt.IsNil)
	c.Assert(lost, qt.IsFalse)
}

func TestLostPowerBeforeConfigure(t *testing.T) {
	c, dev, bus := newTestDevice(t)
	bus.regs[RegStatus] = uint8(StatusOscStopped)

	// the first status read is the only one that sees the latched flag
	lost, err := dev.LostPower()
	c.Assert(err, qt.IsNil)
	c.Assert(lost, qt.IsTrue)
	c.Assert(dev.Configure(Config{}), qt.IsNil)

	bus.regs[RegStatus] = uint8(StatusOscStopped)
	c.Assert(dev.Configure(Config{}), qt.IsNil)
	lost, err = dev.LostPower()
	c.Assert(err, qt.IsNil)
	c.Assert(lost, qt.IsFalse)
}

func TestInterruptsPreserveOtherBits(t *testing.T) {
	c, dev, bus := newTestDevice(t)
	bus.regs[RegIntEnable] = uint8(IntOscStop | IntDigitalIn)

	c.Assert(dev.EnableInterrupts(IntAlarm1), qt.IsNil)
	c.Assert(bus.regs[RegIntEnable], qt.Equals, uint8(IntOscStop|IntDigitalIn|IntAlarm1))

	c.Assert(dev.EnableInterrupts(IntTimer|IntPowerFail), qt.IsNil)
	c.Assert(bus.regs[RegIntEnable], qt.Equals, uint8(0b0110_1101))

	c.Assert(dev.DisableInterrupts(IntDigitalIn|IntTimer), qt.IsNil)
	c.Assert(bus.regs[RegIntEnable], qt.Equals, uint8(0b0110_0001))
	c.Assert(bus.reads, qt.Equals, 3)
	c.Assert(bus.writes, qt.Equals, 3)
}

func TestOscillator(t *testing.T) {
	c, dev, bus := newTestDevice(t)
	bus.regs[RegConfig1] = 0b1110

	c.Assert(dev.StartOscillator(), qt.IsNil)
	c.Assert(bus.regs[RegConfig1], qt.Equals, uint8(0b1111))
	c.Assert(dev.StopOscillator(), qt.IsNil)
	c.Assert(bus.regs[RegConfig1], qt.Equals, uint8(0b1110))
}

func TestConfig1Bits(t *testing.T) {
	c, dev, bus := newTestDevice(t)
	bus.regs[RegConfig1] = cfg1ENOSC

	c.Assert(dev.SetBusTimeout(true), qt.IsNil)
	c.Assert(dev.SetDataRetention(true), qt.IsNil)
	c.Assert(dev.EnableIO(true), qt.IsNil)
	c.Assert(bus.regs[RegConfig1], qt.Equals, uint8(0b1111))

	c.Assert(dev.SetDataRetention(false), qt.IsNil)
	c.Assert(bus.regs[RegConfig1], qt.Equals, uint8(0b1011))
	c.Assert(dev.EnableIO(false), qt.IsNil)
	c.Assert(dev.SetBusTimeout(false), qt.IsNil)
	c.Assert(bus.regs[RegConfig1], qt.Equals, uint8(cfg1ENOSC))
}

func TestReset(t *testing.T) {
	c, dev, bus := newTestDevice(t)

	c.Assert(dev.AssertReset(), qt.IsNil)
	c.Assert(bus.regs[RegReset], qt.Equals, uint8(1))
	c.Assert(dev.ReleaseReset(), qt.IsNil)
	c.Assert(bus.regs[RegReset], qt.Equals, uint8(0))
	// plain writes, no read-modify-write
	c.Assert(bus.reads, qt.Equals, 0)
	c.Assert(bus.writes, qt.Equals, 2)
}

func TestClockOut(t *testing.T) {
	c, dev, bus := newTestDevice(t)
	// CLKIN frequency and enable, DIP
	bus.regs[RegConfig2] = 0b0000_1111

	c.Assert(dev.EnableClockOut(ClockOut32kHz), qt.IsNil)
	c.Assert(bus.regs[RegConfig2], qt.Equals, uint8(0b1110_1111))

	c.Assert(dev.EnableClockOut(ClockOut50Hz), qt.IsNil)
	c.Assert(bus.regs[RegConfig2], qt.Equals, uint8(0b1010_1111))

	// out of range selections are truncated to two bits
	c.Assert(dev.EnableClockOut(ClockOutFreq(0x06)), qt.IsNil)
	c.Assert(bus.regs[RegConfig2], qt.Equals, uint8(0b1100_1111))

	c.Assert(dev.DisableClockOut(), qt.IsNil)
	c.Assert(bus.regs[RegConfig2], qt.Equals, uint8(0b0100_1111))
}

func TestClockIn(t *testing.T) {
	c, dev, bus := newTestDevice(t)
	bus.regs[RegConfig2] = 0b1010_1000

	c.Assert(dev.EnableClockIn(ClockIn60Hz), qt.IsNil)
	c.Assert(bus.regs[RegConfig2], qt.Equals, uint8(0b1010_1110))

	c.Assert(dev.DisableClockIn(), qt.IsNil)
	// frequency selection is kept
	c.Assert(bus.regs[RegConfig2], qt.Equals, uint8(0b1010_1010))
}
