// Package max31329 implements a driver for the MAX31329 Real-Time Clock (RTC). Besides reading and writing the calendar
// it covers the status and interrupt registers, both alarms, the countdown timer, the CLKIN/CLKO pins, power supply
// selection, the trickle charger and the 64 bytes of battery-backed RAM.
//
// Every operation is a short blocking sequence of register transfers. Fields are changed with read-modify-write so
// sibling bits in the same register are preserved; the exception is EnableTrickleCharge, which overwrites the whole
// register. A Device is not safe for concurrent use: callers sharing one must serialize access themselves.
//
// Datasheet: https://www.analog.com/media/en/technical-documentation/data-sheets/MAX31329.pdf
package max31329

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

var (
	// ErrNotConnected is returned by every operation of a Device without a bus.
	ErrNotConnected = errors.New("max31329: no bus")
	// ErrYearOutOfRange is returned when writing a year outside 2000-2199.
	ErrYearOutOfRange = errors.New("max31329: year out of range")
	// ErrNVRAMRange is returned when an NVRAM access runs past the end of the RAM block.
	ErrNVRAMRange = errors.New("max31329: nvram access out of range")
	// ErrEmptyBuffer is returned for a nil or zero-length NVRAM buffer.
	ErrEmptyBuffer = errors.New("max31329: empty buffer")
	// ErrTransferTooLarge is returned by WriteRegister for a buffer longer than the register map.
	ErrTransferTooLarge = errors.New("max31329: transfer too large")
)

// maxTransfer is the size of the whole register map, 0x00 through RegRAMEnd.
const maxTransfer = RegRAMEnd + 1

type Device struct {
	bus     drivers.I2C
	Address uint16

	// last time read or written
	t Time

	// Fixed buffer to avoid per-call heap allocations: a register address followed by at most the whole register map.
	w [1 + maxTransfer]byte
}

type Config struct {
	// Address defaults to 0x68 if zero.
	Address uint16
}

// New creates a new MAX31329 driver on the provided I2C bus. The I2C bus must already be configured; the chip supports
// up to 1 MHz. A nil bus yields a Device on which every operation returns ErrNotConnected.
func New(bus drivers.I2C) *Device {
	return &Device{
		bus:     bus,
		Address: Address,
		t:       Time{Year: 2000, Month: 1, Day: 1},
	}
}

// Configure applies c and checks that the chip answers by reading its status register. Reading the status register
// clears any latched flags, so call LostPower first when the oscillator stop flag matters.
func (d *Device) Configure(c Config) error {
	if c.Address != 0 {
		d.Address = c.Address
	}
	if d.Address == 0 {
		d.Address = Address
	}
	_, err := d.readByte(RegStatus)
	return err
}

// Connected reports whether the chip answers a status register read.
func (d *Device) Connected() bool {
	_, err := d.readByte(RegStatus)
	return err == nil
}

// ReadRegister reads len(buf) bytes starting at register reg.
func (d *Device) ReadRegister(reg uint8, buf []byte) error {
	if d.bus == nil {
		return ErrNotConnected
	}
	d.w[0] = reg
	return d.bus.Tx(d.Address, d.w[:1], buf)
}

// WriteRegister writes buf starting at register reg.
func (d *Device) WriteRegister(reg uint8, buf []byte) error {
	if d.bus == nil {
		return ErrNotConnected
	}
	if len(buf) > maxTransfer {
		return ErrTransferTooLarge
	}
	d.w[0] = reg
	n := copy(d.w[1:], buf)
	return d.bus.Tx(d.Address, d.w[:1+n], nil)
}

// ReadTime reads the calendar registers. The result is also kept as the cached time.
func (d *Device) ReadTime() (Time, error) {
	var buf [7]byte
	if err := d.ReadRegister(RegSeconds, buf[:]); err != nil {
		return Time{}, err
	}
	d.t = decodeTime(buf)
	return d.t, nil
}

// WriteTime sets the calendar registers to t. Years outside 2000-2199 are rejected with ErrYearOutOfRange before
// anything is sent to the chip.
func (d *Device) WriteTime(t Time) error {
	if d.bus == nil {
		return ErrNotConnected
	}
	var buf [7]byte
	if err := encodeTime(t, &buf); err != nil {
		return err
	}
	if err := d.WriteRegister(RegSeconds, buf[:]); err != nil {
		return err
	}
	d.t = t
	return nil
}

// Cached returns the time last read from or written to the chip, or set with SetCached.
func (d *Device) Cached() Time { return d.t }

// SetCached replaces the cached time without touching the chip; see Commit.
func (d *Device) SetCached(t Time) { d.t = t }

// Update reads the calendar registers into the cached time.
func (d *Device) Update() error {
	_, err := d.ReadTime()
	return err
}

// Commit writes the cached time to the chip.
func (d *Device) Commit() error {
	return d.WriteTime(d.t)
}

// Now reads the current time from the chip. The chip has no notion of time zones; the result is in UTC.
func (d *Device) Now() (time.Time, error) {
	t, err := d.ReadTime()
	if err != nil {
		return time.Time{}, err
	}
	return t.Time(), nil
}

// Set writes t, converted to UTC, to the chip.
func (d *Device) Set(t time.Time) error {
	return d.WriteTime(FromTime(t.UTC()))
}

func (d *Device) readByte(reg uint8) (uint8, error) {
	var buf [1]byte
	err := d.ReadRegister(reg, buf[:])
	return buf[0], err
}

func (d *Device) writeByte(reg, v uint8) error {
	buf := [1]byte{v}
	return d.WriteRegister(reg, buf[:])
}

// modifyRegister is the read-modify-write used for every bit field change: bits in clear are cleared first, then bits
// in set are set.
func (d *Device) modifyRegister(reg, set, clear uint8) error {
	v, err := d.readByte(reg)
	if err != nil {
		return err
	}
	v = v&^clear | set
	return d.writeByte(reg, v)
}
