// Package hostbus exposes a Linux I2C bus, opened through periph.io, as a tinygo.org/x/drivers.I2C so the chip drivers
// of this module can run on a single-board computer as well as on a microcontroller.
package hostbus

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// DefaultFrequency is the bus clock used when Open is given zero.
const DefaultFrequency = 400 * physic.KiloHertz

// Bus is an I2C bus on the host. It satisfies drivers.I2C.
type Bus struct {
	bus    i2c.Bus
	logger *zap.Logger
}

// Open initializes periph's host drivers and opens the named bus ("" for the first one found, otherwise a name such as
// "1" or "/dev/i2c-1") at freq.
func Open(name string, freq physic.Frequency, logger *zap.Logger) (*Bus, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing host drivers")
	}
	bc, err := i2creg.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "opening i2c bus %q", name)
	}
	if freq == 0 {
		freq = DefaultFrequency
	}
	if err := bc.SetSpeed(freq); err != nil {
		bc.Close()
		return nil, errors.Wrapf(err, "setting %s to %s", bc, freq)
	}
	logger.Debug("opened i2c bus", zap.Stringer("bus", bc), zap.Stringer("frequency", freq))
	return New(bc, logger), nil
}

// New wraps an already opened bus.
func New(bus i2c.Bus, logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{bus: bus, logger: logger}
}

// Tx writes w then reads len(r) bytes from the device at addr, with a repeated start between the two.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	err := b.bus.Tx(addr, w, r)
	if ce := b.logger.Check(zap.DebugLevel, "i2c tx"); ce != nil {
		fields := []zap.Field{zap.Uint16("addr", addr), zap.String("w", hex.EncodeToString(w))}
		if err == nil && len(r) > 0 {
			fields = append(fields, zap.String("r", hex.EncodeToString(r)))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		ce.Write(fields...)
	}
	if err != nil {
		return errors.Wrapf(err, "i2c tx to %#02x", addr)
	}
	return nil
}

// Close closes the underlying bus if it can be closed.
func (b *Bus) Close() error {
	if c, ok := b.bus.(i2c.BusCloser); ok {
		return c.Close()
	}
	return nil
}

func (b *Bus) String() string {
	return b.bus.String()
}
