package max31329

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

var (
	errBus   = errors.New("bus error")
	errNoAck = errors.New("no ack")
)

// fakeBus is a drivers.I2C with a single MAX31329 behind it. Registers are a plain byte array; the status register is
// cleared by reads like on the chip.
type fakeBus struct {
	addr uint16
	regs [256]byte

	txs    int // all transfers, failed ones included
	reads  int
	writes int

	// failAt makes transfer number failAt (1-based) fail with errBus.
	failAt int
	// err, when set, fails every transfer.
	err error
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	b.txs++
	if b.err != nil {
		return b.err
	}
	if b.failAt != 0 && b.txs == b.failAt {
		return errBus
	}
	if addr != b.addr {
		return errNoAck
	}
	if len(w) == 0 {
		return errors.New("transfer without register address")
	}
	reg := w[0]
	if len(r) > 0 {
		b.reads++
		copy(r, b.regs[reg:])
		if reg == RegStatus {
			b.regs[RegStatus] = 0
		}
		return nil
	}
	b.writes++
	copy(b.regs[reg:], w[1:])
	return nil
}

func newTestDevice(t *testing.T) (*qt.C, *Device, *fakeBus) {
	c := qt.New(t)
	bus := &fakeBus{addr: Address}
	return c, New(bus), bus
}
