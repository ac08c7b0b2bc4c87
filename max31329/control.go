package max31329

// Status holds the flags of the status register.
type Status uint8

const (
	StatusAlarm1     Status = 1 << 0 // A1F
	StatusAlarm2     Status = 1 << 1 // A2F
	StatusTimer      Status = 1 << 2 // TIF
	StatusDigitalIn  Status = 1 << 3 // DIF
	StatusPowerFail  Status = 1 << 5 // PFAIL
	StatusOscStopped Status = 1 << 6 // OSF
	StatusOnBackup   Status = 1 << 7 // PSDECT, running from VBACKUP
)

func (s Status) Has(flag Status) bool { return s&flag != 0 }

// Interrupt is a mask of interrupt enable bits.
type Interrupt uint8

const (
	IntAlarm1    Interrupt = 1 << 0 // A1IE
	IntAlarm2    Interrupt = 1 << 1 // A2IE
	IntTimer     Interrupt = 1 << 2 // TIE
	IntDigitalIn Interrupt = 1 << 3 // DIE
	IntPowerFail Interrupt = 1 << 5 // PFAILE
	IntOscStop   Interrupt = 1 << 6 // DOSF, set to disable the oscillator stop flag
)

// ClockOutFreq selects the square wave on CLKO.
type ClockOutFreq uint8

const (
	ClockOut1Hz ClockOutFreq = iota
	ClockOut50Hz
	ClockOut60Hz
	ClockOut32kHz
)

// ClockInFreq selects the frequency expected on CLKIN.
type ClockInFreq uint8

const (
	ClockIn1Hz ClockInFreq = iota
	ClockIn50Hz
	ClockIn60Hz
	ClockIn32kHz
)

// ReadStatus reads the status register. The chip clears latched flags on read.
func (d *Device) ReadStatus() (Status, error) {
	v, err := d.readByte(RegStatus)
	return Status(v), err
}

// ClearStatus reads and discards the status register, which clears latched flags.
func (d *Device) ClearStatus() error {
	_, err := d.readByte(RegStatus)
	return err
}

// LostPower reports whether the oscillator has stopped since the flag was last cleared, meaning the time can no longer
// be trusted. The read clears the flag.
func (d *Device) LostPower() (bool, error) {
	s, err := d.ReadStatus()
	if err != nil {
		return false, err
	}
	return s.Has(StatusOscStopped), nil
}

func (d *Device) EnableInterrupts(mask Interrupt) error {
	return d.modifyRegister(RegIntEnable, uint8(mask), 0)
}

func (d *Device) DisableInterrupts(mask Interrupt) error {
	return d.modifyRegister(RegIntEnable, 0, uint8(mask))
}

// StartOscillator sets ENOSC; the clock does not count while the oscillator is off.
func (d *Device) StartOscillator() error {
	return d.modifyRegister(RegConfig1, cfg1ENOSC, 0)
}

func (d *Device) StopOscillator() error {
	return d.modifyRegister(RegConfig1, 0, cfg1ENOSC)
}

// SetBusTimeout enables or disables the I2C bus timeout.
func (d *Device) SetBusTimeout(on bool) error {
	return d.setConfig1(cfg1I2CTimeout, on)
}

// SetDataRetention puts the chip in data retention mode, in which the oscillator is stopped to save power while
// registers are kept.
func (d *Device) SetDataRetention(on bool) error {
	return d.setConfig1(cfg1DataRet, on)
}

// EnableIO enables or disables the digital input and output pins.
func (d *Device) EnableIO(on bool) error {
	return d.setConfig1(cfg1ENIO, on)
}

func (d *Device) setConfig1(bit uint8, on bool) error {
	if on {
		return d.modifyRegister(RegConfig1, bit, 0)
	}
	return d.modifyRegister(RegConfig1, 0, bit)
}

// AssertReset holds the chip's digital logic in reset. Nothing is read back first: the register only holds SWRST.
func (d *Device) AssertReset() error {
	return d.writeByte(RegReset, resetSWRST)
}

func (d *Device) ReleaseReset() error {
	return d.writeByte(RegReset, 0)
}

// EnableClockOut enables the CLKO square wave at freq. Only the two low bits of freq are used.
func (d *Device) EnableClockOut(freq ClockOutFreq) error {
	set := cfg2ENCLKO | (uint8(freq)&0x03)<<cfg2ClkOHzPos
	return d.modifyRegister(RegConfig2, set, cfg2ClkOHzMask)
}

func (d *Device) DisableClockOut() error {
	return d.modifyRegister(RegConfig2, 0, cfg2ENCLKO)
}

// EnableClockIn makes the chip count from an external reference on CLKIN instead of its crystal. Only the two low bits
// of freq are used.
func (d *Device) EnableClockIn(freq ClockInFreq) error {
	set := cfg2ENCLKIN | (uint8(freq)&0x03)<<cfg2ClkInHzPos
	return d.modifyRegister(RegConfig2, set, cfg2ClkInHzMask)
}

func (d *Device) DisableClockIn() error {
	return d.modifyRegister(RegConfig2, 0, cfg2ENCLKIN)
}
