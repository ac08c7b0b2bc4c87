package max31329

import "io"

// ReadNVRAM reads len(buf) bytes of battery-backed RAM starting at offset. The access must lie within the NVRAMSize
// bytes of RAM; otherwise nothing is transferred and ErrNVRAMRange or ErrEmptyBuffer is returned.
func (d *Device) ReadNVRAM(offset uint8, buf []byte) error {
	if d.bus == nil {
		return ErrNotConnected
	}
	if err := checkNVRAM(offset, len(buf)); err != nil {
		return err
	}
	return d.ReadRegister(RegRAMStart+offset, buf)
}

// WriteNVRAM writes buf to battery-backed RAM starting at offset, with the same bounds as ReadNVRAM.
func (d *Device) WriteNVRAM(offset uint8, buf []byte) error {
	if d.bus == nil {
		return ErrNotConnected
	}
	if err := checkNVRAM(offset, len(buf)); err != nil {
		return err
	}
	return d.WriteRegister(RegRAMStart+offset, buf)
}

func checkNVRAM(offset uint8, n int) error {
	if n == 0 {
		return ErrEmptyBuffer
	}
	if int(offset)+n > NVRAMSize {
		return ErrNVRAMRange
	}
	return nil
}

// NVRAM returns the battery-backed RAM as an io.ReaderAt and io.WriterAt, for use with encoding/binary and friends.
func (d *Device) NVRAM() *NVRAM {
	return &NVRAM{d: d}
}

// NVRAM is a view of the RAM block of a Device. Offsets are relative to the start of the block.
type NVRAM struct {
	d *Device
}

// Size returns the number of bytes of RAM.
func (m *NVRAM) Size() int64 { return NVRAMSize }

// ReadAt reads up to len(p) bytes at off. A read that runs past the end of the RAM returns the bytes that fit together
// with io.EOF.
func (m *NVRAM) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNVRAMRange
	}
	if off >= NVRAMSize {
		return 0, io.EOF
	}
	var err error
	if rem := NVRAMSize - off; int64(len(p)) > rem {
		p = p[:rem]
		err = io.EOF
	}
	if len(p) == 0 {
		return 0, err
	}
	if rerr := m.d.ReadNVRAM(uint8(off), p); rerr != nil {
		return 0, rerr
	}
	return len(p), err
}

// WriteAt writes p at off. Writes that do not fit in the RAM are rejected whole with ErrNVRAMRange.
func (m *NVRAM) WriteAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off < 0 || off+int64(len(p)) > NVRAMSize {
		return 0, ErrNVRAMRange
	}
	if err := m.d.WriteNVRAM(uint8(off), p); err != nil {
		return 0, err
	}
	return len(p), nil
}
