package max31329

// Supply selects where the chip draws power from.
type Supply uint8

const (
	SupplyAuto    Supply = iota // switch to VBACKUP when VCC fails
	SupplyVCC                   // always VCC
	SupplyVBackup               // always VBACKUP
)

// PowerFailThreshold is the 2-bit PFVT code for the VCC power-fail comparator. See the datasheet for the voltages.
type PowerFailThreshold uint8

// TricklePath is the 4-bit D_TRICKLE code selecting the charge path: series diode and resistor.
type TricklePath uint8

// SetPowerFailThreshold replaces the power-fail threshold. Only the two low bits of pfvt are used.
func (d *Device) SetPowerFailThreshold(pfvt PowerFailThreshold) error {
	return d.modifyRegister(RegPowerMgmt, (uint8(pfvt)&0x03)<<pwrPFVTPos, pwrPFVTMask)
}

// SelectSupply sets manual or automatic supply selection. Unknown values select SupplyAuto. The backup selection bit is
// left alone in automatic mode, where the chip ignores it.
func (d *Device) SelectSupply(s Supply) error {
	switch s {
	case SupplyVCC:
		return d.modifyRegister(RegPowerMgmt, pwrDManSel, pwrDVBackSel)
	case SupplyVBackup:
		return d.modifyRegister(RegPowerMgmt, pwrDManSel|pwrDVBackSel, 0)
	default:
		return d.modifyRegister(RegPowerMgmt, 0, pwrDManSel)
	}
}

// EnableTrickleCharge enables the backup battery charger over path. This overwrites the whole trickle register rather
// than modifying it; bits other than the enable and path fields end up cleared.
func (d *Device) EnableTrickleCharge(path TricklePath) error {
	return d.writeByte(RegTrickle, trkEnable|(uint8(path)&0x0F)<<trkPathPos)
}

// DisableTrickleCharge turns the charger off and keeps the selected path.
func (d *Device) DisableTrickleCharge() error {
	return d.modifyRegister(RegTrickle, 0, trkEnable)
}
