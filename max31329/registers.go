package max31329

const (
	Address = 0x68 // I2C address for MAX31329

	RegStatus      = 0x00 // Status flags, cleared on read
	RegIntEnable   = 0x01 // Interrupt enable
	RegReset       = 0x02 // Software reset
	RegConfig1     = 0x03 // Oscillator, bus timeout, data retention, I/O enable
	RegConfig2     = 0x04 // CLKIN/CLKO control
	RegTimerConfig = 0x05 // Countdown timer control
	RegSeconds     = 0x06 // Time registers starting with seconds
	RegMinutes     = 0x07
	RegHours       = 0x08
	RegDay         = 0x09 // Day of week, 1-7
	RegDate        = 0x0A
	RegMonth       = 0x0B // Month, century in bit 7
	RegYear        = 0x0C
	RegAlarm1Sec   = 0x0D
	RegAlarm1Min   = 0x0E
	RegAlarm1Hours = 0x0F
	RegAlarm1Date  = 0x10 // Day or date, selected by DY_DT
	RegAlarm1Month = 0x11
	RegAlarm1Year  = 0x12
	RegAlarm2Min   = 0x13
	RegAlarm2Hours = 0x14
	RegAlarm2Date  = 0x15
	RegTimerCount  = 0x16 // Live countdown value
	RegTimerInit   = 0x17 // Countdown initial value
	RegPowerMgmt   = 0x18
	RegTrickle     = 0x19
	RegRAMStart    = 0x22
	RegRAMEnd      = 0x61

	// NVRAMSize is the number of user bytes between RegRAMStart and RegRAMEnd.
	NVRAMSize = RegRAMEnd - RegRAMStart + 1
)

const resetSWRST = 1 << 0

// config1 bits
const (
	cfg1ENOSC      = 1 << 0
	cfg1I2CTimeout = 1 << 1
	cfg1DataRet    = 1 << 2
	cfg1ENIO       = 1 << 3
)

// config2 fields
const (
	cfg2ClkInHzPos  = 0
	cfg2ClkInHzMask = 0x03 << cfg2ClkInHzPos
	cfg2ENCLKIN     = 1 << 2
	cfg2DIP         = 1 << 3
	cfg2ClkOHzPos   = 5
	cfg2ClkOHzMask  = 0x03 << cfg2ClkOHzPos
	cfg2ENCLKO      = 1 << 7
)

// timer config fields
const (
	tmrTFSPos  = 0
	tmrTFSMask = 0x03 << tmrTFSPos
	tmrTRPT    = 1 << 2
	tmrTPAUSE  = 1 << 3
	tmrTE      = 1 << 4
)

// power management fields
const (
	pwrDManSel   = 1 << 0
	pwrDVBackSel = 1 << 1
	pwrPFVTPos   = 2
	pwrPFVTMask  = 0x03 << pwrPFVTPos
)

// trickle charger fields
const (
	trkPathPos  = 0
	trkPathMask = 0x0F << trkPathPos
	trkEnable   = 1 << 7
)

// calendar field masks
const (
	maskSeconds  = 0x7F
	maskMinutes  = 0x7F
	maskHours    = 0x3F // 24-hour mode only
	maskDay      = 0x07
	maskDate     = 0x3F
	maskMonth    = 0x1F
	monthCentury = 1 << 7
)

// alarm fields
const (
	almMaskBit  = 1 << 7 // AxMy in bit 7 of each alarm register
	almMonthM6  = 1 << 6 // A1M6 shares the month register with A1M5
	almDayDate  = 1 << 6 // DY_DT: match day of week instead of date
	almDateMask = 0x3F
	almDayMask  = 0x07
)
