package max31329

import "errors"

// ErrInvalidAlarm is returned for a match mode the alarm does not support.
var ErrInvalidAlarm = errors.New("max31329: match mode not supported by alarm")

// AlarmMatch selects which fields of an alarm must match the clock for it to fire. Each mode compares its own field and
// every finer one: AlarmHour matches hours, minutes and (alarm 1 only) seconds.
type AlarmMatch uint8

const (
	AlarmEverySecond AlarmMatch = iota // alarm 1 only
	AlarmEveryMinute                   // alarm 2 only, fires at second 00
	AlarmSecond                        // alarm 1 only
	AlarmMinute
	AlarmHour
	AlarmDate    // day of month
	AlarmWeekday // day of week
	AlarmMonth   // alarm 1 only
	AlarmYear    // alarm 1 only
)

// Alarm is an alarm setting. Only the fields of When consulted by Match are stored; the rest read back as zero. The
// alarm year register has no century flag, so a year always reads back in 2000-2099.
type Alarm struct {
	Match AlarmMatch
	When  Time
}

// depth is the number of alarm fields compared, finest first.
func (m AlarmMatch) depth() int {
	switch m {
	case AlarmEverySecond, AlarmEveryMinute:
		return 0
	case AlarmSecond:
		return 1
	case AlarmMinute:
		return 2
	case AlarmHour:
		return 3
	case AlarmDate, AlarmWeekday:
		return 4
	case AlarmMonth:
		return 5
	case AlarmYear:
		return 6
	}
	return -1
}

// SetAlarm1 programs alarm 1, which supports every match mode except AlarmEveryMinute. Enable its interrupt with
// EnableInterrupts(IntAlarm1); the A1F status flag is set when it fires.
func (d *Device) SetAlarm1(a Alarm) error {
	if d.bus == nil {
		return ErrNotConnected
	}
	var buf [6]byte
	if err := encodeAlarm1(a, &buf); err != nil {
		return err
	}
	return d.WriteRegister(RegAlarm1Sec, buf[:])
}

// Alarm1 reads back alarm 1.
func (d *Device) Alarm1() (Alarm, error) {
	var buf [6]byte
	if err := d.ReadRegister(RegAlarm1Sec, buf[:]); err != nil {
		return Alarm{}, err
	}
	return decodeAlarm1(buf), nil
}

// SetAlarm2 programs alarm 2, which has no seconds, month or year and so supports AlarmEveryMinute, AlarmMinute,
// AlarmHour, AlarmDate and AlarmWeekday.
func (d *Device) SetAlarm2(a Alarm) error {
	if d.bus == nil {
		return ErrNotConnected
	}
	var buf [3]byte
	if err := encodeAlarm2(a, &buf); err != nil {
		return err
	}
	return d.WriteRegister(RegAlarm2Min, buf[:])
}

// Alarm2 reads back alarm 2.
func (d *Device) Alarm2() (Alarm, error) {
	var buf [3]byte
	if err := d.ReadRegister(RegAlarm2Min, buf[:]); err != nil {
		return Alarm{}, err
	}
	return decodeAlarm2(buf), nil
}

// alarm registers, finest first: sec, min, hours, day/date, month (A1M5 in bit 7, A1M6 in bit 6), year
func encodeAlarm1(a Alarm, buf *[6]byte) error {
	if a.Match == AlarmEveryMinute {
		return ErrInvalidAlarm
	}
	n := a.Match.depth()
	if n < 0 {
		return ErrInvalidAlarm
	}
	t := a.When
	var year int
	if n == 6 {
		switch {
		case t.Year >= 2000 && t.Year <= 2099:
			year = t.Year - 2000
		case t.Year >= 2100 && t.Year <= 2199:
			year = t.Year - 2100
		default:
			return ErrYearOutOfRange
		}
	}
	buf[0] = alarmField(n > 0, decToBcd(t.Second)&maskSeconds)
	buf[1] = alarmField(n > 1, decToBcd(t.Minute)&maskMinutes)
	buf[2] = alarmField(n > 2, decToBcd(t.Hour)&maskHours)
	buf[3] = alarmField(n > 3, alarmDay(a))
	buf[4] = alarmField(n > 4, decToBcd(t.Month)&maskMonth)
	buf[5] = 0
	if n > 5 {
		buf[5] = decToBcd(year)
	} else {
		buf[4] |= almMonthM6
	}
	return nil
}

func decodeAlarm1(buf [6]byte) Alarm {
	n := 0
	for _, b := range buf[:4] {
		if b&almMaskBit != 0 {
			break
		}
		n++
	}
	if n == 4 && buf[4]&almMaskBit == 0 {
		n++
		if buf[4]&almMonthM6 == 0 {
			n++
		}
	}

	var a Alarm
	a.Match = matchFor(n, buf[3], AlarmEverySecond)
	if n > 0 {
		a.When.Second = bcdToDec(buf[0] & maskSeconds)
	}
	if n > 1 {
		a.When.Minute = bcdToDec(buf[1] & maskMinutes)
	}
	if n > 2 {
		a.When.Hour = bcdToDec(buf[2] & maskHours)
	}
	if n > 3 {
		decodeAlarmDay(&a, buf[3])
	}
	if n > 4 {
		a.When.Month = bcdToDec(buf[4] & maskMonth)
	}
	if n > 5 {
		a.When.Year = 2000 + bcdToDec(buf[5])
	}
	return a
}

// alarm 2 registers: min, hours, day/date
func encodeAlarm2(a Alarm, buf *[3]byte) error {
	var n int
	switch a.Match {
	case AlarmEveryMinute:
		n = 0
	case AlarmMinute, AlarmHour, AlarmDate, AlarmWeekday:
		n = a.Match.depth() - 1
	default:
		return ErrInvalidAlarm
	}
	t := a.When
	buf[0] = alarmField(n > 0, decToBcd(t.Minute)&maskMinutes)
	buf[1] = alarmField(n > 1, decToBcd(t.Hour)&maskHours)
	buf[2] = alarmField(n > 2, alarmDay(a))
	return nil
}

func decodeAlarm2(buf [3]byte) Alarm {
	n := 0
	for _, b := range buf {
		if b&almMaskBit != 0 {
			break
		}
		n++
	}

	var a Alarm
	if n == 0 {
		a.Match = AlarmEveryMinute
		return a
	}
	// alarm 2 has no seconds field, so its depth is one less than alarm 1's
	a.Match = matchFor(n+1, buf[2], AlarmEveryMinute)
	a.When.Minute = bcdToDec(buf[0] & maskMinutes)
	if n > 1 {
		a.When.Hour = bcdToDec(buf[1] & maskHours)
	}
	if n > 2 {
		decodeAlarmDay(&a, buf[2])
	}
	return a
}

// alarmField returns v when the field is compared, or a zero field with its mask bit set when it is ignored.
func alarmField(match bool, v uint8) uint8 {
	if !match {
		return almMaskBit
	}
	return v
}

func alarmDay(a Alarm) uint8 {
	if a.Match == AlarmWeekday {
		return almDayDate | decToBcd(a.When.Weekday+1)&almDayMask
	}
	return decToBcd(a.When.Day) & almDateMask
}

func decodeAlarmDay(a *Alarm, b uint8) {
	if b&almDayDate != 0 {
		a.When.Weekday = bcdToDec(b&almDayMask) - 1
	} else {
		a.When.Day = bcdToDec(b & almDateMask)
	}
}

func matchFor(depth int, day uint8, none AlarmMatch) AlarmMatch {
	switch depth {
	case 0:
		return none
	case 1:
		return AlarmSecond
	case 2:
		return AlarmMinute
	case 3:
		return AlarmHour
	case 4:
		if day&almDayDate != 0 {
			return AlarmWeekday
		}
		return AlarmDate
	case 5:
		return AlarmMonth
	}
	return AlarmYear
}
