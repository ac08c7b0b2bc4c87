package max31329

import "time"

// Time is the calendar as the chip keeps it: 24-hour clock, no sub-second part and no time zone.
type Time struct {
	Year    int // absolute year, 2000-2199
	Month   int // 1-12
	Day     int // day of month, 1-31
	Hour    int // 0-23
	Minute  int // 0-59
	Second  int // 0-59
	Weekday int // 0-6, 0 is Sunday
}

// FromTime converts t to a Time using t's own location.
func FromTime(t time.Time) Time {
	return Time{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: int(t.Weekday()),
	}
}

// Time returns t as a time.Time in UTC. The weekday is implied by the date and is not consulted.
func (t Time) Time() time.Time {
	return time.Date(t.Year, time.Month(t.Month), t.Day, t.Hour, t.Minute, t.Second, 0, time.UTC)
}

// encodeTime packs t into the seven calendar registers, seconds first. The chip stores a two-digit year plus a century
// flag in bit 7 of the month register, which covers 2000-2199.
func encodeTime(t Time, buf *[7]byte) error {
	var year int
	var century uint8
	switch {
	case t.Year >= 2000 && t.Year <= 2099:
		year = t.Year - 2000
	case t.Year >= 2100 && t.Year <= 2199:
		year = t.Year - 2100
		century = monthCentury
	default:
		return ErrYearOutOfRange
	}

	buf[0] = decToBcd(t.Second)
	buf[1] = decToBcd(t.Minute)
	buf[2] = decToBcd(t.Hour)
	// weekday is 1-7 on the chip
	buf[3] = decToBcd(t.Weekday+1) & maskDay
	buf[4] = decToBcd(t.Day)
	buf[5] = century | decToBcd(t.Month)&maskMonth
	buf[6] = decToBcd(year)
	return nil
}

// decodeTime unpacks the seven calendar registers. Nibbles are not checked, so registers that were never set decode to
// meaningless but well-formed values.
func decodeTime(buf [7]byte) Time {
	year := 2000 + bcdToDec(buf[6])
	if buf[5]&monthCentury != 0 {
		year += 100
	}
	return Time{
		Year:    year,
		Month:   bcdToDec(buf[5] & maskMonth),
		Day:     bcdToDec(buf[4] & maskDate),
		Hour:    bcdToDec(buf[2] & maskHours),
		Minute:  bcdToDec(buf[1] & maskMinutes),
		Second:  bcdToDec(buf[0] & maskSeconds),
		Weekday: bcdToDec(buf[3]&maskDay) - 1,
	}
}

// decToBcd converts 0-99 to BCD
func decToBcd(dec int) uint8 {
	return uint8(dec/10<<4 | dec%10)
}

// bcdToDec converts BCD to int
func bcdToDec(bcd uint8) int {
	return int(bcd>>4)*10 + int(bcd&0x0F)
}
