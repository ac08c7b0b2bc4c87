package main

import (
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/kodediy/tinygo-drivers/max31329"
)

var interruptNames = map[string]max31329.Interrupt{
	"a1":    max31329.IntAlarm1,
	"a2":    max31329.IntAlarm2,
	"timer": max31329.IntTimer,
	"din":   max31329.IntDigitalIn,
	"pfail": max31329.IntPowerFail,
	"dosf":  max31329.IntOscStop,
}

var statusNames = []struct {
	flag max31329.Status
	name string
}{
	{max31329.StatusAlarm1, "alarm1"},
	{max31329.StatusAlarm2, "alarm2"},
	{max31329.StatusTimer, "timer"},
	{max31329.StatusDigitalIn, "din"},
	{max31329.StatusPowerFail, "pfail"},
	{max31329.StatusOscStopped, "osc-stopped"},
	{max31329.StatusOnBackup, "on-backup"},
}

// clock frequencies shared by clkout and clkin
var clockNames = map[string]uint8{
	"1hz":   0,
	"50hz":  1,
	"60hz":  2,
	"32khz": 3,
}

var timerFreqNames = map[string]max31329.TimerFreq{
	"1024hz": max31329.Timer1024Hz,
	"256hz":  max31329.Timer256Hz,
	"64hz":   max31329.Timer64Hz,
	"16hz":   max31329.Timer16Hz,
}

var supplyNames = map[string]max31329.Supply{
	"auto":    max31329.SupplyAuto,
	"vcc":     max31329.SupplyVCC,
	"vbackup": max31329.SupplyVBackup,
}

var alarmMatchNames = map[string]max31329.AlarmMatch{
	"every-second": max31329.AlarmEverySecond,
	"every-minute": max31329.AlarmEveryMinute,
	"second":       max31329.AlarmSecond,
	"minute":       max31329.AlarmMinute,
	"hour":         max31329.AlarmHour,
	"date":         max31329.AlarmDate,
	"weekday":      max31329.AlarmWeekday,
	"month":        max31329.AlarmMonth,
	"year":         max31329.AlarmYear,
}

func parseInterrupts(names []string) (max31329.Interrupt, error) {
	if len(names) == 0 {
		return 0, errors.Errorf("no interrupts given, want some of %s", keys(interruptNames))
	}
	var mask max31329.Interrupt
	for _, n := range names {
		v, ok := interruptNames[strings.ToLower(n)]
		if !ok {
			return 0, errors.Errorf("unknown interrupt %q, want one of %s", n, keys(interruptNames))
		}
		mask |= v
	}
	return mask, nil
}

func formatStatus(s max31329.Status) string {
	names := statusList(s)
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, " ")
}

func statusList(s max31329.Status) []string {
	names := []string{}
	for _, f := range statusNames {
		if s.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	return names
}

// weekdayName names a decoded weekday. A register that was never set decodes outside 0-6.
func weekdayName(w int) string {
	if w < 0 || w > 6 {
		return "?"
	}
	return time.Weekday(w).String()
}

func lookup[T any](kind string, m map[string]T, s string) (T, error) {
	v, ok := m[strings.ToLower(s)]
	if !ok {
		var zero T
		return zero, errors.Errorf("unknown %s %q, want one of %s", kind, s, keys(m))
	}
	return v, nil
}

func matchName(m max31329.AlarmMatch) string {
	for name, v := range alarmMatchNames {
		if v == m {
			return name
		}
	}
	return strconv.Itoa(int(m))
}

// parseByte accepts decimal, 0x hex, 0o octal and 0b binary.
func parseByte(what, s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", what)
	}
	return uint8(v), nil
}

func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(s, ":", ""), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "parsing hex data")
	}
	if len(b) == 0 {
		return nil, errors.New("no data")
	}
	return b, nil
}

func keys[T any](m map[string]T) string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}
