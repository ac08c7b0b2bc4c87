package main

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/kodediy/tinygo-drivers/max31329"
)

func TestParseHex(t *testing.T) {
	c := qt.New(t)
	for in, want := range map[string][]byte{
		"de:ad:BE:ef": {0xDE, 0xAD, 0xBE, 0xEF},
		"0x0102":      {0x01, 0x02},
		"7f":          {0x7F},
	} {
		got, err := parseHex(in)
		c.Assert(err, qt.IsNil, qt.Commentf("%s", in))
		c.Assert(got, qt.DeepEquals, want, qt.Commentf("%s", in))
	}

	_, err := parseHex("")
	c.Assert(err, qt.ErrorMatches, `no data`)
	_, err = parseHex("abc")
	c.Assert(err, qt.ErrorMatches, `parsing hex data: .*`)
}

func TestParseByte(t *testing.T) {
	c := qt.New(t)
	for in, want := range map[string]uint8{"0x7f": 0x7F, "12": 12, "0b101": 5, "0o17": 15, "255": 255} {
		got, err := parseByte("value", in)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, want, qt.Commentf("%s", in))
	}
	_, err := parseByte("value", "256")
	c.Assert(err, qt.ErrorMatches, `parsing value: .*value out of range`)
}

func TestParseInterrupts(t *testing.T) {
	c := qt.New(t)
	mask, err := parseInterrupts([]string{"a1", "A2", "dosf"})
	c.Assert(err, qt.IsNil)
	c.Assert(mask, qt.Equals, max31329.IntAlarm1|max31329.IntAlarm2|max31329.IntOscStop)
}

func TestFormatStatus(t *testing.T) {
	c := qt.New(t)
	c.Assert(formatStatus(0), qt.Equals, "none")
	c.Assert(formatStatus(0xFF), qt.Equals, "alarm1 alarm2 timer din pfail osc-stopped on-backup")
	c.Assert(statusList(0), qt.DeepEquals, []string{})
}

func TestMatchNames(t *testing.T) {
	c := qt.New(t)
	for name, m := range alarmMatchNames {
		c.Assert(matchName(m), qt.Equals, name)
	}
	c.Assert(matchName(max31329.AlarmMatch(42)), qt.Equals, "42")
}

func TestWeekdayName(t *testing.T) {
	c := qt.New(t)
	c.Assert(weekdayName(0), qt.Equals, "Sunday")
	c.Assert(weekdayName(6), qt.Equals, "Saturday")
	c.Assert(weekdayName(-1), qt.Equals, "?")
	c.Assert(weekdayName(7), qt.Equals, "?")
}
