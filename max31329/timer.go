package max31329

// TimerFreq selects the countdown timer clock.
type TimerFreq uint8

const (
	Timer1024Hz TimerFreq = iota
	Timer256Hz
	Timer64Hz
	Timer16Hz
)

// ConfigureTimer loads the countdown timer with initial at freq and leaves it stopped and paused; start it with
// StartTimer. When repeat is set the timer reloads initial each time it reaches zero. Only the two low bits of freq are
// used.
func (d *Device) ConfigureTimer(initial uint8, repeat bool, freq TimerFreq) error {
	set := tmrTPAUSE | (uint8(freq)&0x03)<<tmrTFSPos
	clear := uint8(tmrTE | tmrTFSMask)
	if repeat {
		set |= tmrTRPT
	} else {
		clear |= tmrTRPT
	}
	if err := d.modifyRegister(RegTimerConfig, set, clear); err != nil {
		return err
	}
	return d.writeByte(RegTimerInit, initial)
}

// StartTimer enables the countdown timer and lets it run.
func (d *Device) StartTimer() error {
	return d.modifyRegister(RegTimerConfig, tmrTE, tmrTPAUSE)
}

// PauseTimer holds the count. The timer stays enabled so ContinueTimer resumes from the current count.
func (d *Device) PauseTimer() error {
	return d.modifyRegister(RegTimerConfig, tmrTE|tmrTPAUSE, 0)
}

// ContinueTimer resumes a paused timer.
func (d *Device) ContinueTimer() error {
	return d.modifyRegister(RegTimerConfig, tmrTE, tmrTPAUSE)
}

// StopTimer disables the countdown timer.
func (d *Device) StopTimer() error {
	return d.modifyRegister(RegTimerConfig, tmrTPAUSE, tmrTE)
}

// TimerCount returns the current countdown value.
func (d *Device) TimerCount() (uint8, error) {
	return d.readByte(RegTimerCount)
}
