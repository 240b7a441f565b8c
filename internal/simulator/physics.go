package simulator

// ----------- Simulation constants -----------
const (
	AmbientC              = 22.0 // ambient temperature °C
	AmbientHumidity       = 45.0 // ambient relative humidity %
	MinHumidity           = 8.0  // driest the chamber gets
	RampUpCPerSec         = 0.5  // °C per second while heating
	IdleCoolCPerSec       = 0.1  // °C per second drift when idle
	SoakToleranceC        = 1.0  // °C band for "at target"
	HumidityDropPerSec    = 0.02 // % per second while heating
	HumidityRecoverPerSec = 0.01 // % per second when idle
)

// Heater output in percent.
const (
	PowerOff  = 0
	PowerHold = 30
	PowerFull = 100
)

// Modes
const (
	ModeIdle    = "IDLE"
	ModeProfile = "PROFILE"
	ModeManual  = "MANUAL"
)

// State is the simulated dryer.
type State struct {
	Mode             string
	TemperatureC     float64
	TargetC          float64
	Humidity         float64
	HeaterPower      int
	RemainingSeconds int
	ProfileIndex     int
}

func idleState() State {
	return State{
		Mode:         ModeIdle,
		TemperatureC: AmbientC,
		TargetC:      AmbientC,
		Humidity:     AmbientHumidity,
		ProfileIndex: -1,
	}
}

// step advances st by elapsed seconds. It reports true when a profile run
// finished during this step.
func step(st *State, elapsed float64) bool {
	if elapsed <= 0 {
		return false
	}
	switch st.Mode {
	case ModeProfile, ModeManual:
		finished := handleHeat(st, elapsed)
		dryHumidity(st, elapsed)
		return finished
	default:
		driftToAmbient(st, elapsed)
		return false
	}
}

// handleHeat moves the chamber toward the target and counts down the profile
// timer for the part of elapsed spent within tolerance. Only whole seconds
// are consumed. Returns true when the countdown reached zero.
func handleHeat(st *State, elapsed float64) bool {
	soakElapsed := 0.0
	prev := st.TemperatureC

	if prev < st.TargetC-SoakToleranceC {
		timeToTarget := (st.TargetC - prev) / RampUpCPerSec
		st.TemperatureC = minFloat(prev+RampUpCPerSec*elapsed, st.TargetC)
		if timeToTarget < elapsed {
			soakElapsed = elapsed - timeToTarget
		}
	} else {
		soakElapsed = elapsed
		// a lower target lets the chamber cool toward it
		if st.TemperatureC > st.TargetC {
			st.TemperatureC = maxFloat(st.TemperatureC-IdleCoolCPerSec*elapsed, st.TargetC)
		}
	}

	if st.TemperatureC < st.TargetC-SoakToleranceC {
		st.HeaterPower = PowerFull
	} else if st.TemperatureC > st.TargetC+SoakToleranceC {
		st.HeaterPower = PowerOff
	} else {
		st.HeaterPower = PowerHold
	}

	if st.Mode != ModeProfile || st.RemainingSeconds <= 0 {
		return false
	}
	dec := int(soakElapsed)
	if dec < 1 {
		return false
	}
	if st.RemainingSeconds > dec {
		st.RemainingSeconds -= dec
		return false
	}
	st.RemainingSeconds = 0
	st.Mode = ModeIdle
	st.TargetC = AmbientC
	st.HeaterPower = PowerOff
	st.ProfileIndex = -1
	return true
}

// driftToAmbient cools toward ambient and lets humidity creep back.
func driftToAmbient(st *State, elapsed float64) {
	st.HeaterPower = PowerOff
	if st.TemperatureC > AmbientC {
		st.TemperatureC = maxFloat(st.TemperatureC-IdleCoolCPerSec*elapsed, AmbientC)
	}
	if st.Humidity < AmbientHumidity {
		st.Humidity = minFloat(st.Humidity+HumidityRecoverPerSec*elapsed, AmbientHumidity)
	}
}

func dryHumidity(st *State, elapsed float64) {
	if st.Humidity > MinHumidity {
		st.Humidity = maxFloat(st.Humidity-HumidityDropPerSec*elapsed, MinHumidity)
	}
}

// helpers
func maxFloat(a, b float64) float64 {
	if a >= b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a <= b {
		return a
	}
	return b
}
