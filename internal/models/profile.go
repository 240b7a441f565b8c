package models

// Profile is a named drying preset. Its position in the loaded catalog is what
// the device understands in a startProfile command.
type Profile struct {
	Name        string  `json:"name"`
	Temperature float64 `json:"temperature"` // °C
	Duration    int     `json:"duration"`    // minutes
}

// DurationSeconds is the full drying time of the profile.
func (p Profile) DurationSeconds() int {
	return p.Duration * 60
}
