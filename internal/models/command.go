package models

import (
	"encoding/json"
	"fmt"
)

// Command names understood by the dryer.
const (
	CommandStartProfile   = "startProfile"
	CommandSetTemperature = "setTemperature"
	CommandStopDrying     = "stopDrying"
)

// StartProfileCommand asks the dryer to run the profile at ProfileIndex.
type StartProfileCommand struct {
	Command      string `json:"command"`
	ProfileIndex int    `json:"profileIndex"`
}

// SetTemperatureCommand switches the dryer to manual mode at Temperature °C.
type SetTemperatureCommand struct {
	Command     string  `json:"command"`
	Temperature float64 `json:"temperature"`
}

// StopDryingCommand stops whatever the dryer is doing.
type StopDryingCommand struct {
	Command string `json:"command"`
}

// DeviceCommand is any frame sent by the dashboard; Command is the tag.
type DeviceCommand struct {
	Command      string   `json:"command"`
	ProfileIndex *int     `json:"profileIndex,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
}

// ParseCommand decodes one command frame.
func ParseCommand(data []byte) (DeviceCommand, error) {
	var c DeviceCommand
	if err := json.Unmarshal(data, &c); err != nil {
		return DeviceCommand{}, fmt.Errorf("decode command: %w", err)
	}
	return c, nil
}
