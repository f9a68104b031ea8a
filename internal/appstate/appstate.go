package appstate

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownAppState = errors.New("unknown app state")

// AppState gates which per frame systems run. The zero value is MainMenu.
type AppState uint8

const (
	MainMenu AppState = iota
	InGame
	Paused
)

var appStateNames = []string{
	MainMenu: "MainMenu",
	InGame:   "InGame",
	Paused:   "Paused",
}

func (s AppState) String() string {
	if int(s) < len(appStateNames) {
		return appStateNames[s]
	}

	return fmt.Sprintf("AppState(%d)", uint8(s))
}

// ParseAppState parses the name of a state, ignoring case.
func ParseAppState(name string) (AppState, error) {
	for idx, stateName := range appStateNames {
		if strings.EqualFold(stateName, name) {
			return AppState(idx), nil
		}
	}

	return MainMenu, fmt.Errorf("%w: %q", ErrUnknownAppState, name)
}

func (s AppState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *AppState) UnmarshalText(text []byte) error {
	state, err := ParseAppState(string(text))
	if err != nil {
		return err
	}

	*s = state
	return nil
}
