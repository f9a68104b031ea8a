package appstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppState_String(t *testing.T) {
	tests := []struct {
		state    AppState
		expected string
	}{
		{MainMenu, "MainMenu"},
		{InGame, "InGame"},
		{Paused, "Paused"},
		{AppState(42), "AppState(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestAppState_DefaultIsMainMenu(t *testing.T) {
	var state AppState
	assert.Equal(t, MainMenu, state)
}

func TestParseAppState(t *testing.T) {
	tests := []struct {
		name     string
		expected AppState
		wantErr  bool
	}{
		{"MainMenu", MainMenu, false},
		{"ingame", InGame, false},
		{"PAUSED", Paused, false},
		{"", MainMenu, true},
		{"Options", MainMenu, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := ParseAppState(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownAppState)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, state)
		})
	}
}

func TestAppState_UnmarshalText(t *testing.T) {
	var state AppState
	assert.NoError(t, state.UnmarshalText([]byte("InGame")))
	assert.Equal(t, InGame, state)

	assert.Error(t, state.UnmarshalText([]byte("nope")))
	assert.Equal(t, InGame, state, "failed parse keeps the previous value")

	text, err := Paused.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "Paused", string(text))
}
