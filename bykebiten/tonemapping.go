package bykebiten

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oliverbestmann/glowmenu/byke"
)

var _ = byke.ValidateComponent[Tonemapping]()

var ErrUnknownTonemapping = errors.New("unknown tonemapping")

type TonemappingMethod uint8

const (
	// TonemappingNone clamps colors to the displayable range.
	TonemappingNone TonemappingMethod = iota

	// TonemappingReinhard applies c / (1 + c) per channel.
	TonemappingReinhard

	// TonemappingReinhardLuminance applies Reinhard to the luminance and keeps the hue.
	TonemappingReinhardLuminance

	// TonemappingAcesFitted uses a fitted ACES curve. Very bright colors desaturate to white.
	TonemappingAcesFitted
)

var tonemappingNames = map[TonemappingMethod]string{
	TonemappingNone:              "None",
	TonemappingReinhard:          "Reinhard",
	TonemappingReinhardLuminance: "ReinhardLuminance",
	TonemappingAcesFitted:        "AcesFitted",
}

func (t TonemappingMethod) String() string {
	if name, ok := tonemappingNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TonemappingMethod(%d)", uint8(t))
}

// ParseTonemappingMethod parses the name of a tonemapping method, ignoring case.
func ParseTonemappingMethod(name string) (TonemappingMethod, error) {
	for method, methodName := range tonemappingNames {
		if strings.EqualFold(methodName, name) {
			return method, nil
		}
	}

	return TonemappingNone, fmt.Errorf("%w: %q", ErrUnknownTonemapping, name)
}

func (t TonemappingMethod) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TonemappingMethod) UnmarshalText(text []byte) error {
	method, err := ParseTonemappingMethod(string(text))
	if err != nil {
		return err
	}

	*t = method
	return nil
}

// Tonemapping selects how an HDR camera maps its colors to the screen.
// It has no effect on cameras without HDR.
type Tonemapping struct {
	byke.ComparableComponent[Tonemapping]
	Method TonemappingMethod
}
