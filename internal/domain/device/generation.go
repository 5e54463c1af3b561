package device

import (
	"fmt"
	"strings"
)

// Generation identifies an iOS hardware model. Only generations with
// hand-tuned scores are enumerated; everything else is GenerationUnknown.
type Generation int

// Known generations.
const (
	GenerationUnknown Generation = iota
	GenerationIPhone5S
	GenerationIPadMini3Gen
	GenerationIPadAir1
	GenerationIPhone6
	GenerationIPhone6Plus
	GenerationIPodTouch6Gen
	GenerationIPadMini4Gen
	GenerationIPadAir2
)

var generationNames = map[Generation]string{
	GenerationUnknown:       "Unknown",
	GenerationIPhone5S:      "iPhone5S",
	GenerationIPadMini3Gen:  "iPadMini3Gen",
	GenerationIPadAir1:      "iPadAir1",
	GenerationIPhone6:       "iPhone6",
	GenerationIPhone6Plus:   "iPhone6Plus",
	GenerationIPodTouch6Gen: "iPodTouch6Gen",
	GenerationIPadMini4Gen:  "iPadMini4Gen",
	GenerationIPadAir2:      "iPadAir2",
}

// Apple hardware identifiers (hw.machine) for the enumerated generations.
var modelGenerations = map[string]Generation{
	"iPhone6,1": GenerationIPhone5S,
	"iPhone6,2": GenerationIPhone5S,
	"iPad4,7":   GenerationIPadMini3Gen,
	"iPad4,8":   GenerationIPadMini3Gen,
	"iPad4,9":   GenerationIPadMini3Gen,
	"iPad4,1":   GenerationIPadAir1,
	"iPad4,2":   GenerationIPadAir1,
	"iPad4,3":   GenerationIPadAir1,
	"iPhone7,2": GenerationIPhone6,
	"iPhone7,1": GenerationIPhone6Plus,
	"iPod7,1":   GenerationIPodTouch6Gen,
	"iPad5,1":   GenerationIPadMini4Gen,
	"iPad5,2":   GenerationIPadMini4Gen,
	"iPad5,3":   GenerationIPadAir2,
	"iPad5,4":   GenerationIPadAir2,
}

func (g Generation) String() string {
	if name, ok := generationNames[g]; ok {
		return name
	}
	return generationNames[GenerationUnknown]
}

// MarshalText renders the generation name.
func (g Generation) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// ParseGeneration parses a generation name such as "iPhone6" (case-insensitive).
func ParseGeneration(s string) (Generation, error) {
	want := strings.TrimSpace(s)
	for g, name := range generationNames {
		if strings.EqualFold(name, want) {
			return g, nil
		}
	}
	return GenerationUnknown, fmt.Errorf("unknown device generation: %q", s)
}

// GenerationFromModel maps an Apple hardware identifier such as "iPhone7,2"
// to its generation. Unrecognised identifiers yield GenerationUnknown.
func GenerationFromModel(model string) Generation {
	return modelGenerations[strings.TrimSpace(model)]
}
