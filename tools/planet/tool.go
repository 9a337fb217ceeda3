package planet

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agentlab/corag-agents/tools"
)

var ErrUnknownPlanet = errors.New("unknown planet")

// masses in kilograms
var masses = map[string]float64{
	"earth":   5.972e24,
	"jupiter": 1.898e27,
	"mars":    6.39e23,
	"mercury": 3.285e23,
	"neptune": 1.024e26,
	"saturn":  5.683e26,
	"uranus":  8.681e25,
	"venus":   4.867e24,
}

type Input struct {
	Planet string `json:"planet" jsonschema:"title=planet,description=Name of a planet in the solar system. For example 'Earth'." validate:"required"`
}

type Output struct {
	Planet string  `json:"planet"`
	Mass   float64 `json:"mass_kg"`
}

// Names returns the known planets in alphabetical order
func Names() []string {
	ret := make([]string, 0, len(masses))
	for k := range masses {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Mass looks up the mass of a planet, case insensitive
func Mass(name string) (float64, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	mass, ok := masses[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q, known planets are %s", ErrUnknownPlanet, name, strings.Join(Names(), ", "))
	}
	return mass, nil
}

// Run returns the mass of the requested planet
func Run(_ context.Context, in *Input) (*Output, error) {
	mass, err := Mass(in.Planet)
	if err != nil {
		return nil, err
	}
	return &Output{Planet: strings.ToLower(strings.TrimSpace(in.Planet)), Mass: mass}, nil
}

// New returns the planet mass lookup tool
func New(opts ...tools.Option) *tools.Func[Input, Output] {
	opts = append([]tools.Option{
		tools.WithDescription("Get the mass of a planet in the solar system, in kilograms."),
	}, opts...)
	return tools.NewFunc("get_planet_mass", Run, opts...)
}
