package force

import (
	"github.com/matzehuels/topolayout/pkg/errors"
	"github.com/matzehuels/topolayout/pkg/route"
	"github.com/matzehuels/topolayout/pkg/validation"
)

// alphaMin ends the simulation once the temperature cools below it.
const alphaMin = 0.001

// Options configures a force-directed layout.
type Options struct {
	Width      float64 `json:"width" toml:"width" yaml:"width" validate:"gt=0"`
	Height     float64 `json:"height" toml:"height" yaml:"height" validate:"gt=0"`
	Iterations int     `json:"iterations" toml:"iterations" yaml:"iterations" validate:"gte=1"`

	// RepulsionStrength is the magnitude of pairwise repulsion. The sign is
	// ignored: nodes always push each other apart.
	RepulsionStrength  float64 `json:"repulsion_strength" toml:"repulsion_strength" yaml:"repulsion_strength"`
	AttractionStrength float64 `json:"attraction_strength" toml:"attraction_strength" yaml:"attraction_strength" validate:"gte=0"`
	LinkDistance       float64 `json:"link_distance" toml:"link_distance" yaml:"link_distance" validate:"gte=0"`
	Gravity            float64 `json:"gravity" toml:"gravity" yaml:"gravity" validate:"gte=0"`

	Alpha         float64 `json:"alpha" toml:"alpha" yaml:"alpha" validate:"gt=0"`
	AlphaDecay    float64 `json:"alpha_decay" toml:"alpha_decay" yaml:"alpha_decay" validate:"gt=0,lt=1"`
	VelocityDecay float64 `json:"velocity_decay" toml:"velocity_decay" yaml:"velocity_decay" validate:"gte=0,lte=1"`
	Padding       float64 `json:"padding" toml:"padding" yaml:"padding" validate:"gte=0"`

	// Seed makes random initial placement reproducible. Zero means unseeded.
	Seed uint64 `json:"seed" toml:"seed" yaml:"seed"`

	Routing route.Options `json:"routing" toml:"routing" yaml:"routing"`
}

// DefaultOptions returns an 800x600 canvas, 300 iterations, repulsion 1000,
// attraction 0.7, link distance 100, gravity 0.1, alpha 1 decaying by 0.0228,
// velocity decay 0.4, padding 50 and curved routing.
func DefaultOptions() Options {
	routing := route.DefaultOptions()
	routing.Algorithm = route.Curved
	return Options{
		Width:              800,
		Height:             600,
		Iterations:         300,
		RepulsionStrength:  1000,
		AttractionStrength: 0.7,
		LinkDistance:       100,
		Gravity:            0.1,
		Alpha:              1,
		AlphaDecay:         0.0228,
		VelocityDecay:      0.4,
		Padding:            50,
		Routing:            routing,
	}
}

// Validate reports the first invalid field as an INVALID_CONFIG error. The
// padding must leave a non-empty box on both axes.
func (o Options) Validate() error {
	if err := validation.Struct("force", o); err != nil {
		return err
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"width", o.Width},
		{"height", o.Height},
		{"repulsion_strength", o.RepulsionStrength},
		{"attraction_strength", o.AttractionStrength},
		{"link_distance", o.LinkDistance},
		{"gravity", o.Gravity},
		{"alpha", o.Alpha},
		{"padding", o.Padding},
	} {
		if !isFinite(f.value) {
			return errors.New(errors.ErrCodeInvalidConfig, "force.%s: must be finite (got %v)", f.name, f.value)
		}
	}
	if 2*o.Padding >= o.Width || 2*o.Padding >= o.Height {
		return errors.New(errors.ErrCodeInvalidConfig, "force.padding: %v leaves no room in a %vx%v canvas", o.Padding, o.Width, o.Height)
	}
	return nil
}
