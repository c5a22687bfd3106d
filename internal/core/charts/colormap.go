package charts

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// viridisStops samples the viridis colormap at nine evenly spaced points.
var viridisStops = mustHexes(
	"#440154", "#472d7b", "#3b528b", "#2c728e", "#21918c",
	"#28ae80", "#5ec962", "#addc30", "#fde725",
)

func mustHexes(hexes ...string) []colorful.Color {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}

// Viridis maps t in [0, 1] to a hex colour; values outside are clamped.
func Viridis(t float64) string {
	if math.IsNaN(t) || t <= 0 {
		return viridisStops[0].Hex()
	}
	if t >= 1 {
		return viridisStops[len(viridisStops)-1].Hex()
	}
	pos := t * float64(len(viridisStops)-1)
	i := int(pos)
	return viridisStops[i].BlendRgb(viridisStops[i+1], pos-float64(i)).Clamped().Hex()
}
