package render

import (
	"image/color"

	"github.com/zucenko/fogmaze/model"
	"golang.org/x/image/colornames"
)

type Palette struct {
	Background color.NRGBA
	Wall       color.NRGBA
	Floor      color.NRGBA
	Trail      color.NRGBA
	Goal       color.NRGBA
	Player     color.NRGBA
	Glow       color.NRGBA
	Particles  [model.ColorTagCount]color.NRGBA
}

var DefaultPalette = Palette{
	Background: solid(colornames.Black),
	Wall:       solid(colornames.Slategray),
	Floor:      solid(colornames.Midnightblue),
	Trail:      solid(colornames.Deepskyblue),
	Goal:       solid(colornames.Gold),
	Player:     solid(colornames.White),
	Glow:       solid(colornames.Aqua),
	Particles: [model.ColorTagCount]color.NRGBA{
		model.SPARK: solid(colornames.Gold),
		model.EMBER: solid(colornames.Orangered),
		model.GLOW:  solid(colornames.Aqua),
	},
}

func solid(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// fade scales the alpha of c by a in [0,1].
func fade(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}
