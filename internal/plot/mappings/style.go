package mappings

import (
	"fmt"
	"image/color"
	"math"
)

// AllocatorColors is a muted qualitative palette, one entry per allocator
// in first-appearance order.
var AllocatorColors = []color.RGBA{
	{R: 0x4c, G: 0x72, B: 0xb0, A: 0xff},
	{R: 0xdd, G: 0x84, B: 0x52, A: 0xff},
	{R: 0x55, G: 0xa8, B: 0x68, A: 0xff},
	{R: 0xc4, G: 0x4e, B: 0x52, A: 0xff},
	{R: 0x81, G: 0x72, B: 0xb3, A: 0xff},
	{R: 0x93, G: 0x78, B: 0x60, A: 0xff},
	{R: 0xda, G: 0x8b, B: 0xc3, A: 0xff},
	{R: 0x8c, G: 0x8c, B: 0x8c, A: 0xff},
	{R: 0xcc, G: 0xb9, B: 0x74, A: 0xff},
	{R: 0x64, G: 0xb5, B: 0xcd, A: 0xff},
}

func GetAllocatorColor(allocatorIndex int) color.RGBA {
	if allocatorIndex < 0 {
		allocatorIndex = 0
	}
	return AllocatorColors[allocatorIndex%len(AllocatorColors)]
}

func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Theme is the light grid look shared by every chart of a run.
type Theme struct {
	WidthIn  float64
	HeightIn float64

	Background color.Color
	GridColor  color.RGBA
	GridWidth  float64 // points

	TitleSize   float64 // points
	LabelSize   float64
	TickSize    float64
	LegendSize  float64
	TickRotateD float64 // degrees

	// fraction of a category slot covered by its bars
	GroupFill float64
}

func NewTheme(widthIn, heightIn float64) Theme {
	return Theme{
		WidthIn:     widthIn,
		HeightIn:    heightIn,
		Background:  color.White,
		GridColor:   color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff},
		GridWidth:   0.8,
		TitleSize:   16,
		LabelSize:   13,
		TickSize:    11,
		LegendSize:  11,
		TickRotateD: 45,
		GroupFill:   0.8,
	}
}

func (t Theme) TickRotation() float64 {
	return t.TickRotateD * math.Pi / 180
}
