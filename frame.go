package senxor

import (
	"fmt"
	"image"
	"image/color"
	"slices"
	"time"

	"github.com/jonas-koeritz/senxor/errdefs"
)

var frameShapes = map[int]image.Point{
	80 * 62:   {80, 62},
	160 * 120: {160, 120},
}

// Frame is one thermal image. Data holds one value per pixel in row-major
// order, in the unit selected by the TEMP_UNITS field (0.1 K by default).
type Frame struct {
	Time   time.Time `json:"time"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Header []uint16  `json:"header,omitempty"`
	Data   []uint16  `json:"data"`
}

func newFrame(header, data []uint16, t time.Time) (*Frame, error) {
	shape, ok := frameShapes[len(data)]
	if !ok {
		return nil, errdefs.Transport("read frame", "", fmt.Errorf("invalid thermal image frame: %d words", len(data)))
	}
	return &Frame{Time: t, Width: shape.X, Height: shape.Y, Header: header, Data: data}, nil
}

// At returns the raw value of the pixel at (x, y).
func (f *Frame) At(x, y int) uint16 {
	return f.Data[y*f.Width+x]
}

// Celsius converts the frame from deci-Kelvin to degrees Celsius.
func (f *Frame) Celsius() []float64 {
	c := make([]float64, len(f.Data))
	for i, v := range f.Data {
		c[i] = float64(v)/10 - 273.15
	}
	return c
}

// Image returns the raw values as a 16-bit grayscale image.
func (f *Frame) Image() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, f.Width, f.Height))
	for i, v := range f.Data {
		img.SetGray16(i%f.Width, i/f.Width, color.Gray16{Y: v})
	}
	return img
}

// Normalized returns the frame stretched so its coldest pixel is black and
// its hottest white.
func (f *Frame) Normalized() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, f.Width, f.Height))
	if len(f.Data) == 0 {
		return img
	}
	lo, hi := slices.Min(f.Data), slices.Max(f.Data)
	span := uint32(hi - lo)
	for i, v := range f.Data {
		var y uint16
		if span > 0 {
			y = uint16(uint32(v-lo) * 0xFFFF / span)
		}
		img.SetGray16(i%f.Width, i/f.Width, color.Gray16{Y: y})
	}
	return img
}
