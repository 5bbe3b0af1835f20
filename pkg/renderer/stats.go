package renderer

import (
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	AverageSamples  float64       // Average samples per pixel
	SamplesPerPixel int           // Samples requested per pixel
	NumWorkers      int           // Goroutines used for the render
	Seed            int64         // Base seed rows were derived from
	Duration        time.Duration // Wall time of the render
}

// merge folds the stats of one row into the render totals
func (rs *RenderStats) merge(row RenderStats) {
	rs.TotalPixels += row.TotalPixels
	rs.TotalSamples += row.TotalSamples
}

// finalize calculates derived statistics once all rows are in
func (rs *RenderStats) finalize() {
	if rs.TotalPixels > 0 {
		rs.AverageSamples = float64(rs.TotalSamples) / float64(rs.TotalPixels)
	}
}

// PixelStats accumulates the samples taken for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB sum of all samples
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Image is the accumulated result of a render, stored row-major with y = 0
// as the top row
type Image struct {
	Width  int
	Height int
	Pixels []PixelStats
}

// NewImage allocates an empty image buffer
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]PixelStats, width*height),
	}
}

// At returns the statistics for pixel (x, y)
func (img *Image) At(x, y int) PixelStats {
	return img.Pixels[y*img.Width+x]
}

// Row returns the slice of pixel statistics for row y
func (img *Image) Row(y int) []PixelStats {
	return img.Pixels[y*img.Width : (y+1)*img.Width]
}
