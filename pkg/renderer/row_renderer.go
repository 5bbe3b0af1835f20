package renderer

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// RowRenderer renders individual image rows using an integrator.
// It holds no mutable state and is shared by all workers.
type RowRenderer struct {
	camera          *Camera
	world           geometry.Shape
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
}

// NewRowRenderer creates a row renderer for the given camera, world and integrator
func NewRowRenderer(camera *Camera, world geometry.Shape, integratorInst integrator.Integrator, config SamplingConfig) *RowRenderer {
	return &RowRenderer{
		camera:          camera,
		world:           world,
		integrator:      integratorInst,
		width:           config.Width,
		height:          config.Height,
		samplesPerPixel: config.SamplesPerPixel,
	}
}

// RenderRow takes every sample for row y, writing into pixels (one entry per column)
func (rr *RowRenderer) RenderRow(y int, pixels []PixelStats, sampler core.Sampler) RenderStats {
	stats := RenderStats{TotalPixels: rr.width}

	for x := 0; x < rr.width; x++ {
		stats.TotalSamples += rr.samplePixel(x, y, &pixels[x], sampler)
	}

	return stats
}

// samplePixel accumulates samplesPerPixel jittered camera rays for pixel (x, y)
func (rr *RowRenderer) samplePixel(x, y int, ps *PixelStats, sampler core.Sampler) int {
	// Row 0 is the top of the image, t = 0 the bottom of the viewport
	row := float64(rr.height - 1 - y)

	for sample := 0; sample < rr.samplesPerPixel; sample++ {
		s := (float64(x) + sampler.Get1D()) / float64(rr.width)
		t := (row + sampler.Get1D()) / float64(rr.height)

		ray := rr.camera.GetRay(s, t, sampler)
		ps.AddSample(rr.integrator.RayColor(ray, rr.world, sampler))
	}

	return rr.samplesPerPixel
}
