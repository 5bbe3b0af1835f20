package renderer

import (
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestPixelStats_AddSample(t *testing.T) {
	var ps PixelStats
	if ps.GetColor() != (core.Vec3{}) {
		t.Errorf("Expected black for a pixel with no samples, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 0.5))
	ps.AddSample(core.NewVec3(0, 1, 0.5))

	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
	expected := core.NewVec3(0.5, 0.5, 0.5)
	if !vecNear(ps.GetColor(), expected, 1e-12) {
		t.Errorf("Expected average %v, got %v", expected, ps.GetColor())
	}
}

func TestImage_RowMajorLayout(t *testing.T) {
	img := NewImage(3, 2)
	if len(img.Pixels) != 6 {
		t.Fatalf("Expected 6 pixels, got %d", len(img.Pixels))
	}

	row := img.Row(1)
	row[2].AddSample(core.NewVec3(1, 1, 1))

	if got := img.At(2, 1); got.SampleCount != 1 {
		t.Errorf("Row slice should alias the image buffer, got %+v", got)
	}
	if img.Pixels[5].SampleCount != 1 {
		t.Error("Pixel (2,1) should live at index y*width+x")
	}
}

func TestRenderStats_Finalize(t *testing.T) {
	var stats RenderStats
	stats.finalize()
	if stats.AverageSamples != 0 {
		t.Errorf("Empty stats should average to 0, got %f", stats.AverageSamples)
	}

	stats.merge(RenderStats{TotalPixels: 4, TotalSamples: 40})
	stats.merge(RenderStats{TotalPixels: 4, TotalSamples: 40})
	stats.finalize()
	if stats.TotalPixels != 8 || stats.AverageSamples != 10 {
		t.Errorf("Expected 8 pixels averaging 10 samples, got %+v", stats)
	}
}
