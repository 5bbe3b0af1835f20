package renderer

import (
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed; 0 draws a fresh seed per render
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            0,
		NumWorkers:      0,
	}
}

// MergeSamplingConfig overlays the non-zero fields of override onto base
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	if override.NumWorkers != 0 {
		result.NumWorkers = override.NumWorkers
	}
	return result
}

// Validate rejects configurations that cannot produce an image
func (c SamplingConfig) Validate() error {
	var errs []error
	if c.Width <= 0 {
		errs = append(errs, fmt.Errorf("width must be positive, got %d", c.Width))
	}
	if c.Height <= 0 {
		errs = append(errs, fmt.Errorf("height must be positive, got %d", c.Height))
	}
	if c.SamplesPerPixel <= 0 {
		errs = append(errs, fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel))
	}
	if c.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("max depth must be positive, got %d", c.MaxDepth))
	}
	if c.NumWorkers < 0 {
		errs = append(errs, fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers))
	}
	return errors.Join(errs...)
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
	GetBackground() integrator.Background
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene      Scene
	config     SamplingConfig
	integrator integrator.Integrator
	logger     core.Logger
	progress   Progress
}

// NewRaytracer creates a new raytracer using the path tracing integrator
func NewRaytracer(scene Scene, config SamplingConfig, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling config: %w", err)
	}
	if scene.GetCamera() == nil {
		return nil, errors.New("scene has no camera")
	}
	if logger == nil {
		logger = NopLogger{}
	}

	return &Raytracer{
		scene:  scene,
		config: config,
		integrator: integrator.NewPathTracingIntegrator(integrator.Config{
			MaxDepth:   config.MaxDepth,
			Background: scene.GetBackground(),
		}),
		logger:   logger,
		progress: nopProgress{},
	}, nil
}

// SetProgress installs a progress sink; nil disables progress reporting
func (rt *Raytracer) SetProgress(progress Progress) {
	if progress == nil {
		progress = nopProgress{}
	}
	rt.progress = progress
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// GetConfig returns the sampling configuration
func (rt *Raytracer) GetConfig() SamplingConfig {
	return rt.config
}

// Render samples every pixel in parallel and returns the accumulated image.
// With a non-zero seed the result is identical for any worker count.
func (rt *Raytracer) Render() (*Image, RenderStats, error) {
	start := time.Now()

	seed := rt.config.Seed
	if seed == 0 {
		seed = start.UnixNano()
	}

	img := NewImage(rt.config.Width, rt.config.Height)
	rowRenderer := NewRowRenderer(rt.scene.GetCamera(), rt.scene.GetWorld(), rt.integrator, rt.config)
	workerPool := NewWorkerPool(rowRenderer, img, rt.progress, rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d at %d samples per pixel, max depth %d (using %d workers)...\n",
		img.Width, img.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth, workerPool.GetNumWorkers())

	workerPool.Start()
	for y := 0; y < img.Height; y++ {
		workerPool.SubmitTask(RowTask{Row: y, Seed: seed + int64(y)})
	}

	stats := RenderStats{
		SamplesPerPixel: rt.config.SamplesPerPixel,
		NumWorkers:      workerPool.GetNumWorkers(),
		Seed:            seed,
	}
	var errs []error
	for i := 0; i < img.Height; i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			errs = append(errs, fmt.Errorf("worker pool closed unexpectedly"))
			break
		}
		if result.Error != nil {
			errs = append(errs, result.Error)
			continue
		}
		stats.merge(result.Stats)
	}
	workerPool.Stop()

	if err := errors.Join(errs...); err != nil {
		return nil, stats, fmt.Errorf("render failed: %w", err)
	}

	stats.finalize()
	stats.Duration = time.Since(start)
	rt.logger.Printf("Render completed in %v (%d samples, %.1f per pixel)\n",
		stats.Duration.Round(time.Millisecond), stats.TotalSamples, stats.AverageSamples)

	return img, stats, nil
}
