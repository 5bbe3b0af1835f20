package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *renderer.Camera
	World          *geometry.HittableList // Objects in the scene
	Background     integrator.Background  // Sky seen by escaping rays
	SamplingConfig renderer.SamplingConfig
	CameraConfig   renderer.CameraConfig
}

// NewScene creates an empty scene with the given camera and sampling settings.
// The image height is derived from the width and the camera aspect ratio.
func NewScene(cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig) (*Scene, error) {
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return nil, err
	}

	samplingConfig.Height = ImageHeight(samplingConfig.Width, cameraConfig.AspectRatio)

	return &Scene{
		Camera:         camera,
		World:          geometry.NewHittableList(),
		Background:     integrator.DefaultBackground(),
		SamplingConfig: samplingConfig,
		CameraConfig:   cameraConfig,
	}, nil
}

// ImageHeight returns the pixel height matching width at the given aspect ratio
func ImageHeight(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return width
	}
	return max(1, int(float64(width)/aspectRatio))
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld returns the aggregate of all shapes
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}

// GetBackground returns the sky gradient
func (s *Scene) GetBackground() integrator.Background {
	return s.Background
}

// SetWidth changes the image width, keeping the camera aspect ratio
func (s *Scene) SetWidth(width int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = ImageHeight(width, s.CameraConfig.AspectRatio)
}

// SetCameraConfig rebuilds the camera from a new configuration
func (s *Scene) SetCameraConfig(config renderer.CameraConfig) error {
	camera, err := renderer.NewCamera(config)
	if err != nil {
		return err
	}
	s.Camera = camera
	s.CameraConfig = config
	s.SetWidth(s.SamplingConfig.Width)
	return nil
}

// AddSphere adds a static sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// AddMovingSphere adds a sphere moving linearly from center0 at time0 to center1 at time1
func (s *Scene) AddMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, mat material.Material) {
	s.World.Add(geometry.NewMovingSphere(center0, center1, time0, time1, radius, mat))
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// Validate reports every problem that would make the scene unrenderable
func (s *Scene) Validate() error {
	var errs []error
	if s.Camera == nil {
		errs = append(errs, errors.New("scene has no camera"))
	}
	if s.World == nil {
		errs = append(errs, errors.New("scene has no world"))
	} else if err := s.World.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !s.Background.Top.IsFinite() || !s.Background.Bottom.IsFinite() {
		errs = append(errs, fmt.Errorf("background colors must be finite, got %v and %v", s.Background.Top, s.Background.Bottom))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid scene: %w", err)
	}
	return nil
}
