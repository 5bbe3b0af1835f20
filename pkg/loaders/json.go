package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// SceneConfig is the JSON description of a scene
type SceneConfig struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Group       string                 `json:"group,omitempty"`
	Camera      CameraCfg              `json:"camera"`
	Render      RenderCfg              `json:"render,omitempty"`
	Background  *BackgroundCfg         `json:"background,omitempty"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Spheres     []SphereCfg            `json:"spheres"`
}

// CameraCfg overrides the default camera; omitted fields keep their defaults
type CameraCfg struct {
	LookFrom      *Vec3Cfg `json:"lookFrom,omitempty"`
	LookAt        *Vec3Cfg `json:"lookAt,omitempty"`
	Up            *Vec3Cfg `json:"up,omitempty"`
	VFov          float64  `json:"vfov,omitempty"`
	AspectRatio   float64  `json:"aspectRatio,omitempty"`
	Aperture      float64  `json:"aperture,omitempty"`
	FocusDistance float64  `json:"focusDistance,omitempty"` // 0 focuses on lookAt
	ShutterOpen   float64  `json:"shutterOpen,omitempty"`
	ShutterClose  float64  `json:"shutterClose,omitempty"`
}

// RenderCfg overrides the default sampling settings
type RenderCfg struct {
	Width           int   `json:"width,omitempty"`
	SamplesPerPixel int   `json:"samplesPerPixel,omitempty"`
	MaxDepth        int   `json:"maxDepth,omitempty"`
	Seed            int64 `json:"seed,omitempty"`
}

// BackgroundCfg sets the sky gradient
type BackgroundCfg struct {
	Top    Vec3Cfg `json:"top"`
	Bottom Vec3Cfg `json:"bottom"`
}

// MaterialCfg describes one named material.
// Type is "lambertian", "metal" or "dielectric".
type MaterialCfg struct {
	Type            string  `json:"type"`
	Albedo          Vec3Cfg `json:"albedo,omitempty"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractiveIndex float64 `json:"ior,omitempty"`
}

// SphereCfg describes a sphere. Setting center1 makes it a moving sphere that
// travels from center at time0 to center1 at time1.
type SphereCfg struct {
	Center   Vec3Cfg  `json:"center"`
	Center1  *Vec3Cfg `json:"center1,omitempty"`
	Time0    float64  `json:"time0,omitempty"`
	Time1    float64  `json:"time1,omitempty"`
	Radius   float64  `json:"radius"`
	Material string   `json:"material"`
}

// Build creates the material described by the config
func (m MaterialCfg) Build() (material.Material, error) {
	var mat material.Material
	switch m.Type {
	case "lambertian":
		mat = material.NewLambertian(m.Albedo.Vec3())
	case "metal":
		mat = material.NewMetal(m.Albedo.Vec3(), m.Fuzz)
	case "dielectric":
		mat = material.NewDielectric(m.RefractiveIndex)
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}

	if err := mat.Validate(); err != nil {
		return nil, err
	}
	return mat, nil
}

// cameraConfig applies the JSON camera to the default camera. Vectors are set
// whenever present, so a camera may sit at or look at the origin. A zero field
// of view or aspect ratio keeps the default.
func (c CameraCfg) cameraConfig() renderer.CameraConfig {
	config := renderer.DefaultCameraConfig()
	if c.LookFrom != nil {
		config.Center = c.LookFrom.Vec3()
	}
	if c.LookAt != nil {
		config.LookAt = c.LookAt.Vec3()
	}
	if c.Up != nil {
		config.Up = c.Up.Vec3()
	}
	if c.VFov != 0 {
		config.VFov = c.VFov
	}
	if c.AspectRatio != 0 {
		config.AspectRatio = c.AspectRatio
	}
	config.Aperture = c.Aperture
	config.FocusDistance = c.FocusDistance
	config.ShutterOpen = c.ShutterOpen
	config.ShutterClose = c.ShutterClose
	return config
}

// Build assembles and validates the scene
func (c SceneConfig) Build() (*scene.Scene, error) {
	cameraConfig := c.Camera.cameraConfig()
	samplingConfig := renderer.MergeSamplingConfig(renderer.DefaultSamplingConfig(), renderer.SamplingConfig{
		Width:           c.Render.Width,
		SamplesPerPixel: c.Render.SamplesPerPixel,
		MaxDepth:        c.Render.MaxDepth,
		Seed:            c.Render.Seed,
	})

	s, err := scene.NewScene(cameraConfig, samplingConfig)
	if err != nil {
		return nil, err
	}
	if c.Background != nil {
		s.Background.Top = c.Background.Top.Vec3()
		s.Background.Bottom = c.Background.Bottom.Vec3()
	}

	// Build materials once so spheres share them by pointer
	names := make([]string, 0, len(c.Materials))
	for name := range c.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	materials := make(map[string]material.Material, len(c.Materials))
	for _, name := range names {
		mat, err := c.Materials[name].Build()
		if err != nil {
			errs = append(errs, fmt.Errorf("material %q: %w", name, err))
			continue
		}
		materials[name] = mat
	}

	for i, sphere := range c.Spheres {
		mat, ok := materials[sphere.Material]
		if !ok {
			if _, declared := c.Materials[sphere.Material]; !declared {
				errs = append(errs, fmt.Errorf("sphere %d: unknown material %q", i, sphere.Material))
			}
			continue
		}

		if sphere.Center1 != nil {
			s.AddMovingSphere(sphere.Center.Vec3(), sphere.Center1.Vec3(), sphere.Time0, sphere.Time1, sphere.Radius, mat)
		} else {
			s.AddSphere(sphere.Center.Vec3(), sphere.Radius, mat)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseScene decodes a JSON scene description and builds the scene.
// Unknown fields are rejected.
func ParseScene(r io.Reader) (*scene.Scene, error) {
	var config SceneConfig
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return config.Build()
}

// LoadScene reads a JSON scene description from disk
func LoadScene(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}
