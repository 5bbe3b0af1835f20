package material

import (
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering.
// Offsetting the normal by a random unit vector gives a cosine-weighted direction.
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// Catch degenerate scatter direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, scatterDirection, rayIn.Time),
		Attenuation: l.Albedo,
	}, true
}

// Validate checks that the albedo lies in [0,1] per channel
func (l *Lambertian) Validate() error {
	return validateAlbedo("lambertian", l.Albedo)
}

func validateAlbedo(kind string, albedo core.Vec3) error {
	if !albedo.IsFinite() ||
		albedo.X < 0 || albedo.X > 1 ||
		albedo.Y < 0 || albedo.Y > 1 ||
		albedo.Z < 0 || albedo.Z > 1 {
		return fmt.Errorf("%s albedo %v outside [0,1]", kind, albedo)
	}
	return nil
}
