package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// MovingSphere is a sphere whose center travels linearly from Center0 at Time0
// to Center1 at Time1. Rays see the sphere where it is at ray.Time.
type MovingSphere struct {
	Center0, Center1 core.Vec3
	Time0, Time1     float64
	Radius           float64
	Material         material.Material
}

// NewMovingSphere creates a new moving sphere
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, mat material.Material) *MovingSphere {
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: mat,
	}
}

// CenterAt returns the interpolated center at the given time.
// A zero-length time span pins the sphere at Center0.
func (s *MovingSphere) CenterAt(time float64) core.Vec3 {
	span := s.Time1 - s.Time0
	if span == 0 {
		return s.Center0
	}
	return s.Center0.Add(s.Center1.Subtract(s.Center0).Multiply((time - s.Time0) / span))
}

// Hit tests the ray against the sphere at the ray's time sample
func (s *MovingSphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return hitSphere(ray, tMin, tMax, s.CenterAt(ray.Time), s.Radius, s.Material)
}

// Validate rejects moving spheres that cannot be rendered
func (s *MovingSphere) Validate() error {
	var errs []error
	if err := validateSphere(s.Center0, s.Radius, s.Material); err != nil {
		errs = append(errs, err)
	}
	if !s.Center1.IsFinite() {
		errs = append(errs, fmt.Errorf("moving sphere end center %v is not finite", s.Center1))
	}
	if s.Time1 < s.Time0 {
		errs = append(errs, fmt.Errorf("moving sphere time span [%v, %v] is reversed", s.Time0, s.Time1))
	}
	return errors.Join(errs...)
}
