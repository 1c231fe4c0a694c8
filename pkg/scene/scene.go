package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Scene pairs a world with the camera it should be viewed through
type Scene struct {
	Name         string
	World        *World
	CameraConfig CameraConfig
}

// CameraConfig describes a camera by image size, field of view and placement
type CameraConfig struct {
	Width       int        // Image width in pixels
	Height      int        // Image height in pixels
	FieldOfView float64    // Angle in radians
	From        core.Tuple // Eye position
	To          core.Tuple // Point looked at
	Up          core.Tuple // Approximate up direction
}

// DefaultCameraConfig returns an 800x600 camera at (0, 1.5, -5) looking at (0, 1, 0)
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:       800,
		Height:      600,
		FieldOfView: math.Pi / 3,
		From:        core.Point(0, 1.5, -5),
		To:          core.Point(0, 1, 0),
		Up:          core.Vector(0, 1, 0),
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.FieldOfView != 0 {
		result.FieldOfView = override.FieldOfView
	}
	if override.From != (core.Tuple{}) {
		result.From = override.From
	}
	if override.To != (core.Tuple{}) {
		result.To = override.To
	}
	if override.Up != (core.Tuple{}) {
		result.Up = override.Up
	}
	return result
}

// ViewTransform returns the world-to-camera transform for the configuration
func (c CameraConfig) ViewTransform() core.Matrix {
	return core.ViewTransform(c.From, c.To, c.Up)
}

// ShapeCount returns the number of registered shapes
func (s *Scene) ShapeCount() int {
	return s.World.Registry.Len()
}
