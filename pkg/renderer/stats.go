package renderer

import (
	"time"

	"github.com/df07/go-raytracer-kernel/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Pixels in the final image
	TotalSamples int           // Primary rays traced
	Hits         int           // Rays that hit a surface
	Duration     time.Duration // Wall time of the render
}

// add accumulates tile statistics into s
func (s *RenderStats) add(other RenderStats) {
	s.TotalSamples += other.TotalSamples
	s.Hits += other.Hits
}

// HitRatio returns the fraction of rays that hit a surface
func (s RenderStats) HitRatio() float64 {
	if s.TotalSamples == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.TotalSamples)
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
