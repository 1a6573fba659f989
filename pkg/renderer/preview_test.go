package renderer

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/geometry"
)

// flatShader returns a fixed color
type flatShader struct {
	color core.Vec3
}

func (f flatShader) Radiance(state *geometry.ShadingState) core.Vec3 {
	return f.color
}

// testScene is a flat list of instances seen from a camera on +Z
type testScene struct {
	camera     *Camera
	background core.Vec3
	instances  []*geometry.Instance
}

func newTestScene(instances ...*geometry.Instance) *testScene {
	return &testScene{
		camera: NewCamera(CameraConfig{
			Center:      core.NewVec3(0, 0, 5),
			LookAt:      core.NewVec3(0, 0, 0),
			Up:          core.NewVec3(0, 1, 0),
			Width:       16,
			AspectRatio: 1,
			VFov:        40,
		}),
		background: core.NewVec3(0, 0, 1),
		instances:  instances,
	}
}

func (s *testScene) GetCamera() *Camera            { return s.camera }
func (s *testScene) GetBackgroundColor() core.Vec3 { return s.background }

func (s *testScene) Intersect(ray *core.Ray, state *geometry.IntersectionState) {
	for _, inst := range s.instances {
		inst.Intersect(ray, state)
	}
}

// nopLogger discards output
type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}

func redWall() *geometry.Instance {
	plane := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	return geometry.NewInstance(plane, flatShader{color: core.NewVec3(1, 0, 0)})
}

func assertUniform(t *testing.T, img *image.RGBA, r, g, b uint8, tol int) {
	t.Helper()
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if absDiff(c.R, r) > tol || absDiff(c.G, g) > tol || absDiff(c.B, b) > tol {
				t.Fatalf("Pixel (%d,%d) = %v, expected (%d,%d,%d)", x, y, c, r, g, b)
			}
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestPreview_RenderHit(t *testing.T) {
	scene := newTestScene(redWall())
	preview := NewPreview(scene, 8, 8, PreviewConfig{TileSize: 3, NumWorkers: 2}, nopLogger{})

	img, stats, err := preview.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Fatalf("Expected 8x8 image, got %v", img.Bounds())
	}
	assertUniform(t, img, 255, 0, 0, 0)

	if stats.TotalPixels != 64 || stats.TotalSamples != 64 || stats.Hits != 64 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestPreview_RenderBackground(t *testing.T) {
	scene := newTestScene()
	img, stats, err := NewPreview(scene, 4, 4, DefaultPreviewConfig(), nopLogger{}).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	assertUniform(t, img, 0, 0, 255, 0)
	if stats.HitRatio() != 0 {
		t.Errorf("Expected no hits, got ratio %f", stats.HitRatio())
	}
}

func TestPreview_Supersample(t *testing.T) {
	scene := newTestScene(redWall())
	config := PreviewConfig{TileSize: 4, Supersample: 3, NumWorkers: 1}

	img, stats, err := NewPreview(scene, 5, 4, config, nopLogger{}).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 4 {
		t.Fatalf("Expected 5x4 output, got %v", img.Bounds())
	}
	if stats.TotalSamples != 5*4*9 {
		t.Errorf("Expected %d samples, got %d", 5*4*9, stats.TotalSamples)
	}
	assertUniform(t, img, 255, 0, 0, 1)
}

func TestPreview_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewPreview(newTestScene(redWall()), 8, 8, DefaultPreviewConfig(), nopLogger{}).Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestPreview_InvalidSize(t *testing.T) {
	_, _, err := NewPreview(newTestScene(), 0, 8, DefaultPreviewConfig(), nopLogger{}).Render(context.Background())
	if err == nil {
		t.Error("Expected error for zero width")
	}
}

func TestNewTileGrid(t *testing.T) {
	tiles := NewTileGrid(10, 5, 4)
	if len(tiles) != 6 {
		t.Fatalf("Expected 6 tiles, got %d", len(tiles))
	}
	covered := 0
	for _, tile := range tiles {
		covered += tile.Bounds.Dx() * tile.Bounds.Dy()
	}
	if covered != 50 {
		t.Errorf("Expected tiles to cover 50 pixels, got %d", covered)
	}
	if last := tiles[len(tiles)-1].Bounds; last != image.Rect(8, 4, 10, 5) {
		t.Errorf("Expected last tile clipped to (8,4)-(10,5), got %v", last)
	}
}
