package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-raytracer-kernel/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// PreviewConfig contains configuration for preview rendering
type PreviewConfig struct {
	TileSize    int // Size of each tile in supersampled pixels
	Supersample int // Render at this multiple of the output size, then downsample
	NumWorkers  int // Number of parallel workers (0 = use CPU count)
}

// DefaultPreviewConfig returns sensible default values
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		TileSize:    64,
		Supersample: 1,
		NumWorkers:  0,
	}
}

// Preview renders a scene in a single pass of first-hit shading
type Preview struct {
	scene         Scene
	width, height int
	config        PreviewConfig
	logger        core.Logger
}

// NewPreview creates a preview renderer for a width x height image
func NewPreview(scene Scene, width, height int, config PreviewConfig, logger core.Logger) *Preview {
	if config.TileSize <= 0 {
		config.TileSize = DefaultPreviewConfig().TileSize
	}
	if config.Supersample <= 0 {
		config.Supersample = 1
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Preview{
		scene:  scene,
		width:  width,
		height: height,
		config: config,
		logger: logger,
	}
}

// Render traces the image tile by tile on the worker pool. It returns
// ctx's error if the context ends before every tile is done.
func (p *Preview) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if p.width <= 0 || p.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", p.width, p.height)
	}
	start := time.Now()

	ss := p.config.Supersample
	width, height := p.width*ss, p.height*ss

	pixelStats := make([][]PixelStats, height)
	for j := range pixelStats {
		pixelStats[j] = make([]PixelStats, width)
	}

	tiles := NewTileGrid(width, height, p.config.TileSize)
	pool := NewWorkerPool(NewRaytracer(p.scene, width, height), len(tiles), p.config.NumWorkers)
	p.logger.Printf("Rendering %dx%d (%dx supersample) with %d workers, %d tiles\n",
		p.width, p.height, ss, pool.GetNumWorkers(), len(tiles))

	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, PixelStats: pixelStats})
	}
	pool.Stop()

	var stats RenderStats
	for result := range pool.Results() {
		if result.Error != nil {
			return nil, RenderStats{}, fmt.Errorf("tile %d: %w", result.TaskID, result.Error)
		}
		stats.add(result.Stats)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			img.SetRGBA(i, j, vec3ToColor(pixelStats[j][i].GetColor()))
		}
	}
	if ss > 1 {
		img = Downsample(img, p.width, p.height)
	}

	stats.TotalPixels = p.width * p.height
	stats.Duration = time.Since(start)
	p.logger.Printf("Render completed in %v (%d rays, %.1f%% hit)\n",
		stats.Duration, stats.TotalSamples, 100*stats.HitRatio())
	return img, stats, nil
}

// Tile represents a rectangular region of the image
type Tile struct {
	ID     int
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}
