package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-raytracer-kernel/pkg/renderer"
	"github.com/df07/go-raytracer-kernel/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene: 'default', 'wireframe', 'textured', 'ply:<name>' or a path to a .ply file")
	width := flag.Int("width", 0, "Output width in pixels (0 = scene default, height follows the aspect ratio)")
	supersample := flag.Int("supersample", 2, "Render at this multiple of the output size, then downsample")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	format := flag.String("format", "png", "Output format: 'png' or 'webp'")
	output := flag.String("output", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	lineWidth := flag.Float64("line-width", 0, "Wireframe half-width in radians (0 = default)")
	texture := flag.String("texture", "", "Image for the textured scene (png, jpeg, tga or webp)")
	meshDir := flag.String("mesh-dir", "meshes", "Directory searched for 'ply:<name>' scenes")
	list := flag.Bool("list", false, "List available scenes and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Wireframe Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		printScenes(*meshDir)
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
		return
	}

	if *list {
		printScenes(*meshDir)
		return
	}

	fmt.Println("Starting Wireframe Raytracer...")

	selectedScene, err := createScene(*sceneType, *meshDir, scene.Options{
		TexturePath: *texture,
		LineWidth:   *lineWidth,
	})
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Using %s scene (%d primitives)...\n", *sceneType, selectedScene.GetPrimitiveCount())

	imageWidth, imageHeight := selectedScene.ImageSize(*width)

	filename := *output
	if filename == "" {
		outputDir := outputDirFor(*sceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			fmt.Printf("Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, strings.ToLower(*format)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	preview := renderer.NewPreview(selectedScene, imageWidth, imageHeight, renderer.PreviewConfig{
		TileSize:    renderer.DefaultPreviewConfig().TileSize,
		Supersample: *supersample,
		NumWorkers:  *workers,
	}, renderer.NewDefaultLogger())

	img, stats, err := preview.Render(ctx)
	if err != nil {
		fmt.Printf("Error rendering: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Hit ratio: %.1f%% of %d samples\n", stats.HitRatio()*100, stats.TotalSamples)

	if err := saveImage(filename, img, *format); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}

// createScene builds the named scene; see scene.Create for accepted names
func createScene(sceneType, meshDir string, opts scene.Options) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("%w: empty name", scene.ErrUnknownScene)
	}
	return scene.Create(sceneType, meshDir, opts)
}

// outputDirFor returns the output directory for a scene name. PLY scenes use
// the mesh file name.
func outputDirFor(sceneType string) string {
	base := sceneType
	if name, ok := strings.CutPrefix(sceneType, "ply:"); ok {
		base = name
	} else if strings.HasSuffix(strings.ToLower(sceneType), ".ply") {
		base = strings.TrimSuffix(filepath.Base(sceneType), filepath.Ext(sceneType))
	}
	if base == "" {
		base = "mesh-scene"
	}
	return filepath.Join("output", base)
}

func saveImage(filename string, img *image.RGBA, format string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := renderer.Encode(file, img, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func printScenes(meshDir string) {
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-12s - %s\n", info.ID, info.Description)
	}
	meshes, err := scene.ListPLYScenes(meshDir)
	if err != nil {
		fmt.Printf("Error scanning %s: %v\n", meshDir, err)
		return
	}
	for _, info := range meshes {
		desc := info.Description
		if desc == "" {
			desc = info.DisplayName
		}
		fmt.Printf("  %-12s - %s\n", info.ID, desc)
	}
}
