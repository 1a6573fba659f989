package scene

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-raytracer-kernel/pkg/loaders"
	"github.com/df07/go-raytracer-kernel/pkg/material"
)

// ErrUnknownScene is returned by Create for names that match no scene
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "ply"
	FilePath    string `json:"filePath"`    // Path to PLY file (ply type only)
}

// builtinScenes lists the scenes Create knows by name
var builtinScenes = []SceneInfo{
	{ID: "default", Name: "default", DisplayName: "Default", Description: "Wireframe solids over a checkered ground plane", Type: "builtin"},
	{ID: "wireframe", Name: "wireframe", DisplayName: "Wireframe", Description: "Rotated wireframe icosahedra", Type: "builtin"},
	{ID: "textured", Name: "textured", DisplayName: "Textured", Description: "Texture on a three-point UV-mapped plane", Type: "builtin"},
}

// ListBuiltinScenes returns the built-in scenes
func ListBuiltinScenes() []SceneInfo {
	return append([]SceneInfo(nil), builtinScenes...)
}

// ListPLYScenes scans dir for .ply meshes. A missing directory is not an error.
func ListPLYScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.ply"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan mesh directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		sceneInfo, err := ParsePLYMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParsePLYMetadata reads "comment Scene:" and "comment Description:" lines
// from a PLY header. The file name is the fallback display name.
func ParsePLYMetadata(filePath string) (SceneInfo, error) {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	sceneInfo := SceneInfo{
		ID:          "ply:" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Type:        "ply",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "end_header" {
			break
		}

		content, ok := strings.CutPrefix(line, "comment ")
		if !ok {
			continue
		}
		if name, ok := strings.CutPrefix(content, "Scene:"); ok {
			sceneInfo.Name = strings.TrimSpace(name)
			sceneInfo.DisplayName = sceneInfo.Name
		} else if desc, ok := strings.CutPrefix(content, "Description:"); ok {
			sceneInfo.Description = strings.TrimSpace(desc)
		}
	}

	return sceneInfo, scanner.Err()
}

// Options carries the inputs some scenes need beyond their name
type Options struct {
	TexturePath string  // Image for the textured scene, empty for a UV gradient
	LineWidth   float64 // Wireframe half-width in radians, 0 keeps the default
}

// Create builds a scene by built-in name, by "ply:<name>" from meshDir, or
// from a path ending in .ply
func Create(name, meshDir string, opts Options) (*Scene, error) {
	var (
		s   *Scene
		err error
	)

	switch {
	case name == "default":
		s, err = NewDefaultScene()
	case name == "wireframe":
		s, err = NewWireframeScene()
	case name == "textured":
		var texture material.ColorSource
		if opts.TexturePath != "" {
			tex, err := loaders.LoadTexture(opts.TexturePath)
			if err != nil {
				return nil, err
			}
			texture = tex
		}
		s, err = NewTexturedScene(texture)
	case strings.HasPrefix(name, "ply:"):
		s, err = createMeshScene(filepath.Join(meshDir, strings.TrimPrefix(name, "ply:")+".ply"))
	case strings.HasSuffix(strings.ToLower(name), ".ply"):
		s, err = createMeshScene(name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	if err != nil {
		return nil, err
	}

	if opts.LineWidth > 0 {
		SetWireframeWidth(s, opts.LineWidth)
	}
	return s, nil
}

func createMeshScene(path string) (*Scene, error) {
	data, err := loaders.LoadPLY(path)
	if err != nil {
		return nil, err
	}
	return NewMeshScene(data)
}

func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
