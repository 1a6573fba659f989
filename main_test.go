package main

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-raytracer-kernel/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"wireframe scene", "wireframe", false},
		{"textured scene", "textured", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"missing PLY mesh", "ply:nonexistent", true},
		{"invalid PLY path", "meshes/nonexistent.ply", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, t.TempDir(), scene.Options{})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, s)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s == nil {
				t.Fatalf("Expected scene for valid scene type '%s', got nil", tt.sceneType)
			}
			if s.CameraConfig.Width <= 0 {
				t.Errorf("Scene camera width should be positive, got %d", s.CameraConfig.Width)
			}
		})
	}
}

func TestCreateScene_EmptyName(t *testing.T) {
	if _, err := createScene("", "", scene.Options{}); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestOutputDirFor(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		expected  string
	}{
		{"default scene", "default", filepath.Join("output", "default")},
		{"wireframe scene", "wireframe", filepath.Join("output", "wireframe")},
		{"PLY by name", "ply:bunny", filepath.Join("output", "bunny")},
		{"PLY by path", "meshes/bunny.ply", filepath.Join("output", "bunny")},
		{"nested PLY path", "meshes/subdir/My-Mesh.PLY", filepath.Join("output", "My-Mesh")},
		{"empty PLY name", "ply:", filepath.Join("output", "mesh-scene")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputDirFor(tt.sceneType); got != tt.expected {
				t.Errorf("outputDirFor(%q) = %q, want %q", tt.sceneType, got, tt.expected)
			}
		})
	}
}

func TestSaveImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	dir := t.TempDir()

	for _, format := range []string{"png", "webp"} {
		t.Run(format, func(t *testing.T) {
			filename := filepath.Join(dir, "render."+format)
			if err := saveImage(filename, img, format); err != nil {
				t.Fatalf("saveImage failed: %v", err)
			}
			info, err := os.Stat(filename)
			if err != nil || info.Size() == 0 {
				t.Errorf("Expected a non-empty file, got %v", err)
			}
		})
	}

	err := saveImage(filepath.Join(dir, "render.bmp"), img, "bmp")
	if err == nil || !strings.Contains(err.Error(), "unknown image format") {
		t.Errorf("Expected unknown format error, got %v", err)
	}
}
