package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-raytracer-kernel/pkg/geometry"
	"github.com/df07/go-raytracer-kernel/pkg/loaders"
	"github.com/df07/go-raytracer-kernel/pkg/material"
)

const quadPLY = `ply
format ascii 1.0
comment Scene: Unit Quad
comment Description: Two triangles in the xy plane
element vertex 4
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
4 0 1 2 3
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"stanford-bunny", "Stanford Bunny"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-mesh", "My Custom Mesh"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParsePLYMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name:    "unit-quad.ply",
			content: quadPLY,
			expected: SceneInfo{
				ID:          "ply:unit-quad",
				Name:        "Unit Quad",
				DisplayName: "Unit Quad",
				Description: "Two triangles in the xy plane",
				Type:        "ply",
			},
		},
		{
			name: "no_metadata.ply",
			content: `ply
format ascii 1.0
element vertex 0
end_header
comment Scene: Ignored After Header
`,
			expected: SceneInfo{
				ID:          "ply:no_metadata",
				Name:        "No Metadata",
				DisplayName: "No Metadata",
				Type:        "ply",
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, dir, tc.name, tc.content)
			tc.expected.FilePath = path

			result, err := ParsePLYMetadata(path)
			if err != nil {
				t.Fatalf("ParsePLYMetadata() error: %v", err)
			}
			if result != tc.expected {
				t.Errorf("ParsePLYMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestListPLYScenes(t *testing.T) {
	scenes, err := ListPLYScenes(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Expected no error for a missing directory, got %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}

	dir := t.TempDir()
	writeFile(t, dir, "zebra.ply", "ply\nformat ascii 1.0\nend_header\n")
	writeFile(t, dir, "quad.ply", quadPLY)
	writeFile(t, dir, "notes.txt", "not a mesh")

	scenes, err = ListPLYScenes(dir)
	if err != nil {
		t.Fatalf("ListPLYScenes failed: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(scenes))
	}
	// Sorted by display name
	if scenes[0].DisplayName != "Unit Quad" || scenes[1].DisplayName != "Zebra" {
		t.Errorf("Unexpected order: %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
}

func TestListBuiltinScenes(t *testing.T) {
	scenes := ListBuiltinScenes()
	if len(scenes) != 3 {
		t.Fatalf("Expected 3 builtin scenes, got %d", len(scenes))
	}
	for _, info := range scenes {
		t.Run(info.ID, func(t *testing.T) {
			if info.Type != "builtin" {
				t.Errorf("Expected builtin type, got %q", info.Type)
			}
			if _, err := Create(info.ID, "", Options{}); err != nil {
				t.Errorf("Create(%q) failed: %v", info.ID, err)
			}
		})
	}

	// Callers get a copy
	scenes[0].ID = "changed"
	if ListBuiltinScenes()[0].ID != "default" {
		t.Error("Expected builtin list to be unaffected by callers")
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quad.ply", quadPLY)

	tests := []struct {
		name      string
		instances int
	}{
		{"default", 4},
		{"wireframe", 3},
		{"textured", 1},
		{"ply:quad", 1},
		{path, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Create(tt.name, dir, Options{})
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", tt.name, err)
			}
			if len(s.Instances) != tt.instances {
				t.Errorf("Expected %d instances, got %d", tt.instances, len(s.Instances))
			}
			if s.Camera == nil {
				t.Error("Expected a camera")
			}
		})
	}
}

func TestCreate_Errors(t *testing.T) {
	if _, err := Create("nonexistent", "", Options{}); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
	if _, err := Create("ply:missing", t.TempDir(), Options{}); err == nil {
		t.Error("Expected error for a missing mesh")
	}
	if _, err := Create("textured", "", Options{TexturePath: "does-not-exist.png"}); err == nil {
		t.Error("Expected error for a missing texture")
	}
}

func TestCreate_LineWidth(t *testing.T) {
	s, err := Create("wireframe", "", Options{LineWidth: 0.01})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, inst := range s.Instances {
		w, ok := inst.Shader(0).(*material.Wireframe)
		if !ok {
			t.Fatalf("Expected a wireframe shader, got %T", inst.Shader(0))
		}
		if w.Width() != 0.01 {
			t.Errorf("Expected width 0.01, got %f", w.Width())
		}
	}
}

func TestNewMeshScene_Quad(t *testing.T) {
	s, err := Create("ply:quad", writeDir(t), Options{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.GetPrimitiveCount() != 2 {
		t.Errorf("Expected the quad to be fan-triangulated, got %d primitives", s.GetPrimitiveCount())
	}

	// The camera is framed on the mesh bounds
	if math.Abs(s.CameraConfig.LookAt.X-0.5) > 1e-9 || math.Abs(s.CameraConfig.LookAt.Y-0.5) > 1e-9 {
		t.Errorf("Expected camera to look at the quad center, got %v", s.CameraConfig.LookAt)
	}
}

func writeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "quad.ply", quadPLY)
	return dir
}

func TestNewMeshScene_Empty(t *testing.T) {
	if _, err := NewMeshScene(&loaders.PLYData{}); !errors.Is(err, geometry.ErrInvalidMesh) {
		t.Errorf("Expected ErrInvalidMesh, got %v", err)
	}
}
