package loaders

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-raytracer-kernel/pkg/core"
)

const asciiQuad = `ply
format ascii 1.0
comment unit quad
element vertex 4
property float x
property float y
property float z
property uchar red
element face 1
property list uchar int vertex_indices
end_header
0 0 0 255
1 0 0 255
1 1 0 255
0 1 0 255
4 0 1 2 3
`

func TestReadPLY_ASCII(t *testing.T) {
	data, err := ReadPLY(strings.NewReader(asciiQuad))
	if err != nil {
		t.Fatalf("ReadPLY failed: %v", err)
	}
	if len(data.Vertices) != 4 {
		t.Fatalf("Expected 4 vertices, got %d", len(data.Vertices))
	}
	if data.Vertices[2] != core.NewVec3(1, 1, 0) {
		t.Errorf("Expected vertex 2 at (1,1,0), got %v", data.Vertices[2])
	}

	// The quad is split into a fan around vertex 0
	expected := []int{0, 1, 2, 0, 2, 3}
	if len(data.Faces) != len(expected) {
		t.Fatalf("Expected %d indices, got %v", len(expected), data.Faces)
	}
	for i := range expected {
		if data.Faces[i] != expected[i] {
			t.Errorf("Index %d: expected %d, got %d", i, expected[i], data.Faces[i])
		}
	}
}

func TestReadPLY_BinaryLittleEndian(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ply\nformat binary_little_endian 1.0\n" +
		"element vertex 3\nproperty float x\nproperty float y\nproperty double z\n" +
		"element face 1\nproperty list uchar uint vertex_indices\nend_header\n")

	vertices := [][3]float64{{0, 0, 1.5}, {2, 0, 1.5}, {0, 2, 1.5}}
	for _, v := range vertices {
		binary.Write(&buf, binary.LittleEndian, float32(v[0]))
		binary.Write(&buf, binary.LittleEndian, float32(v[1]))
		binary.Write(&buf, binary.LittleEndian, v[2])
	}
	buf.WriteByte(3)
	binary.Write(&buf, binary.LittleEndian, [3]uint32{0, 1, 2})

	data, err := ReadPLY(&buf)
	if err != nil {
		t.Fatalf("ReadPLY failed: %v", err)
	}
	if len(data.Vertices) != 3 || len(data.Faces) != 3 {
		t.Fatalf("Expected 3 vertices and 1 triangle, got %d and %v", len(data.Vertices), data.Faces)
	}
	if math.Abs(data.Vertices[1].X-2) > 1e-9 || data.Vertices[1].Z != 1.5 {
		t.Errorf("Unexpected vertex 1: %v", data.Vertices[1])
	}
}

func TestReadPLY_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing magic", "format ascii 1.0\nend_header\n"},
		{"unsupported format", "ply\nformat xml 1.0\nend_header\n"},
		{"unknown property type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n0\n"},
		{"truncated body", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nend_header\n0\n"},
		{"index out of range", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\n" +
			"element face 1\nproperty list uchar int vertex_indices\nend_header\n0\n3 0 0 4\n"},
		{"no end_header", "ply\nformat ascii 1.0\n"},
		{"huge ascii list count", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\n" +
			"element face 1\nproperty list uint int vertex_indices\nend_header\n0\n4000000000 0 0 0\n"},
		// uint32 count 4000000000 with no indices following it
		{"huge binary list count", "ply\nformat binary_little_endian 1.0\nelement vertex 1\nproperty float x\n" +
			"element face 1\nproperty list uint uint vertex_indices\nend_header\n" +
			"\x00\x00\x00\x00" + "\x00\x28\x6b\xee"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadPLY(strings.NewReader(tt.input)); !errors.Is(err, ErrInvalidPLY) {
				t.Errorf("Expected ErrInvalidPLY, got %v", err)
			}
		})
	}
}

func TestLoadPLY_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.ply")
	if err := os.WriteFile(path, []byte(asciiQuad), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	data, err := LoadPLY(path)
	if err != nil {
		t.Fatalf("LoadPLY failed: %v", err)
	}
	if len(data.Faces) != 6 {
		t.Errorf("Expected 2 triangles, got %d indices", len(data.Faces))
	}

	if _, err := LoadPLY(filepath.Join(t.TempDir(), "missing.ply")); err == nil {
		t.Error("Expected error for a missing file")
	}
}
