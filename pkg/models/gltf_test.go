package models

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/blocky/pkg/math3d"
	"github.com/taigrr/blocky/pkg/render"
)

func intPtr(i int) *int { return &i }

// triangleDocument builds a single-triangle glTF document in memory.
// colors, when non-nil, is stored as normalized VEC4 ubyte COLOR_0.
func triangleDocument(positions [][3]float32, colors [][4]uint8, indices []uint16) *gltf.Document {
	var buf []byte
	for _, p := range positions {
		for _, f := range p {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	posLen := len(buf)

	doc := &gltf.Document{
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteLength: posLen}},
		Accessors: []*gltf.Accessor{{
			BufferView:    intPtr(0),
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec3,
			Count:         len(positions),
		}},
	}
	prim := &gltf.Primitive{
		Mode:       gltf.PrimitiveTriangles,
		Attributes: map[string]int{gltf.POSITION: 0},
	}

	if colors != nil {
		start := len(buf)
		for _, c := range colors {
			buf = append(buf, c[:]...)
		}
		doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{Buffer: 0, ByteOffset: start, ByteLength: len(buf) - start})
		doc.Accessors = append(doc.Accessors, &gltf.Accessor{
			BufferView:    intPtr(len(doc.BufferViews) - 1),
			ComponentType: gltf.ComponentUbyte,
			Normalized:    true,
			Type:          gltf.AccessorVec4,
			Count:         len(colors),
		})
		prim.Attributes[gltf.COLOR_0] = len(doc.Accessors) - 1
	}

	if indices != nil {
		start := len(buf)
		for _, i := range indices {
			buf = binary.LittleEndian.AppendUint16(buf, i)
		}
		doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{Buffer: 0, ByteOffset: start, ByteLength: len(buf) - start})
		doc.Accessors = append(doc.Accessors, &gltf.Accessor{
			BufferView:    intPtr(len(doc.BufferViews) - 1),
			ComponentType: gltf.ComponentUshort,
			Type:          gltf.AccessorScalar,
			Count:         len(indices),
		})
		prim.Indices = intPtr(len(doc.Accessors) - 1)
	}

	doc.Buffers = []*gltf.Buffer{{ByteLength: len(buf), Data: buf}}
	doc.Meshes = []*gltf.Mesh{{Name: "tri", Primitives: []*gltf.Primitive{prim}}}
	return doc
}

var testPositions = [][3]float32{{0, 2, 0}, {-2, -2, 1}, {2, -2, -1}}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Fatal("NewGLTFLoader returned nil")
	}
	if !loader.Normalize {
		t.Error("Normalize should default to true")
	}
}

func TestFromDocument(t *testing.T) {
	tests := []struct {
		name    string
		colors  [][4]uint8
		indices []uint16
		want    [3]render.Color
	}{
		{
			name:   "vertex colors",
			colors: [][4]uint8{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 128}},
			want:   [3]render.Color{render.ColorRed, render.ColorGreen, render.ColorBlue},
		},
		{
			name:    "indexed vertex colors",
			colors:  [][4]uint8{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}},
			indices: []uint16{2, 0, 1},
			want:    [3]render.Color{render.ColorBlue, render.ColorRed, render.ColorGreen},
		},
		{
			name: "palette fallback",
			want: [3]render.Color{render.ColorRed, render.ColorGreen, render.ColorBlue},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			loader := &GLTFLoader{}
			mesh, err := loader.FromDocument(triangleDocument(testPositions, tc.colors, tc.indices), "tri.glb")
			if err != nil {
				t.Fatalf("FromDocument: %v", err)
			}
			if mesh.TriangleCount() != 1 || mesh.VertexCount() != 3 {
				t.Fatalf("got %d faces, %d vertices", mesh.TriangleCount(), mesh.VertexCount())
			}

			tri := mesh.Triangle(0)
			for i, v := range tri.V {
				if v.Color != tc.want[i] {
					t.Errorf("vertex %d color = %v, want %v", i, v.Color, tc.want[i])
				}
			}
			if mesh.Name != "tri.glb" {
				t.Errorf("Name = %q", mesh.Name)
			}
		})
	}
}

func TestFromDocumentNormalizes(t *testing.T) {
	mesh, err := NewGLTFLoader().FromDocument(triangleDocument(testPositions, nil, nil), "tri")
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}

	size := mesh.Size()
	if math.Abs(max(size.X, size.Y, size.Z)-2) > 1e-9 {
		t.Errorf("largest extent = %v, want 2", size)
	}
	if c := mesh.Center(); !c.ApproxEqual(math3d.Vec3{}, 1e-9) {
		t.Errorf("center = %v, want origin", c)
	}
}

func TestFromDocumentErrors(t *testing.T) {
	empty := triangleDocument(testPositions[:2], nil, nil)
	if _, err := NewGLTFLoader().FromDocument(empty, "empty"); !errors.Is(err, ErrNoTriangles) {
		t.Errorf("two vertices: err = %v, want ErrNoTriangles", err)
	}

	bad := triangleDocument(testPositions, nil, []uint16{0, 1, 7})
	if _, err := NewGLTFLoader().FromDocument(bad, "bad"); err == nil {
		t.Error("out of range index: expected error")
	}

	short := triangleDocument(testPositions, nil, nil)
	short.Accessors[0].Count = 10
	if _, err := NewGLTFLoader().FromDocument(short, "short"); err == nil {
		t.Error("accessor past end of buffer: expected error")
	}
}
