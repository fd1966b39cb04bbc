package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/blocky/pkg/math3d"
	"github.com/taigrr/blocky/pkg/render"
)

// palette colors the corners of faces whose primitive has no COLOR_0.
var palette = [3]render.Color{render.ColorRed, render.ColorGreen, render.ColorBlue}

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Normalize fits the loaded mesh into [-1, 1] on its largest axis.
	Normalize bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{Normalize: true}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.FromDocument(doc, filepath.Base(path))
}

// FromDocument converts the triangle primitives of every mesh in doc.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("load %s: %w", name, ErrNoTriangles)
	}

	mesh.CalculateBounds()
	if l.Normalize {
		mesh.Normalize()
	}
	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Lines and points have no area to fill
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var colors []render.Color
		if colIdx, ok := prim.Attributes[gltf.COLOR_0]; ok {
			colors, err = readColorAccessor(doc, colIdx)
			if err != nil {
				return fmt.Errorf("read colors: %w", err)
			}
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		// Faces are unrolled so uncolored primitives can color each corner.
		for i := 0; i+2 < len(indices); i += 3 {
			base := len(mesh.Vertices)
			for k := range 3 {
				idx := indices[i+k]
				if idx < 0 || idx >= len(positions) {
					return fmt.Errorf("index %d out of range (%d vertices)", idx, len(positions))
				}
				c := palette[k]
				if idx < len(colors) {
					c = colors[idx]
				}
				mesh.Vertices = append(mesh.Vertices, MeshVertex{Position: positions[idx], Color: c})
			}
			mesh.Faces = append(mesh.Faces, Face{V: [3]int{base, base + 1, base + 2}})
		}
	}

	return nil
}

// readVec3Accessor reads float VEC3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, len(data))
	for i, f := range data {
		result[i] = math3d.V3(f[0], f[1], f[2])
	}
	return result, nil
}

// readColorAccessor reads COLOR_0 data. Alpha is dropped.
func readColorAccessor(doc *gltf.Document, accessorIdx int) ([]render.Color, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 && accessor.Type != gltf.AccessorVec4 {
		return nil, fmt.Errorf("expected VEC3 or VEC4, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	result := make([]render.Color, len(data))
	for i, f := range data {
		result[i] = render.Color{
			R: unitToByte(f[0]),
			G: unitToByte(f[1]),
			B: unitToByte(f[2]),
			A: 255,
		}
	}
	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor, err := accessorAt(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorScalar || accessor.ComponentType == gltf.ComponentFloat {
		return nil, fmt.Errorf("unexpected index type: %v / %v", accessor.Type, accessor.ComponentType)
	}
	// Integer indices must not be normalized to [0, 1].
	raw := *accessor
	raw.Normalized = false

	data, err := readAccessorData(doc, &raw)
	if err != nil {
		return nil, err
	}

	result := make([]int, len(data))
	for i, f := range data {
		result[i] = int(f[0])
	}
	return result, nil
}

func accessorAt(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return doc.Accessors[idx], nil
}

// readAccessorData reads up to four components per element, converting
// normalized integer components to [0, 1].
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) ([][4]float64, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView >= len(doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}
	bufData := doc.Buffers[bufferView.Buffer].Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	n := componentCount(accessor.Type)
	size := componentSize(accessor.ComponentType)
	if n == 0 || size == 0 {
		return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = n * size
	}

	result := make([][4]float64, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		if offset+n*size > len(bufData) {
			return nil, fmt.Errorf("element %d past end of buffer", i)
		}
		for j := range n {
			result[i][j] = readComponent(bufData[offset+j*size:], accessor.ComponentType, accessor.Normalized)
		}
	}
	return result, nil
}

func componentCount(t gltf.AccessorType) int {
	switch t {
	case gltf.AccessorScalar:
		return 1
	case gltf.AccessorVec2:
		return 2
	case gltf.AccessorVec3:
		return 3
	case gltf.AccessorVec4:
		return 4
	}
	return 0
}

func componentSize(t gltf.ComponentType) int {
	switch t {
	case gltf.ComponentUbyte:
		return 1
	case gltf.ComponentUshort:
		return 2
	case gltf.ComponentUint, gltf.ComponentFloat:
		return 4
	}
	return 0
}

// readComponent reads one little-endian component.
func readComponent(b []byte, t gltf.ComponentType, normalized bool) float64 {
	switch t {
	case gltf.ComponentUbyte:
		if normalized {
			return float64(b[0]) / math.MaxUint8
		}
		return float64(b[0])
	case gltf.ComponentUshort:
		v := binary.LittleEndian.Uint16(b)
		if normalized {
			return float64(v) / math.MaxUint16
		}
		return float64(v)
	case gltf.ComponentUint:
		return float64(binary.LittleEndian.Uint32(b))
	default:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	}
}

// unitToByte maps a [0, 1] channel to 0..255.
func unitToByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
