package render

import "github.com/taigrr/blocky/pkg/math3d"

// block is one FillBlock call seen by recordingSurface.
type block struct {
	X, Y, W, H int
	C          Color
}

// recordingSurface implements Surface and remembers every call.
type recordingSurface struct {
	w, h   int
	pen    Color
	blocks []block
	lines  int
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{w: w, h: h}
}

func (s *recordingSurface) Size() (int, int)             { return s.w, s.h }
func (s *recordingSurface) SetColor(c Color)             { s.pen = c }
func (s *recordingSurface) DrawPixelLine(_, _, _, _ int) { s.lines++ }
func (s *recordingSurface) FillBlock(x, y, w, h int) {
	s.blocks = append(s.blocks, block{x, y, w, h, s.pen})
}

// rows returns the distinct block rows in first-seen order.
func (s *recordingSurface) rows() []int {
	seen := make(map[int]bool)
	var out []int
	for _, b := range s.blocks {
		if !seen[b.Y] {
			seen[b.Y] = true
			out = append(out, b.Y)
		}
	}
	return out
}

// mockMesh implements MeshRenderer for testing.
type mockMesh struct {
	pos   []math3d.Vec3
	color []Color
	faces [][3]int
}

func (m *mockMesh) TriangleCount() int   { return len(m.faces) }
func (m *mockMesh) GetFace(i int) [3]int { return m.faces[i] }
func (m *mockMesh) GetVertex(i int) (math3d.Vec3, Color) {
	return m.pos[i], m.color[i]
}

// demoTriangle is the red/green/blue triangle blocky spins by default.
func demoTriangle() Triangle {
	return Triangle{V: [3]Vertex{
		{Position: math3d.V3(0, 1.3, 0), Color: ColorRed},
		{Position: math3d.V3(-1.2, -1, 0.5), Color: ColorGreen},
		{Position: math3d.V3(1.2, -1.3, -0.5), Color: ColorBlue},
	}}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
