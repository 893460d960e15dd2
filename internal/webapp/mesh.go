package webapp

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a latitude/longitude sphere tessellation. Vertices lie on the unit
// sphere; the seam column is duplicated so the index buffer stays a plain
// triangle list.
type Mesh struct {
	vertices []mgl64.Vec3
	indices  []uint32
}

// NewSphereMesh builds a unit sphere with the given subdivision counts.
func NewSphereMesh(latBands, longBands int) (*Mesh, error) {
	if latBands < 2 {
		return nil, fmt.Errorf("mesh latitude bands must be >= 2: %d", latBands)
	}
	if longBands < 3 {
		return nil, fmt.Errorf("mesh longitude bands must be >= 3: %d", longBands)
	}

	m := &Mesh{
		vertices: make([]mgl64.Vec3, 0, (latBands+1)*(longBands+1)),
		indices:  make([]uint32, 0, latBands*longBands*6),
	}

	for lat := 0; lat <= latBands; lat++ {
		theta := float64(lat) / float64(latBands) * math.Pi
		sinTheta, cosTheta := math.Sincos(theta)

		for lon := 0; lon <= longBands; lon++ {
			phi := float64(lon) / float64(longBands) * 2 * math.Pi
			sinPhi, cosPhi := math.Sincos(phi)

			m.vertices = append(m.vertices, mgl64.Vec3{
				sinTheta * cosPhi,
				cosTheta,
				sinTheta * sinPhi,
			})
		}
	}

	stride := uint32(longBands + 1)
	for lat := 0; lat < latBands; lat++ {
		for lon := 0; lon < longBands; lon++ {
			a := uint32(lat)*stride + uint32(lon)
			b := a + stride

			m.indices = append(m.indices, a, b, a+1, b, b+1, a+1)
		}
	}

	return m, nil
}

// VertexCount returns the number of vertices including the duplicated seam.
func (m *Mesh) VertexCount() int { return len(m.vertices) }

// Indices returns the triangle list index buffer.
func (m *Mesh) Indices() []uint32 { return m.indices }
