package mesh

import (
	"fmt"
	"math"
)

// IssueCode classifies a validator finding.
type IssueCode int

const (
	IssueEmptyMesh IssueCode = iota
	IssueIndexOutOfRange
	IssueNotWatertight
	IssueDegenerateFaces
	IssueNonFiniteVertices
	IssueNonPositiveVolume
)

func (c IssueCode) String() string {
	switch c {
	case IssueEmptyMesh:
		return "empty-mesh"
	case IssueIndexOutOfRange:
		return "index-out-of-range"
	case IssueNotWatertight:
		return "not-watertight"
	case IssueDegenerateFaces:
		return "degenerate-faces"
	case IssueNonFiniteVertices:
		return "non-finite-vertices"
	case IssueNonPositiveVolume:
		return "non-positive-volume"
	default:
		return fmt.Sprintf("IssueCode(%d)", int(c))
	}
}

// Issue describes a single validator finding. Issues are reported, not
// raised: a flawed mesh may still be worth inspecting even when it is
// not print-ready.
type Issue struct {
	Code    IssueCode `json:"code"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s", i.Code, i.Message)
}

// degenerateAreaEps is the face area below which a face counts as
// degenerate.
const degenerateAreaEps = 1e-10

// Validate checks the mesh for printability and returns every finding
// in one pass; checks are collected, never short-circuited. A mesh is
// valid when the list is empty.
func Validate(m *Mesh) (bool, []Issue) {
	var issues []Issue
	if m == nil {
		return false, []Issue{{Code: IssueEmptyMesh, Message: "mesh is nil"}}
	}
	if m.VertexCount() == 0 {
		issues = append(issues, Issue{Code: IssueEmptyMesh, Message: "mesh has no vertices"})
	}
	if m.TriangleCount() == 0 {
		issues = append(issues, Issue{Code: IssueEmptyMesh, Message: "mesh has no faces"})
	}
	if len(issues) > 0 {
		return false, issues
	}

	if n := m.outOfRangeFaces(); n > 0 {
		issues = append(issues, Issue{
			Code:    IssueIndexOutOfRange,
			Message: fmt.Sprintf("%d faces reference vertices beyond the vertex array", n),
		})
		// The remaining checks index into the vertex array, so stop here.
		return false, issues
	}

	watertight := m.IsWatertight()
	if !watertight {
		issues = append(issues, Issue{
			Code:    IssueNotWatertight,
			Message: "mesh has boundary or inconsistently oriented edges",
		})
	}
	if n := m.degenerateFaces(); n > 0 {
		issues = append(issues, Issue{
			Code:    IssueDegenerateFaces,
			Message: fmt.Sprintf("%d faces have zero area", n),
		})
	}
	if n := m.nonFiniteVertices(); n > 0 {
		issues = append(issues, Issue{
			Code:    IssueNonFiniteVertices,
			Message: fmt.Sprintf("%d vertices have NaN or infinite coordinates", n),
		})
	}
	if watertight {
		if vol := m.Volume(); vol <= 0 {
			issues = append(issues, Issue{
				Code:    IssueNonPositiveVolume,
				Message: fmt.Sprintf("enclosed volume %.6f is not positive", vol),
			})
		}
	}
	return len(issues) == 0, issues
}

// outOfRangeFaces counts faces referencing vertices past the array end.
func (m *Mesh) outOfRangeFaces() int {
	limit := uint32(m.VertexCount())
	n := 0
	for f := 0; f < m.TriangleCount(); f++ {
		a, b, c := m.face(f)
		if a >= limit || b >= limit || c >= limit {
			n++
		}
	}
	return n
}

// degenerateFaces counts faces with repeated vertices or zero area.
func (m *Mesh) degenerateFaces() int {
	n := 0
	for f := 0; f < m.TriangleCount(); f++ {
		a, b, c := m.face(f)
		if a == b || b == c || a == c || m.faceArea(f) < degenerateAreaEps {
			n++
		}
	}
	return n
}

// nonFiniteVertices counts vertices with NaN or infinite coordinates.
func (m *Mesh) nonFiniteVertices() int {
	n := 0
	for i := 0; i < m.VertexCount(); i++ {
		v := m.vertex(uint32(i))
		if !isFinite(v) {
			n++
		}
	}
	return n
}

func isFinite(v [3]float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
