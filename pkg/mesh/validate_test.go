package mesh

import (
	"math"
	"testing"
)

func hasIssue(issues []Issue, code IssueCode) bool {
	for _, i := range issues {
		if i.Code == code {
			return true
		}
	}
	return false
}

func TestValidateNil(t *testing.T) {
	valid, issues := Validate(nil)
	if valid {
		t.Error("nil mesh reported valid")
	}
	if !hasIssue(issues, IssueEmptyMesh) {
		t.Errorf("issues = %v, want empty-mesh", issues)
	}
}

func TestValidateEmpty(t *testing.T) {
	valid, issues := Validate(&Mesh{})
	if valid {
		t.Error("empty mesh reported valid")
	}
	if !hasIssue(issues, IssueEmptyMesh) {
		t.Errorf("issues = %v, want empty-mesh", issues)
	}
}

func TestValidateBox(t *testing.T) {
	valid, issues := Validate(box(10, 10, 2))
	if !valid {
		t.Fatalf("box reported invalid: %v", issues)
	}
	if len(issues) != 0 {
		t.Errorf("unexpected issues: %v", issues)
	}
}

func TestValidateMissingFace(t *testing.T) {
	m := box(10, 10, 2)
	m.Indices = m.Indices[:len(m.Indices)-3]
	valid, issues := Validate(m)
	if valid {
		t.Error("open mesh reported valid")
	}
	if !hasIssue(issues, IssueNotWatertight) {
		t.Errorf("issues = %v, want not-watertight", issues)
	}
}

func TestValidateCollectsAllFindings(t *testing.T) {
	// One missing face, one NaN vertex, one degenerate face: every
	// finding must be reported in a single pass.
	m := box(10, 10, 2)
	m.Indices = m.Indices[:len(m.Indices)-3]
	m.Vertices = append(m.Vertices, float32(math.NaN()), 0, 0)
	m.Indices = append(m.Indices, 0, 0, 1) // repeated vertex, zero area
	valid, issues := Validate(m)
	if valid {
		t.Error("damaged mesh reported valid")
	}
	for _, code := range []IssueCode{IssueNotWatertight, IssueNonFiniteVertices, IssueDegenerateFaces} {
		if !hasIssue(issues, code) {
			t.Errorf("issues = %v, missing %v", issues, code)
		}
	}
}

func TestValidateInsideOut(t *testing.T) {
	m := box(10, 10, 2)
	for f := 0; f < m.TriangleCount(); f++ {
		m.flipFace(f)
	}
	valid, issues := Validate(m)
	if valid {
		t.Error("inside-out mesh reported valid")
	}
	if !hasIssue(issues, IssueNonPositiveVolume) {
		t.Errorf("issues = %v, want non-positive-volume", issues)
	}
}

func TestValidateIndexOutOfRange(t *testing.T) {
	m := box(10, 10, 2)
	m.Indices[0] = 99
	valid, issues := Validate(m)
	if valid {
		t.Error("mesh with bad indices reported valid")
	}
	if !hasIssue(issues, IssueIndexOutOfRange) {
		t.Errorf("issues = %v, want index-out-of-range", issues)
	}
}

func TestIssueString(t *testing.T) {
	i := Issue{Code: IssueNotWatertight, Message: "boundary edges"}
	if got := i.String(); got != "[not-watertight] boundary edges" {
		t.Errorf("Issue.String() = %q", got)
	}
}
