// Package model3d computes where a footprint's 3D model sits relative to the
// board surface.
package model3d

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Vec3 is a 3D vector in millimetres or degrees.
type Vec3 struct {
	X, Y, Z float64
}

// Ref is the model reference declared by a footprint.
type Ref struct {
	UUID     string
	Title    string
	OriginX  float64
	OriginY  float64
	Z        float64 // hundredths of a millimetre
	Rotation *Vec3   // nil when the document declares none
}

// Transform is the placement written into a footprint's model block.
type Transform struct {
	Offset   Vec3
	Rotation Vec3
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

// Branch names the rule that produced a transform.
type Branch string

const (
	BranchDeclared Branch = "declared" // no geometry, declared z used
	BranchTop      Branch = "top"      // z_max > |z_min|: offset is z_max
	BranchLift     Branch = "lift"     // otherwise: offset is -z_min/2
)

// ParseOBJ reads the vertex positions ("v x y z") of a Wavefront OBJ
// document. Faces, normals and materials are ignored.
func ParseOBJ(r io.Reader) ([]Vec3, error) {
	var verts []Vec3
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(text, "v ") && !strings.HasPrefix(text, "v\t") {
			continue
		}
		f := strings.Fields(text)
		if len(f) < 4 {
			return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
		}
		var v [3]float64
		for i := range v {
			val, err := strconv.ParseFloat(f[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			v[i] = val
		}
		verts = append(verts, Vec3{X: v[0], Y: v[1], Z: v[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	return verts, nil
}

// Bounds returns the bounding box of the vertices. ok is false when there
// are none.
func Bounds(verts []Vec3) (box Box, ok bool) {
	if len(verts) == 0 {
		return Box{}, false
	}
	box.Min = Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	box.Max = Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range verts {
		box.Min.X = math.Min(box.Min.X, v.X)
		box.Min.Y = math.Min(box.Min.Y, v.Y)
		box.Min.Z = math.Min(box.Min.Z, v.Z)
		box.Max.X = math.Max(box.Max.X, v.X)
		box.Max.Y = math.Max(box.Max.Y, v.Y)
		box.Max.Z = math.Max(box.Max.Z, v.Z)
	}
	return box, true
}

// ZOffset applies the bounding-box rule to a model's vertical extent.
// The comparison is fixed by reference parts: z in [-3.4, 7.6] gives 7.6
// (BranchTop) and z in [-5.975, 2.285] gives 2.9875 (BranchLift).
// Reversing the inequality breaks both parts.
func ZOffset(zMin, zMax float64) (float64, Branch) {
	if zMax > math.Abs(zMin) {
		return zMax, BranchTop
	}
	return -zMin / 2, BranchLift
}

// ComputeTransform places a model. vertices may be nil. The exporter bakes
// in-plane registration into the vertices, so the x and y offsets are always
// zero and no footprint origin is needed.
func ComputeTransform(ref Ref, vertices []Vec3) (Transform, Branch) {
	var t Transform
	if ref.Rotation != nil {
		t.Rotation = *ref.Rotation
	}

	box, ok := Bounds(vertices)
	if !ok {
		t.Offset.Z = ref.Z / 100
		return t, BranchDeclared
	}

	var branch Branch
	t.Offset.Z, branch = ZOffset(box.Min.Z, box.Max.Z)
	return t, branch
}
