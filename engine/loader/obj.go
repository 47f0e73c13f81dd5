package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-flap/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidOBJ is wrapped by every OBJ and MTL syntax error.
var ErrInvalidOBJ = errors.New("invalid obj data")

// White is the vertex color used when a face has no material or an unknown one.
var White = mgl32.Vec3{1, 1, 1}

// ParseMTL reads the diffuse color of every material in an MTL stream.
// Only newmtl and Kd statements are interpreted; everything else is ignored.
//
// Parameters:
//   - r: the MTL source
//
// Returns:
//   - map[string]mgl32.Vec3: diffuse colors keyed by material name
//   - error: an error wrapping ErrInvalidOBJ on malformed input, or the read error
func ParseMTL(r io.Reader) (map[string]mgl32.Vec3, error) {
	materials := make(map[string]mgl32.Vec3)
	current := ""

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("mtl line %d: newmtl without a name: %w", line, ErrInvalidOBJ)
			}
			current = fields[1]
		case "Kd":
			if current == "" {
				return nil, fmt.Errorf("mtl line %d: Kd before newmtl: %w", line, ErrInvalidOBJ)
			}
			kd, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("mtl line %d: %w", line, err)
			}
			materials[current] = kd
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return materials, nil
}

// ParseOBJ reads triangle geometry from an OBJ stream.
//
// Faces accept v, v/t, v//n and v/t/n references, with negative indices counting back from the
// latest element. Polygons are fan-triangulated. Vertices equal in position, normal, texcoord and
// color are shared. Each vertex takes the Kd of the active usemtl material, or White.
//
// Parameters:
//   - r: the OBJ source
//   - materials: diffuse colors from ParseMTL; may be nil
//
// Returns:
//   - []model.GPUVertex: the unique vertices
//   - []uint32: three indices per triangle
//   - error: an error wrapping ErrInvalidOBJ on malformed input, or the read error
func ParseOBJ(r io.Reader, materials map[string]mgl32.Vec3) ([]model.GPUVertex, []uint32, error) {
	var (
		positions []mgl32.Vec3
		texcoords []mgl32.Vec2
		normals   []mgl32.Vec3

		vertices []model.GPUVertex
		indices  []uint32
	)
	unique := make(map[model.GPUVertex]uint32)
	color := White

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, nil, fmt.Errorf("obj line %d: %w", line, err)
			}
			positions = append(positions, p)
		case "vt":
			uv, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, nil, fmt.Errorf("obj line %d: %w", line, err)
			}
			texcoords = append(texcoords, mgl32.Vec2{uv[0], uv[1]})
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, nil, fmt.Errorf("obj line %d: %w", line, err)
			}
			normals = append(normals, n)
		case "usemtl":
			color = White
			if len(fields) > 1 {
				if kd, ok := materials[fields[1]]; ok {
					color = kd
				}
			}
		case "f":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("obj line %d: face needs at least 3 vertices: %w", line, ErrInvalidOBJ)
			}
			face := make([]uint32, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				v, err := resolveFaceVertex(ref, positions, texcoords, normals)
				if err != nil {
					return nil, nil, fmt.Errorf("obj line %d: %w", line, err)
				}
				v.Color = color
				idx, ok := unique[v]
				if !ok {
					idx = uint32(len(vertices))
					unique[v] = idx
					vertices = append(vertices, v)
				}
				face = append(face, idx)
			}
			for i := 1; i+1 < len(face); i++ {
				indices = append(indices, face[0], face[i], face[i+1])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return vertices, indices, nil
}

// resolveFaceVertex builds the vertex referenced by one face token.
func resolveFaceVertex(ref string, positions []mgl32.Vec3, texcoords []mgl32.Vec2, normals []mgl32.Vec3) (model.GPUVertex, error) {
	var v model.GPUVertex
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return v, fmt.Errorf("bad face reference %q: %w", ref, ErrInvalidOBJ)
	}

	pi, err := resolveIndex(parts[0], len(positions))
	if err != nil {
		return v, fmt.Errorf("position of %q: %w", ref, err)
	}
	v.Position = positions[pi]

	if len(parts) > 1 && parts[1] != "" {
		ti, err := resolveIndex(parts[1], len(texcoords))
		if err != nil {
			return v, fmt.Errorf("texcoord of %q: %w", ref, err)
		}
		v.TexCoord = texcoords[ti]
	}
	if len(parts) > 2 && parts[2] != "" {
		ni, err := resolveIndex(parts[2], len(normals))
		if err != nil {
			return v, fmt.Errorf("normal of %q: %w", ref, err)
		}
		v.Normal = normals[ni]
	}
	return v, nil
}

// resolveIndex turns a 1-based or negative OBJ index into a slice index.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q: %w", s, ErrInvalidOBJ)
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("index %d out of range [1, %d]: %w", i, n, ErrInvalidOBJ)
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{f[0], f[1], f[2]}, nil
}

// parseFloats parses the first n fields. Extra fields are ignored.
func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d numbers, got %d: %w", n, len(fields), ErrInvalidOBJ)
	}
	out := make([]float32, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", fields[i], ErrInvalidOBJ)
		}
		out[i] = float32(f)
	}
	return out, nil
}
