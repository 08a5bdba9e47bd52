package geom

import "github.com/robert-malhotra/go-alembic/alembic"

// Schema names found under the "schema" metadata key.
const (
	PolyMeshSchema = "AbcGeom_PolyMesh_v1"
	XFormSchema    = "AbcGeom_Xform_v3"
)

// SchemaOf returns the schema named by md, or "" when there is none.
func SchemaOf(md alembic.Metadata) string {
	s, _ := md.Get("schema")
	return s
}

// GeometryScope tells how the values of a geometry parameter map onto the
// primitive.
type GeometryScope uint8

const (
	// ScopeConstant holds one value for the whole primitive.
	ScopeConstant GeometryScope = iota
	// ScopeUniform holds one value per face.
	ScopeUniform
	// ScopeVarying holds one value per vertex, interpolated linearly.
	ScopeVarying
	// ScopeVertex holds one value per vertex.
	ScopeVertex
	// ScopeFaceVarying holds one value per face vertex.
	ScopeFaceVarying

	ScopeUnknown GeometryScope = 127
)

func (s GeometryScope) String() string {
	switch s {
	case ScopeConstant:
		return "constant"
	case ScopeUniform:
		return "uniform"
	case ScopeVarying:
		return "varying"
	case ScopeVertex:
		return "vertex"
	case ScopeFaceVarying:
		return "facevarying"
	default:
		return "unknown"
	}
}

// ScopeOf reads the "geoScope" metadata key.
func ScopeOf(md alembic.Metadata) GeometryScope {
	v, ok := md.Get("geoScope")
	if !ok {
		return ScopeUnknown
	}
	switch v {
	case "con", "":
		return ScopeConstant
	case "uni":
		return ScopeUniform
	case "var":
		return ScopeVarying
	case "vtx":
		return ScopeVertex
	case "fvr":
		return ScopeFaceVarying
	default:
		return ScopeUnknown
	}
}
