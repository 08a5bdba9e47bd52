// Package geom reads the geometry schemas layered on top of Alembic
// properties: the shared bounds of GeomBase, transforms, polygon meshes and
// geometry parameters.
//
// Schemas are opened from the compound property that holds them, usually
// the ".geom" or ".xform" child of an object's root compound:
//
//	mesh, err := geom.NewPolyMesh(obj.Properties(), ".geom")
//	if err != nil {
//	    return err
//	}
//	s, err := mesh.Sample(0)
package geom
