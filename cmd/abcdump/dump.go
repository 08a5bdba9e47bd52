package main

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"

	"github.com/robert-malhotra/go-alembic/alembic"
	"github.com/robert-malhotra/go-alembic/alembic/geom"
)

type dumpOptions struct {
	properties bool
	schemas    bool
	maxDepth   int
}

type dumper struct {
	w    io.Writer
	opts dumpOptions
	errs error
}

// dump writes a description of a to w. Objects and properties that fail to
// decode are reported inline and collected into the returned error.
func dump(w io.Writer, a *alembic.Archive, opts dumpOptions) error {
	d := &dumper{w: w, opts: opts}

	fmt.Fprintf(w, "=== %s ===\n", a.Path())
	fmt.Fprintf(w, "Archive version: %d\n", a.ArchiveVersion())
	fmt.Fprintf(w, "Library version: %d\n", a.LibraryVersion())
	if md := a.Metadata(); md.Len() > 0 {
		fmt.Fprintf(w, "Metadata: %s\n", md)
	}
	for i, ts := range a.TimeSamplings() {
		fmt.Fprintf(w, "Time sampling %d: %s, %d stored times, max sample %d\n",
			i, ts.Type(), ts.NumStoredTimes(), ts.MaxSample())
	}
	fmt.Fprintln(w)

	top, err := a.Top()
	if err != nil {
		return err
	}

	err = alembic.Walk(top, func(obj *alembic.Object, err error) error {
		if err != nil {
			d.fail("  ", err)
			return nil
		}

		depth := len(alembic.SplitPath(obj.FullName()))
		indent := strings.Repeat("  ", depth)
		d.object(obj, indent)
		if depth >= d.opts.maxDepth && obj.NumChildren() > 0 {
			fmt.Fprintf(w, "%s  [MAX DEPTH REACHED]\n", indent)
			return alembic.SkipChildren
		}
		return nil
	})
	return multierr.Append(d.errs, err)
}

func (d *dumper) fail(indent string, err error) {
	fmt.Fprintf(d.w, "%sERROR: %v\n", indent, err)
	d.errs = multierr.Append(d.errs, err)
}

func (d *dumper) object(obj *alembic.Object, indent string) {
	schema := geom.SchemaOf(obj.Metadata())
	if schema != "" {
		fmt.Fprintf(d.w, "%sObject %q [%s]\n", indent, obj.FullName(), schema)
	} else {
		fmt.Fprintf(d.w, "%sObject %q\n", indent, obj.FullName())
	}
	fmt.Fprintf(d.w, "%s  Children: %d\n", indent, obj.NumChildren())

	if d.opts.schemas {
		d.schema(obj, schema, indent+"  ")
	}
	if d.opts.properties {
		d.compound(obj.Properties(), indent+"  ")
	}
}

func (d *dumper) schema(obj *alembic.Object, schema, indent string) {
	props := obj.Properties()
	switch schema {
	case geom.XFormSchema:
		x, err := geom.NewXForm(props, ".xform")
		if err != nil {
			d.fail(indent, err)
			return
		}
		fmt.Fprintf(d.w, "%sXForm: %d samples, ops %v\n", indent, x.SampleCount(), x.Ops())
		m, err := x.Matrix(0)
		if err != nil {
			d.fail(indent, err)
			return
		}
		fmt.Fprintf(d.w, "%s  Translation: %v\n", indent, m.Col(3).Vec3())

	case geom.PolyMeshSchema:
		m, err := geom.NewPolyMesh(props, ".geom")
		if err != nil {
			d.fail(indent, err)
			return
		}
		fmt.Fprintf(d.w, "%sPolyMesh: %d samples, %s topology\n", indent, m.SampleCount(), m.TopologyVariance())
		s, err := m.Sample(0)
		if err != nil {
			d.fail(indent, err)
			return
		}
		fmt.Fprintf(d.w, "%s  Points: %d, Faces: %d, Bounds: %v\n", indent, len(s.Positions), s.NumFaces(), s.Bounds.Array())
		if m.UVs != nil {
			fmt.Fprintf(d.w, "%s  UVs: %s, indexed %t\n", indent, m.UVs.Scope(), m.UVs.IsIndexed())
		}
	}
}

func (d *dumper) compound(c *alembic.CompoundProperty, indent string) {
	for i, h := range c.PropertyHeaders() {
		p, err := c.PropertyAt(i)
		if err != nil {
			d.fail(indent, err)
			continue
		}

		switch p := p.(type) {
		case *alembic.CompoundProperty:
			fmt.Fprintf(d.w, "%sCompound %q: %d properties\n", indent, h.Name, p.NumProperties())
			d.compound(p, indent+"  ")
		case *alembic.ScalarProperty:
			fmt.Fprintf(d.w, "%sScalar %q: %s, %d samples%s\n", indent, h.Name, h.DataType, h.SampleCount, constant(h))
		case *alembic.ArrayProperty:
			fmt.Fprintf(d.w, "%sArray %q: %s, %d samples%s\n", indent, h.Name, h.DataType, h.SampleCount, constant(h))
		}
	}
}

func constant(h *alembic.PropertyHeader) string {
	if h.IsConstant() {
		return " (constant)"
	}
	return ""
}
