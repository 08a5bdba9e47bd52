package alembic

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/robert-malhotra/go-alembic/internal/message"
	"github.com/robert-malhotra/go-alembic/internal/ogawa"
)

// ObjectHeader describes an object without reading its contents.
type ObjectHeader struct {
	Name     string
	FullName string
	Metadata Metadata
}

// Object is a named node of the hierarchy. It owns one compound property
// and any number of child objects.
type Object struct {
	archive  *Archive
	group    *ogawa.Group
	header   ObjectHeader
	children []ObjectHeader
	byName   map[string]int
	props    *CompoundProperty
}

func newObject(a *Archive, ref ogawa.Ref, h ObjectHeader) (*Object, error) {
	g, err := a.store.ResolveGroup(ref)
	if err != nil {
		return nil, fmt.Errorf("reading object %s: %w", h.FullName, err)
	}

	o := &Object{
		archive: a,
		group:   g,
		header:  h,
	}

	propsRef := ogawa.GroupRef(0)
	if g.Len() > 0 && g.IsGroup(0) {
		propsRef, _ = g.Child(0)
	}
	propsGroup, err := a.store.ResolveGroup(propsRef)
	if err != nil {
		return nil, fmt.Errorf("reading properties of %s: %w", h.FullName, err)
	}
	o.props, err = newCompoundProperty(a, propsGroup, &PropertyHeader{Kind: KindCompound}, h.FullName+PropertySeparator)
	if err != nil {
		return nil, fmt.Errorf("reading properties of %s: %w", h.FullName, err)
	}

	if err := o.readChildHeaders(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Object) readChildHeaders() error {
	g := o.group
	last := g.Len() - 1
	if last < 1 || !g.IsData(last) {
		return nil
	}

	data, err := o.archive.store.ChildData(g, last)
	if err != nil {
		return fmt.Errorf("reading child headers of %s: %w", o.header.FullName, err)
	}
	headers, err := message.ParseObjectHeaders(data)
	if err != nil {
		return fmt.Errorf("decoding child headers of %s: %w", o.header.FullName, err)
	}
	if want := g.Len() - 2; len(headers) != want {
		return fmt.Errorf("%w: object %s lists %d children but stores %d",
			ErrInvalidData, o.header.FullName, len(headers), want)
	}

	o.children = make([]ObjectHeader, len(headers))
	o.byName = make(map[string]int, len(headers))
	for i, mh := range headers {
		md, err := o.archive.metadataAt(mh.MetadataIndex, mh.Metadata)
		if err != nil {
			return fmt.Errorf("metadata of %s: %w", mh.Name, err)
		}
		if _, dup := o.byName[mh.Name]; dup {
			return fmt.Errorf("%w: object %s has two children named %q", ErrInvalidData, o.header.FullName, mh.Name)
		}
		o.children[i] = ObjectHeader{
			Name:     mh.Name,
			FullName: joinPath(o.header.FullName, mh.Name),
			Metadata: md,
		}
		o.byName[mh.Name] = i
	}
	return nil
}

// Name returns the object name.
func (o *Object) Name() string {
	return o.header.Name
}

// FullName returns the slash-separated path from the top object.
func (o *Object) FullName() string {
	return o.header.FullName
}

// Metadata returns the object metadata.
func (o *Object) Metadata() Metadata {
	return o.header.Metadata
}

// Header returns the object's own header.
func (o *Object) Header() ObjectHeader {
	return o.header
}

// Archive returns the archive the object was read from.
func (o *Object) Archive() *Archive {
	return o.archive
}

// Properties returns the object's compound property.
func (o *Object) Properties() *CompoundProperty {
	return o.props
}

// NumChildren returns the number of child objects.
func (o *Object) NumChildren() int {
	return len(o.children)
}

// ChildHeader returns the header of child i.
func (o *Object) ChildHeader(i int) (ObjectHeader, error) {
	if i < 0 || i >= len(o.children) {
		return ObjectHeader{}, fmt.Errorf("%w: child %d of %s with %d children",
			ErrObjectNotFound, i, o.header.FullName, len(o.children))
	}
	return o.children[i], nil
}

// ChildHeaders returns the headers of every child.
func (o *Object) ChildHeaders() []ObjectHeader {
	return o.children
}

// ChildNames returns the child names in stored order.
func (o *Object) ChildNames() []string {
	return lo.Map(o.children, func(h ObjectHeader, _ int) string { return h.Name })
}

// HasChild reports whether a child with the given name exists.
func (o *Object) HasChild(name string) bool {
	_, ok := o.byName[name]
	return ok
}

// Child reads child object i.
func (o *Object) Child(i int) (*Object, error) {
	if err := o.archive.checkOpen(); err != nil {
		return nil, err
	}
	h, err := o.ChildHeader(i)
	if err != nil {
		return nil, err
	}
	ref, err := o.group.Child(i + 1)
	if err != nil {
		return nil, err
	}
	if !ref.IsGroup() {
		return nil, fmt.Errorf("%w: child %s is %s", ErrInvalidData, h.FullName, ref)
	}
	return newObject(o.archive, ref, h)
}

// ChildByName reads the child object with the given name.
func (o *Object) ChildByName(name string) (*Object, error) {
	i, ok := o.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrObjectNotFound, name, o.header.FullName)
	}
	return o.Child(i)
}
