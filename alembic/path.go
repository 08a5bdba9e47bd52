package alembic

import (
	"fmt"
	"strings"
)

// PropertySeparator separates the object path from the property path.
const PropertySeparator = "@"

// ParsePropertyPath splits a property path into object path and property names.
// Path format: /object/child@compound/property
//
// Examples:
//   - "/@.childBnds" -> objectPath="/", props=[".childBnds"]
//   - "/cube@.geom/P" -> objectPath="/cube", props=[".geom", "P"]
//
// Returns an error if the path is missing the @ separator or names no property.
func ParsePropertyPath(path string) (objectPath string, props []string, err error) {
	if path == "" {
		return "", nil, fmt.Errorf("empty property path")
	}

	at := strings.LastIndex(path, PropertySeparator)
	if at == -1 {
		return "", nil, fmt.Errorf("property path must contain '%s' separator: %s", PropertySeparator, path)
	}

	objectPath = CleanPath(path[:at])
	props = SplitPath(path[at+1:])
	if len(props) == 0 {
		return "", nil, fmt.Errorf("property name cannot be empty: %s", path)
	}
	return objectPath, props, nil
}

// joinPropertyPath appends a property name to a compound property path.
// Root compounds have paths ending in the separator.
func joinPropertyPath(parent, name string) string {
	if strings.HasSuffix(parent, PropertySeparator) {
		return parent + name
	}
	return parent + "/" + name
}

// joinPath appends an object name to an object path.
func joinPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

// SplitPath splits a path into its components.
// Leading and trailing slashes are handled, empty components are removed.
//
// Examples:
//   - "/" -> []string{}
//   - "/foo" -> []string{"foo"}
//   - "/foo/bar" -> []string{"foo", "bar"}
func SplitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CleanPath normalizes a path, ensuring it starts with "/" and has no trailing slash.
func CleanPath(path string) string {
	parts := SplitPath(path)
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

// OpenObject reads the object at a slash-separated path from the top object.
func (a *Archive) OpenObject(path string) (*Object, error) {
	top, err := a.Top()
	if err != nil {
		return nil, err
	}
	return top.OpenObject(path)
}

// OpenObject reads a descendant by path relative to o.
func (o *Object) OpenObject(path string) (*Object, error) {
	cur := o
	for _, name := range SplitPath(path) {
		next, err := cur.ChildByName(name)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// OpenProperty reads the property at a path such as "/cube@.geom/P".
func (a *Archive) OpenProperty(path string) (Property, error) {
	objectPath, props, err := ParsePropertyPath(path)
	if err != nil {
		return nil, err
	}
	obj, err := a.OpenObject(objectPath)
	if err != nil {
		return nil, err
	}

	cur := obj.Properties()
	for _, name := range props[:len(props)-1] {
		if cur, err = cur.Compound(name); err != nil {
			return nil, err
		}
	}
	return cur.Property(props[len(props)-1])
}
