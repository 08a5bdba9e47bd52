package alembic

// WalkFunc is called for each object during traversal.
// obj is nil when err is non-nil.
// Return nil to continue walking, SkipChildren to skip the object's
// descendants, or any other error to stop.
type WalkFunc func(obj *Object, err error) error

// SkipChildren can be returned from WalkFunc to skip an object's descendants.
var SkipChildren = &walkSkipError{}

type walkSkipError struct{}

func (e *walkSkipError) Error() string { return "skip children" }

// ErrStopWalk can be returned from a walk callback to stop walking without an error.
var ErrStopWalk = &walkStopError{}

type walkStopError struct{}

func (e *walkStopError) Error() string { return "walk stopped" }

// IsStopWalk returns true if the error is ErrStopWalk.
func IsStopWalk(err error) bool {
	_, ok := err.(*walkStopError)
	return ok
}

// Walk traverses o and its descendants depth first, parents before children.
//
// Example:
//
//	Walk(top, func(obj *Object, err error) error {
//	    if err != nil {
//	        return err // or skip: return nil
//	    }
//	    fmt.Println(obj.FullName(), obj.NumChildren())
//	    return nil
//	})
func Walk(o *Object, fn WalkFunc) error {
	err := walkObject(o, fn)
	if IsStopWalk(err) {
		return nil
	}
	return err
}

func walkObject(o *Object, fn WalkFunc) error {
	if err := fn(o, nil); err != nil {
		if err == SkipChildren {
			return nil
		}
		return err
	}

	for i := 0; i < o.NumChildren(); i++ {
		child, err := o.Child(i)
		if err != nil {
			if err := fn(nil, err); err != nil && err != SkipChildren {
				return err
			}
			continue
		}
		if err := walkObject(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// PropertyInfo describes a property during walking.
type PropertyInfo struct {
	// Path is the full property path (e.g., "/cube@.geom/P")
	Path string

	// Object is the object owning the property
	Object *Object

	// Header describes the property
	Header *PropertyHeader

	// Property is the opened property (nil on error)
	Property Property

	// Depth is the nesting level below the object's root compound
	Depth int

	// Err contains any error from opening the property
	Err error
}

// WalkPropertiesFunc is the callback function type for WalkProperties.
// Return nil to continue walking, or an error to stop.
type WalkPropertiesFunc func(info PropertyInfo) error

// WalkProperties walks every property of every object below o, descending
// into compound properties.
func WalkProperties(o *Object, fn WalkPropertiesFunc) error {
	err := Walk(o, func(obj *Object, err error) error {
		if err != nil {
			return err
		}
		return walkCompound(obj, obj.Properties(), 0, fn)
	})
	if IsStopWalk(err) {
		return nil
	}
	return err
}

func walkCompound(obj *Object, c *CompoundProperty, depth int, fn WalkPropertiesFunc) error {
	for i, h := range c.PropertyHeaders() {
		p, err := c.PropertyAt(i)
		info := PropertyInfo{
			Path:     joinPropertyPath(c.Path(), h.Name),
			Object:   obj,
			Header:   h,
			Property: p,
			Depth:    depth,
			Err:      err,
		}
		if err := fn(info); err != nil {
			return err
		}

		if sub, ok := p.(*CompoundProperty); ok {
			if err := walkCompound(obj, sub, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
