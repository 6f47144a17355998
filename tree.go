package randomizer

import "slices"

// Composites builds depth-bounded trees. Every node is an Object built from
// tmpl whose childField holds its children; branches is resolved again at
// each node. Nodes at the last level get an empty child list.
func Composites(s *Session, branches Resolvable[int], depth int, childField string, tmpl Template) (Factory[Object], error) {
	if err := checkCount("composites", "branches", branches); err != nil {
		return nil, err
	}
	if childField == "" {
		return nil, invalid("composites", "childField", "must be a non-empty string")
	}
	if err := tmpl.validate("composites"); err != nil {
		return nil, err
	}
	if slices.ContainsFunc(tmpl, func(f Field) bool { return f.Key == childField }) {
		return nil, invalid("composites", childField, "child field collides with a template key")
	}
	return compositeLevel(s, branches, depth, childField, slices.Clone(tmpl)), nil
}

func compositeLevel(s *Session, branches Resolvable[int], depth int, childField string, tmpl Template) Factory[Object] {
	base := objectsOf(s, tmpl)
	if depth <= 0 {
		return func() Object {
			return scoped(s, func() Object {
				node := base()
				node.Set(childField, []Object{})
				return node
			})
		}
	}

	children := arraysOf(s, branches, compositeLevel(s, branches, depth-1, childField, tmpl))
	return func() Object {
		return scoped(s, func() Object {
			node := base()
			node.Set(childField, children())
			return node
		})
	}
}
