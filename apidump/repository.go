package apidump

import (
	"github.com/teranos/rbxtypes/errors"
)

// Repository is an indexed, read-only view of the API dump
type Repository struct {
	byName map[string]*Class
	order  []string
}

// NewRepository indexes classes by name, remembering dump order.
// A later duplicate replaces an earlier one but keeps the first position.
func NewRepository(classes []Class) *Repository {
	r := &Repository{
		byName: make(map[string]*Class, len(classes)),
		order:  make([]string, 0, len(classes)),
	}
	for i := range classes {
		class := classes[i]
		if _, seen := r.byName[class.Name]; !seen {
			r.order = append(r.order, class.Name)
		}
		r.byName[class.Name] = &class
	}
	return r
}

// ByName returns the class record for name
func (r *Repository) ByName(name string) (*Class, error) {
	class, ok := r.byName[name]
	if !ok {
		return nil, errors.NewUnknownClassError(name)
	}
	return class, nil
}

// Has reports whether the dump defines name
func (r *Repository) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Names returns every class name in dump order
func (r *Repository) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of classes
func (r *Repository) Len() int {
	return len(r.order)
}

// Ancestry returns the superclass chain of name, leaf first and root last.
// A class n steps below the root yields n+1 records. A chain that revisits a
// class fails with ErrCyclicHierarchy; a dangling superclass reference fails
// with ErrUnknownClass.
func (r *Repository) Ancestry(name string) ([]*Class, error) {
	class, err := r.ByName(name)
	if err != nil {
		return nil, err
	}

	visited := make(map[string]bool)
	var chain []*Class
	for {
		if visited[class.Name] {
			return nil, errors.Wrapf(errors.ErrCyclicHierarchy, "%q revisited while walking up from %q", class.Name, name)
		}
		visited[class.Name] = true
		chain = append(chain, class)

		if class.IsRoot() {
			return chain, nil
		}

		parent, err := r.ByName(class.Superclass)
		if err != nil {
			return nil, errors.Wrapf(err, "superclass of %q", class.Name)
		}
		class = parent
	}
}
