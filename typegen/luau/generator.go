package luau

import (
	"fmt"
	"strings"

	"github.com/teranos/rbxtypes/apidump"
)

// Options configures a Generator
type Options struct {
	Format      Format
	Aliases     map[string]string // layered over DefaultAliases
	TypesModule string            // module re-exported by init, e.g. roblox_types
	TypesAlias  string            // local name of the types module inside create, e.g. r
}

// Generator produces the types module and the fragments patched into the
// create and init documents
type Generator struct {
	repo    *apidump.Repository
	emitter *Emitter
	opts    Options
}

// NewGenerator wires a resolver and emitter over the indexed inputs
func NewGenerator(repo *apidump.Repository, overlay *apidump.Overlay, opts Options) *Generator {
	resolver := NewResolver(opts.Format, opts.Aliases)
	return &Generator{
		repo:    repo,
		emitter: NewEmitter(repo, overlay, resolver, opts.Format),
		opts:    opts,
	}
}

// Emitter returns the generator's member emitter
func (g *Generator) Emitter() *Emitter {
	return g.emitter
}

// Select resolves requested class names in order, dropping NotCreatable
// classes and repeated names. An unknown name is fatal.
func (g *Generator) Select(names []string) ([]*apidump.Class, error) {
	seen := make(map[string]bool, len(names))
	classes := make([]*apidump.Class, 0, len(names))
	for _, name := range names {
		class, err := g.repo.ByName(name)
		if err != nil {
			return nil, err
		}
		if seen[name] || class.Tags.Has(apidump.TagNotCreatable) {
			continue
		}
		seen[name] = true
		classes = append(classes, class)
	}
	return classes, nil
}

// SelectAll selects every creatable class in dump order
func (g *Generator) SelectAll() ([]*apidump.Class, error) {
	return g.Select(g.repo.Names())
}

// TypeName is the generated record type name for a class
func TypeName(className string) string {
	return "v" + className
}

// preamble declares the helper type constructors used by every class block
func (g *Generator) preamble() []string {
	sp := g.opts.Format.Space()
	return []string{
		"type p<T>" + sp + "=" + sp + "T?" + sp + "|" + sp + "(()" + sp + "->" + sp + "T)",
		"type e<T" + sp + "=" + sp + "()" + sp + "->" + sp + "()>" + sp + "=" + sp + "T?",
		"type a" + sp + "=" + sp + "{priority:" + sp + "number," + sp + "callback:" + sp + "(Instance)" + sp + "->" + sp + "()}",
		"type recursive<T>" + sp + "=" + sp + "T" + sp + "|" + sp + "{recursive<T>}",
		"type c<T>" + sp + "=" + sp + "a" + sp + "|" + sp + "recursive<T>" + sp + "|" + sp + "(()" + sp + "->" + sp + "recursive<T>)",
		"type ContentId" + sp + "=" + sp + "string",
		"type Dictionary" + sp + "=" + sp + "{[string]:" + sp + "any}",
		"type Array" + sp + "=" + sp + "{any}",
	}
}

// postamble closes the types module
func (g *Generator) postamble() []string {
	return []string{"return" + g.opts.Format.Space() + "{}"}
}

// ClassBlock renders the exported record type for one class: its members,
// its ancestors' members and the indexed-children slot
func (g *Generator) ClassBlock(class *apidump.Class) (string, error) {
	entries, err := g.emitter.Emit(class)
	if err != nil {
		return "", err
	}

	f := g.opts.Format
	sp := f.Space()
	name := TypeName(class.Name)

	b := newBuilder(f)
	b.write("export type ", name, sp, "=", sp, "{", f.OptionalNewLine())
	for _, entry := range entries {
		b.field(entry.Name, entry.Type)
	}
	b.write(f.Indent(), "[number]:", sp, "c<", name, ">", f.NewLine())
	b.write("}", f.NewLine())
	return b.String(), nil
}

// TypesDocument renders the complete types module for classes
func (g *Generator) TypesDocument(classes []*apidump.Class) (string, error) {
	nl := g.opts.Format.NewLine()

	b := newBuilder(g.opts.Format)
	b.write(strings.Join(g.preamble(), nl), nl)
	for _, class := range classes {
		block, err := g.ClassBlock(class)
		if err != nil {
			return "", err
		}
		b.write(block)
	}
	b.write(strings.Join(g.postamble(), nl))
	return b.String(), nil
}

// CreateClauses renders one intersection clause per class for the create
// function signature. Each fragment is a full line.
func (g *Generator) CreateClauses(classes []*apidump.Class) []string {
	clauses := make([]string, 0, len(classes))
	for i, class := range classes {
		prefix := ""
		if i > 0 {
			prefix = "&"
		}
		clauses = append(clauses, fmt.Sprintf("%s\t( (class: %q) -> (%s.%s) -> %s )\n",
			prefix, class.Name, g.opts.TypesAlias, TypeName(class.Name), class.Name))
	}
	return clauses
}

// InitReexports renders one type re-export line per class
func (g *Generator) InitReexports(classes []*apidump.Class) []string {
	lines := make([]string, 0, len(classes))
	for _, class := range classes {
		name := TypeName(class.Name)
		lines = append(lines, fmt.Sprintf("export type %s = %s.%s\n", name, g.opts.TypesModule, name))
	}
	return lines
}
