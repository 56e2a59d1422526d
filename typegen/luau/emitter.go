package luau

import (
	"strings"

	"github.com/teranos/rbxtypes/apidump"
)

// Entry is one field of a generated class record type
type Entry struct {
	Name string
	Type string
}

// Emitter collects the emittable members of a class and its ancestors
type Emitter struct {
	repo     *apidump.Repository
	overlay  *apidump.Overlay
	resolver *Resolver
	format   Format
}

// NewEmitter creates an emitter over an indexed dump and corrections overlay
func NewEmitter(repo *apidump.Repository, overlay *apidump.Overlay, resolver *Resolver, format Format) *Emitter {
	return &Emitter{
		repo:     repo,
		overlay:  overlay,
		resolver: resolver,
		format:   format,
	}
}

// Emit returns the entries of class followed by those of each ancestor up to
// the root. Each call returns a new slice.
func (e *Emitter) Emit(class *apidump.Class) ([]Entry, error) {
	chain, err := e.repo.Ancestry(class.Name)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, c := range chain {
		entries = append(entries, e.EmitOwn(c)...)
	}
	return entries, nil
}

// EmitOwn returns the entries for the class's own members, in declaration order
func (e *Emitter) EmitOwn(class *apidump.Class) []Entry {
	var entries []Entry
	for i := range class.Members {
		member := &class.Members[i]
		if !Emittable(member) {
			continue
		}

		switch member.MemberType {
		case apidump.MemberProperty:
			entries = append(entries, Entry{
				Name: member.Name,
				Type: "p<" + e.resolver.Resolve(*member.ValueType) + ">",
			})
		case apidump.MemberEvent:
			entries = append(entries, Entry{
				Name: member.Name,
				Type: e.eventType(class.Name, member),
			})
		}
	}
	return entries
}

// Emittable reports whether a member produces an entry. It depends only on
// the member's own tags, security and deprecation marker.
func Emittable(m *apidump.Member) bool {
	if m.Tags.HasAny(apidump.TagReadOnly, apidump.TagDeprecated, apidump.TagNotScriptable) {
		return false
	}

	switch m.MemberType {
	case apidump.MemberProperty:
		return m.Security.Write == apidump.SecurityNone && !m.IsDeprecatedMarked() && m.ValueType != nil
	case apidump.MemberEvent:
		return m.Security.IsPublic()
	default:
		return false
	}
}

// eventType renders e<(params) -> ()>, merging parameter corrections
func (e *Emitter) eventType(className string, member *apidump.Member) string {
	correction, _ := e.overlay.MemberOverride(className, member.Name)

	params := make([]string, 0, len(member.Parameters))
	for _, p := range member.Parameters {
		params = append(params, e.parameter(correction, p))
	}

	sp := e.format.Space()
	return "e<(" + strings.Join(params, ","+sp) + ")" + sp + "->" + sp + "()>"
}

// parameter renders one callback parameter. A correction wins over the dump;
// an uncorrected Tuple becomes a trailing ...any.
func (e *Emitter) parameter(correction *apidump.CorrectionMember, p apidump.Parameter) string {
	sp := e.format.Space()

	if override, ok := e.overlay.ParameterOverride(correction, p.Name); ok {
		switch {
		case override.Type.Name != "":
			return p.Name + ":" + sp + override.Type.Name
		case override.Type.Generic != "":
			return p.Name + ":" + sp + "{" + override.Type.Generic + "}"
		}
	}

	resolved := e.resolver.Resolve(p.Type)
	if resolved == TupleType {
		return "...any"
	}
	return p.Name + ":" + sp + resolved
}
