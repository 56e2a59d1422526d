package luau

import (
	"github.com/teranos/rbxtypes/apidump"
)

// TupleType is the pseudo-type of variadic, variably-typed argument lists
const TupleType = "Tuple"

// DefaultAliases maps dump primitive and data-type names to Luau types.
// Union aliases follow the format's spacing.
func DefaultAliases(f Format) map[string]string {
	sp := f.Space()
	return map[string]string{
		"int64":                   "number",
		"int":                     "number",
		"float":                   "number",
		"double":                  "number",
		"bool":                    "boolean",
		"Content":                 "string",
		"string":                  "string" + sp + "|" + sp + "number",
		"OptionalCoordinateFrame": "CFrame?",
		"BinaryString":            "string",
	}
}

// Resolver maps value-type descriptors to Luau type expressions
type Resolver struct {
	aliases map[string]string
}

// NewResolver builds a resolver from DefaultAliases for f with overrides
// layered on top. Overrides are used verbatim.
func NewResolver(f Format, overrides map[string]string) *Resolver {
	aliases := DefaultAliases(f)
	for k, v := range overrides {
		aliases[k] = v
	}
	return &Resolver{aliases: aliases}
}

// Resolve returns the Luau type for a value type. Pure and total.
//
//	Enum      -> Enum.<Name>
//	Class     -> <Name>?   (instances may be absent)
//	Primitive -> alias, else <Name>
//	DataType  -> alias, else <Name>
//	Group     -> <Name>
func (r *Resolver) Resolve(vt apidump.ValueType) string {
	switch vt.Category {
	case apidump.CategoryEnum:
		return "Enum." + vt.Name
	case apidump.CategoryClass:
		return vt.Name + "?"
	case apidump.CategoryPrimitive, apidump.CategoryDataType:
		if alias, ok := r.aliases[vt.Name]; ok {
			return alias
		}
		return vt.Name
	default:
		return vt.Name
	}
}
