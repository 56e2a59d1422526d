// Package apidump models the Roblox API dump and the corrections overlay,
// and indexes them for the generator.
package apidump

import (
	"encoding/json"

	"github.com/teranos/rbxtypes/errors"
)

// RootSuperclass is the sentinel superclass of the hierarchy root
const RootSuperclass = "<<<ROOT>>>"

// SecurityNone marks a member as fully public
const SecurityNone = "None"

// Member kinds
const (
	MemberProperty = "Property"
	MemberEvent    = "Event"
	MemberFunction = "Function"
	MemberCallback = "Callback"
)

// Value type categories
const (
	CategoryEnum      = "Enum"
	CategoryClass     = "Class"
	CategoryPrimitive = "Primitive"
	CategoryDataType  = "DataType"
	CategoryGroup     = "Group"
)

// Tags that suppress emission or instantiation
const (
	TagReadOnly      = "ReadOnly"
	TagDeprecated    = "Deprecated"
	TagNotScriptable = "NotScriptable"
	TagNotCreatable  = "NotCreatable"
)

// Dump is the top-level API dump document
type Dump struct {
	Version int     `json:"Version"`
	Classes []Class `json:"Classes"`
}

// Class is one class record of the dump
type Class struct {
	Name           string   `json:"Name"`
	Superclass     string   `json:"Superclass"`
	MemoryCategory string   `json:"MemoryCategory,omitempty"`
	Members        []Member `json:"Members"`
	Tags           Tags     `json:"Tags,omitempty"`
}

// IsRoot reports whether the class sits directly under the root sentinel
func (c *Class) IsRoot() bool {
	return c.Superclass == RootSuperclass || c.Superclass == ""
}

// Member is a property, event, function or callback of a class
type Member struct {
	Name       string      `json:"Name"`
	MemberType string      `json:"MemberType"`
	Tags       Tags        `json:"Tags,omitempty"`
	Security   Security    `json:"Security"`
	ValueType  *ValueType  `json:"ValueType,omitempty"`
	Parameters []Parameter `json:"Parameters,omitempty"`

	// Deprecated is set on a handful of members alongside or instead of the
	// Deprecated tag. Its presence alone matters.
	Deprecated json.RawMessage `json:"Deprecated,omitempty"`
}

// IsDeprecatedMarked reports whether the member carries a Deprecated field
func (m *Member) IsDeprecatedMarked() bool {
	return len(m.Deprecated) > 0 && string(m.Deprecated) != "null"
}

// ValueType describes the type of a property or parameter
type ValueType struct {
	Category string `json:"Category"`
	Name     string `json:"Name"`
}

// Parameter is one parameter of an event, function or callback
type Parameter struct {
	Name    string    `json:"Name"`
	Type    ValueType `json:"Type"`
	Default *string   `json:"Default,omitempty"`
}

// Security holds a member's read and write visibility.
// Properties carry {"Read": ..., "Write": ...}; other members carry one string
// that applies to both.
type Security struct {
	Read  string `json:"Read"`
	Write string `json:"Write"`
}

// IsPublic reports whether both read and write are unrestricted
func (s Security) IsPublic() bool {
	return s.Read == SecurityNone && s.Write == SecurityNone
}

// UnmarshalJSON accepts either a string or a {Read, Write} object
func (s *Security) UnmarshalJSON(data []byte) error {
	var level string
	if err := json.Unmarshal(data, &level); err == nil {
		s.Read, s.Write = level, level
		return nil
	}

	type plain Security
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.Wrap(err, "security must be a string or a {Read, Write} object")
	}
	*s = Security(p)
	return nil
}

// Tags is a set of string tags. The dump mixes string tags with object tags
// (e.g. {"PreferredDescriptor": ...}); only the strings are kept.
type Tags []string

// Has reports whether the tag is present
func (t Tags) Has(tag string) bool {
	for _, x := range t {
		if x == tag {
			return true
		}
	}
	return false
}

// HasAny reports whether any of the tags is present
func (t Tags) HasAny(tags ...string) bool {
	for _, tag := range tags {
		if t.Has(tag) {
			return true
		}
	}
	return false
}

// UnmarshalJSON keeps string entries and drops object entries
func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "tags must be an array")
	}

	tags := make(Tags, 0, len(raw))
	for _, entry := range raw {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			tags = append(tags, s)
		}
	}
	*t = tags
	return nil
}
