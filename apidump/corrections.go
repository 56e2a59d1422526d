package apidump

// Corrections is the top-level corrections document
type Corrections struct {
	Classes []CorrectionClass `json:"Classes" toml:"Classes"`
}

// CorrectionClass patches members of one class
type CorrectionClass struct {
	Name    string             `json:"Name" toml:"Name"`
	Members []CorrectionMember `json:"Members" toml:"Members"`
}

// CorrectionMember patches parameters of one member
type CorrectionMember struct {
	Name       string                `json:"Name" toml:"Name"`
	Parameters []CorrectionParameter `json:"Parameters" toml:"Parameters"`

	params map[string]*CorrectionParameter
}

// CorrectionParameter overrides the type of one parameter
type CorrectionParameter struct {
	Name string         `json:"Name" toml:"Name"`
	Type CorrectionType `json:"Type" toml:"Type"`
}

// CorrectionType holds either a literal Luau type name or a generic element
// type rendered as an array type ({Generic}). Name wins when both are set.
type CorrectionType struct {
	Name    string `json:"Name,omitempty" toml:"Name,omitempty"`
	Generic string `json:"Generic,omitempty" toml:"Generic,omitempty"`
}

// Overlay is an indexed, read-only view of the corrections document:
// class name → member name → parameter name → override.
type Overlay struct {
	members map[string]map[string]*CorrectionMember
}

// NewOverlay indexes correction classes. Later duplicates win.
func NewOverlay(classes []CorrectionClass) *Overlay {
	o := &Overlay{members: make(map[string]map[string]*CorrectionMember, len(classes))}
	for _, class := range classes {
		for _, member := range class.Members {
			o.put(class.Name, member)
		}
	}
	return o
}

func (o *Overlay) put(className string, member CorrectionMember) {
	byMember, ok := o.members[className]
	if !ok {
		byMember = make(map[string]*CorrectionMember)
		o.members[className] = byMember
	}

	m := &CorrectionMember{
		Name:       member.Name,
		Parameters: append([]CorrectionParameter(nil), member.Parameters...),
		params:     make(map[string]*CorrectionParameter, len(member.Parameters)),
	}
	for i := range m.Parameters {
		m.params[m.Parameters[i].Name] = &m.Parameters[i]
	}
	byMember[member.Name] = m
}

// MemberOverride returns the corrections for a member, if any
func (o *Overlay) MemberOverride(className, memberName string) (*CorrectionMember, bool) {
	if o == nil {
		return nil, false
	}
	m, ok := o.members[className][memberName]
	return m, ok
}

// ParameterOverride returns the correction for one parameter of a corrected
// member. A nil member is a normal miss.
func (o *Overlay) ParameterOverride(member *CorrectionMember, paramName string) (*CorrectionParameter, bool) {
	if member == nil {
		return nil, false
	}
	p, ok := member.params[paramName]
	return p, ok
}

// Merge returns a new overlay holding o's entries with other's layered on top.
// Parameters are merged per member: other wins for parameters both define.
func (o *Overlay) Merge(other *Overlay) *Overlay {
	merged := &Overlay{members: make(map[string]map[string]*CorrectionMember)}

	for _, src := range []*Overlay{o, other} {
		if src == nil {
			continue
		}
		for className, byMember := range src.members {
			for memberName, member := range byMember {
				existing, ok := merged.MemberOverride(className, memberName)
				if !ok {
					merged.put(className, *member)
					continue
				}
				params := append([]CorrectionParameter(nil), existing.Parameters...)
				for _, p := range member.Parameters {
					if i := indexOfParameter(params, p.Name); i >= 0 {
						params[i] = p
					} else {
						params = append(params, p)
					}
				}
				merged.put(className, CorrectionMember{Name: memberName, Parameters: params})
			}
		}
	}

	return merged
}

// Len returns the number of corrected members across all classes
func (o *Overlay) Len() int {
	if o == nil {
		return 0
	}
	n := 0
	for _, byMember := range o.members {
		n += len(byMember)
	}
	return n
}

func indexOfParameter(params []CorrectionParameter, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}
