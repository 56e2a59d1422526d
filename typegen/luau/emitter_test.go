package luau

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/rbxtypes/apidump"
)

// =============================================================================
// Test helpers
// =============================================================================

var public = apidump.Security{Read: "None", Write: "None"}

func property(name, category, typ string, tags ...string) apidump.Member {
	return apidump.Member{
		Name:       name,
		MemberType: apidump.MemberProperty,
		Security:   public,
		Tags:       tags,
		ValueType:  &apidump.ValueType{Category: category, Name: typ},
	}
}

func event(name string, params ...apidump.Parameter) apidump.Member {
	return apidump.Member{
		Name:       name,
		MemberType: apidump.MemberEvent,
		Security:   public,
		Parameters: params,
	}
}

func param(name, category, typ string) apidump.Parameter {
	return apidump.Parameter{Name: name, Type: apidump.ValueType{Category: category, Name: typ}}
}

func newTestEmitter(classes []apidump.Class, corrections []apidump.CorrectionClass, f Format) (*Emitter, *apidump.Repository) {
	repo := apidump.NewRepository(classes)
	return NewEmitter(repo, apidump.NewOverlay(corrections), NewResolver(f, nil), f), repo
}

func mustClass(t *testing.T, repo *apidump.Repository, name string) *apidump.Class {
	t.Helper()
	class, err := repo.ByName(name)
	require.NoError(t, err)
	return class
}

// =============================================================================
// Scenarios
// =============================================================================

func TestEmit_PublicProperty(t *testing.T) {
	classes := []apidump.Class{{
		Name:       "GuiObject",
		Superclass: apidump.RootSuperclass,
		Members:    []apidump.Member{property("Visible", "Primitive", "bool")},
	}}
	e, repo := newTestEmitter(classes, nil, Format{})

	entries, err := e.Emit(mustClass(t, repo, "GuiObject"))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "Visible", Type: "p<boolean>"}}, entries)
}

func TestEmit_InheritsWithoutOwnMembers(t *testing.T) {
	classes := []apidump.Class{
		{
			Name:       "GuiObject",
			Superclass: apidump.RootSuperclass,
			Members: []apidump.Member{
				property("Visible", "Primitive", "bool"),
				property("ZIndex", "Primitive", "int"),
			},
		},
		{Name: "Frame", Superclass: "GuiObject"},
	}
	e, repo := newTestEmitter(classes, nil, Format{})

	parent, err := e.Emit(mustClass(t, repo, "GuiObject"))
	require.NoError(t, err)
	child, err := e.Emit(mustClass(t, repo, "Frame"))
	require.NoError(t, err)

	assert.Equal(t, parent, child)
}

func TestEmit_EventWithClassParameter(t *testing.T) {
	classes := []apidump.Class{{
		Name:       "BasePart",
		Superclass: apidump.RootSuperclass,
		Members:    []apidump.Member{event("Touched", param("otherPart", "Class", "BasePart"))},
	}}
	e, repo := newTestEmitter(classes, nil, Format{})

	entries, err := e.Emit(mustClass(t, repo, "BasePart"))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "Touched", Type: "e<(otherPart: BasePart?) -> ()>"}}, entries)
}

func TestEmit_EventParameterCorrections(t *testing.T) {
	classes := []apidump.Class{{
		Name:       "BasePart",
		Superclass: apidump.RootSuperclass,
		Members: []apidump.Member{
			event("Touched", param("otherPart", "Class", "BasePart")),
			event("Batch", param("parts", "Group", "Array"), param("count", "Primitive", "int")),
		},
	}}
	corrections := []apidump.CorrectionClass{{
		Name: "BasePart",
		Members: []apidump.CorrectionMember{
			{
				Name:       "Touched",
				Parameters: []apidump.CorrectionParameter{{Name: "otherPart", Type: apidump.CorrectionType{Name: "Instance"}}},
			},
			{
				Name:       "Batch",
				Parameters: []apidump.CorrectionParameter{{Name: "parts", Type: apidump.CorrectionType{Generic: "BasePart"}}},
			},
		},
	}}
	e, repo := newTestEmitter(classes, corrections, Format{})

	entries, err := e.Emit(mustClass(t, repo, "BasePart"))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "Touched", Type: "e<(otherPart: Instance) -> ()>"},
		{Name: "Batch", Type: "e<(parts: {BasePart}, count: number) -> ()>"},
	}, entries)
}

func TestEmit_TupleParameterIsVariadic(t *testing.T) {
	classes := []apidump.Class{{
		Name:       "BindableEvent",
		Superclass: apidump.RootSuperclass,
		Members: []apidump.Member{
			event("Event", param("arguments", "DataType", "Tuple")),
			event("Mixed", param("player", "Class", "Player"), param("args", "DataType", "Tuple")),
		},
	}}
	e, repo := newTestEmitter(classes, nil, Format{})

	entries, err := e.Emit(mustClass(t, repo, "BindableEvent"))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "Event", Type: "e<(...any) -> ()>"},
		{Name: "Mixed", Type: "e<(player: Player?, ...any) -> ()>"},
	}, entries)
}

func TestEmit_CorrectionsAreScopedToDeclaringClass(t *testing.T) {
	classes := []apidump.Class{
		{
			Name:       "BasePart",
			Superclass: apidump.RootSuperclass,
			Members:    []apidump.Member{event("Touched", param("otherPart", "Class", "BasePart"))},
		},
		{Name: "Part", Superclass: "BasePart"},
	}
	corrections := []apidump.CorrectionClass{{
		Name: "Part",
		Members: []apidump.CorrectionMember{{
			Name:       "Touched",
			Parameters: []apidump.CorrectionParameter{{Name: "otherPart", Type: apidump.CorrectionType{Name: "Instance"}}},
		}},
	}}
	e, repo := newTestEmitter(classes, corrections, Format{})

	entries, err := e.Emit(mustClass(t, repo, "Part"))
	require.NoError(t, err)
	assert.Equal(t, "e<(otherPart: BasePart?) -> ()>", entries[0].Type)
}

func TestEmit_OrderLeafToRoot(t *testing.T) {
	classes := []apidump.Class{
		{
			Name:       "Instance",
			Superclass: apidump.RootSuperclass,
			Members:    []apidump.Member{property("Name", "Primitive", "string"), event("Destroying")},
		},
		{
			Name:       "GuiObject",
			Superclass: "GuiBase2d",
			Members:    []apidump.Member{property("Visible", "Primitive", "bool"), property("Size", "DataType", "UDim2")},
		},
		{
			Name:       "GuiBase2d",
			Superclass: "Instance",
			Members:    []apidump.Member{property("AutoLocalize", "Primitive", "bool")},
		},
		{
			Name:       "Frame",
			Superclass: "GuiObject",
			Members:    []apidump.Member{property("Style", "Enum", "FrameStyle")},
		},
	}
	e, repo := newTestEmitter(classes, nil, Format{})

	entries, err := e.Emit(mustClass(t, repo, "Frame"))
	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	assert.Equal(t, []string{"Style", "Visible", "Size", "AutoLocalize", "Name", "Destroying"}, names)
	assert.Equal(t, "p<Enum.FrameStyle>", entries[0].Type)
	assert.Equal(t, "e<() -> ()>", entries[5].Type)
}

func TestEmit_ReturnsFreshSlices(t *testing.T) {
	classes := []apidump.Class{{
		Name:       "GuiObject",
		Superclass: apidump.RootSuperclass,
		Members:    []apidump.Member{property("Visible", "Primitive", "bool")},
	}}
	e, repo := newTestEmitter(classes, nil, Format{})
	class := mustClass(t, repo, "GuiObject")

	first, err := e.Emit(class)
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := e.Emit(class)
	require.NoError(t, err)
	assert.Equal(t, "Visible", second[0].Name)
}

func TestEmit_CyclicHierarchyFails(t *testing.T) {
	classes := []apidump.Class{
		{Name: "A", Superclass: "B"},
		{Name: "B", Superclass: "A"},
	}
	e, repo := newTestEmitter(classes, nil, Format{})

	_, err := e.Emit(mustClass(t, repo, "A"))
	assert.Error(t, err)
}

func TestEmit_CompactFormat(t *testing.T) {
	classes := []apidump.Class{{
		Name:       "BasePart",
		Superclass: apidump.RootSuperclass,
		Members: []apidump.Member{
			event("Touched", param("otherPart", "Class", "BasePart"), param("n", "Primitive", "int")),
		},
	}}
	e, repo := newTestEmitter(classes, nil, Format{Compact: true})

	entries, err := e.Emit(mustClass(t, repo, "BasePart"))
	require.NoError(t, err)
	assert.Equal(t, "e<(otherPart:BasePart?,n:number)->()>", entries[0].Type)
}

// =============================================================================
// Member filtering
// =============================================================================

func TestEmittable(t *testing.T) {
	withSecurity := func(m apidump.Member, read, write string) apidump.Member {
		m.Security = apidump.Security{Read: read, Write: write}
		return m
	}
	deprecatedField := property("Old", "Primitive", "bool")
	deprecatedField.Deprecated = []byte(`{}`)

	tests := []struct {
		name   string
		member apidump.Member
		want   bool
	}{
		{"public property", property("Visible", "Primitive", "bool"), true},
		{"read-only tag", property("AbsoluteSize", "DataType", "Vector2", "ReadOnly"), false},
		{"deprecated tag", property("Old", "Primitive", "bool", "Deprecated"), false},
		{"not scriptable tag", property("Secret", "Primitive", "bool", "NotScriptable"), false},
		{"other tags are fine", property("Hidden", "Primitive", "bool", "NotReplicated", "Hidden"), true},
		{"protected write", withSecurity(property("Locked", "Primitive", "bool"), "None", "PluginSecurity"), false},
		{"protected read only", withSecurity(property("Tags", "Primitive", "bool"), "PluginSecurity", "None"), true},
		{"deprecated marker field", deprecatedField, false},
		{"public event", event("Changed"), true},
		{"protected event", withSecurity(event("Internal"), "RobloxScriptSecurity", "RobloxScriptSecurity"), false},
		{"deprecated event", func() apidump.Member { m := event("childAdded"); m.Tags = apidump.Tags{"Deprecated"}; return m }(), false},
		{"function", apidump.Member{Name: "Destroy", MemberType: apidump.MemberFunction, Security: public}, false},
		{"callback", apidump.Member{Name: "OnInvoke", MemberType: apidump.MemberCallback, Security: public}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.member
			assert.Equal(t, tt.want, Emittable(&m))
		})
	}
}

func TestEmitOwn_FilteringIgnoresSiblings(t *testing.T) {
	visible := property("Visible", "Primitive", "bool")
	hidden := property("ClassName", "Primitive", "string", "ReadOnly")

	alone := apidump.Class{Name: "X", Superclass: apidump.RootSuperclass, Members: []apidump.Member{visible}}
	mixed := apidump.Class{Name: "Y", Superclass: apidump.RootSuperclass, Members: []apidump.Member{hidden, visible, hidden}}

	e, _ := newTestEmitter([]apidump.Class{alone, mixed}, nil, Format{})
	assert.Equal(t, e.EmitOwn(&alone), e.EmitOwn(&mixed))
}
