// Package valueset discovers the enum and flag declarations a schema
// uses and turns them into normalized value-set models ready for type
// generation.
package valueset

import (
	"strings"

	"gsettings-codegen/internal/diagnostic"
	"gsettings-codegen/internal/schema"
)

// Kind discriminates enum sets from flag sets.
type Kind int

const (
	KindEnum Kind = iota
	KindFlags
)

// String returns "enum" or "flags".
func (k Kind) String() string {
	if k == KindFlags {
		return "flags"
	}

	return "enum"
}

// flagWidth is the number of distinct single-bit values available for
// one flag set. Flag values serialize through a 32-bit representation.
const flagWidth = 32

// Member is one (nick, identifier, value) entry of a set. Value is the
// ordinal for enums and a single bit for flags, both assigned in
// document order.
type Member struct {
	Nick  string
	Ident string
	Value uint32
}

// Set is a normalized enum or flag set with its derived type name.
type Set struct {
	// ID is the declaration identifier, or schema-id.key-name for
	// inline choice lists.
	ID string

	// Name is the generated type name.
	Name string

	Kind    Kind
	Members []Member
}

// Nicks returns the member nicks in order.
func (s *Set) Nicks() []string {
	nicks := make([]string, len(s.Members))
	for i, m := range s.Members {
		nicks[i] = m.Nick
	}

	return nicks
}

// Registry holds every value set the selected schema references, in
// first-reference order.
type Registry struct {
	byID  map[string]*Set
	byKey map[string]*Set
	order []*Set
}

// ForKey returns the set backing the named key, or nil.
func (r *Registry) ForKey(keyName string) *Set { return r.byKey[keyName] }

// Sets returns all collected sets in first-reference order.
func (r *Registry) Sets() []*Set { return r.order }

// Collect walks the selected schema's keys and materializes every
// referenced enum/flags declaration and inline choice list. It fails
// with duplicate_variant on casing collisions and flag_overflow when a
// flag set exceeds the available bit width.
func Collect(doc *schema.Document) (*Registry, error) {
	r := &Registry{
		byID:  make(map[string]*Set),
		byKey: make(map[string]*Set),
	}

	decls := make(map[string]schema.ValueSetDecl)
	kinds := make(map[string]Kind)

	for _, e := range doc.Enums {
		decls[e.ID] = e
		kinds[e.ID] = KindEnum
	}

	for _, f := range doc.Flags {
		decls[f.ID] = f
		kinds[f.ID] = KindFlags
	}

	names := make(map[string]string) // type name -> set id

	for _, k := range doc.Schema.Keys {
		if !k.HasValueSet() {
			continue
		}

		var (
			id    string
			kind  Kind
			nicks []string
		)

		switch {
		case k.EnumRef != "":
			id, kind, nicks = k.EnumRef, KindEnum, decls[k.EnumRef].Nicks
		case k.FlagsRef != "":
			id, kind, nicks = k.FlagsRef, KindFlags, decls[k.FlagsRef].Nicks
		default:
			id, kind, nicks = doc.Schema.ID+"."+k.Name, KindEnum, k.Choices
		}

		if set, ok := r.byID[id]; ok {
			// Several keys may share one declared set.
			r.byKey[k.Name] = set
			continue
		}

		set, err := build(id, kind, nicks)
		if err != nil {
			return nil, err
		}

		if prev, taken := names[set.Name]; taken {
			return nil, diagnostic.Errorf(diagnostic.CodeDuplicateVariant,
				"sets %q and %q both generate type %s", prev, id, set.Name)
		}

		names[set.Name] = id
		r.byID[id] = set
		r.byKey[k.Name] = set
		r.order = append(r.order, set)
	}

	return r, nil
}

// build normalizes one set, deriving identifiers and values.
func build(id string, kind Kind, nicks []string) (*Set, error) {
	set := &Set{ID: id, Name: typeName(id), Kind: kind}

	if kind == KindFlags && len(nicks) > flagWidth {
		return nil, diagnostic.Errorf(diagnostic.CodeFlagOverflow,
			"flags set %q declares %d nicks, at most %d fit the underlying width",
			id, len(nicks), flagWidth)
	}

	seen := make(map[string]string) // ident -> nick

	for i, nick := range nicks {
		var ident string
		if kind == KindFlags {
			ident = ScreamingSnake(nick)
		} else {
			ident = PascalCase(nick)
		}

		if prev, ok := seen[ident]; ok {
			return nil, diagnostic.Errorf(diagnostic.CodeDuplicateVariant,
				"nicks %q and %q in set %q both map to identifier %s",
				prev, nick, id, ident)
		}

		seen[ident] = nick

		value := uint32(i)
		if kind == KindFlags {
			value = 1 << uint(i)
		}

		set.Members = append(set.Members, Member{Nick: nick, Ident: ident, Value: value})
	}

	return set, nil
}

// typeName derives the generated type name from the trailing segment of
// a set identifier: "io.github.seadve.test.alert-sound" -> "AlertSound".
func typeName(id string) string {
	seg := id
	if i := strings.LastIndex(id, "."); i >= 0 {
		seg = id[i+1:]
	}

	return PascalCase(seg)
}
