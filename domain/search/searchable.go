package search

import (
	"strings"
	"time"
)

// Ref identifies the entity behind a searchable row: exactly one of object
// or tag.
type Ref struct {
	itemType ItemType
	id       int64
}

// ObjectRef creates a Ref pointing at an object.
func ObjectRef(objectID int64) Ref {
	return Ref{itemType: ItemTypeObject, id: objectID}
}

// TagRef creates a Ref pointing at a tag.
func TagRef(tagID int64) Ref {
	return Ref{itemType: ItemTypeTag, id: tagID}
}

// ItemType returns the entity kind.
func (r Ref) ItemType() ItemType { return r.itemType }

// ID returns the entity id.
func (r Ref) ID() int64 { return r.id }

// IsObject returns true for object refs.
func (r Ref) IsObject() bool { return r.itemType == ItemTypeObject }

// TextTiers holds the three weighted plain-text slots of a searchable row.
// Tier A tokens rank highest, B medium, C lowest.
type TextTiers struct {
	a string
	b string
	c string
}

// NewTextTiers creates TextTiers. Each tier is whitespace-normalised to a
// single-space-joined token run; empty tiers stay empty.
func NewTextTiers(a, b, c string) TextTiers {
	return TextTiers{a: normalizeTier(a), b: normalizeTier(b), c: normalizeTier(c)}
}

func normalizeTier(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// A returns the highest-weighted tier.
func (t TextTiers) A() string { return t.a }

// B returns the medium tier.
func (t TextTiers) B() string { return t.b }

// C returns the lowest tier.
func (t TextTiers) C() string { return t.c }

// Searchable is one row of the derived search index. It is a projection of
// the source entity, reproducible from the primary tables.
type Searchable struct {
	ref        Ref
	modifiedAt time.Time
	tiers      TextTiers
}

// NewSearchable creates a Searchable row.
func NewSearchable(ref Ref, modifiedAt time.Time, tiers TextTiers) Searchable {
	return Searchable{ref: ref, modifiedAt: modifiedAt, tiers: tiers}
}

// Ref returns the entity reference.
func (s Searchable) Ref() Ref { return s.ref }

// ModifiedAt returns the row timestamp.
func (s Searchable) ModifiedAt() time.Time { return s.modifiedAt }

// Tiers returns the text tiers.
func (s Searchable) Tiers() TextTiers { return s.tiers }
