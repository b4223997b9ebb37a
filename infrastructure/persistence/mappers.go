package persistence

import (
	"time"

	"github.com/latticehq/lattice/domain/object"
	"github.com/latticehq/lattice/domain/search"
	"github.com/latticehq/lattice/domain/tag"
)

// ObjectMapper converts between object.Object and ObjectModel.
type ObjectMapper struct{}

// ToDomain converts an ObjectModel to an object.Object.
func (ObjectMapper) ToDomain(m ObjectModel) object.Object {
	var feedTS time.Time
	if m.FeedTimestamp != nil {
		feedTS = *m.FeedTimestamp
	}
	return object.Reconstruct(
		m.ObjectID,
		object.Type(m.ObjectType),
		m.ObjectName,
		m.ObjectDescription,
		m.OwnerID,
		m.IsPublished,
		m.DisplayInFeed,
		feedTS,
		m.ShowDescription,
		m.CreatedAt,
		m.ModifiedAt,
	)
}

// ToModel converts an object.Object to an ObjectModel.
func (ObjectMapper) ToModel(o object.Object) ObjectModel {
	var feedTS *time.Time
	if !o.FeedTimestamp().IsZero() {
		ts := o.FeedTimestamp()
		feedTS = &ts
	}
	return ObjectModel{
		ObjectID:          o.ID(),
		ObjectType:        string(o.Type()),
		ObjectName:        o.Name(),
		ObjectDescription: o.Description(),
		OwnerID:           o.OwnerID(),
		IsPublished:       o.IsPublished(),
		DisplayInFeed:     o.DisplayInFeed(),
		FeedTimestamp:     feedTS,
		ShowDescription:   o.ShowDescription(),
		CreatedAt:         o.CreatedAt(),
		ModifiedAt:        o.ModifiedAt(),
	}
}

// TagMapper converts between tag.Tag and TagModel.
type TagMapper struct{}

// ToDomain converts a TagModel to a tag.Tag.
func (TagMapper) ToDomain(m TagModel) tag.Tag {
	return tag.Reconstruct(m.TagID, m.TagName, m.TagDescription, m.IsPublished, m.CreatedAt, m.ModifiedAt)
}

// ToModel converts a tag.Tag to a TagModel.
func (TagMapper) ToModel(t tag.Tag) TagModel {
	return TagModel{
		TagID:          t.ID(),
		TagName:        t.Name(),
		TagDescription: t.Description(),
		IsPublished:    t.IsPublished(),
		CreatedAt:      t.CreatedAt(),
		ModifiedAt:     t.ModifiedAt(),
	}
}

// SearchableMapper converts search.Searchable rows to SearchableModel.
type SearchableMapper struct{}

// ToModel converts a search.Searchable to a SearchableModel.
func (SearchableMapper) ToModel(s search.Searchable) SearchableModel {
	m := SearchableModel{
		ModifiedAt: s.ModifiedAt(),
		TextA:      s.Tiers().A(),
		TextB:      s.Tiers().B(),
		TextC:      s.Tiers().C(),
	}
	id := s.Ref().ID()
	if s.Ref().IsObject() {
		m.ObjectID = &id
	} else {
		m.TagID = &id
	}
	return m
}
