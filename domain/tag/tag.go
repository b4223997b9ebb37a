// Package tag provides the tag domain type.
package tag

import "time"

// Tag represents a user-defined label that can be attached to objects.
type Tag struct {
	id          int64
	name        string
	description string
	isPublished bool
	createdAt   time.Time
	modifiedAt  time.Time
}

// New creates a new Tag.
func New(name, description string, published bool) Tag {
	now := time.Now().UTC()
	return Tag{
		name:        name,
		description: description,
		isPublished: published,
		createdAt:   now,
		modifiedAt:  now,
	}
}

// Reconstruct rebuilds a Tag from persistence.
func Reconstruct(id int64, name, description string, published bool, createdAt, modifiedAt time.Time) Tag {
	return Tag{
		id:          id,
		name:        name,
		description: description,
		isPublished: published,
		createdAt:   createdAt,
		modifiedAt:  modifiedAt,
	}
}

// ID returns the tag id.
func (t Tag) ID() int64 { return t.id }

// Name returns the tag name.
func (t Tag) Name() string { return t.name }

// Description returns the tag description.
func (t Tag) Description() string { return t.description }

// IsPublished returns the publication state.
func (t Tag) IsPublished() bool { return t.isPublished }

// CreatedAt returns the creation timestamp.
func (t Tag) CreatedAt() time.Time { return t.createdAt }

// ModifiedAt returns the last modification timestamp.
func (t Tag) ModifiedAt() time.Time { return t.modifiedAt }
