// Package object provides the object domain types: the object header shared
// by every variant and the per-variant payloads.
package object

import (
	"fmt"
	"time"

	"github.com/latticehq/lattice/internal/domain"
)

// Type discriminates the object variants.
type Type string

// Object variants.
const (
	TypeLink      Type = "link"
	TypeMarkdown  Type = "markdown"
	TypeToDoList  Type = "to_do_list"
	TypeComposite Type = "composite"
)

// MaxNameLength is the upper bound on object names.
const MaxNameLength = 255

// Object is the header row shared by all object variants. The variant
// payload lives in a side table and is modelled by Payload.
type Object struct {
	id              int64
	objectType      Type
	name            string
	description     string
	ownerID         int64
	isPublished     bool
	displayInFeed   bool
	feedTimestamp   time.Time
	showDescription bool
	createdAt       time.Time
	modifiedAt      time.Time
}

// New creates a new Object. The name must be 1 to 255 characters.
func New(objectType Type, name, description string, ownerID int64, published bool) (Object, error) {
	if len(name) == 0 || len(name) > MaxNameLength {
		return Object{}, fmt.Errorf("%w: object name must be 1-%d characters", domain.ErrValidation, MaxNameLength)
	}
	now := time.Now().UTC()
	return Object{
		objectType:  objectType,
		name:        name,
		description: description,
		ownerID:     ownerID,
		isPublished: published,
		createdAt:   now,
		modifiedAt:  now,
	}, nil
}

// Reconstruct rebuilds an Object from persistence.
func Reconstruct(
	id int64,
	objectType Type,
	name, description string,
	ownerID int64,
	published, displayInFeed bool,
	feedTimestamp time.Time,
	showDescription bool,
	createdAt, modifiedAt time.Time,
) Object {
	return Object{
		id:              id,
		objectType:      objectType,
		name:            name,
		description:     description,
		ownerID:         ownerID,
		isPublished:     published,
		displayInFeed:   displayInFeed,
		feedTimestamp:   feedTimestamp,
		showDescription: showDescription,
		createdAt:       createdAt,
		modifiedAt:      modifiedAt,
	}
}

// ID returns the object id.
func (o Object) ID() int64 { return o.id }

// Type returns the object variant.
func (o Object) Type() Type { return o.objectType }

// Name returns the object name.
func (o Object) Name() string { return o.name }

// Description returns the object description.
func (o Object) Description() string { return o.description }

// OwnerID returns the owning user's id.
func (o Object) OwnerID() int64 { return o.ownerID }

// IsPublished returns the publication state.
func (o Object) IsPublished() bool { return o.isPublished }

// DisplayInFeed reports whether the object appears in the feed.
func (o Object) DisplayInFeed() bool { return o.displayInFeed }

// FeedTimestamp returns the feed ordering timestamp (zero when unset).
func (o Object) FeedTimestamp() time.Time { return o.feedTimestamp }

// ShowDescription reports whether the description is displayed.
func (o Object) ShowDescription() bool { return o.showDescription }

// CreatedAt returns the creation timestamp.
func (o Object) CreatedAt() time.Time { return o.createdAt }

// ModifiedAt returns the last modification timestamp.
func (o Object) ModifiedAt() time.Time { return o.modifiedAt }
