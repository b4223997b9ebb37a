// Package persistence provides database storage implementations.
package persistence

import "time"

// ObjectModel is the database model for the objects table.
type ObjectModel struct {
	ObjectID          int64      `gorm:"column:object_id;primaryKey;autoIncrement"`
	ObjectType        string     `gorm:"column:object_type;size:32;index"`
	ObjectName        string     `gorm:"column:object_name;size:255"`
	ObjectDescription string     `gorm:"column:object_description"`
	OwnerID           int64      `gorm:"column:owner_id;index"`
	IsPublished       bool       `gorm:"column:is_published;index"`
	DisplayInFeed     bool       `gorm:"column:display_in_feed"`
	FeedTimestamp     *time.Time `gorm:"column:feed_timestamp"`
	ShowDescription   bool       `gorm:"column:show_description"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	ModifiedAt        time.Time  `gorm:"column:modified_at"`
}

// TableName returns the table name.
func (ObjectModel) TableName() string { return "objects" }

// TagModel is the database model for the tags table.
type TagModel struct {
	TagID          int64     `gorm:"column:tag_id;primaryKey;autoIncrement"`
	TagName        string    `gorm:"column:tag_name;size:255"`
	TagDescription string    `gorm:"column:tag_description"`
	IsPublished    bool      `gorm:"column:is_published;index"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	ModifiedAt     time.Time `gorm:"column:modified_at"`
}

// TableName returns the table name.
func (TagModel) TableName() string { return "tags" }

// ObjectTagModel is the database model for the objects_tags join table.
type ObjectTagModel struct {
	ObjectID int64 `gorm:"column:object_id;primaryKey"`
	TagID    int64 `gorm:"column:tag_id;primaryKey"`
}

// TableName returns the table name.
func (ObjectTagModel) TableName() string { return "objects_tags" }

// LinkModel is the database model for the links side table.
type LinkModel struct {
	ObjectID              int64  `gorm:"column:object_id;primaryKey"`
	Link                  string `gorm:"column:link"`
	ShowDescriptionAsLink bool   `gorm:"column:show_description_as_link"`
}

// TableName returns the table name.
func (LinkModel) TableName() string { return "links" }

// MarkdownModel is the database model for the markdown side table.
type MarkdownModel struct {
	ObjectID int64  `gorm:"column:object_id;primaryKey"`
	RawText  string `gorm:"column:raw_text"`
}

// TableName returns the table name.
func (MarkdownModel) TableName() string { return "markdown" }

// ToDoListModel is the database model for the to_do_lists side table.
type ToDoListModel struct {
	ObjectID int64  `gorm:"column:object_id;primaryKey"`
	SortType string `gorm:"column:sort_type;size:32"`
}

// TableName returns the table name.
func (ToDoListModel) TableName() string { return "to_do_lists" }

// ToDoListItemModel is the database model for the to_do_list_items table.
type ToDoListItemModel struct {
	ObjectID   int64  `gorm:"column:object_id;primaryKey"`
	ItemNumber int    `gorm:"column:item_number;primaryKey"`
	ItemState  string `gorm:"column:item_state;size:32"`
	ItemText   string `gorm:"column:item_text"`
	Commentary string `gorm:"column:commentary"`
	Indent     int    `gorm:"column:indent"`
	IsExpanded bool   `gorm:"column:is_expanded"`
}

// TableName returns the table name.
func (ToDoListItemModel) TableName() string { return "to_do_list_items" }

// CompositePropertiesModel is the database model for composite_properties.
type CompositePropertiesModel struct {
	ObjectID         int64  `gorm:"column:object_id;primaryKey"`
	DisplayMode      string `gorm:"column:display_mode;size:32"`
	NumerateChapters bool   `gorm:"column:numerate_chapters"`
}

// TableName returns the table name.
func (CompositePropertiesModel) TableName() string { return "composite_properties" }

// CompositeCellModel is the database model for the composite layout table.
type CompositeCellModel struct {
	ID                             int64 `gorm:"column:id;primaryKey;autoIncrement"`
	ObjectID                       int64 `gorm:"column:object_id;index"`
	SubobjectID                    int64 `gorm:"column:subobject_id;index"`
	Row                            int   `gorm:"column:row"`
	Column                         int   `gorm:"column:column"`
	SelectedTab                    int   `gorm:"column:selected_tab"`
	IsExpanded                     bool  `gorm:"column:is_expanded"`
	ShowDescriptionComposite       bool  `gorm:"column:show_description_composite"`
	ShowDescriptionAsLinkComposite bool  `gorm:"column:show_description_as_link_composite"`
}

// TableName returns the table name.
func (CompositeCellModel) TableName() string { return "composite" }

// SearchableModel is the database model for the searchables index table.
// Exactly one of ObjectID and TagID is set; the derived weighted vector
// column is managed by the dialect-specific searchable store, not by GORM.
type SearchableModel struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ObjectID   *int64    `gorm:"column:object_id"`
	TagID      *int64    `gorm:"column:tag_id"`
	ModifiedAt time.Time `gorm:"column:modified_at"`
	TextA      string    `gorm:"column:text_a"`
	TextB      string    `gorm:"column:text_b"`
	TextC      string    `gorm:"column:text_c"`
}

// TableName returns the table name.
func (SearchableModel) TableName() string { return "searchables" }
