package object

// Payload is the variant-specific content of an object. Implementations are
// value objects with no shared mutation.
type Payload interface {
	// PayloadType returns the variant this payload belongs to.
	PayloadType() Type
}

// Link is the payload of a link object.
type Link struct {
	url                   string
	showDescriptionAsLink bool
}

// NewLink creates a Link payload.
func NewLink(url string, showDescriptionAsLink bool) Link {
	return Link{url: url, showDescriptionAsLink: showDescriptionAsLink}
}

// PayloadType returns TypeLink.
func (l Link) PayloadType() Type { return TypeLink }

// URL returns the link target.
func (l Link) URL() string { return l.url }

// ShowDescriptionAsLink reports whether the description doubles as link text.
func (l Link) ShowDescriptionAsLink() bool { return l.showDescriptionAsLink }

// Markdown is the payload of a markdown object.
type Markdown struct {
	rawText string
}

// NewMarkdown creates a Markdown payload.
func NewMarkdown(rawText string) Markdown {
	return Markdown{rawText: rawText}
}

// PayloadType returns TypeMarkdown.
func (m Markdown) PayloadType() Type { return TypeMarkdown }

// RawText returns the raw markdown source.
func (m Markdown) RawText() string { return m.rawText }

// ToDoItem is a single entry of a to-do list.
type ToDoItem struct {
	number     int
	state      string
	text       string
	commentary string
	indent     int
	isExpanded bool
}

// NewToDoItem creates a ToDoItem.
func NewToDoItem(number int, state, text, commentary string, indent int, expanded bool) ToDoItem {
	return ToDoItem{
		number:     number,
		state:      state,
		text:       text,
		commentary: commentary,
		indent:     indent,
		isExpanded: expanded,
	}
}

// Number returns the item's position.
func (i ToDoItem) Number() int { return i.number }

// State returns the item state.
func (i ToDoItem) State() string { return i.state }

// Text returns the item text.
func (i ToDoItem) Text() string { return i.text }

// Commentary returns the item commentary.
func (i ToDoItem) Commentary() string { return i.commentary }

// Indent returns the nesting level.
func (i ToDoItem) Indent() int { return i.indent }

// IsExpanded reports whether the item is expanded in the UI.
func (i ToDoItem) IsExpanded() bool { return i.isExpanded }

// ToDoList is the payload of a to-do list object.
type ToDoList struct {
	sortType string
	items    []ToDoItem
}

// NewToDoList creates a ToDoList payload.
func NewToDoList(sortType string, items []ToDoItem) ToDoList {
	copied := make([]ToDoItem, len(items))
	copy(copied, items)
	return ToDoList{sortType: sortType, items: copied}
}

// PayloadType returns TypeToDoList.
func (l ToDoList) PayloadType() Type { return TypeToDoList }

// SortType returns the list ordering mode.
func (l ToDoList) SortType() string { return l.sortType }

// Items returns the list items in stored order.
func (l ToDoList) Items() []ToDoItem {
	result := make([]ToDoItem, len(l.items))
	copy(result, l.items)
	return result
}

// CompositeCell places a sub-object inside a composite layout.
type CompositeCell struct {
	subobjectID           int64
	row                   int
	column                int
	selectedTab           int
	isExpanded            bool
	showDescription       bool
	showDescriptionAsLink bool
}

// NewCompositeCell creates a CompositeCell.
func NewCompositeCell(subobjectID int64, row, column, selectedTab int, expanded, showDescription, showDescriptionAsLink bool) CompositeCell {
	return CompositeCell{
		subobjectID:           subobjectID,
		row:                   row,
		column:                column,
		selectedTab:           selectedTab,
		isExpanded:            expanded,
		showDescription:       showDescription,
		showDescriptionAsLink: showDescriptionAsLink,
	}
}

// SubobjectID returns the referenced sub-object id.
func (c CompositeCell) SubobjectID() int64 { return c.subobjectID }

// Row returns the layout row.
func (c CompositeCell) Row() int { return c.row }

// Column returns the layout column.
func (c CompositeCell) Column() int { return c.column }

// SelectedTab returns the selected tab index.
func (c CompositeCell) SelectedTab() int { return c.selectedTab }

// IsExpanded reports whether the cell is expanded.
func (c CompositeCell) IsExpanded() bool { return c.isExpanded }

// ShowDescription reports whether the sub-object description is shown.
func (c CompositeCell) ShowDescription() bool { return c.showDescription }

// ShowDescriptionAsLink reports whether the description doubles as link text.
func (c CompositeCell) ShowDescriptionAsLink() bool { return c.showDescriptionAsLink }

// Composite is the payload of a composite object. Sub-objects are indexed
// through their own searchable rows, not through the composite's.
type Composite struct {
	displayMode      string
	numerateChapters bool
	cells            []CompositeCell
}

// NewComposite creates a Composite payload.
func NewComposite(displayMode string, numerateChapters bool, cells []CompositeCell) Composite {
	copied := make([]CompositeCell, len(cells))
	copy(copied, cells)
	return Composite{displayMode: displayMode, numerateChapters: numerateChapters, cells: copied}
}

// PayloadType returns TypeComposite.
func (c Composite) PayloadType() Type { return TypeComposite }

// DisplayMode returns the composite display mode.
func (c Composite) DisplayMode() string { return c.displayMode }

// NumerateChapters reports whether chapters are numbered.
func (c Composite) NumerateChapters() bool { return c.numerateChapters }

// Cells returns the layout cells.
func (c Composite) Cells() []CompositeCell {
	result := make([]CompositeCell, len(c.cells))
	copy(result, c.cells)
	return result
}
