package search

// ItemType discriminates search result items.
type ItemType string

// Item kinds.
const (
	ItemTypeObject ItemType = "object"
	ItemTypeTag    ItemType = "tag"
)

// Item is one ranked search hit, projected to the id of the underlying
// entity.
type Item struct {
	itemID   int64
	itemType ItemType
}

// NewItem creates an Item.
func NewItem(itemID int64, itemType ItemType) Item {
	return Item{itemID: itemID, itemType: itemType}
}

// ItemID returns the entity id (object_id or tag_id).
func (i Item) ItemID() int64 { return i.itemID }

// ItemType returns the entity kind.
func (i Item) ItemType() ItemType { return i.itemType }

// Result is a ranked, paginated search response.
type Result struct {
	query      Query
	items      []Item
	totalItems int64
}

// NewResult creates a Result.
func NewResult(query Query, items []Item, totalItems int64) Result {
	copied := make([]Item, len(items))
	copy(copied, items)
	return Result{query: query, items: copied, totalItems: totalItems}
}

// Query returns the query this result answers.
func (r Result) Query() Query { return r.query }

// Items returns the ranked page of items.
func (r Result) Items() []Item {
	result := make([]Item, len(r.items))
	copy(result, r.items)
	return result
}

// TotalItems returns the unpaged match count.
func (r Result) TotalItems() int64 { return r.totalItems }
