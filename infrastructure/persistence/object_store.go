package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/latticehq/lattice/domain/object"
	"github.com/latticehq/lattice/domain/store"
	"github.com/latticehq/lattice/internal/database"
	"github.com/latticehq/lattice/internal/domain"
)

// ObjectStore persists objects and their variant payloads.
type ObjectStore struct {
	repo   database.Repository[object.Object, ObjectModel]
	db     database.Database
	logger *slog.Logger
}

// NewObjectStore creates an ObjectStore.
func NewObjectStore(db database.Database, logger *slog.Logger) *ObjectStore {
	return &ObjectStore{
		repo:   database.NewRepository[object.Object, ObjectModel](db, ObjectMapper{}, "object"),
		db:     db,
		logger: logger,
	}
}

// Get retrieves an object header by id.
func (s *ObjectStore) Get(ctx context.Context, id int64) (object.Object, error) {
	obj, err := s.repo.FindOne(ctx, store.WithCondition("object_id", id))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return object.Object{}, fmt.Errorf("%w: object %d", domain.ErrNotFound, id)
		}
		return object.Object{}, err
	}
	return obj, nil
}

// Find retrieves object headers matching the given options.
func (s *ObjectStore) Find(ctx context.Context, options ...store.Option) ([]object.Object, error) {
	return s.repo.Find(ctx, options...)
}

// Payload loads the variant side table rows for the given object.
func (s *ObjectStore) Payload(ctx context.Context, obj object.Object) (object.Payload, error) {
	db := s.db.Session(ctx)
	switch obj.Type() {
	case object.TypeLink:
		var m LinkModel
		if err := db.Where("object_id = ?", obj.ID()).First(&m).Error; err != nil {
			return nil, payloadErr(obj, err)
		}
		return object.NewLink(m.Link, m.ShowDescriptionAsLink), nil

	case object.TypeMarkdown:
		var m MarkdownModel
		if err := db.Where("object_id = ?", obj.ID()).First(&m).Error; err != nil {
			return nil, payloadErr(obj, err)
		}
		return object.NewMarkdown(m.RawText), nil

	case object.TypeToDoList:
		var list ToDoListModel
		if err := db.Where("object_id = ?", obj.ID()).First(&list).Error; err != nil {
			return nil, payloadErr(obj, err)
		}
		var rows []ToDoListItemModel
		if err := db.Where("object_id = ?", obj.ID()).Order("item_number ASC").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load to-do items for object %d: %w", obj.ID(), err)
		}
		items := make([]object.ToDoItem, len(rows))
		for i, r := range rows {
			items[i] = object.NewToDoItem(r.ItemNumber, r.ItemState, r.ItemText, r.Commentary, r.Indent, r.IsExpanded)
		}
		return object.NewToDoList(list.SortType, items), nil

	case object.TypeComposite:
		var props CompositePropertiesModel
		if err := db.Where("object_id = ?", obj.ID()).First(&props).Error; err != nil {
			return nil, payloadErr(obj, err)
		}
		var rows []CompositeCellModel
		// Quoted: "column" is reserved in Postgres.
		if err := db.Where("object_id = ?", obj.ID()).Order(`"row" ASC, "column" ASC`).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load composite cells for object %d: %w", obj.ID(), err)
		}
		cells := make([]object.CompositeCell, len(rows))
		for i, r := range rows {
			cells[i] = object.NewCompositeCell(
				r.SubobjectID, r.Row, r.Column, r.SelectedTab,
				r.IsExpanded, r.ShowDescriptionComposite, r.ShowDescriptionAsLinkComposite,
			)
		}
		return object.NewComposite(props.DisplayMode, props.NumerateChapters, cells), nil

	default:
		return nil, fmt.Errorf("%w: unknown object type %q", domain.ErrValidation, obj.Type())
	}
}

func payloadErr(obj object.Object, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: payload for object %d", domain.ErrNotFound, obj.ID())
	}
	return fmt.Errorf("load payload for object %d: %w", obj.ID(), err)
}

// Save persists the object header and its payload in one transaction and
// returns the object with its assigned id. The payload type must match the
// object type.
func (s *ObjectStore) Save(ctx context.Context, obj object.Object, payload object.Payload) (object.Object, error) {
	if payload != nil && payload.PayloadType() != obj.Type() {
		return object.Object{}, fmt.Errorf("%w: payload type %q does not match object type %q",
			domain.ErrValidation, payload.PayloadType(), obj.Type())
	}

	model := s.repo.Mapper().ToModel(obj)
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if model.ObjectID == 0 {
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("create object: %w", err)
			}
		} else {
			if err := tx.Save(&model).Error; err != nil {
				return fmt.Errorf("update object: %w", err)
			}
		}
		if err := deletePayloadRows(tx, model.ObjectID); err != nil {
			return err
		}
		return insertPayloadRows(tx, model.ObjectID, payload)
	})
	if err != nil {
		return object.Object{}, err
	}
	return s.repo.Mapper().ToDomain(model), nil
}

// Delete removes the object header, payload rows, tag links, and the
// object's search index row in one transaction.
func (s *ObjectStore) Delete(ctx context.Context, id int64) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := deletePayloadRows(tx, id); err != nil {
			return err
		}
		if err := tx.Where("object_id = ?", id).Delete(&ObjectTagModel{}).Error; err != nil {
			return fmt.Errorf("delete object tag links: %w", err)
		}
		if err := tx.Where("object_id = ?", id).Delete(&SearchableModel{}).Error; err != nil {
			return fmt.Errorf("delete object searchable: %w", err)
		}
		if err := deleteFTSRow(tx, s.db, "object_id", id); err != nil {
			return err
		}
		if err := tx.Where("object_id = ?", id).Delete(&ObjectModel{}).Error; err != nil {
			return fmt.Errorf("delete object: %w", err)
		}
		return nil
	})
}

// deleteFTSRow keeps the SQLite FTS5 shadow table in step with the
// searchables table when an entity goes away. No-op on Postgres, where the
// index is a generated column of searchables itself.
func deleteFTSRow(tx *gorm.DB, db database.Database, column string, id int64) error {
	if !db.IsSQLite() {
		return nil
	}
	err := tx.Exec(fmt.Sprintf("DELETE FROM searchables_fts WHERE %s = ?", column), id).Error
	if err != nil {
		return fmt.Errorf("delete searchable fts row: %w", err)
	}
	return nil
}

// TagIDs returns the ids of tags attached to the object, ascending.
func (s *ObjectStore) TagIDs(ctx context.Context, objectID int64) ([]int64, error) {
	var ids []int64
	err := s.db.Session(ctx).
		Model(&ObjectTagModel{}).
		Where("object_id = ?", objectID).
		Order("tag_id ASC").
		Pluck("tag_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load tag ids for object %d: %w", objectID, err)
	}
	return ids, nil
}

// Attach links a tag to the object. Attaching an already attached tag is a
// no-op.
func (s *ObjectStore) Attach(ctx context.Context, objectID, tagID int64) error {
	link := ObjectTagModel{ObjectID: objectID, TagID: tagID}
	err := s.db.Session(ctx).
		Where("object_id = ? AND tag_id = ?", objectID, tagID).
		FirstOrCreate(&link).Error
	if err != nil {
		return fmt.Errorf("attach tag %d to object %d: %w", tagID, objectID, err)
	}
	return nil
}

// Detach removes the link between a tag and the object.
func (s *ObjectStore) Detach(ctx context.Context, objectID, tagID int64) error {
	err := s.db.Session(ctx).
		Where("object_id = ? AND tag_id = ?", objectID, tagID).
		Delete(&ObjectTagModel{}).Error
	if err != nil {
		return fmt.Errorf("detach tag %d from object %d: %w", tagID, objectID, err)
	}
	return nil
}

func deletePayloadRows(tx *gorm.DB, objectID int64) error {
	for _, model := range []any{
		&LinkModel{},
		&MarkdownModel{},
		&ToDoListModel{},
		&ToDoListItemModel{},
		&CompositePropertiesModel{},
		&CompositeCellModel{},
	} {
		if err := tx.Where("object_id = ?", objectID).Delete(model).Error; err != nil {
			return fmt.Errorf("delete payload rows: %w", err)
		}
	}
	return nil
}

func insertPayloadRows(tx *gorm.DB, objectID int64, payload object.Payload) error {
	switch p := payload.(type) {
	case nil:
		return nil

	case object.Link:
		m := LinkModel{ObjectID: objectID, Link: p.URL(), ShowDescriptionAsLink: p.ShowDescriptionAsLink()}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("create link payload: %w", err)
		}

	case object.Markdown:
		m := MarkdownModel{ObjectID: objectID, RawText: p.RawText()}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("create markdown payload: %w", err)
		}

	case object.ToDoList:
		list := ToDoListModel{ObjectID: objectID, SortType: p.SortType()}
		if err := tx.Create(&list).Error; err != nil {
			return fmt.Errorf("create to-do list payload: %w", err)
		}
		for _, item := range p.Items() {
			row := ToDoListItemModel{
				ObjectID:   objectID,
				ItemNumber: item.Number(),
				ItemState:  item.State(),
				ItemText:   item.Text(),
				Commentary: item.Commentary(),
				Indent:     item.Indent(),
				IsExpanded: item.IsExpanded(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create to-do item: %w", err)
			}
		}

	case object.Composite:
		props := CompositePropertiesModel{
			ObjectID:         objectID,
			DisplayMode:      p.DisplayMode(),
			NumerateChapters: p.NumerateChapters(),
		}
		if err := tx.Create(&props).Error; err != nil {
			return fmt.Errorf("create composite properties: %w", err)
		}
		for _, cell := range p.Cells() {
			row := CompositeCellModel{
				ObjectID:                       objectID,
				SubobjectID:                    cell.SubobjectID(),
				Row:                            cell.Row(),
				Column:                         cell.Column(),
				SelectedTab:                    cell.SelectedTab(),
				IsExpanded:                     cell.IsExpanded(),
				ShowDescriptionComposite:       cell.ShowDescription(),
				ShowDescriptionAsLinkComposite: cell.ShowDescriptionAsLink(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create composite cell: %w", err)
			}
		}

	default:
		return fmt.Errorf("%w: unsupported payload type %T", domain.ErrValidation, payload)
	}
	return nil
}
