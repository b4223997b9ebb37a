// Package extract turns stored entities into the three weighted text tiers
// of a searchable row.
package extract

import (
	"log/slog"
	"strings"

	"github.com/latticehq/lattice/domain/object"
	"github.com/latticehq/lattice/domain/search"
	"github.com/latticehq/lattice/domain/tag"
)

// Flattener renders Markdown to plain text.
type Flattener interface {
	Flatten(source string) (string, error)
}

// Extractor produces text tiers for every entity variant. Tier A is the
// entity name, tier B its description, tier C the variant content.
type Extractor struct {
	flattener Flattener
	logger    *slog.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(flattener Flattener, logger *slog.Logger) Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return Extractor{flattener: flattener, logger: logger}
}

// ObjectTiers extracts the tiers for an object and its payload. A flattener
// failure is not fatal: the row is still indexed with the tiers that
// succeeded and the problem is logged.
func (e Extractor) ObjectTiers(obj object.Object, payload object.Payload) search.TextTiers {
	var c string
	switch p := payload.(type) {
	case object.Link:
		c = p.URL()
	case object.Markdown:
		flattened, err := e.flattener.Flatten(p.RawText())
		if err != nil {
			e.logger.Warn("markdown flatten failed, indexing without content tier",
				"object_id", obj.ID(),
				"error", err,
			)
		} else {
			c = flattened
		}
	case object.ToDoList:
		c = toDoListText(p)
	case object.Composite:
		// Sub-objects are indexed through their own rows.
	}
	return search.NewTextTiers(obj.Name(), obj.Description(), c)
}

// TagTiers extracts the tiers for a tag. Tags have no content tier.
func (e Extractor) TagTiers(t tag.Tag) search.TextTiers {
	return search.NewTextTiers(t.Name(), t.Description(), "")
}

func toDoListText(list object.ToDoList) string {
	var parts []string
	for _, item := range list.Items() {
		if text := strings.TrimSpace(item.Text()); text != "" {
			parts = append(parts, text)
		}
		if commentary := strings.TrimSpace(item.Commentary()); commentary != "" {
			parts = append(parts, commentary)
		}
	}
	return strings.Join(parts, " ")
}
