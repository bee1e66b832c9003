package content

import "github.com/mesh-intelligence/airtable/pkg/types"

// TagsTable is the Airtable table holding tags.
const TagsTable = "tags"

// Category groups tags.
type Category string

// Tag categories.
const (
	CategoryFruit      Category = "fruit"
	CategoryVegetables Category = "vegetables"
)

// AllCategories lists the categories in display order.
var AllCategories = []Category{CategoryFruit, CategoryVegetables}

// Tag schema fields.
var (
	FieldTag      = types.Key("tag", types.KindText)
	FieldCategory = types.Key("category", types.KindSingleSelect)
)

// TagSchema is the schema of the tags table.
var TagSchema = types.NewSchema(FieldTag, FieldCategory)

var _ types.Object = Tag{}

// Tag is one row of the tags table.
type Tag struct {
	RecordID string
	Name     string

	category string
}

// NewTag builds a Tag from decoded fields.
func NewTag(id string, fields types.Record) Tag {
	t := Tag{RecordID: id}
	if v, ok := fields.Text(FieldTag); ok {
		t.Name = v
	}
	if v, ok := fields.Text(FieldCategory); ok {
		t.category = v
	}
	return t
}

// Category returns the tag category; anything unrecognized is fruit.
func (t Tag) Category() Category {
	if Category(t.category) == CategoryVegetables {
		return CategoryVegetables
	}
	return CategoryFruit
}

// SetCategory changes the category.
func (t *Tag) SetCategory(c Category) {
	t.category = string(c)
}

func (t Tag) ID() string {
	return t.RecordID
}

func (t Tag) Value(key types.FieldKey) (types.Value, bool) {
	switch key {
	case FieldTag:
		return types.Str(t.Name), true
	case FieldCategory:
		return types.Str(t.category), true
	default:
		return nil, false
	}
}

// TagsIn returns the tags in category c, preserving order.
func TagsIn(tags []Tag, c Category) []Tag {
	var out []Tag
	for _, t := range tags {
		if t.Category() == c {
			out = append(out, t)
		}
	}
	return out
}
