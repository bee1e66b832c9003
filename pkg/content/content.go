// Package content holds the domain types of the content-driven demo app:
// screen content rows and tags, each stored in its own Airtable table.
package content

import "github.com/mesh-intelligence/airtable/pkg/types"

// ContentTable is the Airtable table holding screen content.
const ContentTable = "content"

// ViewType selects the screen component a content row renders as.
type ViewType string

// View types. The wire value of each is its component name.
const (
	ViewHi       ViewType = "HiView"
	ViewBye      ViewType = "ByeView"
	ViewMiddle   ViewType = "MiddleView"
	ViewSettings ViewType = "SettingsView"
)

var validViewTypes = map[ViewType]bool{
	ViewHi:       true,
	ViewBye:      true,
	ViewMiddle:   true,
	ViewSettings: true,
}

// Content schema fields.
var (
	FieldView     = types.Key("view", types.KindSingleSelect)
	FieldPosition = types.Key("position", types.KindNumber)
	FieldTitle    = types.Key("title", types.KindText)
)

// ContentSchema is the schema of the content table, in declaration order.
var ContentSchema = types.NewSchema(FieldView, FieldPosition, FieldTitle)

// Compile-time interface check.
var _ types.Object = Content{}

// Content is one row of the content table.
type Content struct {
	RecordID string
	Title    string
	Position int64

	view string
}

// NewContent builds a Content from decoded fields. Missing fields keep
// their zero values. It has the Factory[Content] signature.
func NewContent(id string, fields types.Record) Content {
	c := Content{RecordID: id}
	if v, ok := fields.Text(FieldView); ok {
		c.view = v
	}
	if v, ok := fields.Int(FieldPosition); ok {
		c.Position = v
	}
	if v, ok := fields.Text(FieldTitle); ok {
		c.Title = v
	}
	return c
}

// Type returns the view type; unknown or empty views render as ViewHi.
func (c Content) Type() ViewType {
	vt := ViewType(c.view)
	if !validViewTypes[vt] {
		return ViewHi
	}
	return vt
}

// SetType changes the view type.
func (c *Content) SetType(vt ViewType) {
	c.view = string(vt)
}

func (c Content) ID() string {
	return c.RecordID
}

// Value returns the raw view name rather than Type so an unknown view
// survives a round trip unchanged.
func (c Content) Value(key types.FieldKey) (types.Value, bool) {
	switch key {
	case FieldView:
		return types.Str(c.view), true
	case FieldPosition:
		return types.Int(c.Position), true
	case FieldTitle:
		return types.Str(c.Title), true
	default:
		return nil, false
	}
}
