package types

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Value is any datum that can be stored in an Airtable cell. Every Value
// has a faithful text projection; the other projections are optional
// capabilities a type implements only when they are meaningful to it.
type Value interface {
	Text() string
}

// Optional projections. A Value that does not implement one of these is
// projected to the neutral default by the matching As function.
type (
	IntProjector  interface{ AsInt() int64 }
	RealProjector interface{ AsReal() float64 }
	DateProjector interface{ AsDate() time.Time }
	URLProjector  interface{ AsURL() *url.URL }
	BoolProjector interface{ AsBool() bool }
	ListProjector interface{ AsList() []Value }
	DictProjector interface{ AsDict() map[string]Value }
)

// Epoch is the neutral date projection. A dateTime field whose value
// projects to Epoch is treated as unset.
var Epoch = time.Unix(0, 0).UTC()

// TextOf returns the text projection of v, or "" for nil.
func TextOf(v Value) string {
	if v == nil {
		return ""
	}
	return v.Text()
}

// AsInt projects v as an integer. Defaults to 0.
func AsInt(v Value) int64 {
	if p, ok := v.(IntProjector); ok {
		return p.AsInt()
	}
	return 0
}

// AsReal projects v as a real number. Defaults to NaN.
func AsReal(v Value) float64 {
	if p, ok := v.(RealProjector); ok {
		return p.AsReal()
	}
	return math.NaN()
}

// AsDate projects v as an instant. Defaults to Epoch.
func AsDate(v Value) time.Time {
	if p, ok := v.(DateProjector); ok {
		return p.AsDate()
	}
	return Epoch
}

// AsURL projects v as a URL. Defaults to nil.
func AsURL(v Value) *url.URL {
	if p, ok := v.(URLProjector); ok {
		return p.AsURL()
	}
	return nil
}

// AsBool projects v as a boolean. Defaults to false.
func AsBool(v Value) bool {
	if p, ok := v.(BoolProjector); ok {
		return p.AsBool()
	}
	return false
}

// AsList projects v as a sequence. Defaults to an empty, non-nil slice.
func AsList(v Value) []Value {
	if p, ok := v.(ListProjector); ok {
		if l := p.AsList(); l != nil {
			return l
		}
	}
	return []Value{}
}

// AsDict projects v as a name to value mapping. Defaults to an empty,
// non-nil map.
func AsDict(v Value) map[string]Value {
	if p, ok := v.(DictProjector); ok {
		if d := p.AsDict(); d != nil {
			return d
		}
	}
	return map[string]Value{}
}

// Built-in adopters.
type (
	Str  string
	Int  int64
	Real float64
	Bool bool
	Time time.Time
	URL  string
	List []Value
	Dict map[string]Value
)

func (s Str) Text() string { return string(s) }

func (i Int) Text() string     { return strconv.FormatInt(int64(i), 10) }
func (i Int) AsInt() int64     { return int64(i) }
func (i Int) AsReal() float64  { return float64(i) }
func (r Real) Text() string    { return strconv.FormatFloat(float64(r), 'g', -1, 64) }
func (r Real) AsReal() float64 { return float64(r) }
func (b Bool) Text() string    { return strconv.FormatBool(bool(b)) }
func (b Bool) AsBool() bool    { return bool(b) }

func (t Time) Text() string             { return time.Time(t).Format(time.RFC3339) }
func (t Time) AsDate() time.Time        { return time.Time(t) }
func (u URL) Text() string              { return string(u) }
func (l List) AsList() []Value          { return l }
func (d Dict) AsDict() map[string]Value { return d }

// AsURL parses the URL; nil when it does not parse.
func (u URL) AsURL() *url.URL {
	parsed, err := url.Parse(string(u))
	if err != nil {
		return nil
	}
	return parsed
}

func (l List) Text() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = TextOf(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (d Dict) Text() string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + TextOf(d[name])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Strings builds a List of Str, the in-memory form of a linkToRecord field.
func Strings(ss ...string) List {
	l := make(List, len(ss))
	for i, s := range ss {
		l[i] = Str(s)
	}
	return l
}
