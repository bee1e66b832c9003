package types

import (
	"net/url"

	"github.com/spaolacci/murmur3"
)

// Attachment references a file stored by Airtable. Attachments are values in
// their own right and can also be carried as a sequence (Attachments) under a
// single attachment field.
type Attachment struct {
	FileName string

	url        string
	urlChanged bool
}

// NewAttachment returns an attachment with the given file name and url.
func NewAttachment(fileName, url string) Attachment {
	return Attachment{FileName: fileName, url: url}
}

// URL returns the attachment url.
func (a Attachment) URL() string {
	return a.url
}

// SetURL replaces the url. URLChanged reports true from the first call that
// actually changes the url onwards.
func (a *Attachment) SetURL(u string) {
	a.urlChanged = a.urlChanged || u != a.url
	a.url = u
}

// URLChanged reports whether the url was modified after construction.
func (a Attachment) URLChanged() bool {
	return a.urlChanged
}

// Equal compares file name and url. The change flag is not part of identity.
func (a Attachment) Equal(other Attachment) bool {
	return a.FileName == other.FileName && a.url == other.url
}

// Hash returns a stable hash over file name and url. Equal attachments hash
// equally across processes.
func (a Attachment) Hash() uint64 {
	h := murmur3.New64()
	h.Write([]byte(a.FileName))
	h.Write([]byte{0})
	h.Write([]byte(a.url))
	return h.Sum64()
}

func (a Attachment) Text() string {
	return "Attachment(" + a.FileName + ", " + a.url + ")"
}

func (a Attachment) AsURL() *url.URL {
	return URL(a.url).AsURL()
}

// Attachments is the in-memory form of an attachment field.
type Attachments []Attachment

func (as Attachments) Text() string {
	return as.list().Text()
}

func (as Attachments) AsList() []Value {
	return as.list()
}

func (as Attachments) list() List {
	l := make(List, len(as))
	for i, a := range as {
		l[i] = a
	}
	return l
}

// AttachmentsOf extracts attachments from a single Attachment, a
// *Attachment, an Attachments sequence, or any sequence value whose elements
// are attachments. Other values yield an empty sequence.
func AttachmentsOf(v Value) Attachments {
	switch a := v.(type) {
	case Attachments:
		return a
	case Attachment:
		return Attachments{a}
	case *Attachment:
		if a == nil {
			return Attachments{}
		}
		return Attachments{*a}
	}
	out := Attachments{}
	for _, e := range AsList(v) {
		switch a := e.(type) {
		case Attachment:
			out = append(out, a)
		case *Attachment:
			if a != nil {
				out = append(out, *a)
			}
		}
	}
	return out
}
