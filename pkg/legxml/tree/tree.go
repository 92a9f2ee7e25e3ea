// Package tree provides a generic, reflection-free XML content algebra:
// an Element is a StartElement, an ordered list of Content (nested
// Elements or CharData), and an EndElement. The legislation parser walks
// this tree with a big element-name switch instead of unmarshalling into
// per-element Go structs, because the Justice Canada schema mixes ~150
// element names with arbitrary nesting and inline/block content in the
// same document.
package tree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Name is a local XML element or attribute name. Namespace prefixes
// (e.g. "lims:inforce-start-date") are preserved verbatim in Local since
// the parser needs to recognize the "lims:" prefix specifically.
type Name struct {
	Local string
}

func (n Name) String() string { return n.Local }

// HasPrefix reports whether the name carries the given namespace prefix,
// e.g. HasPrefix("lims").
func (n Name) HasPrefix(prefix string) bool {
	return strings.HasPrefix(n.Local, prefix+":")
}

// Attr is an XML attribute.
type Attr struct {
	Name  Name
	Value string
}

// StartElement is an XML start tag with its attributes.
type StartElement struct {
	Name  Name
	Attrs []Attr
}

// Attr returns the value of the named attribute and whether it was present.
func (e StartElement) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute's value, or def if absent.
func (e StartElement) AttrOr(name, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return def
}

// EndElement is an XML end tag.
type EndElement struct {
	Name Name
}

// Content is anything that can appear inside an Element: a nested
// Element or CharData. It has no exported methods beyond String so that
// callers type-switch on the concrete type.
type Content interface {
	String() string
	content()
}

// Element is a complete XML element: start tag, ordered content, end tag.
type Element struct {
	Start    StartElement
	Contents []Content
	End      EndElement
}

func (e *Element) content() {}

// String renders the element's tag names and content back to XML-like
// text (used for diagnostics, not for the HTML rendering path).
// Attributes are not rendered and character data is not re-escaped.
func (e *Element) String() string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(e.Start.Name.Local)
	sb.WriteString(">")
	for _, c := range e.Contents {
		sb.WriteString(c.String())
	}
	sb.WriteString("</")
	sb.WriteString(e.End.Name.Local)
	sb.WriteString(">")
	return sb.String()
}

// Name is shorthand for e.Start.Name.Local.
func (e *Element) Name() string { return e.Start.Name.Local }

// Attr is shorthand for e.Start.Attr.
func (e *Element) Attr(name string) (string, bool) { return e.Start.Attr(name) }

// AttrOr is shorthand for e.Start.AttrOr.
func (e *Element) AttrOr(name, def string) string { return e.Start.AttrOr(name, def) }

// Children returns the nested Elements among e's direct content,
// skipping CharData.
func (e *Element) Children() []*Element {
	out := make([]*Element, 0, len(e.Contents))
	for _, c := range e.Contents {
		if child, ok := c.(*Element); ok {
			out = append(out, child)
		}
	}
	return out
}

// ChildrenNamed returns direct-child elements whose name matches any of
// the given names.
func (e *Element) ChildrenNamed(names ...string) []*Element {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	out := make([]*Element, 0)
	for _, c := range e.Contents {
		if child, ok := c.(*Element); ok && set[child.Name()] {
			out = append(out, child)
		}
	}
	return out
}

// First returns the first direct-child element with the given name, or
// nil.
func (e *Element) First(name string) *Element {
	for _, c := range e.Contents {
		if child, ok := c.(*Element); ok && child.Name() == name {
			return child
		}
	}
	return nil
}

// Find returns the first descendant element (depth-first, including e
// itself) with the given name, or nil.
func (e *Element) Find(name string) *Element {
	if e.Name() == name {
		return e
	}
	for _, c := range e.Contents {
		if child, ok := c.(*Element); ok {
			if found := child.Find(name); found != nil {
				return found
			}
		}
	}
	return nil
}

// FindAll returns every descendant element (depth-first, including e
// itself) with the given name.
func (e *Element) FindAll(name string) []*Element {
	var out []*Element
	if e.Name() == name {
		out = append(out, e)
	}
	for _, c := range e.Contents {
		if child, ok := c.(*Element); ok {
			out = append(out, child.FindAll(name)...)
		}
	}
	return out
}

// FindAnyOf returns every descendant element (depth-first, including e
// itself) whose name is in names, in document order.
func (e *Element) FindAnyOf(names ...string) []*Element {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	var out []*Element
	var walk func(*Element)
	walk = func(el *Element) {
		if set[el.Name()] {
			out = append(out, el)
		}
		for _, c := range el.Contents {
			if child, ok := c.(*Element); ok {
				walk(child)
			}
		}
	}
	walk(e)
	return out
}

// CharData is character content within an element.
type CharData []byte

func (c CharData) content() {}

func (c CharData) String() string { return string(c) }

// Parse decodes XML from r into a content tree rooted at the document
// element. Returns an error for malformed XML (unbalanced tags, invalid
// tokens); unrecognized element/attribute names are never an error here
// — taxonomy recognition is the parser package's job, not the tree's.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	var stack []*Element
	var root *Element

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tree: decode token: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Start: toStartElement(t)}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Contents = append(parent.Contents, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("tree: unbalanced end tag </%s>", t.Name.Local)
			}
			top := stack[len(stack)-1]
			top.End = EndElement{Name: Name{Local: t.Name.Local}}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				root = top
			}
		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.Contents = append(top.Contents, CharData(bytes.Clone(t)))
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("tree: no root element found")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("tree: unbalanced tags, %d unclosed", len(stack))
	}
	return root, nil
}

func toStartElement(t xml.StartElement) StartElement {
	attrs := make([]Attr, 0, len(t.Attr))
	for _, a := range t.Attr {
		local := a.Name.Local
		if a.Name.Space != "" {
			local = a.Name.Space + ":" + a.Name.Local
		}
		attrs = append(attrs, Attr{Name: Name{Local: local}, Value: a.Value})
	}
	return StartElement{Name: Name{Local: t.Name.Local}, Attrs: attrs}
}
