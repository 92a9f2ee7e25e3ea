package structx

import "github.com/sprice/legrag/pkg/legxml/tree"

// Heading is a captured label+title pair, e.g. from a Part, Division or
// Group/GroupHeading element.
type Heading struct {
	Label string
	Title string
}

// ExtractHeading reads a Label child (if any) and a Heading/TitleText
// child (if any) off a container element into a Heading.
func ExtractHeading(e *tree.Element) Heading {
	var h Heading
	if label := e.First("Label"); label != nil {
		h.Label = ExtractText(label)
	}
	if heading := e.First("Heading"); heading != nil {
		h.Title = ExtractText(heading)
	} else if title := e.First("TitleText"); title != nil {
		h.Title = ExtractText(title)
	} else if gh := e.First("GroupHeading"); gh != nil {
		h.Title = ExtractText(gh)
	}
	return h
}

// ExtractLimsMetadata collects every attribute on e whose name carries the
// "lims:" namespace prefix into a bag, per spec.md §6's limsMetadata
// requirement. Attributes with other namespace prefixes are not
// collected.
func ExtractLimsMetadata(e *tree.Element) map[string]string {
	var out map[string]string
	for _, a := range e.Start.Attrs {
		if a.Name.HasPrefix("lims") {
			if out == nil {
				out = make(map[string]string)
			}
			out[a.Name.Local] = a.Value
		}
	}
	return out
}
