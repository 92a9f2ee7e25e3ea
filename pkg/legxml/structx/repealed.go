package structx

import "github.com/sprice/legrag/pkg/legxml/tree"

// IsRepealed reports whether a Section element is repealed per spec.md
// §4.B: either it has a direct Repealed child, or its only non-Label
// children are a single Text element whose sole non-whitespace child is
// a Repealed marker. Any other sibling element (e.g. a DefinedTermEn)
// means the section stays active even if some nested element contains a
// Repealed marker — nested repealed sub-provisions never propagate to
// section status.
func IsRepealed(section *tree.Element) bool {
	children := section.Children()

	for _, c := range children {
		if c.Name() == "Repealed" {
			return true
		}
	}

	var nonLabel []*tree.Element
	for _, c := range children {
		if c.Name() != "Label" {
			nonLabel = append(nonLabel, c)
		}
	}
	if len(nonLabel) != 1 || nonLabel[0].Name() != "Text" {
		return false
	}
	text := nonLabel[0]

	soleChild := soleNonWhitespaceChild(text)
	return soleChild != nil && soleChild.Name() == "Repealed"
}

// soleNonWhitespaceChild returns e's only content element if, after
// discarding whitespace-only CharData, exactly one Element remains;
// otherwise nil.
func soleNonWhitespaceChild(e *tree.Element) *tree.Element {
	var found *tree.Element
	count := 0
	for _, c := range e.Contents {
		switch v := c.(type) {
		case tree.CharData:
			if len(normalizeWhitespaceBytes(v)) != 0 {
				return nil
			}
		case *tree.Element:
			count++
			found = v
		}
	}
	if count != 1 {
		return nil
	}
	return found
}

func normalizeWhitespaceBytes(b []byte) string {
	return normalizeWhitespace(string(b))
}
