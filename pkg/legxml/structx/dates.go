package structx

import (
	"fmt"

	"github.com/sprice/legrag/pkg/legxml/tree"
)

// ParseElementDate renders a Date(YYYY,MM,DD) element (or any element
// directly wrapping one) to an ISO-8601 "YYYY-MM-DD" string. Returns ""
// if no well-formed date is found; callers treat that as "date unknown",
// never an error — a missing date on, say, ConsolidationDate is common
// and not a parse failure.
func ParseElementDate(e *tree.Element) string {
	dateEl := e
	if dateEl.Name() != "Date" {
		if d := e.First("Date"); d != nil {
			dateEl = d
		}
	}
	yyyy := childText(dateEl, "YYYY")
	mm := childText(dateEl, "MM")
	dd := childText(dateEl, "DD")
	if yyyy == "" {
		return ""
	}
	if mm == "" {
		mm = "01"
	}
	if dd == "" {
		dd = "01"
	}
	if len(mm) == 1 {
		mm = "0" + mm
	}
	if len(dd) == 1 {
		dd = "0" + dd
	}
	return fmt.Sprintf("%s-%s-%s", yyyy, mm, dd)
}

func childText(e *tree.Element, name string) string {
	if c := e.First(name); c != nil {
		return ExtractText(c)
	}
	return ""
}
