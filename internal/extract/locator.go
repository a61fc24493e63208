package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/golang/glog"

	"github.com/rockstardevs/wsqfx/internal/dom"
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// IsDateHeader reports whether header text names a day: "Today", "Yesterday" or any
// text containing a full month name.
func IsDateHeader(text string) bool {
	text = strings.TrimSpace(text)
	switch strings.ToLower(text) {
	case "today", "yesterday":
		return true
	}
	for _, m := range monthNames {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// AmountPattern matches a whole amount such as "−$1,234.56 CAD" in the given currency.
func AmountPattern(currency string) *regexp.Regexp {
	const ws = `[\s\x{00A0}]*`
	return regexp.MustCompile(fmt.Sprintf(`^%s[−-]?%s\$[\d,]+\.\d{2}%s%s%s$`,
		ws, ws, ws, regexp.QuoteMeta(currency), ws))
}

// AmountLocator finds paragraphs holding an amount and anchors each on the
// enclosing clickable row.
type AmountLocator struct {
	Currency  string
	HeaderTag string
}

func (l AmountLocator) Locate(root dom.Node) []Candidate {
	pattern := AmountPattern(l.Currency)
	amounts := root.Find(func(n dom.Node) bool {
		return dom.HasTag("p")(n) && pattern.MatchString(n.Text())
	})
	glog.Infof("Found %d potential transactions", len(amounts))

	var out []Candidate
	for i, p := range amounts {
		anchor := actionable(p)
		if anchor == nil {
			glog.Warningf("Could not find button for amount: %s", p.Text())
			continue
		}
		header := dateHeaderFor(anchor, l.HeaderTag, false)
		if header == "" {
			glog.Warningf("Could not find date header for amount: %s", p.Text())
			continue
		}
		out = append(out, Candidate{Index: i, Anchor: anchor, Amount: p, DateText: header})
	}
	return out
}

// MarkerLocator anchors on every element whose marker attribute has the given value.
type MarkerLocator struct {
	Attr      string
	Value     string
	HeaderTag string
}

func (l MarkerLocator) Locate(root dom.Node) []Candidate {
	rows := root.Find(dom.HasAttr(l.Attr, l.Value))
	glog.Infof("Found %d transaction rows", len(rows))

	var out []Candidate
	for i, row := range rows {
		// Rows belong to the nearest header only; a non-date header closes the section.
		header := dateHeaderFor(row, l.HeaderTag, true)
		if header == "" {
			glog.Warningf("Could not find date header for row %d: %s", i, row.Text())
			continue
		}
		out = append(out, Candidate{Index: i, Anchor: row, DateText: header})
	}
	return out
}

// actionable returns n or its nearest ancestor that can be clicked.
func actionable(n dom.Node) dom.Node {
	for ; n != nil; n = n.Parent() {
		if strings.EqualFold(n.Tag(), "button") {
			return n
		}
		if role, ok := n.Attr("role"); ok && role == "button" {
			return n
		}
	}
	return nil
}

// dateHeaderFor walks up from anchor and scans each level's preceding siblings,
// nearest first, for a date header. With nearestOnly the first header element found
// decides, date or not.
func dateHeaderFor(anchor dom.Node, tag string, nearestOnly bool) string {
	for cur := anchor; cur != nil; cur = cur.Parent() {
		for s := cur.PrevSibling(); s != nil; s = s.PrevSibling() {
			if !strings.EqualFold(s.Tag(), tag) {
				continue
			}
			text := s.Text()
			if IsDateHeader(text) {
				return text
			}
			if nearestOnly {
				return ""
			}
		}
	}
	return ""
}
