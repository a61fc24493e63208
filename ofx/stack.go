package ofx

import "encoding/xml"

// openTags tracks the aggregates the cleaner has opened but not yet closed.
type openTags []xml.Name

func (o *openTags) push(n xml.Name) {
	*o = append(*o, n)
}

// pop removes the innermost open aggregate. ok is false when nothing is open.
func (o *openTags) pop() (n xml.Name, ok bool) {
	if len(*o) == 0 {
		return xml.Name{}, false
	}
	n = (*o)[len(*o)-1]
	*o = (*o)[:len(*o)-1]
	return n, true
}

// closeThrough pops aggregates up to and including name, innermost first, and
// returns them in closing order. Aggregates left open by a missing end tag are
// closed along the way; an end tag that was never opened closes everything.
func (o *openTags) closeThrough(name string) []xml.Name {
	var closed []xml.Name
	for {
		n, ok := o.pop()
		if !ok {
			return closed
		}
		closed = append(closed, n)
		if n.Local == name {
			return closed
		}
	}
}

func (o openTags) String() string {
	s := ""
	for i, n := range o {
		if i > 0 {
			s += ">"
		}
		s += n.Local
	}
	return s
}
