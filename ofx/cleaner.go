package ofx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"
)

// Cleaner cleans the given data to return valid XML.
type Cleaner interface {
	Init(data []byte) error
	CleanupXML() (*bytes.Buffer, error)
}

type cleaner struct {
	data        []byte            // XML like data, starting at the OFX tag.
	tags        *openTags         // Open aggregates.
	lastData    string            // Holds the last parsed char data.
	lastElement *xml.StartElement // Last parsed element start tag.
	cleanXML    bytes.Buffer      // Buffer to hold cleaned XML.
}

// NewCleaner returns a cleaner for a single document.
func NewCleaner() Cleaner {
	return &cleaner{}
}

// Init locates the start of the OFX body in data. The SGML header is discarded.
func (c *cleaner) Init(data []byte) error {
	xmlIndex := bytes.Index(data, []byte("<OFX>"))
	if xmlIndex == -1 {
		return fmt.Errorf("error - invalid file, OFX tag not found")
	}
	c.data = data[xmlIndex:]
	c.tags = &openTags{}
	c.lastData = ""
	c.lastElement = nil
	c.cleanXML.Reset()
	return nil
}

// CleanupXML returns cleaned XML from the data given to Init.
// Missing starting or closing tags are added and spaces/newlines trimmed.
func (c *cleaner) CleanupXML() (*bytes.Buffer, error) {
	if c.tags == nil {
		return nil, fmt.Errorf("error - cleaner not initialized")
	}
	decoder := xml.NewDecoder(bytes.NewReader(c.data))
	for {
		token, err := decoder.RawToken()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		switch t := token.(type) {
		case xml.CharData:
			c.lastData = escapeString(strings.TrimSpace(string(t)))
			glog.V(3).Infof("case chardata (%s)", c.lastData)
		case xml.StartElement:
			if err := c.startElement(t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if err := c.endElement(t); err != nil {
				return nil, err
			}
		}
	}
	out := c.cleanXML
	return &out, nil
}

func (c *cleaner) startElement(t xml.StartElement) error {
	glog.V(3).Infof("case start element %s", t.Name.Local)
	// A start tag while char data is pending means the previous end tag is missing.
	if c.lastData != "" {
		if c.lastElement == nil {
			return fmt.Errorf("error: charData(%s) missing start and end tags", c.lastData)
		}
		writeElement(c.lastElement, c.lastData, &c.cleanXML)
		c.lastData = ""
		c.lastElement = nil
	}
	// Aggregates are flushed and pushed for closing later. Elements can't nest.
	if IsAggregate(t.Name.Local) {
		c.tags.push(t.Name)
		writeStartTag(&t, &c.cleanXML)
	} else {
		c.lastElement = &t
	}
	glog.V(3).Infof("Open: %s", c.tags)
	return nil
}

func (c *cleaner) endElement(t xml.EndElement) error {
	glog.V(3).Infof("case end element %s", t.Name.Local)
	isAggregate := IsAggregate(t.Name.Local)
	if c.lastData != "" {
		// Another element is open, so we can not tell which one lost its closing tag.
		if c.lastElement != nil && t.Name != c.lastElement.Name && !isAggregate {
			return fmt.Errorf("error: charData(%s) has ambigious closing tags", c.lastData)
		}
		if c.lastElement == nil && isAggregate {
			return fmt.Errorf("error: charData(%s) missing start and end tags", c.lastData)
		}
		if c.lastElement != nil {
			writeElement(c.lastElement, c.lastData, &c.cleanXML)
		} else {
			writeElementFromName(t.Name, c.lastData, &c.cleanXML)
		}
		c.lastData = ""
		c.lastElement = nil
	}

	if !isAggregate {
		return nil
	}
	for _, n := range c.tags.closeThrough(t.Name.Local) {
		writeEndTag(n, &c.cleanXML)
	}
	glog.V(3).Infof("Open: %s", c.tags)
	return nil
}
