package textutil

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ParseXML reads an XML document into the same Node shape the JSON
// tagged-tree dialect uses, so both upstream generations feed one
// traversal. Character data is kept as trimmed string leaves.
func ParseXML(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("xml document has no root element")
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing XML: %w", err)
		}
		if start, ok := token.(xml.StartElement); ok {
			return parseElement(decoder, start)
		}
	}
}

// ParseXMLString is a convenience wrapper for response bodies held as
// strings.
func ParseXMLString(s string) (*Node, error) {
	return ParseXML(strings.NewReader(s))
}

func parseElement(decoder *xml.Decoder, start xml.StartElement) (*Node, error) {
	node := &Node{Tag: start.Name.Local}
	if len(start.Attr) > 0 {
		node.Attr = make(map[string]string, len(start.Attr))
		for _, attr := range start.Attr {
			node.Attr[attr.Name.Local] = attr.Value
		}
	}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return node, nil
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing XML: %w", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			child, err := parseElement(decoder, t)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		case xml.CharData:
			if text := strings.TrimSpace(string(t)); text != "" {
				node.Children = append(node.Children, text)
			}
		case xml.EndElement:
			return node, nil
		}
	}
}

// LegacyValue reduces a parsed node to the legacy flat-object dialect:
// children grouped by tag name (repeated tags collapse into a slice),
// attributes merged in as plain keys, and text-only elements reduced to
// their string content. This is the shape the first API generation
// produced once its XML was decoded.
func (n *Node) LegacyValue() any {
	if n == nil {
		return nil
	}

	var texts []string
	grouped := map[string]any{}
	for _, child := range n.Children {
		switch t := child.(type) {
		case string:
			texts = append(texts, t)
		case *Node:
			value := t.LegacyValue()
			if existing, ok := grouped[t.Tag]; ok {
				if slice, ok := existing.([]any); ok {
					grouped[t.Tag] = append(slice, value)
				} else {
					grouped[t.Tag] = []any{existing, value}
				}
			} else {
				grouped[t.Tag] = value
			}
		}
	}

	if len(grouped) == 0 && len(n.Attr) == 0 {
		return strings.Join(texts, " ")
	}
	for k, v := range n.Attr {
		if _, taken := grouped[k]; !taken {
			grouped[k] = v
		}
	}
	if len(texts) > 0 {
		grouped["#text"] = strings.Join(texts, " ")
	}
	return grouped
}
