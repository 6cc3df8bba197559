package textutil

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is one element of the tagged-tree document dialect: the shape the
// current upstream API uses for law_full_text, {tag, attr, children}.
// Children holds *Node values and string leaves.
type Node struct {
	Tag      string
	Attr     map[string]string
	Children []any
}

// NodeFromValue interprets a decoded JSON value as a tagged-tree node.
// It accepts a map with tag/attr/children fields (case-insensitive) and
// returns nil for anything else.
func NodeFromValue(v any) *Node {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	tagRaw, hasTag := FirstMatchingKey(m, "tag")
	childrenRaw, hasChildren := FirstMatchingKey(m, "children")
	if !hasTag && !hasChildren {
		return nil
	}

	n := &Node{}
	if s, ok := tagRaw.(string); ok {
		n.Tag = s
	}
	if attrRaw, ok := FirstMatchingKey(m, "attr", "attrs", "attributes"); ok {
		if attrMap, ok := attrRaw.(map[string]any); ok {
			n.Attr = make(map[string]string, len(attrMap))
			for k, v := range attrMap {
				n.Attr[k] = Stringify(v)
			}
		}
	}
	for _, child := range EnsureArray(childrenRaw) {
		if s, ok := child.(string); ok {
			n.Children = append(n.Children, s)
			continue
		}
		if childNode := NodeFromValue(child); childNode != nil {
			n.Children = append(n.Children, childNode)
		}
	}
	return n
}

// LooksLikeNode reports whether v is a tagged-tree node or a slice
// containing one. Dialect detection happens once at the normalizer's
// entry point.
func LooksLikeNode(v any) bool {
	if NodeFromValue(v) != nil {
		return true
	}
	if slice, ok := v.([]any); ok {
		for _, entry := range slice {
			if NodeFromValue(entry) != nil {
				return true
			}
		}
	}
	return false
}

// ChildByTag returns the first direct child with the given tag,
// case-insensitive.
func (n *Node) ChildByTag(tag string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.Children {
		if cn, ok := child.(*Node); ok && strings.EqualFold(cn.Tag, tag) {
			return cn
		}
	}
	return nil
}

// Descendants collects every descendant with the given tag in
// breadth-first order, including n itself.
func (n *Node) Descendants(tag string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	queue := []*Node{n}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if strings.EqualFold(current.Tag, tag) {
			out = append(out, current)
		}
		for _, child := range current.Children {
			if cn, ok := child.(*Node); ok {
				queue = append(queue, cn)
			}
		}
	}
	return out
}

// FindFirst returns the first descendant with the given tag in
// depth-first order, or n itself when it matches.
func (n *Node) FindFirst(tag string) *Node {
	if n == nil {
		return nil
	}
	if strings.EqualFold(n.Tag, tag) {
		return n
	}
	for _, child := range n.Children {
		if cn, ok := child.(*Node); ok {
			if found := cn.FindFirst(tag); found != nil {
				return found
			}
		}
	}
	return nil
}

// TextContent flattens the node's string leaves and descendant text,
// joined by single spaces.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	var parts []string
	for _, child := range n.Children {
		switch t := child.(type) {
		case string:
			if trimmed := NormalizeWhitespace(t); trimmed != "" {
				parts = append(parts, trimmed)
			}
		case *Node:
			if text := t.TextContent(); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}

// Attribute reads an attribute by name, case-insensitive, trimmed.
func (n *Node) Attribute(name string) string {
	if n == nil {
		return ""
	}
	if v, ok := n.Attr[name]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range n.Attr {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Stringify renders a decoded scalar as a trimmed string. Numeric
// attribute values arrive as float64 from the JSON decoder and must not
// pick up a trailing ".0".
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
