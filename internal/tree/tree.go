package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Value is a single configuration value: either a Leaf or a *Node.
type Value interface {
	value()
}

// Leaf is a scalar string value terminating a key path. The string is
// kept exactly as it appeared after the '=', with surrounding
// whitespace trimmed.
type Leaf string

func (Leaf) value() {}

// MarshalJSON renders the leaf as a JSON string, never as a number or
// boolean.
func (l Leaf) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(l))
}

// Node is a namespace mapping keys to further values. Keys preserve
// insertion order.
type Node struct {
	keys     []string
	children map[string]Value
}

func (*Node) value() {}

// NewNode returns an empty namespace.
func NewNode() *Node {
	return &Node{children: make(map[string]Value)}
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.keys)
}

// Keys returns the direct child keys in insertion order.
func (n *Node) Keys() []string {
	keys := make([]string, len(n.keys))
	copy(keys, n.keys)
	return keys
}

// Get returns the direct child bound under key.
func (n *Node) Get(key string) (Value, bool) {
	v, ok := n.children[key]
	return v, ok
}

// put binds value under key, appending to the key order only when the
// key is new.
func (n *Node) put(key string, value Value) {
	if _, ok := n.children[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.children[key] = value
}

// ConflictError reports a dotted key that cannot be inserted because
// one of its intermediate segments is already bound to a scalar value
// and therefore cannot act as a namespace.
type ConflictError struct {
	// Key is the full dotted key whose insertion failed.
	Key string
	// Prefix is the dotted path, up to and including the offending
	// segment, that already holds a value.
	Prefix string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot insert key %q: %q already holds a value", e.Key, e.Prefix)
}

// Insert binds value under the dotted key, creating intermediate
// namespaces as needed.
//
// All segments but the last must resolve to namespaces; a segment
// already bound to a Leaf yields a *ConflictError and leaves the tree
// with any namespaces created so far (the caller discards the tree on
// error). The final segment is bound unconditionally, so a repeated
// key keeps its last value regardless of what was there before.
func (n *Node) Insert(key, value string) error {
	segments := strings.Split(key, ".")
	current := n

	for i, segment := range segments[:len(segments)-1] {
		child, ok := current.children[segment]
		if !ok {
			next := NewNode()
			current.put(segment, next)
			current = next
			continue
		}

		next, ok := child.(*Node)
		if !ok {
			return &ConflictError{
				Key:    key,
				Prefix: strings.Join(segments[:i+1], "."),
			}
		}
		current = next
	}

	current.put(segments[len(segments)-1], Leaf(value))
	return nil
}

// MarshalJSON renders the namespace as a JSON object with members in
// insertion order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range n.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		child, err := json.Marshal(n.children[key])
		if err != nil {
			return nil, err
		}
		buf.Write(child)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EncodeIndent renders the tree as pretty-printed JSON indented with
// the given number of spaces per level. The result carries no trailing
// newline.
func (n *Node) EncodeIndent(indent int) ([]byte, error) {
	raw, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", strings.Repeat(" ", indent)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
