package tree

// Package tree holds the in-memory representation of one parsed
// configuration file: a tree of namespaces whose leaves are the raw
// string values taken from the right-hand side of assignments.
//
// # Usage
//
//	root := tree.NewNode()
//	if err := root.Insert("server.host", "localhost"); err != nil {
//	    // "server" or a longer prefix already holds a scalar value
//	}
//	out, _ := root.EncodeIndent(2)
//
// # Internal Architecture
//
//   - Value: closed sum type with exactly two variants, Leaf and *Node.
//     Consumers switch exhaustively over the two.
//
//   - Leaf: raw string, serialized as a JSON string with no type
//     inference (the value "8080" stays "8080", not a number).
//
//   - Node: namespace. Children are kept in insertion order so output
//     is reproducible across runs.
//
//   - Insert: dotted-key insertion. Intermediate namespaces are created
//     on demand; an intermediate segment already bound to a Leaf is a
//     ConflictError. The final segment always overwrites, so a repeated
//     key keeps its last value.
