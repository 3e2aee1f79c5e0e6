package parse

// Package parse reads line-oriented key = value configuration text and
// builds a tree.Node per file.
//
// # Line forms
//
// Three line forms are recognized:
//
//  1. Comment: first non-blank character is '#'. Discarded.
//  2. Blank: only whitespace. Discarded.
//  3. Assignment: key = value, where the key matches [A-Za-z0-9._-]+
//     and the value is the rest of the line, trimmed.
//
// Anything else is silently skipped. This is deliberate: a malformed
// line ignores itself rather than failing the whole file, so partially
// hand-edited files still convert.
//
// Dots in the key denote nesting: "server.host = localhost" binds
// "localhost" under the "host" key of the "server" namespace.
