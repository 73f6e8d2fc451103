// Package formjson converts between the state of HTML form elements and plain
// structured data.
//
// Field names use bracket notation (user[address][city], tags[]) and are
// parsed into a tree that mirrors the resulting data: [ToJSON] reads the live
// elements under a root into nested [*Object] values (or a flat list of
// [Pair]s), [FromJSON] writes such data back into the elements, and [Reset]
// and [Clear] restore defaults or empty every field. Maps whose keys are
// exactly 0..n-1 are turned into slices.
//
// The package does not know about any concrete DOM. Elements are supplied by
// an implementation of [Container] and [Element]; the htmldom sub-package
// provides one backed by golang.org/x/net/html.
package formjson
