// Package serde converts between Go values and JSON.
//
// Decoding reads a dom.Element: struct fields are looked up in whatever order the Go type declares
// them, which a forward-only ondemand cursor cannot offer. Encoding first records the value as a
// Tape of atoms and then writes the Tape through a builder.StringBuilder.
//
// Field names follow the `json` struct tag conventions of encoding/json: a tag renames a field,
// "-" skips it and the omitempty option drops empty values. Embedded structs are flattened.
//
//	type Person struct {
//		Name   string `json:"name"`
//		Age    int    `json:"age"`
//		Active bool   `json:"active"`
//	}
//
//	s, err := serde.Marshal(Person{Name: "Alice", Age: 30, Active: true})
//	// {"name":"Alice","age":30,"active":true}
//
//	p, err := serde.FromElement[Person](doc.Root())
package serde
