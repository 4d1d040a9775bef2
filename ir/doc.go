// Package ir provides the in-memory representation of JSON documents.
//
// # Overview
//
// All documents handled by this module, whether instances under
// validation, schema documents under compilation, or the embedded
// meta-schema, are represented as trees of ir.Node.
//
// The IR works as a recursive tagged union structure, where values are
// placed in fields depending on the node type.
//
// # Node Types
//
// The Type field indicates the node's type:
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64 or float64)
//   - StringType: string value
//   - ArrayType: ordered list of nodes
//   - ObjectType: key-value pairs (fields and values)
//
// # IR Structure Constraints
//
// For ObjectType nodes, Fields[i] is the key for the value at
// Values[i], so there are always the same number of fields as values.
// Fields are always string typed. Field order is insertion order, and
// duplicate keys keep the last value seen.
//
// Number values are placed under exactly one of:
//
//   - Int64: if the lexeme had no decimal point (64-bit signed)
//   - Float64: otherwise (64-bit IEEE float)
//
// The distinction is preserved by Equal: an integer and a float are
// never structurally equal, even when mathematically so.
//
// # Positions
//
// Every node carries the source position of the token it was parsed
// from. Synthetic nodes carry token.Unknown(). Positions never
// participate in Equal, Compare or Hash.
package ir
