// Package token provides JSON tokenization with source positions.
//
// Tokens reference byte offsets into a PosDoc, which maps offsets back
// to line/column pairs for error reporting.
package token
