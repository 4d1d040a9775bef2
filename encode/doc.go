// Package encode renders ir.Node trees back to JSON text, pretty
// printed or in compact wire form, optionally colored for terminals.
package encode
