// Package header provides the header of an email message: an ordered list of
// fields that tolerates repeated names and is looked up without regard to
// case.
//
// The provided Parse() function will parse up headers in a flexible way that
// is built on top of field.ParseLines() so that folded, forged, or otherwise
// broken headers never stop a message from being read. Helpers are provided
// for the semantic values found in header fields: address lists and dates.
package header
