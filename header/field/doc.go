// Package field provides the low-level pieces of header parsing: the Field
// type holding one unfolded name/body pair, the line scanner that turns raw
// header lines into fields, and the RFC 2047 encoded-word decoder used for
// the Subject.
//
// Everything here is liberal in what it accepts. Lines that cannot be parsed
// are dropped and reported back to the caller rather than treated as errors.
package field
