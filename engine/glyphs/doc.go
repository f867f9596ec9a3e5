// Package glyphs builds a single-channel glyph atlas for the printable ASCII range.
//
// Building happens in two passes over the same glyph sequence. The sizing pass finds the bounding box of a
// greedy row packing, the packing pass uploads every bitmap into a target of exactly that size and records
// the metrics the draw loop needs. Both passes decide row breaks with the same rule and the builder verifies
// that they agreed.
package glyphs
