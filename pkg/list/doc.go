// Package list classifies single lines of text as markdown list items
// and resolves which marker to use at a given nesting depth.
//
// This package contains:
//   - Item, the immutable descriptor produced by classification
//   - Config, the marker configuration and its compiled grammar
//   - The depth and colon marker selection policy
//
// The Golden Rule: pkg/list imports ONLY the standard library.
// Classification never fails; a line that matches no grammar rule
// classifies as nil.
package list
