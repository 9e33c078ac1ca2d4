// Package edit maps editing gestures on list lines to buffer directives.
//
// The engine is pure: it classifies the current line via pkg/list, decides
// what the gesture means for that line, and returns a Directive describing
// line edits plus an optional cursor target and mode flag. It never
// mutates a buffer.
// A host adapter applies the directive (or performs its default behavior
// when the directive is a passthrough).
//
// The Golden Rule: pkg/edit imports ONLY pkg/list and the standard
// library. Every function is total; unrecognized input degrades to a
// passthrough directive, never an error.
package edit
