// Package page builds the single-file HTML log viewer.
//
// Build reads the tail and runs the analyzer for every file up front, then
// Render executes the embedded template. The page carries its own script:
// a case-insensitive filter over file names and tail text, collapsible
// directory sections, and a one-at-a-time tail expander whose analysis box
// is shown exactly when its tail is shown.
package page
