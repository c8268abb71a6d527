// Package logtail reads the trailing lines of a log file for display.
//
// Read always yields displayable text: for an unreadable file that is a short
// "Error reading file: " message shown in place of the content, and the
// cause is returned alongside it. Files that are not valid
// UTF-8 are decoded as ISO-8859-1 so that binary noise in a log still
// renders.
//
// The file is read in full before the tail is sliced off. That keeps line
// terminators byte-exact at the cost of memory proportional to file size.
package logtail
