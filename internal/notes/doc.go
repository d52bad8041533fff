// Package notes provides access to the Notes application through its
// AppleScript automation surface.
//
// The automation interpreter is a text protocol with exactly one trust
// boundary: Escape. Every caller-supplied string crosses it before any
// script is assembled. Scripts report request-level failures through an
// "ERROR: " sentinel line, which the client checks before parsing any
// success output.
//
// Notes have no stable externally visible id, so a note's identity is
// its (account, title) pair and title lookups are first-match-wins when
// duplicates exist within a scope.
package notes
