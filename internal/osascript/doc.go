// Package osascript runs AppleScript sources through the system
// osascript binary with a bounded execution time. It is the only place
// in the module that shells out; higher layers hand it fully assembled
// scripts and parse the returned text themselves.
package osascript
