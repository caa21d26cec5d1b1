// Package logtail reads the end of the glance log file and styles it for the
// TUI log pane.
//
// Read keeps a ring buffer of maxLines entries, so memory stays bounded no
// matter how large the file grows. Lines are the tint format written by the
// logging package:
//
//	2026-10-18 14:32:15 WRN sample failed app=glance segment=weather kind=transport
//
// Colorizer splits each line into timestamp, level, message and attributes
// and styles them with the active theme. Lines that do not match are shown
// as plain messages.
package logtail
