// Package app wires glance together: configuration, logging, adapters, the
// shared bar table and whichever renderer was selected.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Read ~/.config/glance/config.toml
//	       ├─────> logging.New()      tint logger (stderr, or the log file in TUI mode)
//	       ├─────> Registrations()    One per enabled segment
//	       ├─────> Start()            One goroutine per registration
//	       └─────> bar.Stream()       Line output (plain, i3bar, pango)
//	               or ui.Run()        Interactive TUI
//
//	Per registration:
//	┌─────────────────────────────────────────┐
//	│ Serve() goroutine                       │
//	│  ├─> Sample()  adapter read + format    │
//	│  └─> table.Set()                        │
//	│      └─> renderer redraws on Changed()  │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// Each polled registration samples once at startup and then on its own
// ticker. The sample runs on the ticker goroutine, so requests to one
// endpoint never overlap and a slow feed only delays itself. The volume
// segment is event driven instead.
//
// # Error Handling
//
// Fatal errors (returned from Run): an unreadable or invalid config, an
// unknown output mode, or a log file that cannot be opened.
//
// Everything else is logged and rendered as the "error" placeholder segment.
// The next tick tries again.
package app
