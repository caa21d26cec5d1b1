// Package ui is the interactive terminal view of glance, built on Bubble Tea.
//
// The model shows a header, the composed bar and a command bar. It redraws
// whenever the shared bar.Table signals a change, so it never polls the
// adapters itself.
//
// Keys:
//
//   - l toggles a log pane that tails the glance log file
//   - T cycles the theme, saves it to prefs.toml and restyles every segment
//   - h or ? shows help, q or ctrl+c quits
//
// In the log pane, space toggles follow mode and g/G jump to the top or
// bottom. The pane refreshes every two seconds while open.
package ui
