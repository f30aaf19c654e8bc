// Package terminal provides cell-level terminal output for the engine.
//
// Features:
//   - True color (24-bit) and 256-color palette support
//   - Style-coalesced SGR output through a buffered writer
//   - Raw stdin input parsing with escape sequence handling
//   - SIGWINCH resize detection
//   - OSC 11 background color detection
//   - Clean terminal restoration on exit/panic
//
// The default implementation bypasses terminfo/termcap entirely, emitting
// direct ANSI sequences. Target environments: Linux, macOS, BSDs with
// xterm-compatible terminals. A tcell-backed implementation of the same
// interface is available for everything else.
package terminal
