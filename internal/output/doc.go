// Package output renders gameroot command results for people and for
// scripts.
//
// A Printer writes either lipgloss-styled text or JSON, chosen once by the
// --json flag:
//
//	p := output.NewPrinter(cmd.OutOrStdout(), jsonMode, useColor(cmd)).
//		WithStderr(cmd.ErrOrStderr())
//	p.KeyValue("game root", res.GameRoot())
//
// Errors carry process exit codes:
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad arguments, file or module not found
//	output.ExitSystemError // 2: I/O failure, unreadable layout
//	output.ExitConflict    // 3: module already loaded from elsewhere
//
// In JSON mode an error is written to stdout as {"error": "...", "code": N}
// so a caller parsing stdout always sees a document.
//
// Debug lines are written to stderr only when the printer is verbose and
// never in JSON mode. The module locator's probe trace is routed here.
package output
