// Package commands defines the hotprospects CLI and wires dependencies for subcommands.
//
// Commands
//
//   - tui        Run the terminal UI (default)
//   - add        Add a prospect by name and email
//   - list       Print prospects for a filter
//   - delete     Remove prospects by id
//   - contact    Mark prospects contacted or uncontacted
//   - me         Show or edit your profile and its QR code
//   - readings   Fetch the readings document and report its size
//   - remind     Schedule a reminder to contact a prospect
//   - serve      Share prospects and your QR code over HTTP
//   - seed       Insert random prospects
//   - reset      Delete every prospect
//   - config     Write the effective configuration to disk
//
// The root command loads configuration, opens the log, migrates and opens
// the database before any subcommand runs.
package commands
