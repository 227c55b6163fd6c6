// Package cli provides the interactive vitalkeeper command-line client.
//
// It wires configuration, the local SQLite store and the services into a
// REPL. Typical flow: offer to log in with the remembered email, then execute
// user commands until exit.
//
// Key features:
//   - Signup (onboarding questionnaire) / Login / Logout
//   - Daily check-ins, history, progress, timeline and milestones
//   - Encrypted health baseline: show and update
//   - Partner pairing and comparison
//   - JSON export
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
