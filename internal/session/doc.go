// Package session holds the client-side view-mode state machine.
//
// A client is always in exactly one of four states: bootstrapping (server
// has no credential yet), locked (no trust, no share link), shared (share
// ids present, reads only) or admin (trust flag held). The state is
// computed once at start from persisted state plus the inbound request
// context, then driven by two transitions: Authenticated and Logout.
//
// The trust flag survives restarts via a small JSON state file (StateFile),
// replacing the browser-storage flag of the original client with explicit
// persisted state. Logout is purely local; the server keeps no session to
// tear down.
package session
