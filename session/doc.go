// Package session tracks the live provider-side sessions created by
// video chat and interpreter plugins: rooms, meetings, and interpreter
// assignments.
//
// The registry itself holds no session state; plugins that create
// provider-side resources record them in a Store so that access tokens
// can be validated and orphaned rooms can be found after a process
// restart. The production implementation is Redis-backed.
package session
