// Package bootstrap performs the collective start-up of a process group.
//
// Init brings up the message-passing transport, records the pool size and
// this process's rank, and runs every registered start-up callback exactly
// once in registration order. A failing callback aborts the whole group
// through the transport, since peers blocked in a collective would otherwise
// wait forever.
//
// Collective operations such as ProcessGroup.Duplicate must be called by
// every member of the group. A member that skips one leaves the others
// blocked; this is the caller's contract (ErrCollectiveMismatch) and is not
// detected.
package bootstrap
