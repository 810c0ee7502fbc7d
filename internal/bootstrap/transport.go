package bootstrap

import "context"

// Transport is a message-passing layer able to form a process group.
type Transport interface {
	// Init joins the world group. It is collective across all processes.
	Init(ctx context.Context) (Communicator, error)
	// Abort terminates every process of the group.
	Abort(ctx context.Context, code int, reason string) error
	// Finalize leaves the group cleanly.
	Finalize(ctx context.Context) error
}

// Communicator is one process's handle on a group.
type Communicator interface {
	Size() int
	Rank() int
	// ContextID identifies the communication context shared by all members.
	ContextID() string
	// Duplicate creates a new context over the same members. Collective.
	Duplicate(ctx context.Context) (Communicator, error)
}
