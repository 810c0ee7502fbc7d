package bootstrap

import (
	"context"
	"fmt"
)

// ProcessGroup is a set of cooperating processes with an isolated
// communication context.
type ProcessGroup struct {
	comm Communicator
}

// NewProcessGroup wraps an existing communicator.
func NewProcessGroup(comm Communicator) *ProcessGroup {
	return &ProcessGroup{comm: comm}
}

// Size is the number of processes in the group.
func (g *ProcessGroup) Size() int { return g.comm.Size() }

// Rank is this process's index in 0..Size-1.
func (g *ProcessGroup) Rank() int { return g.comm.Rank() }

// ContextID identifies the group's communication context.
func (g *ProcessGroup) ContextID() string { return g.comm.ContextID() }

// Duplicate returns a group over the same processes with a fresh context, so
// traffic on it cannot be confused with traffic on g. Every member must call
// it; see ErrCollectiveMismatch.
func (g *ProcessGroup) Duplicate(ctx context.Context) (*ProcessGroup, error) {
	comm, err := g.comm.Duplicate(ctx)
	if err != nil {
		return nil, fmt.Errorf("duplicate process group %s: %w", g.comm.ContextID(), err)
	}
	return &ProcessGroup{comm: comm}, nil
}
