package leader

import (
	"context"
	"io"
)

// Elector reports whether this unit is the authoritative writer. Every
// mutating operation of the provisioning engine consults it first.
type Elector interface {
	io.Closer
	IsLeader(ctx context.Context) bool
}

// StaticElector carries a fixed designation. It is used when the deployment
// already elected a leader through other means and configured it explicitly.
type StaticElector struct {
	leader bool
}

func NewStaticElector(leader bool) *StaticElector {
	return &StaticElector{leader: leader}
}

func (e *StaticElector) IsLeader(ctx context.Context) bool {
	return e.leader
}

func (e *StaticElector) Close() error {
	return nil
}
