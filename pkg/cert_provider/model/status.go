package model

type UnitState string

const (
	UnitStateWaiting UnitState = "waiting"
	UnitStateActive  UnitState = "active"
	UnitStateError   UnitState = "error"
)

// UnitStatus is the coarse health the orchestration runtime polls. It is
// derived from ledger state and never stored.
type UnitStatus struct {
	Status  UnitState `json:"status"`
	Message string    `json:"message"`
}
