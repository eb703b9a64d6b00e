package model

// Relation is one active certificates relation between this provider and a
// requirer application.
type Relation struct {
	ID          string   `json:"id"`          // Relation ID assigned by the orchestrator.
	Application string   `json:"application"` // Requirer application name.
	Units       []string `json:"units"`       // Requirer units seen on this relation.
	Version     int64    `json:"version"`     // Version of the relation record.
	CreatedAt   int64    `json:"created_at"`  // Unix Time (in second) when the relation was created.
	UpdatedAt   int64    `json:"updated_at"`  // Unix Time (in second) when the relation was last updated.
}

// HasUnit reports whether unit has been seen on the relation.
func (r *Relation) HasUnit(unit string) bool {
	for _, existing := range r.Units {
		if existing == unit {
			return true
		}
	}
	return false
}
