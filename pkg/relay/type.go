package relay

type EventType int

const (
	RelationCreated EventType = 101
	RelationBroken  EventType = 102

	RequirerDatabag EventType = 201
	ProviderDatabag EventType = 202
)
