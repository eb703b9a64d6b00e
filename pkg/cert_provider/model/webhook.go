package model

type WebhookEventType string

const (
	WebhookEventCertificateRequested WebhookEventType = "certificate.requested"
	WebhookEventCertificateAvailable WebhookEventType = "certificate.available"
	WebhookEventCertificateWithdrawn WebhookEventType = "certificate.withdrawn"
	WebhookEventRelationCreated      WebhookEventType = "relation.created"
	WebhookEventRelationBroken       WebhookEventType = "relation.broken"
)

type WebhookEvent struct {
	ID          string           `json:"id"`                    // Fingerprint or relation ID the event refers to.
	Url         string           `json:"url"`                   // The URL the WebhookEvent sent to.
	Type        WebhookEventType `json:"type"`                  // Type of the event.
	RelationID  string           `json:"relation_id,omitempty"` // Relation the event originated from, if any.
	Fingerprint string           `json:"fingerprint,omitempty"` // Request fingerprint the event refers to, if any.
	CreatedAt   int64            `json:"created_at"`            // Unix Time (in second) when the WebhookEvent was created.
}
