package model

// CertificateSigningRequestEntry is one element of the requirer unit databag
// under the certificate_signing_requests key.
type CertificateSigningRequestEntry struct {
	CertificateSigningRequest string `json:"certificate_signing_request"` // PEM encoded CSR.
	CA                        bool   `json:"ca"`                          // Whether the requirer asks for a CA certificate.
}

// ProviderCertificateEntry is one element of the provider application databag
// under the certificates key. All fields are PEM encoded without trailing
// newline.
type ProviderCertificateEntry struct {
	Certificate               string   `json:"certificate"`                 // Leaf certificate.
	CertificateSigningRequest string   `json:"certificate_signing_request"` // CSR the certificate answers.
	CA                        string   `json:"ca"`                          // Certificate of the signing CA.
	Chain                     []string `json:"chain"`                       // Chain certificates in the order supplied.
}

// RelationLifecycleEvent is the payload of relation created/broken events on
// the relation hub.
type RelationLifecycleEvent struct {
	RelationID  string `json:"relation_id"` // ID of the certificates relation.
	Application string `json:"application"` // Requirer application name.
}

// RequirerDatabagEvent is the payload of requirer databag update events on the
// relation hub. It carries the full announced list of one requirer unit.
// Entries absent from the list are withdrawn.
type RequirerDatabagEvent struct {
	RelationID  string `json:"relation_id"` // ID of the certificates relation.
	Application string `json:"application"` // Requirer application name.
	Unit        string `json:"unit"`        // Requirer unit name. Format is <application>/<ordinal>.

	CertificateSigningRequests []CertificateSigningRequestEntry `json:"certificate_signing_requests"`
}

// ProviderDatabagEvent is the payload of provider databag update events on the
// relation hub. It carries the full certificates list of one relation.
type ProviderDatabagEvent struct {
	RelationID  string `json:"relation_id"` // ID of the certificates relation.
	Application string `json:"application"` // Requirer application name.

	Certificates []ProviderCertificateEntry `json:"certificates"`
}
