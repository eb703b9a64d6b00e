package model

type RequestStatus string

const (
	RequestStatusOutstanding RequestStatus = "outstanding"
	RequestStatusFulfilled   RequestStatus = "fulfilled"
)

// RequirerRef identifies one requirer unit which announced a CSR on a relation.
type RequirerRef struct {
	RelationID  string `json:"relation_id"` // ID of the certificates relation.
	Application string `json:"application"` // Requirer application name.
	Unit        string `json:"unit"`        // Requirer unit name. Format is <application>/<ordinal>.
}

// CertificateBundle is the material attached to a request when an operator
// provides a certificate. All fields are PEM encoded.
type CertificateBundle struct {
	Certificate   string   `json:"certificate"`    // Leaf certificate.
	CACertificate string   `json:"ca_certificate"` // Certificate of the signing CA.
	CAChain       []string `json:"ca_chain"`       // Chain certificates in the order supplied by the operator.
}

type CertificateRequest struct {
	Fingerprint string        `json:"fingerprint"` // Lowercase hex SHA-256 over the DER bytes of the CSR.
	Version     int64         `json:"version"`     // Version of the request record.
	Status      RequestStatus `json:"status"`      // Status of the request.

	CertificateSigningRequest string `json:"certificate_signing_request"` // PEM encoded CSR exactly as announced.
	IsCA                      bool   `json:"is_ca"`                       // Whether the requirer asks for a CA certificate.

	Requirers []RequirerRef `json:"requirers"` // Requirer units interested in this CSR.

	Bundle *CertificateBundle `json:"bundle,omitempty"` // Provided material. Nil while the request is outstanding.

	CreatedAt   int64  `json:"created_at"`   // Unix Time (in second) when the request was first announced.
	CreatedBy   string `json:"created_by"`   // Unit which first announced the request.
	FulfilledAt int64  `json:"fulfilled_at"` // Unix Time (in second) when the certificate was provided.
	FulfilledBy string `json:"fulfilled_by"` // Operator who provided the certificate.
}

// HasRequirer reports whether ref is already recorded on the request.
func (r *CertificateRequest) HasRequirer(ref RequirerRef) bool {
	for _, existing := range r.Requirers {
		if existing == ref {
			return true
		}
	}
	return false
}

// AddRequirer records ref on the request. Re-announcements are no-ops.
// It reports whether the requirer set changed.
func (r *CertificateRequest) AddRequirer(ref RequirerRef) bool {
	if r.HasRequirer(ref) {
		return false
	}
	r.Requirers = append(r.Requirers, ref)
	return true
}

// RemoveRequirer removes ref from the request and reports whether the
// requirer set changed.
func (r *CertificateRequest) RemoveRequirer(ref RequirerRef) bool {
	for i, existing := range r.Requirers {
		if existing == ref {
			r.Requirers = append(r.Requirers[:i], r.Requirers[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveRelation removes every requirer ref belonging to relationID and
// reports whether the requirer set changed.
func (r *CertificateRequest) RemoveRelation(relationID string) bool {
	kept := r.Requirers[:0]
	for _, existing := range r.Requirers {
		if existing.RelationID != relationID {
			kept = append(kept, existing)
		}
	}
	changed := len(kept) != len(r.Requirers)
	r.Requirers = kept
	return changed
}
