package pkix

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
)

// ParseCertificates parses a PEM bundle into certificates. The first
// certificate is the leaf. The rest are chain certificates in the order they
// appear in the bundle.
func ParseCertificates(certRaw []byte) ([]*x509.Certificate, error) {
	certs := make([]*x509.Certificate, 0, 4)
	for {
		pemBlock, remains := pem.Decode(certRaw)
		if pemBlock == nil {
			return nil, errors.New("invalid certificate")
		}
		if pemBlock.Type != "CERTIFICATE" {
			return nil, fmt.Errorf("unexpected PEM block %q", pemBlock.Type)
		}

		cert, err := x509.ParseCertificate(pemBlock.Bytes)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)

		certRaw = bytes.TrimSpace(remains)
		if len(certRaw) == 0 {
			break
		}
	}

	return certs, nil
}

// ParseCertificateRequest parses a PEM encoded certificate signing request.
func ParseCertificateRequest(csrRaw []byte) (*x509.CertificateRequest, error) {
	pemBlock, _ := pem.Decode(csrRaw)
	if pemBlock == nil {
		return nil, errors.New("invalid certificate request")
	}
	if pemBlock.Type != "CERTIFICATE REQUEST" && pemBlock.Type != "NEW CERTIFICATE REQUEST" {
		return nil, fmt.Errorf("unexpected PEM block %q", pemBlock.Type)
	}

	return x509.ParseCertificateRequest(pemBlock.Bytes)
}

// GetFingerprint returns the lowercase hex encoded SHA-256 digest over the
// DER bytes of the certificate signing request. The digest is stable across
// PEM re-wrapping and whitespace changes of the source document.
func GetFingerprint(csr *x509.CertificateRequest) string {
	digest := sha256.Sum256(csr.Raw)
	return hex.EncodeToString(digest[:])
}

// IsPublicKeyOf reports whether the certificate carries the public key of the
// certificate signing request.
func IsPublicKeyOf(cert *x509.Certificate, csr *x509.CertificateRequest) bool {
	switch certKey := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		csrKey, ok := csr.PublicKey.(*rsa.PublicKey)
		return ok && certKey.N.Cmp(csrKey.N) == 0 && certKey.E == csrKey.E
	case *ecdsa.PublicKey:
		csrKey, ok := csr.PublicKey.(*ecdsa.PublicKey)
		return ok && certKey.Curve == csrKey.Curve && certKey.X.Cmp(csrKey.X) == 0 && certKey.Y.Cmp(csrKey.Y) == 0
	case ed25519.PublicKey:
		csrKey, ok := csr.PublicKey.(ed25519.PublicKey)
		return ok && certKey.Equal(csrKey)
	}

	return false
}

// MarshalCertificates encodes certificates into a PEM bundle in the given
// order.
func MarshalCertificates(certs ...*x509.Certificate) ([]byte, error) {
	buf := bytes.Buffer{}
	for _, cert := range certs {
		pemBlock := pem.Block{
			Type:  "CERTIFICATE",
			Bytes: cert.Raw,
		}
		if err := pem.Encode(&buf, &pemBlock); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
