package provision

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/manualtls/manualtls/pkg/cert_provider/model"
	"github.com/manualtls/manualtls/pkg/cert_provider/storage"
)

// Unit names follow the <application>/<ordinal> convention of the
// orchestrator.
var unitNamePattern = regexp.MustCompile(`^.+/[0-9]+$`)

func ValidateListCertificateRequestsRequest(req storage.ListCertificateRequestsRequest) error {
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.Offset, validation.Min(0)),
		validation.Field(&req.Limit, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}

	return nil
}

func ValidateListRelationsRequest(req storage.ListRelationsRequest) error {
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.Offset, validation.Min(0)),
		validation.Field(&req.Limit, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}

	return nil
}

func ValidateProvideCertificateRequest(req ProvideCertificateRequest) error {
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.Requester, validation.Required),
		validation.Field(&req.CertificateSigningRequest, validation.Required),
		validation.Field(&req.Certificate, validation.Required),
		validation.Field(&req.CACertificate, validation.Required),
		validation.Field(&req.CAChain, validation.Required),
	); err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}

	return nil
}

func ValidateCreateRelationRequest(req CreateRelationRequest) error {
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.Requester, validation.Required),
		validation.Field(&req.RelationID, validation.Required),
		validation.Field(&req.Application, validation.Required),
	); err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}

	return nil
}

func ValidateSyncRelationRequest(req SyncRelationRequest) error {
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.RelationID, validation.Required),
		validation.Field(&req.Application, validation.Required),
		validation.Field(&req.Unit, validation.Required, validation.Match(unitNamePattern)),
	); err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}

	return nil
}

func ValidateBreakRelationRequest(req BreakRelationRequest) error {
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.Requester, validation.Required),
		validation.Field(&req.RelationID, validation.Required),
	); err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}

	return nil
}
