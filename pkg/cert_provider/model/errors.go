package model

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrInvalidParameter = errors.New("") // Base error for invalid parameter
var ErrWrongStatus = errors.New("")
var ErrDataNotFound = errors.New("") // Base error for data not found
var ErrMismatch = errors.New("")     // Base error for certificate/CSR public key mismatch
var ErrInvalidChain = errors.New("") // Base error for unusable chain material
var ErrNotLeader = errors.New("")    // Base error for mutations on a non-leader unit
var ErrTimeout = errors.New("")      // Base error for bounded waits running out

var ErrCertificateRequestNotFound = fmt.Errorf("certificate request not found%w", ErrDataNotFound)
var ErrRelationNotFound = fmt.Errorf("relation not found%w", ErrDataNotFound)

var ErrWebhookUnreachable = errors.New("webhook unreachable")

func ErrToHttpStatus(err error) int {
	if errors.Is(err, ErrInvalidParameter) || errors.Is(err, ErrInvalidChain) {
		return http.StatusBadRequest
	} else if errors.Is(err, ErrDataNotFound) {
		return http.StatusNotFound
	} else if errors.Is(err, ErrWrongStatus) {
		return http.StatusConflict
	} else if errors.Is(err, ErrMismatch) {
		return http.StatusUnprocessableEntity
	} else if errors.Is(err, ErrNotLeader) {
		return http.StatusServiceUnavailable
	} else if errors.Is(err, ErrTimeout) {
		return http.StatusGatewayTimeout
	}

	return http.StatusInternalServerError
}
