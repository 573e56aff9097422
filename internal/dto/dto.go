// Package dto defines the response shapes. Models never serialize
// directly: the password hash stays write-only and relation fields stay
// out of the wire format.
package dto

import (
	"github.com/emrecancorapci/chingu-backend/internal/utils"
)

// Envelope is the success wrapper for single payloads.
type Envelope struct {
	Data interface{} `json:"data"`
}

// PagedEnvelope is the success wrapper for collection payloads.
type PagedEnvelope struct {
	Data       interface{}              `json:"data"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// CreatedDTO carries the server-assigned fields of a new row.
type CreatedDTO struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// DeletedDTO identifies a removed row.
type DeletedDTO struct {
	ID string `json:"id"`
}

// RegisteredDTO is returned on successful registration.
type RegisteredDTO struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// TokenDTO is returned on successful login.
type TokenDTO struct {
	Token string `json:"token"`
}
