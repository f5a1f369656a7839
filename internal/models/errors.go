package models

import "errors"

var (
	ErrCatalogLoad    = errors.New("catalog load failed")
	ErrEmptyPool      = errors.New("no cards in pool")
	ErrPackInProgress = errors.New("a pack is already being opened")
)

// ErrorResponse é o corpo JSON de todo erro da API
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
