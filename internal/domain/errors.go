package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidRecord           = errors.New("stored record is malformed")
	ErrUnsupportedCategory     = errors.New("unsupported category")
	ErrRateTableNotFound       = errors.New("no rate table for tax year")
	ErrInvalidRateTable        = errors.New("rate table is inconsistent")
	ErrInvalidFilingTransition = errors.New("invalid VAT filing status transition")
	ErrDuplicateRecord         = errors.New("record already exists")
	ErrUploadFailed            = errors.New("report upload to storage failed")
)
