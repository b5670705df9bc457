package domain

import "errors"

var (
	// ErrUnsupportedFormat is returned for export formats other than json and csv.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrInvalidImportFormat is returned when JSON import data is neither a
	// document nor an array of records.
	ErrInvalidImportFormat = errors.New("invalid JSON format")
	// ErrInvalidDocument is returned when data does not have the document shape.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidUnit is returned for weight units other than kg, lb and jin.
	ErrInvalidUnit = errors.New("invalid unit")
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
)
