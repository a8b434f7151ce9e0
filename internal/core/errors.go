package core

import "errors"

var (
	ErrEmptyQuery          = errors.New("query is empty")
	ErrEmptySession        = errors.New("session id is empty")
	ErrGeneration          = errors.New("failed to generate response")
	ErrUnknownStrategy     = errors.New("unknown chunking strategy")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file is too large")
	ErrEmptyDocument       = errors.New("no text could be extracted")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrInvalidBooking      = errors.New("invalid booking")
	ErrDimensionMismatch   = errors.New("vector dimension mismatch")
)
