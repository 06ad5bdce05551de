package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange: a record position outside [0, size).
	ErrOutOfRange = errors.New("record index out of range")
	// ErrDimensionMismatch: vectors of different lengths met in the index.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrEmptyCorpus: an index was built from zero vectors.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrInvalidK: a non-positive neighbor count.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmbedding wraps every failure reported by the embedding service.
	ErrEmbedding = errors.New("embedding service error")
)
