package port

import "circuitdoc/internal/domain"

// HistoryStore persists explanations of source files, keyed by path.
type HistoryStore interface {
	PutRecord(rec domain.Record) error

	PutRecords(recs []domain.Record) error

	GetRecord(path string) (domain.Record, error)

	DeleteRecord(path string) error

	ListRecords() ([]domain.Record, error)

	Close() error
}
