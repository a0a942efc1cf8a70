package services

import (
	"context"

	"github.com/SscSPs/business_tracker/internal/core/domain"
)

// BackupSvcFacade produces and consumes whole-business snapshots.
type BackupSvcFacade interface {
	// ExportBackup serialises the session's business to the primary JSON format.
	ExportBackup(ctx context.Context, sess domain.Session) ([]byte, error)
	// RestoreBackup recreates a snapshot as a new active business in one unit of work.
	RestoreBackup(ctx context.Context, sess domain.Session, data []byte) (*domain.RestoreResult, error)
	// ExportShopSnapshot serialises the flat inspection format. It cannot be restored.
	ExportShopSnapshot(ctx context.Context, sess domain.Session) ([]byte, error)
}

// CSVSvcFacade converts business data to and from CSV text.
type CSVSvcFacade interface {
	ExportTransactionsCSV(ctx context.Context, sess domain.Session, rng *domain.DateRange) ([]byte, error)
	ImportTransactionsCSV(ctx context.Context, sess domain.Session, content string) (*domain.ImportResult, error)
	ExportEmployeesCSV(ctx context.Context, sess domain.Session) ([]byte, error)
	ExportPartsCSV(ctx context.Context, sess domain.Session) ([]byte, error)
}

// ReportSvcFacade renders human-facing documents.
type ReportSvcFacade interface {
	ExportTransactionsXLSX(ctx context.Context, sess domain.Session, rng *domain.DateRange) ([]byte, error)
	StatementPDF(ctx context.Context, sess domain.Session, rng *domain.DateRange) ([]byte, error)
}
