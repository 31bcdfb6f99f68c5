package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Ошибки журнала выгрузок
var (
	ErrExportNotFound      = errors.New("export not found")
	ErrInvalidExportStatus = errors.New("invalid export status")
)

// Export запись журнала о выгрузке
type Export struct {
	ID            uuid.UUID    `json:"id"`
	Status        ExportStatus `json:"status"`
	Sheets        []string     `json:"sheets"`         // Отрисованные листы
	SkippedSheets []string     `json:"skipped_sheets"` // Листы с некорректным описанием
	ImageName     string       `json:"image_name,omitempty"`
	ArchiveSize   int64        `json:"archive_size"`
	ArchiveKey    string       `json:"archive_key,omitempty"` // Ключ копии архива в S3
	Error         string       `json:"error,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
}

// NewExport создаёт запись о начатой выгрузке
func NewExport(id uuid.UUID, imageName string) *Export {
	now := time.Now()

	return &Export{
		ID:            id,
		Status:        ExportStatusProcessing,
		Sheets:        []string{},
		SkippedSheets: []string{},
		ImageName:     imageName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// MarkCompleted фиксирует успешную выгрузку
func (e *Export) MarkCompleted(sheets, skipped []string, archiveSize int64) error {
	if e.Status != ExportStatusProcessing {
		return ErrInvalidExportStatus
	}
	now := time.Now()
	e.Status = ExportStatusCompleted
	e.Sheets = sheets
	e.SkippedSheets = skipped
	e.ArchiveSize = archiveSize
	e.UpdatedAt = now
	e.CompletedAt = &now
	return nil
}

// MarkRejected фиксирует отказ из-за некорректного запроса
func (e *Export) MarkRejected(errMsg string) error {
	return e.finish(ExportStatusRejected, errMsg)
}

// MarkFailed фиксирует внутреннюю ошибку
func (e *Export) MarkFailed(errMsg string) error {
	return e.finish(ExportStatusFailed, errMsg)
}

func (e *Export) finish(status ExportStatus, errMsg string) error {
	if e.Status != ExportStatusProcessing {
		return ErrInvalidExportStatus
	}
	now := time.Now()
	e.Status = status
	e.Error = errMsg
	e.UpdatedAt = now
	e.CompletedAt = &now
	return nil
}

// AttachArchive запоминает ключ копии архива в хранилище
func (e *Export) AttachArchive(key string) {
	e.ArchiveKey = key
	e.UpdatedAt = time.Now()
}
