package dto

import (
	"time"

	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/Chandan-Choubey/Export-Csv/internal/usecase"
)

// ExportResponse запись журнала выгрузок
type ExportResponse struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	Sheets        []string   `json:"sheets"`
	SkippedSheets []string   `json:"skipped_sheets"`
	ImageName     string     `json:"image_name,omitempty"`
	ArchiveSize   int64      `json:"archive_size"`
	ArchiveURL    string     `json:"archive_url,omitempty"`
	Error         string     `json:"error,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// ExportFromDomain конвертирует доменную модель в DTO
func ExportFromDomain(export *domain.Export) *ExportResponse {
	return &ExportResponse{
		ID:            export.ID.String(),
		Status:        export.Status.String(),
		Sheets:        export.Sheets,
		SkippedSheets: export.SkippedSheets,
		ImageName:     export.ImageName,
		ArchiveSize:   export.ArchiveSize,
		Error:         export.Error,
		CreatedAt:     export.CreatedAt,
		UpdatedAt:     export.UpdatedAt,
		CompletedAt:   export.CompletedAt,
	}
}

// ExportFromDetails добавляет ссылку на копию архива
func ExportFromDetails(details *usecase.ExportDetails) *ExportResponse {
	resp := ExportFromDomain(details.Export)
	resp.ArchiveURL = details.ArchiveURL
	return resp
}

// ExportListResponse страница журнала
type ExportListResponse struct {
	Exports    []*ExportResponse `json:"exports"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// ExportListFromDomain конвертирует результат списка в DTO
func ExportListFromDomain(result *domain.ExportListResult) *ExportListResponse {
	exports := make([]*ExportResponse, len(result.Exports))
	for i, export := range result.Exports {
		exports[i] = ExportFromDomain(export)
	}

	return &ExportListResponse{
		Exports:    exports,
		Total:      result.Total,
		Page:       result.Pagination.Page,
		PageSize:   result.Pagination.PageSize,
		TotalPages: result.TotalPages(),
	}
}
