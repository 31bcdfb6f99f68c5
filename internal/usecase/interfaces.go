package usecase

import (
	"context"
	"io"

	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/google/uuid"
)

// SheetRenderer отрисовывает листы в одну книгу xlsx по указанному пути
type SheetRenderer interface {
	Render(ctx context.Context, sheets []*domain.Sheet, image *domain.Image, path string) error
}

// Archiver собирает файлы в архив и возвращает его размер
type Archiver interface {
	Create(ctx context.Context, dst string, entries []domain.ArchiveEntry) (int64, error)
}

// Workspace рабочая директория одного запроса
type Workspace interface {
	ID() uuid.UUID
	Path(name string) string
	WriteFile(name string, data []byte) (string, error)
}

// ArchiveStorage интерфейс для хранения копий архивов (S3)
type ArchiveStorage interface {
	Upload(ctx context.Context, exportID uuid.UUID, fileName string, contentType string, reader io.Reader, size int64) (fileKey string, err error)
	GetURL(ctx context.Context, fileKey string) (string, error)
}

// ExportRepository интерфейс журнала выгрузок
type ExportRepository interface {
	Create(ctx context.Context, export *domain.Export) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Export, error)
	Update(ctx context.Context, export *domain.Export) error
	List(ctx context.Context, filter domain.ExportFilter, pagination domain.Pagination) (*domain.ExportListResult, error)
}
