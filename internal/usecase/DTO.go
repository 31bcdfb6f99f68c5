package usecase

import (
	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/google/uuid"
)

// SheetInput сырое описание листа из формы
type SheetInput struct {
	Name    string // Имя листа (ключ поля формы)
	Payload string // JSON {data, style, config}
}

// ExportInput входные данные выгрузки
type ExportInput struct {
	Workspace Workspace
	Sheets    []SheetInput  // В порядке полей формы
	Image     *domain.Image // Необязательное изображение
}

// ExportResult собранный архив
type ExportResult struct {
	ID          uuid.UUID
	ArchivePath string
	ArchiveSize int64
	Sheets      []string // Отрисованные листы
	Skipped     []string // Пропущенные листы
}

// ExportDetails запись журнала со ссылкой на копию архива
type ExportDetails struct {
	Export     *domain.Export
	ArchiveURL string
}
