package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrJournalDisabled = errors.New("export journal is disabled")
)

// ExportUseCase бизнес-логика выгрузки листов в архив
type ExportUseCase struct {
	renderer SheetRenderer
	archiver Archiver
	storage  ArchiveStorage   // nil — копия архива не сохраняется
	repo     ExportRepository // nil — журнал не ведётся
	logger   *zap.Logger
}

// NewExportUseCase создаёт новый экземпляр ExportUseCase
func NewExportUseCase(
	renderer SheetRenderer,
	archiver Archiver,
	storage ArchiveStorage,
	repo ExportRepository,
	logger *zap.Logger,
) *ExportUseCase {
	return &ExportUseCase{
		renderer: renderer,
		archiver: archiver,
		storage:  storage,
		repo:     repo,
		logger:   logger,
	}
}

// Export отрисовывает листы, пишет CSV и собирает архив в рабочей директории.
// Файлы не удаляются: рабочую директорию очищает вызывающая сторона.
func (uc *ExportUseCase) Export(ctx context.Context, input ExportInput) (*ExportResult, error) {
	imageName := ""
	if input.Image != nil {
		imageName = input.Image.FileName
	}

	export := domain.NewExport(input.Workspace.ID(), imageName)
	uc.journalCreate(ctx, export)

	result, err := uc.build(ctx, input)
	if err != nil {
		if IsRejection(err) {
			_ = export.MarkRejected(err.Error())
		} else {
			_ = export.MarkFailed(err.Error())
		}
		uc.journalUpdate(ctx, export)
		return nil, err
	}

	if err := export.MarkCompleted(result.Sheets, result.Skipped, result.ArchiveSize); err != nil {
		return nil, fmt.Errorf("failed to mark export as completed: %w", err)
	}

	if key, ok := uc.mirror(ctx, export.ID, result.ArchivePath, result.ArchiveSize); ok {
		export.AttachArchive(key)
	}
	uc.journalUpdate(ctx, export)

	uc.logger.Info("Export completed",
		zap.String("export_id", export.ID.String()),
		zap.Strings("sheets", result.Sheets),
		zap.Strings("skipped", result.Skipped),
		zap.Int64("archive_size", result.ArchiveSize),
	)

	return result, nil
}

func (uc *ExportUseCase) build(ctx context.Context, input ExportInput) (*ExportResult, error) {
	ws := input.Workspace

	sheets, skipped := uc.decodeSheets(ws.ID(), input.Sheets)

	// Всё, что прерывает запрос, проверяем до записи первого файла
	if err := validateSheets(sheets); err != nil {
		return nil, err
	}

	workbookPath := ws.Path(domain.WorkbookFileName)
	if err := uc.renderer.Render(ctx, sheets, input.Image, workbookPath); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	entries := make([]domain.ArchiveEntry, 0, len(sheets)+1)
	entries = append(entries, domain.ArchiveEntry{Name: domain.WorkbookFileName, Path: workbookPath})

	names := make([]string, 0, len(sheets))
	for _, sheet := range sheets {
		path, err := ws.WriteFile(sheet.CSVFileName(), []byte(sheet.CSV()))
		if err != nil {
			return nil, fmt.Errorf("failed to write csv for sheet %q: %w", sheet.Name, err)
		}
		entries = append(entries, domain.ArchiveEntry{Name: sheet.CSVFileName(), Path: path})
		names = append(names, sheet.Name)
	}

	archivePath := ws.Path(domain.ArchiveFileName)
	size, err := uc.archiver.Create(ctx, archivePath, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	return &ExportResult{
		ID:          ws.ID(),
		ArchivePath: archivePath,
		ArchiveSize: size,
		Sheets:      names,
		Skipped:     skipped,
	}, nil
}

// decodeSheets разбирает описания листов; некорректные пропускаются без ошибки
func (uc *ExportUseCase) decodeSheets(exportID uuid.UUID, inputs []SheetInput) ([]*domain.Sheet, []string) {
	sheets := make([]*domain.Sheet, 0, len(inputs))
	skipped := make([]string, 0)

	for _, in := range inputs {
		sheet, err := domain.DecodeSheet(in.Name, in.Payload)
		if err != nil {
			uc.logger.Debug("Skipping malformed sheet",
				zap.String("export_id", exportID.String()),
				zap.String("sheet", in.Name),
				zap.Error(err),
			)
			skipped = append(skipped, in.Name)
			continue
		}
		sheets = append(sheets, sheet)
	}

	return sheets, skipped
}

func validateSheets(sheets []*domain.Sheet) error {
	seen := make(map[string]string, len(sheets))
	for _, sheet := range sheets {
		if err := sheet.Validate(); err != nil {
			return err
		}
		// Имена листов в книге не различают регистр
		key := strings.ToLower(sheet.Name)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w %q: duplicates sheet %q", domain.ErrInvalidSheetName, sheet.Name, prev)
		}
		seen[key] = sheet.Name
	}
	return nil
}

// IsRejection сообщает, что ошибка вызвана некорректным запросом
func IsRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidOperation) ||
		errors.Is(err, domain.ErrInvalidAggregate) ||
		errors.Is(err, domain.ErrInvalidSheetName)
}

// mirror сохраняет копию архива; ошибка не прерывает выгрузку
func (uc *ExportUseCase) mirror(ctx context.Context, exportID uuid.UUID, path string, size int64) (string, bool) {
	if uc.storage == nil {
		return "", false
	}

	file, err := os.Open(path)
	if err != nil {
		uc.logger.Warn("Failed to open archive for mirroring",
			zap.String("export_id", exportID.String()),
			zap.Error(err),
		)
		return "", false
	}
	defer file.Close()

	key, err := uc.storage.Upload(ctx, exportID, domain.ArchiveFileName, "application/zip", file, size)
	if err != nil {
		uc.logger.Warn("Failed to mirror archive to storage",
			zap.String("export_id", exportID.String()),
			zap.Error(err),
		)
		return "", false
	}

	uc.logger.Debug("Archive mirrored to storage",
		zap.String("export_id", exportID.String()),
		zap.String("file_key", key),
	)

	return key, true
}

func (uc *ExportUseCase) journalCreate(ctx context.Context, export *domain.Export) {
	if uc.repo == nil {
		return
	}
	if err := uc.repo.Create(ctx, export); err != nil {
		uc.logger.Warn("Failed to create export journal entry",
			zap.String("export_id", export.ID.String()),
			zap.Error(err),
		)
	}
}

func (uc *ExportUseCase) journalUpdate(ctx context.Context, export *domain.Export) {
	if uc.repo == nil {
		return
	}
	if err := uc.repo.Update(ctx, export); err != nil {
		uc.logger.Warn("Failed to update export journal entry",
			zap.String("export_id", export.ID.String()),
			zap.String("status", export.Status.String()),
			zap.Error(err),
		)
	}
}

// GetByID возвращает запись журнала и ссылку на копию архива
func (uc *ExportUseCase) GetByID(ctx context.Context, id uuid.UUID) (*ExportDetails, error) {
	if uc.repo == nil {
		return nil, ErrJournalDisabled
	}

	export, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &ExportDetails{Export: export}
	if export.ArchiveKey != "" && uc.storage != nil {
		url, err := uc.storage.GetURL(ctx, export.ArchiveKey)
		if err != nil {
			uc.logger.Warn("Failed to presign archive URL",
				zap.String("export_id", id.String()),
				zap.Error(err),
			)
		} else {
			details.ArchiveURL = url
		}
	}

	return details, nil
}

// List возвращает страницу журнала выгрузок
func (uc *ExportUseCase) List(ctx context.Context, filter domain.ExportFilter, pagination domain.Pagination) (*domain.ExportListResult, error) {
	if uc.repo == nil {
		return nil, ErrJournalDisabled
	}
	return uc.repo.List(ctx, filter, pagination)
}
