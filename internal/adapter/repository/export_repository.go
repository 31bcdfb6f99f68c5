package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const exportColumns = `id, status, sheets, skipped_sheets, image_name, archive_size, archive_key, error, created_at, updated_at, completed_at`

// ExportRepository журнал выгрузок в PostgreSQL
type ExportRepository struct {
	pool *pgxpool.Pool
}

// NewExportRepository создаёт новый экземпляр ExportRepository
func NewExportRepository(pool *pgxpool.Pool) *ExportRepository {
	return &ExportRepository{pool: pool}
}

// Create добавляет запись о выгрузке
func (r *ExportRepository) Create(ctx context.Context, export *domain.Export) error {
	query := `
		INSERT INTO exports (id, status, sheets, skipped_sheets, image_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		export.ID,
		export.Status,
		export.Sheets,
		export.SkippedSheets,
		export.ImageName,
		export.CreatedAt,
		export.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert export: %w", err)
	}

	return nil
}

// GetByID возвращает запись по ID
func (r *ExportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Export, error) {
	query := `SELECT ` + exportColumns + ` FROM exports WHERE id = $1`

	export, err := scanExport(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExportNotFound
		}
		return nil, fmt.Errorf("failed to get export: %w", err)
	}

	return export, nil
}

// Update сохраняет итог выгрузки
func (r *ExportRepository) Update(ctx context.Context, export *domain.Export) error {
	query := `
		UPDATE exports
		SET status = $2, sheets = $3, skipped_sheets = $4, archive_size = $5, archive_key = $6,
		    error = $7, updated_at = $8, completed_at = $9
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		export.ID,
		export.Status,
		export.Sheets,
		export.SkippedSheets,
		export.ArchiveSize,
		export.ArchiveKey,
		export.Error,
		export.UpdatedAt,
		export.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update export: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrExportNotFound
	}

	return nil
}

// List возвращает страницу журнала с фильтром по статусу
func (r *ExportRepository) List(ctx context.Context, filter domain.ExportFilter, pagination domain.Pagination) (*domain.ExportListResult, error) {
	q := buildListQuery(filter, pagination)

	var total int
	if err := r.pool.QueryRow(ctx, q.count, q.countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count exports: %w", err)
	}

	rows, err := r.pool.Query(ctx, q.list, q.listArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exports: %w", err)
	}
	defer rows.Close()

	exports := make([]*domain.Export, 0)
	for rows.Next() {
		export, err := scanExport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		exports = append(exports, export)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return &domain.ExportListResult{
		Exports:    exports,
		Total:      total,
		Pagination: pagination,
	}, nil
}

// listQuery запросы страницы журнала и их аргументы
type listQuery struct {
	count     string
	countArgs []any
	list      string
	listArgs  []any
}

func buildListQuery(filter domain.ExportFilter, pagination domain.Pagination) listQuery {
	baseQuery := `FROM exports WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	q := listQuery{
		count:     "SELECT COUNT(*) " + baseQuery,
		countArgs: args,
	}

	q.list = fmt.Sprintf(`
		SELECT %s
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, exportColumns, baseQuery, argIndex, argIndex+1)

	q.listArgs = append(append([]any{}, args...), pagination.Limit(), pagination.Offset())

	return q
}

func scanExport(row pgx.Row) (*domain.Export, error) {
	export := &domain.Export{}
	// Nullable колонки сканируем в указатели
	var imageName, archiveKey, errorMsg *string

	err := row.Scan(
		&export.ID,
		&export.Status,
		&export.Sheets,
		&export.SkippedSheets,
		&imageName,
		&export.ArchiveSize,
		&archiveKey,
		&errorMsg,
		&export.CreatedAt,
		&export.UpdatedAt,
		&export.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	if imageName != nil {
		export.ImageName = *imageName
	}
	if archiveKey != nil {
		export.ArchiveKey = *archiveKey
	}
	if errorMsg != nil {
		export.Error = *errorMsg
	}

	return export, nil
}
