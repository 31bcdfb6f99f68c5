package domain_test

import (
	"testing"

	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportLifecycle(t *testing.T) {
	export := domain.NewExport(uuid.New(), "Sales.png")
	assert.Equal(t, domain.ExportStatusProcessing, export.Status)
	assert.False(t, export.Status.IsFinal())
	assert.Nil(t, export.CompletedAt)

	require.NoError(t, export.MarkCompleted([]string{"Sales"}, []string{"Broken"}, 2048))
	assert.Equal(t, domain.ExportStatusCompleted, export.Status)
	assert.True(t, export.Status.IsFinal())
	assert.Equal(t, []string{"Sales"}, export.Sheets)
	assert.Equal(t, []string{"Broken"}, export.SkippedSheets)
	assert.EqualValues(t, 2048, export.ArchiveSize)
	assert.NotNil(t, export.CompletedAt)

	export.AttachArchive("2026/10/16/x/output.zip")
	assert.Equal(t, "2026/10/16/x/output.zip", export.ArchiveKey)

	assert.ErrorIs(t, export.MarkFailed("late"), domain.ErrInvalidExportStatus)
}

func TestExportRejected(t *testing.T) {
	export := domain.NewExport(uuid.New(), "")

	require.NoError(t, export.MarkRejected("invalid operation"))
	assert.Equal(t, domain.ExportStatusRejected, export.Status)
	assert.Equal(t, "invalid operation", export.Error)

	assert.ErrorIs(t, export.MarkCompleted(nil, nil, 0), domain.ErrInvalidExportStatus)
}

func TestExportStatusIsValid(t *testing.T) {
	assert.True(t, domain.ExportStatusFailed.IsValid())
	assert.False(t, domain.ExportStatus("pending").IsValid())
}

func TestPagination(t *testing.T) {
	p := domain.NewPagination(0, 500)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, domain.MaxPageSize, p.PageSize)
	assert.Equal(t, 0, p.Offset())

	p = domain.NewPagination(3, 10)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 10, p.Limit())

	result := &domain.ExportListResult{Total: 21, Pagination: p}
	assert.Equal(t, 3, result.TotalPages())
}
