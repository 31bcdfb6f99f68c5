package repository

import (
	"strings"
	"testing"

	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery(t *testing.T) {
	q := buildListQuery(domain.ExportFilter{}, domain.NewPagination(3, 10))

	assert.Equal(t, "SELECT COUNT(*) FROM exports WHERE 1=1", q.count)
	assert.Empty(t, q.countArgs)
	assert.Contains(t, q.list, "SELECT "+exportColumns)
	assert.Contains(t, q.list, "LIMIT $1 OFFSET $2")
	assert.NotContains(t, q.list, "status =")
	assert.Equal(t, []any{10, 20}, q.listArgs)
}

func TestBuildListQueryWithStatus(t *testing.T) {
	status := domain.ExportStatusRejected
	q := buildListQuery(domain.ExportFilter{Status: &status}, domain.NewPagination(1, 20))

	assert.Equal(t, "SELECT COUNT(*) FROM exports WHERE 1=1 AND status = $1", q.count)
	assert.Equal(t, []any{domain.ExportStatusRejected}, q.countArgs)
	assert.Contains(t, q.list, "AND status = $1")
	assert.Contains(t, q.list, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{domain.ExportStatusRejected, 20, 0}, q.listArgs)
	assert.Equal(t, strings.Count(q.list, "$"), len(q.listArgs))
}

func TestMigrationNames(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/001_create_exports.sql", names[0])
	assert.IsNonDecreasing(t, names)

	sql, err := migrations.ReadFile(names[0])
	require.NoError(t, err)
	assert.Contains(t, string(sql), "CREATE TABLE IF NOT EXISTS exports")
	for _, column := range strings.Split(exportColumns, ", ") {
		assert.Contains(t, string(sql), column, column)
	}
}
