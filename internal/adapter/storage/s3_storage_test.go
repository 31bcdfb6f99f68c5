package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("8c1f2a9e-6a55-4a44-9f0e-0a3f7d7b1c11")
	now := time.Date(2026, time.March, 7, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "2026/03/07/8c1f2a9e-6a55-4a44-9f0e-0a3f7d7b1c11/output.zip", ObjectKey(now, id, "output.zip"))
}
