package domain_test

import (
	"testing"

	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateContentType(t *testing.T) {
	assert.NoError(t, domain.ValidateContentType("image/png"))
	assert.NoError(t, domain.ValidateContentType("IMAGE/JPEG"))
	assert.NoError(t, domain.ValidateContentType("image/gif; charset=binary"))

	assert.ErrorIs(t, domain.ValidateContentType("application/pdf"), domain.ErrUnsupportedFileType)
	assert.ErrorIs(t, domain.ValidateContentType("image/bmp"), domain.ErrUnsupportedFileType)
	assert.ErrorIs(t, domain.ValidateContentType(""), domain.ErrUnsupportedFileType)
}

func TestImageMatchesSheet(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		sheet    string
		expected bool
	}{
		{"PNG", "Sales.png", "Sales", true},
		{"JPEG", "Sales.jpeg", "Sales", true},
		{"Uppercase extension", "Sales.JPG", "Sales", true},
		{"GIF", "Sales.gif", "Sales", true},
		{"Other sheet", "Sales.png", "Costs", false},
		{"Case differs", "sales.png", "Sales", false},
		{"Unsupported extension", "Sales.bmp", "Sales", false},
		{"Double extension", "Sales.tar.png", "Sales", false},
		{"No extension", "Sales", "Sales", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := &domain.Image{FileName: tt.fileName}
			assert.Equal(t, tt.expected, img.MatchesSheet(tt.sheet))
		})
	}
}

func TestImageMatchesSheetNil(t *testing.T) {
	var img *domain.Image
	assert.False(t, img.MatchesSheet("Sales"))
}

func TestImageNameParts(t *testing.T) {
	img := &domain.Image{FileName: "Q1.Report.PNG"}
	assert.Equal(t, "Q1.Report", img.BaseName())
	assert.Equal(t, "png", img.Extension())
}
