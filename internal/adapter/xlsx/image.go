package xlsx

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	imageWidthPx  = 500
	imageHeightPx = 500

	// Пересчёт пикселей в единицы ширины колонки и пункты высоты строки
	pixelsPerWidthUnit = 7.0017
	pixelsPerPoint     = 1.33
)

// embedImage вставляет изображение в колонку A под последней строкой листа
func (w *sheetWriter) embedImage(img *domain.Image) error {
	data, err := os.ReadFile(img.Path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("image has zero size")
	}

	row := w.lastRow + 1
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	if err := w.file.SetColWidth(w.sheet.Name, "A", "A", imageWidthPx/pixelsPerWidthUnit); err != nil {
		return fmt.Errorf("failed to resize column: %w", err)
	}
	if err := w.file.SetRowHeight(w.sheet.Name, row, imageHeightPx/pixelsPerPoint); err != nil {
		return fmt.Errorf("failed to resize row: %w", err)
	}

	err = w.file.AddPictureFromBytes(w.sheet.Name, cell, &excelize.Picture{
		Extension: "." + img.Extension(),
		File:      data,
		Format: &excelize.GraphicOptions{
			ScaleX:      float64(imageWidthPx) / float64(cfg.Width),
			ScaleY:      float64(imageHeightPx) / float64(cfg.Height),
			Positioning: "oneCell",
			AltText:     img.FileName,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to add picture: %w", err)
	}

	return nil
}
