package xlsx

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	minColumnWidth     = 10
	columnWidthPadding = 2
)

// Renderer отрисовывает листы в книгу xlsx
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer создаёт новый Renderer
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Render создаёт книгу из листов в исходном порядке и сохраняет её в path
func (r *Renderer) Render(ctx context.Context, sheets []*domain.Sheet, image *domain.Image, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyleSet(f)
	if err != nil {
		return err
	}

	for i, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return err
		}

		if i == 0 {
			// Переименовываем лист по умолчанию, чтобы книга не содержала лишний пустой лист
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", sheet.Name, err)
		}

		w := &sheetWriter{
			file:   f,
			sheet:  sheet,
			styles: styles,
			logger: r.logger.With(zap.String("sheet", sheet.Name)),
		}
		if err := w.write(image); err != nil {
			return fmt.Errorf("failed to render sheet %q: %w", sheet.Name, err)
		}
	}

	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// sheetWriter пишет один лист
type sheetWriter struct {
	file    *excelize.File
	sheet   *domain.Sheet
	styles  *styleSet
	logger  *zap.Logger
	lastRow int
}

func (w *sheetWriter) write(image *domain.Image) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	if err := w.writeDataRows(); err != nil {
		return err
	}
	if err := w.fitColumns(); err != nil {
		return err
	}
	// Без строк листа диапазон формулы был бы пустым
	if w.sheet.Config.Enabled() && w.lastRow > 0 {
		if err := w.writeAggregate(); err != nil {
			return err
		}
	}
	if image.MatchesSheet(w.sheet.Name) {
		if err := w.embedImage(image); err != nil {
			// Изображение необязательно, лист остаётся без него
			w.logger.Warn("Image embedding failed",
				zap.String("file_name", image.FileName),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (w *sheetWriter) writeHeader() error {
	header := w.sheet.Header()
	if header == nil {
		return nil
	}
	w.lastRow = 1

	styleID, err := w.styles.header(w.sheet.Style)
	if err != nil {
		return err
	}

	for colIdx, cell := range header {
		if cell.IsEmpty() {
			continue
		}
		name, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.sheet.Name, name, cell.Scalar()); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", name, err)
		}
		if err := w.file.SetCellStyle(w.sheet.Name, name, name, styleID); err != nil {
			return fmt.Errorf("failed to style header cell %s: %w", name, err)
		}
	}

	return nil
}

func (w *sheetWriter) writeDataRows() error {
	for i, row := range w.sheet.DataRows() {
		rowNum := i + 2
		w.lastRow = rowNum

		for colIdx, cell := range row {
			name, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return err
			}
			if err := w.writeCell(name, colIdx, cell); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", name, err)
			}
		}
	}
	return nil
}

// writeCell пишет значение ячейки данных согласно её виду
func (w *sheetWriter) writeCell(name string, colIdx int, cell domain.Cell) error {
	sheet := w.sheet.Name

	switch cell.Kind {
	case domain.CellRichText:
		run := excelize.RichTextRun{Text: cell.Text}
		if cell.Bold {
			run.Font = &excelize.Font{Bold: true}
		}
		return w.file.SetCellRichText(sheet, name, []excelize.RichTextRun{run})

	case domain.CellHyperlink:
		if err := w.file.SetCellValue(sheet, name, cell.Text); err != nil {
			return err
		}
		display := cell.Text
		if err := w.file.SetCellHyperLink(sheet, name, cell.Text, "External", excelize.HyperlinkOpts{Display: &display}); err != nil {
			return err
		}
		return w.file.SetCellStyle(sheet, name, name, w.styles.hyperlink)

	case domain.CellNumber:
		if err := w.file.SetCellValue(sheet, name, cell.Number); err != nil {
			return err
		}
		return w.file.SetCellStyle(sheet, name, name, w.styles.numberStyle(colIdx, cell.Number))

	default:
		if cell.IsEmpty() {
			return nil
		}
		return w.file.SetCellValue(sheet, name, cell.Scalar())
	}
}

// fitColumns выставляет ширину колонок по самому длинному значению
func (w *sheetWriter) fitColumns() error {
	widths := ColumnWidths(w.sheet.Rows)
	for colIdx, width := range widths {
		col, err := excelize.ColumnNumberToName(colIdx + 1)
		if err != nil {
			return err
		}
		if err := w.file.SetColWidth(w.sheet.Name, col, col, width); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", col, err)
		}
	}
	return nil
}

// ColumnWidths ширина каждой колонки: max(10, длина самого длинного значения) + 2
func ColumnWidths(rows [][]domain.Cell) []float64 {
	var maxLens []int
	for _, row := range rows {
		for colIdx, cell := range row {
			for len(maxLens) <= colIdx {
				maxLens = append(maxLens, minColumnWidth)
			}
			if cell.IsEmpty() {
				continue
			}
			if n := utf8.RuneCountInString(cell.String()); n > maxLens[colIdx] {
				maxLens[colIdx] = n
			}
		}
	}

	widths := make([]float64, len(maxLens))
	for i, n := range maxLens {
		widths[i] = float64(n + columnWidthPadding)
	}
	return widths
}

// writeAggregate добавляет строку с подписью и формулой после последней строки данных
func (w *sheetWriter) writeAggregate() error {
	cfg := w.sheet.Config
	endRow := w.lastRow
	row := endRow + 1

	formula, err := AggregateFormula(cfg, endRow)
	if err != nil {
		return err
	}

	labelCell, err := excelize.CoordinatesToCellName(cfg.LabelCol(), row)
	if err != nil {
		return err
	}
	formulaCell, err := excelize.CoordinatesToCellName(cfg.FormulaCol(), row)
	if err != nil {
		return err
	}

	if err := w.file.SetCellValue(w.sheet.Name, labelCell, cfg.LabelText()); err != nil {
		return fmt.Errorf("failed to set aggregate label: %w", err)
	}
	if err := w.file.SetCellStyle(w.sheet.Name, labelCell, labelCell, w.styles.label); err != nil {
		return fmt.Errorf("failed to style aggregate label: %w", err)
	}
	if err := w.file.SetCellFormula(w.sheet.Name, formulaCell, formula); err != nil {
		return fmt.Errorf("failed to set aggregate formula: %w", err)
	}

	w.lastRow = row
	return nil
}

// AggregateFormula строит формулу вида SUM(C2:C10) по колонке sumColumn
func AggregateFormula(cfg domain.AggregateConfig, endRow int) (string, error) {
	col, err := excelize.ColumnNumberToName(cfg.SumColumn)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidAggregate, err)
	}
	return fmt.Sprintf("%s(%s%d:%s%d)", cfg.Op(), col, cfg.StartRow, col, endRow), nil
}
