package xlsx

import (
	"fmt"

	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	// numFmtThousands встроенный формат "#,##0"
	numFmtThousands = 3

	hyperlinkColor = "0000FF"
	alertFillColor = "FF0000"

	// Числа меньше порога в третьей колонке подсвечиваются красным
	alertColumnIndex = 2
	alertThreshold   = 800
)

// styleSet стили одной книги; стили заголовка кешируются по паре цветов
type styleSet struct {
	file *excelize.File

	number    int
	alert     int
	hyperlink int
	label     int
	headers   map[string]int
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	s := &styleSet{
		file:    f,
		headers: make(map[string]int),
	}

	var err error
	if s.number, err = f.NewStyle(&excelize.Style{NumFmt: numFmtThousands}); err != nil {
		return nil, fmt.Errorf("failed to create number style: %w", err)
	}

	s.alert, err = f.NewStyle(&excelize.Style{
		NumFmt: numFmtThousands,
		Fill:   solidFill(alertFillColor),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create alert style: %w", err)
	}

	s.hyperlink, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: hyperlinkColor, Underline: "single"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create hyperlink style: %w", err)
	}

	if s.label, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return nil, fmt.Errorf("failed to create label style: %w", err)
	}

	return s, nil
}

// header возвращает стиль заголовка для оформления листа
func (s *styleSet) header(style domain.Style) (int, error) {
	font, background := style.HeaderFontColor(), style.HeaderBackgroundColor()
	key := font + "/" + background
	if id, ok := s.headers[key]; ok {
		return id, nil
	}

	id, err := s.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: font},
		Fill: solidFill(background),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}

	s.headers[key] = id
	return id, nil
}

// numberStyle выбирает стиль числа с учётом правила подсветки
func (s *styleSet) numberStyle(colIdx int, value float64) int {
	if colIdx == alertColumnIndex && value < alertThreshold {
		return s.alert
	}
	return s.number
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}
