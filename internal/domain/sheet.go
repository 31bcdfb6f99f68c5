package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Ошибки листа
var (
	ErrMalformedPayload = errors.New("malformed sheet payload")
	ErrInvalidSheetName = errors.New("invalid sheet name")
)

const (
	// MaxSheetNameLength ограничение формата xlsx
	MaxSheetNameLength = 31

	DefaultHeaderFontColor       = "FFFFFFFF"
	DefaultHeaderBackgroundColor = "FF1F4E78"
)

// Style оформление строки заголовка, цвета в формате ARGB
type Style struct {
	FontColor       string `json:"fontColor"`
	BackgroundColor string `json:"backgroundColor"`
}

// HeaderFontColor цвет шрифта заголовка в RGB
func (s Style) HeaderFontColor() string {
	if s.FontColor == "" {
		return RGB(DefaultHeaderFontColor)
	}
	return RGB(s.FontColor)
}

// HeaderBackgroundColor цвет заливки заголовка в RGB
func (s Style) HeaderBackgroundColor() string {
	if s.BackgroundColor == "" {
		return RGB(DefaultHeaderBackgroundColor)
	}
	return RGB(s.BackgroundColor)
}

// RGB отбрасывает альфа-канал из ARGB-кода
func RGB(argb string) string {
	c := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(argb), "#"))
	if len(c) == 8 {
		c = c[2:]
	}
	return c
}

// Sheet декодированный лист: data[0] — заголовок, далее строки данных
type Sheet struct {
	Name   string
	Rows   [][]Cell
	Style  Style
	Config AggregateConfig
}

type sheetPayload struct {
	Data   json.RawMessage  `json:"data"`
	Style  *Style           `json:"style"`
	Config *AggregateConfig `json:"config"`
}

// DecodeSheet разбирает JSON-описание листа.
// Любая ошибка разбора возвращается как ErrMalformedPayload.
func DecodeSheet(name, raw string) (*Sheet, error) {
	var payload sheetPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	data := bytes.TrimSpace(payload.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: data is not an array", ErrMalformedPayload)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var rawRows []any
	if err := dec.Decode(&rawRows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	rows := make([][]Cell, 0, len(rawRows))
	for i, rawRow := range rawRows {
		values, ok := rawRow.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: row %d is not an array", ErrMalformedPayload, i)
		}
		row := make([]Cell, len(values))
		for j, v := range values {
			row[j] = ClassifyCell(v)
		}
		rows = append(rows, row)
	}

	sheet := &Sheet{
		Name: name,
		Rows: rows,
	}
	if payload.Style != nil {
		sheet.Style = *payload.Style
	}
	if payload.Config != nil {
		sheet.Config = *payload.Config
	}

	return sheet, nil
}

// Header возвращает строку заголовка
func (s *Sheet) Header() []Cell {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[0]
}

// DataRows возвращает строки данных без заголовка
func (s *Sheet) DataRows() [][]Cell {
	if len(s.Rows) < 2 {
		return nil
	}
	return s.Rows[1:]
}

// Validate проверяет всё, что должно прервать запрос целиком
func (s *Sheet) Validate() error {
	if err := ValidateSheetName(s.Name); err != nil {
		return err
	}
	return s.Config.Validate(s.Name)
}

// CSV строит текстовую проекцию листа: значения через запятую, строки через \n.
// Значения не экранируются.
func (s *Sheet) CSV() string {
	lines := make([]string, len(s.Rows))
	for i, row := range s.Rows {
		parts := make([]string, len(row))
		for j, cell := range row {
			parts[j] = cell.String()
		}
		lines[i] = strings.Join(parts, ",")
	}
	return strings.Join(lines, "\n")
}

// CSVFileName имя CSV-файла листа в архиве
func (s *Sheet) CSVFileName() string {
	return s.Name + ".csv"
}

// ValidateSheetName проверяет имя листа по правилам формата xlsx
func ValidateSheetName(name string) error {
	n := utf8.RuneCountInString(name)
	if n == 0 || n > MaxSheetNameLength {
		return fmt.Errorf("%w %q: length must be between 1 and %d", ErrInvalidSheetName, name, MaxSheetNameLength)
	}
	if strings.ContainsAny(name, `:\/?*[]`) {
		return fmt.Errorf("%w %q: must not contain any of : \\ / ? * [ ]", ErrInvalidSheetName, name)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return fmt.Errorf("%w %q: must not start or end with an apostrophe", ErrInvalidSheetName, name)
	}
	return nil
}
