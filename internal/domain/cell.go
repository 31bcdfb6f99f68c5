package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CellKind вид значения ячейки
type CellKind int

const (
	CellPlain     CellKind = iota // Строка, булево значение, null или произвольный JSON
	CellNumber                    // Число
	CellRichText                  // Объект {text, bold}
	CellHyperlink                 // Строка, начинающаяся с "http"
)

func (k CellKind) String() string {
	switch k {
	case CellNumber:
		return "number"
	case CellRichText:
		return "rich_text"
	case CellHyperlink:
		return "hyperlink"
	default:
		return "plain"
	}
}

// hyperlinkPrefix признак ссылки
const hyperlinkPrefix = "http"

// Cell классифицированное значение ячейки
type Cell struct {
	Kind CellKind

	// Value исходное значение для CellPlain
	Value any
	// Number значение для CellNumber
	Number float64
	// Text текст для CellRichText и CellHyperlink (для ссылки это и адрес)
	Text string
	// Bold жирный шрифт для CellRichText
	Bold bool
}

// ClassifyCell определяет вид значения ячейки по его форме.
// Порядок проверок: rich text, ссылка, число, всё остальное.
func ClassifyCell(v any) Cell {
	switch val := v.(type) {
	case map[string]any:
		if text, ok := val["text"]; ok && truthy(text) {
			return Cell{
				Kind: CellRichText,
				Text: stringify(text),
				Bold: truthy(val["bold"]),
			}
		}
	case string:
		if strings.HasPrefix(val, hyperlinkPrefix) {
			return Cell{Kind: CellHyperlink, Text: val}
		}
	default:
		if n, ok := toFloat(v); ok {
			return Cell{Kind: CellNumber, Number: n}
		}
	}
	return Cell{Kind: CellPlain, Value: v}
}

// IsEmpty сообщает, что ячейка не содержит значения
func (c Cell) IsEmpty() bool {
	return c.Kind == CellPlain && c.Value == nil
}

// String возвращает текстовое представление ячейки (CSV, ширина колонок)
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return formatNumber(c.Number)
	case CellRichText, CellHyperlink:
		return c.Text
	default:
		return stringify(c.Value)
	}
}

// Scalar возвращает значение, пригодное для записи в ячейку без форматирования
func (c Cell) Scalar() any {
	switch c.Kind {
	case CellNumber:
		return c.Number
	case CellRichText, CellHyperlink:
		return c.Text
	}
	switch val := c.Value.(type) {
	case nil:
		return nil
	case string, bool:
		return val
	default:
		return stringify(val)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// formatNumber печатает число кратчайшей записью; очень большие и очень малые
// по модулю значения записываются в экспоненциальной форме (1e+21, 1.5e-7)
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// stringify приводит значение к строке так же, как это делает склейка строки CSV
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return formatNumber(f)
		}
		return val.String()
	case map[string]any:
		if text, ok := val["text"]; ok && truthy(text) {
			return stringify(text)
		}
	}
	if f, ok := toFloat(v); ok {
		return formatNumber(f)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// truthy повторяет правила истинности JSON-значений: пустая строка, 0, false и null ложны
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	return true
}
