package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Ошибки строки агрегации
var (
	ErrInvalidOperation = errors.New("invalid aggregate operation")
	ErrInvalidAggregate = errors.New("invalid aggregate config")
)

const (
	MaxColumns = 16384
	MaxRows    = 1048576
)

// Operation функция агрегации в формуле
type Operation string

const (
	OperationSum     Operation = "SUM"
	OperationAverage Operation = "AVERAGE"
	OperationMin     Operation = "MIN"
	OperationMax     Operation = "MAX"
	OperationCount   Operation = "COUNT"
)

// SupportedOperations в порядке, в котором они перечисляются пользователю
var SupportedOperations = []Operation{
	OperationSum,
	OperationAverage,
	OperationMin,
	OperationMax,
	OperationCount,
}

// IsValid проверяет, поддерживается ли операция (с учётом регистра)
func (o Operation) IsValid() bool {
	switch o {
	case OperationSum, OperationAverage, OperationMin, OperationMax, OperationCount:
		return true
	}
	return false
}

func (o Operation) String() string {
	return string(o)
}

// SupportedOperationsList перечисление операций через запятую
func SupportedOperationsList() string {
	names := make([]string, len(SupportedOperations))
	for i, op := range SupportedOperations {
		names[i] = op.String()
	}
	return strings.Join(names, ", ")
}

// InvalidOperationError неподдерживаемая операция в конфигурации листа
type InvalidOperationError struct {
	Sheet     string
	Operation string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation %q in sheet %q. Supported operations are: %s",
		e.Operation, e.Sheet, SupportedOperationsList())
}

func (e *InvalidOperationError) Unwrap() error {
	return ErrInvalidOperation
}

// AggregateConfig параметры строки агрегации. Индексы колонок и строк начинаются с 1.
type AggregateConfig struct {
	SumColumn     int
	StartRow      int
	Operation     string
	LabelColumn   int
	FormulaColumn int
	Label         string

	// operationNotString операция задана значением, отличным от строки
	operationNotString bool
	// badFields поля с непустым значением, не являющимся целым числом
	badFields []string
}

// UnmarshalJSON разбирает конфигурацию без строгой типизации: пустые значения
// (null, false, 0, "") считаются незаданными, остальные проверяет Validate.
// Конфигурация, не являющаяся объектом, выключает агрегацию.
func (c *AggregateConfig) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*c = AggregateConfig{}
	fields, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	c.SumColumn = c.intField(fields, "sumColumn")
	c.StartRow = c.intField(fields, "startRow")
	c.LabelColumn = c.intField(fields, "labelColumn")
	c.FormulaColumn = c.intField(fields, "formulaColumn")

	if op := fields["operation"]; truthy(op) {
		s, isString := op.(string)
		if !isString {
			s = stringify(op)
		}
		c.Operation = s
		c.operationNotString = !isString
	}

	if label := fields["label"]; truthy(label) {
		c.Label = stringify(label)
	}

	return nil
}

func (c *AggregateConfig) intField(fields map[string]any, name string) int {
	v := fields[name]
	if !truthy(v) {
		return 0
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		c.badFields = append(c.badFields, name)
		return 0
	}
	return int(f)
}

func (c AggregateConfig) isBad(field string) bool {
	for _, name := range c.badFields {
		if name == field {
			return true
		}
	}
	return false
}

// Enabled строка агрегации строится только при заданных sumColumn, startRow и operation
func (c AggregateConfig) Enabled() bool {
	return (c.SumColumn != 0 || c.isBad("sumColumn")) &&
		(c.StartRow != 0 || c.isBad("startRow")) &&
		c.Operation != ""
}

// Validate проверяет конфигурацию; выключенная агрегация всегда валидна
func (c AggregateConfig) Validate(sheet string) error {
	if !c.Enabled() {
		return nil
	}

	if c.operationNotString || !Operation(c.Operation).IsValid() {
		return &InvalidOperationError{Sheet: sheet, Operation: c.Operation}
	}

	if len(c.badFields) > 0 {
		return fmt.Errorf("%w in sheet %q: %s must be an integer", ErrInvalidAggregate, sheet, strings.Join(c.badFields, ", "))
	}

	columns := []struct {
		field string
		col   int
	}{
		{"sumColumn", c.SumColumn},
		{"labelColumn", c.LabelCol()},
		{"formulaColumn", c.FormulaCol()},
	}
	for _, column := range columns {
		if column.col < 1 || column.col > MaxColumns {
			return fmt.Errorf("%w in sheet %q: %s %d is out of range 1..%d", ErrInvalidAggregate, sheet, column.field, column.col, MaxColumns)
		}
	}
	if c.StartRow < 1 || c.StartRow > MaxRows {
		return fmt.Errorf("%w in sheet %q: startRow %d is out of range 1..%d", ErrInvalidAggregate, sheet, c.StartRow, MaxRows)
	}

	return nil
}

// Op операция агрегации
func (c AggregateConfig) Op() Operation {
	return Operation(c.Operation)
}

// LabelCol колонка подписи, по умолчанию sumColumn
func (c AggregateConfig) LabelCol() int {
	if c.LabelColumn != 0 {
		return c.LabelColumn
	}
	return c.SumColumn
}

// FormulaCol колонка формулы, по умолчанию sumColumn+1
func (c AggregateConfig) FormulaCol() int {
	if c.FormulaColumn != 0 {
		return c.FormulaColumn
	}
	return c.SumColumn + 1
}

// LabelText текст подписи, по умолчанию "<OPERATION> Result"
func (c AggregateConfig) LabelText() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Operation + " Result"
}
