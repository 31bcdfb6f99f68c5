package domain_test

import (
	"strings"
	"testing"

	"github.com/Chandan-Choubey/Export-Csv/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesPayload = `{
	"data": [
		["Name", "Link", "Amount"],
		["Alice", "https://example.com/a", 1200],
		[{"text": "Bob", "bold": true}, null, 500]
	],
	"style": {"fontColor": "FF000000", "backgroundColor": "FFFFFF00"},
	"config": {"sumColumn": 3, "startRow": 2, "operation": "SUM"}
}`

func TestDecodeSheet(t *testing.T) {
	sheet, err := domain.DecodeSheet("Sales", salesPayload)
	require.NoError(t, err)

	assert.Equal(t, "Sales", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Len(t, sheet.Header(), 3)
	assert.Len(t, sheet.DataRows(), 2)

	assert.Equal(t, domain.CellHyperlink, sheet.Rows[1][1].Kind)
	assert.Equal(t, domain.CellNumber, sheet.Rows[1][2].Kind)
	assert.Equal(t, domain.CellRichText, sheet.Rows[2][0].Kind)
	assert.True(t, sheet.Rows[2][1].IsEmpty())

	assert.Equal(t, "000000", sheet.Style.HeaderFontColor())
	assert.Equal(t, "FFFF00", sheet.Style.HeaderBackgroundColor())

	assert.True(t, sheet.Config.Enabled())
	assert.Equal(t, 3, sheet.Config.SumColumn)
	assert.Equal(t, domain.OperationSum, sheet.Config.Op())
}

func TestDecodeSheetDefaults(t *testing.T) {
	sheet, err := domain.DecodeSheet("Plain", `{"data": [["A"], [1]]}`)
	require.NoError(t, err)

	assert.Equal(t, "FFFFFF", sheet.Style.HeaderFontColor())
	assert.Equal(t, "1F4E78", sheet.Style.HeaderBackgroundColor())
	assert.False(t, sheet.Config.Enabled())
	assert.NoError(t, sheet.Validate())
}

func TestDecodeSheetEmptyData(t *testing.T) {
	sheet, err := domain.DecodeSheet("Empty", `{"data": []}`)
	require.NoError(t, err)

	assert.Empty(t, sheet.Rows)
	assert.Nil(t, sheet.Header())
	assert.Nil(t, sheet.DataRows())
	assert.Equal(t, "", sheet.CSV())
}

func TestDecodeSheetMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"Not JSON", `{data: [}`},
		{"Missing data", `{"style": {}}`},
		{"Data is object", `{"data": {"a": 1}}`},
		{"Data is string", `{"data": "a,b"}`},
		{"Row is not array", `{"data": [["A"], "B"]}`},
		{"Style has wrong type", `{"data": [], "style": {"fontColor": 5}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.DecodeSheet("Broken", tt.payload)
			assert.ErrorIs(t, err, domain.ErrMalformedPayload)
		})
	}
}

func TestSheetCSV(t *testing.T) {
	sheet, err := domain.DecodeSheet("Sales", salesPayload)
	require.NoError(t, err)

	expected := "Name,Link,Amount\n" +
		"Alice,https://example.com/a,1200\n" +
		"Bob,,500"
	assert.Equal(t, expected, sheet.CSV())
	assert.Equal(t, "Sales.csv", sheet.CSVFileName())
}

func TestSheetCSVRoundTrip(t *testing.T) {
	sheet, err := domain.DecodeSheet("Data", `{"data": [["id","name","score"],[1,"Ann",9.5],[2,"Ben",null],[3,true,0]]}`)
	require.NoError(t, err)

	lines := strings.Split(sheet.CSV(), "\n")
	require.Len(t, lines, len(sheet.Rows))

	for i, line := range lines {
		values := strings.Split(line, ",")
		require.Len(t, values, len(sheet.Rows[i]), "row %d", i)
		for j, value := range values {
			assert.Equal(t, sheet.Rows[i][j].String(), value, "cell %d:%d", i, j)
		}
	}
}

func TestSheetCSVDoesNotQuote(t *testing.T) {
	sheet, err := domain.DecodeSheet("Raw", `{"data": [["a,b", "say \"hi\""]]}`)
	require.NoError(t, err)

	assert.Equal(t, `a,b,say "hi"`, sheet.CSV())
}

func TestValidateSheetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Simple", "Sales", false},
		{"With spaces", "Q1 Report", false},
		{"Max length", strings.Repeat("a", 31), false},
		{"Unicode", "Отчёт", false},
		{"Empty", "", true},
		{"Too long", strings.Repeat("a", 32), true},
		{"Slash", "a/b", true},
		{"Backslash", `a\b`, true},
		{"Colon", "a:b", true},
		{"Question mark", "a?", true},
		{"Asterisk", "a*", true},
		{"Brackets", "[a]", true},
		{"Leading apostrophe", "'a", true},
		{"Trailing apostrophe", "a'", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateSheetName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidSheetName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRGB(t *testing.T) {
	assert.Equal(t, "1F4E78", domain.RGB("FF1F4E78"))
	assert.Equal(t, "ABCDEF", domain.RGB("#abcdef"))
	assert.Equal(t, "00FF00", domain.RGB(" 8000ff00 "))
}
