package chunk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybridrag/internal/service"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		meta      Metadata
		wantField string
	}{
		{name: "valid text", content: "hello", meta: TextMetadata{Source: "a.pdf", Page: 2}},
		{name: "valid structured", content: "Value (x): 1", meta: StructuredMetadata{Source: "b.csv", Sheet: "main", RowStart: 1, RowEnd: 5}},
		{name: "nil metadata", content: "hello", meta: nil, wantField: "metadata"},
		{name: "empty content", content: "  ", meta: TextMetadata{Source: "a.pdf"}, wantField: "content"},
		{name: "missing source", content: "hello", meta: TextMetadata{}, wantField: KeySource},
		{name: "negative page", content: "hello", meta: TextMetadata{Source: "a.pdf", Page: -1}, wantField: KeyPage},
		{name: "missing sheet", content: "x", meta: StructuredMetadata{Source: "b.csv", RowStart: 1, RowEnd: 1}, wantField: KeySheet},
		{name: "inverted rows", content: "x", meta: StructuredMetadata{Source: "b.csv", Sheet: "s", RowStart: 6, RowEnd: 5}, wantField: KeyRowStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.content, tt.meta)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.meta.Kind(), c.Kind())
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, service.ErrInvalidInput))
			var ve *service.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestFlatten_OnlyOwnKindFields(t *testing.T) {
	text := TextMetadata{Source: "rules.pdf", Page: 3}.Flatten()
	assert.Equal(t, map[string]any{KeySource: "rules.pdf", KeyKind: "Text", KeyPage: 3}, text)
	assert.NotContains(t, text, KeySheet)

	structured := StructuredMetadata{
		Source:       "prices.xlsx",
		Sheet:        "2021",
		RowStart:     6,
		RowEnd:       10,
		ValueColumns: []string{"Price", "Rent"},
		DateColumns:  []string{"Year"},
		Description:  "Street, Station",
	}.Flatten()
	assert.Equal(t, "Price, Rent", structured[KeyValueColumns])
	assert.Equal(t, "Year", structured[KeyDateColumns])
	assert.Equal(t, 6, structured[KeyRowStart])
	assert.NotContains(t, structured, KeyPage)
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "string", in: "x", want: "x"},
		{name: "int", in: 4, want: 4},
		{name: "float32", in: float32(1.5), want: float64(1.5)},
		{name: "nil", in: nil, want: ""},
		{name: "string list", in: []string{"a", "b"}, want: "a, b"},
		{name: "mixed list", in: []any{"a", 2, []string{"c", "d"}}, want: "a, 2, c, d"},
		{name: "map", in: map[string]int{"k": 1}, want: "map[k:1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.in))
		})
	}
}

func TestRecord_KeepsLists(t *testing.T) {
	meta := StructuredMetadata{Source: "report.xlsx", Sheet: "Q1", RowStart: 1, RowEnd: 1, ValueColumns: []string{"Revenue, SEK"}}

	flat := Record(meta)
	assert.Equal(t, []string{"Revenue, SEK"}, flat[KeyValueColumns])
	assert.Equal(t, []string{}, flat[KeyDateColumns])
	assert.Equal(t, "Revenue, SEK", meta.Flatten()[KeyValueColumns])

	c, err := FromFlat("report.xlsx:Q1:1-1", "content", map[string]any{
		KeySource:       "report.xlsx",
		KeyKind:         "Structured",
		KeySheet:        "Q1",
		KeyRowStart:     float64(1),
		KeyRowEnd:       float64(1),
		KeyValueColumns: []any{"Revenue, SEK"},
		KeyDateColumns:  []any{},
	})
	require.NoError(t, err)
	got := c.Metadata.(StructuredMetadata)
	assert.Equal(t, []string{"Revenue, SEK"}, got.ValueColumns)
	assert.Nil(t, got.DateColumns)

	assert.Equal(t, TextMetadata{Source: "a.pdf", Page: 2}.Flatten(), Record(TextMetadata{Source: "a.pdf", Page: 2}))
}

func TestFromFlat(t *testing.T) {
	c, err := FromFlat("prices.xlsx:2021:1-5", "Value (Price): 1,200", map[string]any{
		KeySource:       "prices.xlsx",
		KeyKind:         "Structured",
		KeySheet:        "2021",
		KeyRowStart:     float64(1),
		KeyRowEnd:       float64(5),
		KeyValueColumns: "Price, Rent",
		KeyDateColumns:  "",
		KeyDescription:  "Street",
	})
	require.NoError(t, err)
	assert.Equal(t, "prices.xlsx:2021:1-5", c.ID)
	meta, ok := c.Metadata.(StructuredMetadata)
	require.True(t, ok)
	assert.Equal(t, []string{"Price", "Rent"}, meta.ValueColumns)
	assert.Nil(t, meta.DateColumns)
	assert.Equal(t, 5, meta.RowEnd)

	_, err = FromFlat("x", "content", map[string]any{KeySource: "a", KeyKind: "Image"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
