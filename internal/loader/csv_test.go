package loader

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybridrag/internal/indexer"
)

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	writeFile(t, path, []byte(",Street,Year,Price\n"+
		"0,Hornsgatan,2021,1200\n"+
		"1,\"Ringvägen, södra\",2021,1400\n"+
		",,,\n"+
		"2,Götgatan,2022\n"))

	loaded, err := loadCSV(context.Background(), path, "prices.csv")
	require.NoError(t, err)
	require.NotNil(t, loaded.Table)
	assert.Empty(t, loaded.Documents)
	assert.Equal(t, "prices.csv", loaded.Table.Source)
	require.Len(t, loaded.Table.Sheets, 1)

	sheet := loaded.Table.Sheets[0]
	assert.Equal(t, "", sheet.Name, "partitioning names the sheet later")
	assert.Equal(t, []string{"Unnamed: 0", "Street", "Year", "Price"}, sheet.Columns)
	assert.Equal(t, [][]any{
		{"0", "Hornsgatan", "2021", "1200"},
		{"1", "Ringvägen, södra", "2021", "1400"},
		{"2", "Götgatan", "2022"},
	}, sheet.Rows)
}

func TestLoadCSV_Semicolons(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hyror.csv")
	writeFile(t, path, []byte("Gata;Hyra\nStortorget;50,5\n"))

	loaded, err := loadCSV(context.Background(), path, "hyror.csv")
	require.NoError(t, err)
	require.NotNil(t, loaded.Table)
	assert.Equal(t, []string{"Gata", "Hyra"}, loaded.Table.Sheets[0].Columns)
	assert.Equal(t, [][]any{{"Stortorget", "50,5"}}, loaded.Table.Sheets[0].Rows)
}

func TestLoadCSV_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	writeFile(t, path, []byte("Street,Price\n"))

	loaded, err := loadCSV(context.Background(), path, "empty.csv")
	require.NoError(t, err)
	assert.Nil(t, loaded.Table)
}

func TestLoadCSV_ChunksEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	writeFile(t, path, []byte("Street,Price\nHornsgatan,450\n"))

	loaded, err := loadCSV(context.Background(), path, "prices.csv")
	require.NoError(t, err)

	chunks, err := indexer.NewRecordChunker(5).Chunk(*loaded.Table)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Description: Hornsgatan\nValue (Price): 450", chunks[0].Content)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ',', sniffDelimiter("a,b,c\n1;2"))
	assert.Equal(t, ';', sniffDelimiter("a;b;c\n1,5;2"))
	assert.Equal(t, '\t', sniffDelimiter("a\tb"))
	assert.Equal(t, ',', sniffDelimiter("single"))
}
