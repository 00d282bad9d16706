package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadRowFile_CSV(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Row
		wantErr bool
	}{
		{
			name: "full header",
			content: "phrase,meaning,example,source,date\n" +
				"apple,a fruit,I ate an apple,book,2024-01-05\n" +
				"banana,another fruit,,,\n",
			want: []Row{
				{Phrase: "apple", Meaning: "a fruit", Example: "I ate an apple", Source: "book", Date: "2024-01-05"},
				{Phrase: "banana", Meaning: "another fruit"},
			},
		},
		{
			name:    "column order does not matter",
			content: "meaning,phrase\na fruit,apple\n",
			want: []Row{
				{Phrase: "apple", Meaning: "a fruit"},
			},
		},
		{
			name:    "short record",
			content: "phrase,meaning\napple\n",
			want: []Row{
				{Phrase: "apple"},
			},
		},
		{
			name:    "missing phrase column",
			content: "word,meaning\napple,a fruit\n",
			wantErr: true,
		},
		{
			name:    "empty file",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "rows.csv", tt.content)
			rows, err := ReadRowFile(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestReadRowFile_YAML(t *testing.T) {
	content := `
- phrase: apple
  meaning: a fruit
  date: "2024-01-05"
- phrase: banana
  example: a banana split
`
	path := writeTempFile(t, "rows.yaml", content)
	rows, err := ReadRowFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{Phrase: "apple", Meaning: "a fruit", Date: "2024-01-05"},
		{Phrase: "banana", Example: "a banana split"},
	}, rows)
}

func TestReadRowFile_UnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "rows.txt", "apple")
	_, err := ReadRowFile(path)
	assert.Error(t, err)
}
