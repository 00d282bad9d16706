package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReadRowFile parses an import file into rows. The format is chosen by
// extension: .csv with a header line, or .yaml/.yml with a list of
// mappings.
func ReadRowFile(path string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVRows(path)
	case ".yaml", ".yml":
		return readYAMLRows(path)
	default:
		return nil, fmt.Errorf("unsupported import file format: %s", path)
	}
}

// readCSVRows parses a CSV file whose header names a subset of
// phrase, meaning, example, source, date.
func readCSVRows(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv.ReadAll(%s) > %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file %s has no header line", path)
	}

	columns := make(map[string]int, len(records[0]))
	for index, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = index
	}
	if _, ok := columns["phrase"]; !ok {
		return nil, fmt.Errorf("csv file %s has no phrase column", path)
	}

	field := func(record []string, name string) string {
		index, ok := columns[name]
		if !ok || index >= len(record) {
			return ""
		}
		return record[index]
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, Row{
			Phrase:  field(record, "phrase"),
			Meaning: field(record, "meaning"),
			Example: field(record, "example"),
			Source:  field(record, "source"),
			Date:    field(record, "date"),
		})
	}
	return rows, nil
}

// readYAMLRows parses a YAML file holding a list of rows.
func readYAMLRows(path string) ([]Row, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	var rows []Row
	if err := yaml.Unmarshal(content, &rows); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	return rows, nil
}
