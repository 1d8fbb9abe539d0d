package dns

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Header lists the columns a records CSV must declare, in template order.
// ReadRows accepts them in any order.
var Header = []string{"env", "zone", "type", "name", "value", "ttl"}

// ReadRows parses a records CSV. Rows that fail validation come back as
// RowErrors alongside the rows that did parse, so one bad line never hides
// the rest of the file. A missing or malformed header aborts the whole read.
func ReadRows(r io.Reader) ([]Row, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("CSV is empty, expected header %s", strings.Join(Header, ","))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV header: %w", err)
	}
	index, err := headerIndex(header)
	if err != nil {
		return nil, nil, err
	}

	var rows []Row
	var rowErrs []RowError
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, *NewRowError(line, "", strip(err)))
			continue
		}
		row, rowErr := parseRow(line, record, index)
		if rowErr != nil {
			rowErrs = append(rowErrs, *rowErr)
			continue
		}
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

func headerIndex(header []string) (map[string]int, error) {
	if len(header) != len(Header) {
		return nil, fmt.Errorf("CSV header has %d columns, expected %s", len(header), strings.Join(Header, ","))
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range Header {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("CSV header is missing the %q column, expected %s", col, strings.Join(Header, ","))
		}
	}
	return index, nil
}

func parseRow(line int, record []string, index map[string]int) (Row, *RowError) {
	get := func(col string) string {
		return strings.TrimSpace(record[index[col]])
	}
	for _, col := range Header {
		if get(col) == "" {
			return Row{}, NewRowError(line, col, "field is empty")
		}
	}

	recType, err := ParseRecordType(get("type"))
	if err != nil {
		return Row{}, NewRowError(line, "type", err.Error())
	}
	ttl, err := strconv.ParseInt(get("ttl"), 10, 64)
	if err != nil || ttl <= 0 {
		return Row{}, NewRowError(line, "ttl", fmt.Sprintf("%q is not a positive integer", get("ttl")))
	}

	return Row{
		Line:  line,
		Env:   get("env"),
		Zone:  get("zone"),
		Type:  recType,
		Name:  get("name"),
		Value: get("value"),
		TTL:   ttl,
	}, nil
}

// strip drops the "record on line N" prefix encoding/csv adds since the
// RowError already carries the row number.
func strip(err error) string {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Err.Error()
	}
	return err.Error()
}
