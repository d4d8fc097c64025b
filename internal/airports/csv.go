package airports

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Header aliases accepted for each column. The first entry is the OurAirports name.
var (
	codeColumns    = []string{"iata_code", "iata"}
	nameColumns    = []string{"name"}
	cityColumns    = []string{"municipality", "city"}
	countryColumns = []string{"iso_country", "country"}
)

type columnIndex struct {
	code, name, city, country int
}

// ParseCSV reads an airport CSV document and returns the code to display name
// mapping. Rows whose IATA field is not exactly three uppercase letters are
// skipped. When a code appears more than once, the first row wins.
func ParseCSV(r io.Reader) (map[string]string, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Err: errors.New("empty document")}
		}
		return nil, &ParseError{Line: 1, Err: err}
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}

	records := make(map[string]string)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				line = csvErr.Line
			}
			return nil, &ParseError{Line: line, Err: err}
		}

		code := row[cols.code]
		if !ValidCode(code) {
			continue
		}
		if _, seen := records[code]; seen {
			continue
		}

		city := ""
		if cols.city >= 0 {
			city = row[cols.city]
		}
		records[code] = DisplayName(row[cols.name], city, row[cols.country])
	}

	if len(records) == 0 {
		return nil, &ParseError{Err: errors.New("no rows with a valid IATA code")}
	}
	return records, nil
}

func locateColumns(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		positions[strings.ToLower(strings.TrimSpace(h))] = i
	}

	find := func(aliases []string) int {
		for _, a := range aliases {
			if i, ok := positions[a]; ok {
				return i
			}
		}
		return -1
	}

	cols := columnIndex{
		code:    find(codeColumns),
		name:    find(nameColumns),
		city:    find(cityColumns),
		country: find(countryColumns),
	}

	var missing []string
	if cols.code < 0 {
		missing = append(missing, codeColumns[0])
	}
	if cols.name < 0 {
		missing = append(missing, nameColumns[0])
	}
	if cols.country < 0 {
		missing = append(missing, countryColumns[0])
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}
