package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseCSV reads a staging file. Every required column must be present;
// extra columns are ignored.
func ParseCSV(r io.Reader) ([]GameRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidCSV)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrInvalidCSV, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns %v", ErrInvalidCSV, missing)
	}

	var rows []GameRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidCSV, line, err)
		}
		row, err := parseRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidCSV, line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(record []string, index map[string]int) (GameRow, error) {
	cell := func(col string) string {
		return strings.TrimSpace(record[index[col]])
	}

	var row GameRow
	var err error
	if row.PlayerID, err = parseInt(cell("PlayerId")); err != nil {
		return row, fmt.Errorf("PlayerId: %w", err)
	}
	if row.TournamentID, err = parseInt(cell("MundialitoId")); err != nil {
		return row, fmt.Errorf("MundialitoId: %w", err)
	}
	if row.TeamID, err = parseInt(cell("TeamId")); err != nil {
		return row, fmt.Errorf("TeamId: %w", err)
	}
	if row.Goals, err = parseInt(cell("Goals")); err != nil {
		return row, fmt.Errorf("Goals: %w", err)
	}
	if row.Assists, err = parseInt(cell("Assists")); err != nil {
		return row, fmt.Errorf("Assists: %w", err)
	}
	if row.CleanSheet, err = parseOptional(cell("CleanSheet")); err != nil {
		return row, fmt.Errorf("CleanSheet: %w", err)
	}
	if row.GoalsConceded, err = parseOptional(cell("GoalsConceded")); err != nil {
		return row, fmt.Errorf("GoalsConceded: %w", err)
	}

	row.Result = strings.ToUpper(cell("WL"))
	switch row.Result {
	case "W", "D", "L":
	default:
		return row, fmt.Errorf("WL: unknown result %q", row.Result)
	}

	row.PlayerName = cell("PlayerName")
	row.TeamName = cell("TeamName")
	row.TeamAbbr = cell("TeamAbbr")

	flags := []*bool{&row.IsMVP, &row.IsGoldenBoot, &row.IsPlaymaker}
	for i, col := range AwardColumns {
		if _, ok := index[col]; !ok {
			continue
		}
		v, err := parseOptional(cell(col))
		if err != nil {
			return row, fmt.Errorf("%s: %w", col, err)
		}
		*flags[i] = v != nil && *v != 0
	}
	return row, nil
}

// parseInt accepts plain integers, pandas-style floats ("2.0") and booleans.
func parseInt(s string) (int, error) {
	switch strings.ToLower(s) {
	case "true":
		return 1, nil
	case "false":
		return 0, nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	return int(f), nil
}

func parseOptional(s string) (*int, error) {
	switch strings.ToLower(s) {
	case "", "nan", "null", "none":
		return nil, nil
	}
	v, err := parseInt(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// DateFromFilename extracts the date from names like "mundialito_7_2025-07-12.csv".
// It returns "" when the name carries no date.
func DateFromFilename(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(base, "_")
	if len(parts) < 3 {
		return ""
	}
	return parts[len(parts)-1]
}

// FindStagingFile locates the single staging file for a tournament in dir.
func FindStagingFile(dir string, tournamentID int) (string, error) {
	pattern := filepath.Join(dir, fmt.Sprintf("mundialito_%d*.csv", tournamentID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	// mundialito_1* also matches mundialito_12_...; keep exact id matches only.
	var exact []string
	for _, m := range matches {
		base := strings.TrimSuffix(filepath.Base(m), ".csv")
		parts := strings.Split(base, "_")
		if len(parts) >= 2 && parts[1] == strconv.Itoa(tournamentID) {
			exact = append(exact, m)
		}
	}
	switch len(exact) {
	case 0:
		return "", fmt.Errorf("no file found matching %s", pattern)
	case 1:
		return exact[0], nil
	default:
		return "", fmt.Errorf("multiple files found matching %s: %v", pattern, exact)
	}
}
