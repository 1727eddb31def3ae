// Package loader reads stop locations from telemetry CSV exports.
package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fleetroute/internal/domain/entity"
	domainerrors "fleetroute/internal/domain/errors"

	"github.com/pkg/errors"
)

var (
	latColumns  = []string{"lat", "latitude"}
	longColumns = []string{"long", "lng", "lon", "longitude"}
)

const locationColumn = "location"

// Options controls how incomplete rows are handled
type Options struct {
	// SkipIncomplete drops rows with a missing coordinate instead of passing
	// them on to normalization, where they are rejected.
	SkipIncomplete bool
}

// Dataset holds the locations read from one CSV input
type Dataset struct {
	Locations []entity.RawLocation
	Rows      int // data rows read, header excluded
	Skipped   int // rows dropped because a coordinate was missing
}

// CSVLoader handles loading of stop locations from CSV files
type CSVLoader struct {
	opts Options
}

// NewCSVLoader creates a new CSV loader
func NewCSVLoader(opts Options) *CSVLoader {
	return &CSVLoader{opts: opts}
}

// LoadFile reads the locations in the CSV file at path
func (l *CSVLoader) LoadFile(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	return l.Load(file)
}

// Load reads locations from r. The first row must be a header naming either
// lat/long columns or a location column holding {'lat': .., 'long': ..}.
func (l *CSVLoader) Load(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domainerrors.NewValidationError("", "header", "missing header row")
	}
	if err != nil {
		return nil, csvError(err)
	}

	extract, err := newExtractor(header)
	if err != nil {
		return nil, err
	}

	dataset := &Dataset{Locations: []entity.RawLocation{}}
	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, csvError(readErr)
		}
		lineNum, _ := reader.FieldPos(0)
		dataset.Rows++

		loc, parseErr := extract(record, lineNum)
		if parseErr != nil {
			return nil, parseErr
		}

		if l.opts.SkipIncomplete && (loc.Lat == nil || loc.Long == nil) {
			dataset.Skipped++

			continue
		}

		dataset.Locations = append(dataset.Locations, loc)
	}

	return dataset, nil
}

type extractor func(record []string, lineNum int) (entity.RawLocation, error)

// newExtractor picks the column layout from the header row
func newExtractor(header []string) (extractor, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	latIdx, hasLat := findColumn(index, latColumns)
	longIdx, hasLong := findColumn(index, longColumns)
	if hasLat && hasLong {
		return func(record []string, lineNum int) (entity.RawLocation, error) {
			lat, err := parseCoordinate(cell(record, latIdx), "lat", lineNum)
			if err != nil {
				return entity.RawLocation{}, err
			}
			long, err := parseCoordinate(cell(record, longIdx), "long", lineNum)
			if err != nil {
				return entity.RawLocation{}, err
			}

			return entity.RawLocation{Lat: lat, Long: long}, nil
		}, nil
	}

	if locIdx, ok := index[locationColumn]; ok {
		return func(record []string, lineNum int) (entity.RawLocation, error) {
			return parseLocationObject(cell(record, locIdx), lineNum)
		}, nil
	}

	return nil, domainerrors.NewValidationError("", "header", "expected lat and long columns or a location column")
}

func findColumn(index map[string]int, names []string) (int, bool) {
	for _, name := range names {
		if i, ok := index[name]; ok {
			return i, true
		}
	}

	return 0, false
}

// cell returns the trimmed value at i, or "" for short rows
func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[i])
}

func parseCoordinate(value, name string, lineNum int) (*float64, error) {
	if value == "" {
		return nil, nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, lineError(lineNum, fmt.Sprintf("%s %q is not a number", name, value))
	}

	return &f, nil
}

// parseLocationObject decodes a dict-like cell such as {'lat': 34.05, 'long': -118.24}
func parseLocationObject(value string, lineNum int) (entity.RawLocation, error) {
	if value == "" {
		return entity.RawLocation{}, nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(strings.ReplaceAll(value, "'", `"`)), &fields); err != nil {
		return entity.RawLocation{}, lineError(lineNum, fmt.Sprintf("location %q is not an object", value))
	}

	keys := make(map[string]any, len(fields))
	for k, v := range fields {
		keys[strings.ToLower(strings.TrimSpace(k))] = v
	}

	lat, err := objectCoordinate(keys, latColumns, "lat", lineNum)
	if err != nil {
		return entity.RawLocation{}, err
	}
	long, err := objectCoordinate(keys, longColumns, "long", lineNum)
	if err != nil {
		return entity.RawLocation{}, err
	}

	return entity.RawLocation{Lat: lat, Long: long}, nil
}

func objectCoordinate(fields map[string]any, names []string, name string, lineNum int) (*float64, error) {
	for _, key := range names {
		raw, ok := fields[key]
		if !ok {
			continue
		}

		switch v := raw.(type) {
		case nil:
			return nil, nil
		case float64:
			return &v, nil
		case string:
			return parseCoordinate(strings.TrimSpace(v), name, lineNum)
		default:
			return nil, lineError(lineNum, fmt.Sprintf("location %s has unsupported type %T", name, raw))
		}
	}

	return nil, nil
}

func lineError(lineNum int, reason string) error {
	return domainerrors.NewValidationError(domainerrors.CodeInvalidLocation, fmt.Sprintf("line %d", lineNum), reason)
}

// csvError converts a CSV syntax error into a validation error naming the line
func csvError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return domainerrors.NewValidationError("", fmt.Sprintf("line %d", parseErr.Line), parseErr.Err.Error())
	}

	return errors.WithStack(err)
}
