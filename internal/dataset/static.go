package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"

	"studentinsight.dev/dashboard/internal/logging"
	"studentinsight.dev/dashboard/internal/students"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// missingMarkers are the cell values treated as absent, as pandas does.
var missingMarkers = []string{"", "NA", "N/A", "NaN", "nan", "None", "null"}

func rawDataset(ctx context.Context, client *http.Client, source string, isLocalFile bool, logger *slog.Logger) ([]byte, error) {
	if isLocalFile {
		return readLocalDataset(source, logger)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating dataset request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading dataset: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, logger, "dataset_response_body")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("error downloading dataset: unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset body: %w", err)
	}
	return b, nil
}

func readLocalDataset(path string, logger *slog.Logger) (b []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading local dataset file: %w", err)
	}
	defer logging.HandleDeferredError(&err, f.Close, logger, "close_dataset_file")

	b, err = io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading local dataset file: %w", err)
	}
	return b, nil
}

// decodeLatin1 converts ISO-8859-1 bytes to UTF-8.
func decodeLatin1(b []byte) ([]byte, error) {
	b = bytes.TrimPrefix(b, utf8BOM)
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("error decoding dataset as latin-1: %w", err)
	}
	return out, nil
}

// requiredColumns returns the normalized names of every column the dataset must carry.
func requiredColumns() []string {
	columns := students.Columns()
	for i, c := range columns {
		columns[i] = normalizeColumn(c)
	}
	return columns
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// parseDataset reads the CSV into raw records. Every column is loaded as
// text; column names are matched case-insensitively.
func parseDataset(r io.Reader) ([]students.RawRecord, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingMarkers),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("error parsing dataset CSV: %w", df.Err)
	}

	byName := make(map[string]string, df.Ncol())
	for _, name := range df.Names() {
		byName[normalizeColumn(name)] = name
	}

	var missing []string
	for _, column := range requiredColumns() {
		if _, ok := byName[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	column := func(name string) []students.Cell {
		s := df.Col(byName[normalizeColumn(name)])
		values := s.Records()
		nan := s.IsNaN()
		cells := make([]students.Cell, len(values))
		for i, v := range values {
			if nan[i] || v == "NaN" {
				cells[i] = students.Missing()
				continue
			}
			cells[i] = students.Value(v)
		}
		return cells
	}

	userIDs := column(students.ColumnUserID)
	var marks [len(students.Subjects)][]students.Cell
	for _, subject := range students.Subjects {
		marks[subject] = column(subject.Column())
	}
	flags := column(students.ColumnProductivityFlag)
	rates := column(students.ColumnProductivityRate)
	factors := column(students.ColumnEmotionalFactors)

	records := make([]students.RawRecord, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		if userIDs[i].IsMissing() {
			continue
		}
		rec := students.RawRecord{
			UserID:           strings.TrimSpace(userIDs[i].Value),
			ProductivityFlag: flags[i],
			ProductivityRate: rates[i],
			EmotionalFactors: factors[i],
		}
		for _, subject := range students.Subjects {
			rec.Marks[subject] = marks[subject][i]
		}
		records = append(records, rec)
	}

	return records, nil
}

// loadDataset fetches, decodes and parses the dataset.
func loadDataset(ctx context.Context, client *http.Client, config Config, logger *slog.Logger) ([]students.RawRecord, error) {
	b, err := rawDataset(ctx, client, config.SourceURL, config.isLocalFile(), logger)
	if err != nil {
		return nil, err
	}

	decoded, err := decodeLatin1(b)
	if err != nil {
		return nil, err
	}

	return parseDataset(bytes.NewReader(decoded))
}
