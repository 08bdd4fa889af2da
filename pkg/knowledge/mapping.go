package knowledge

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/masterymap/pkg/errors"
)

// Mapping column names, as written by the curriculum spreadsheet export.
const (
	ColumnCode     = "topic_code"
	ColumnName     = "Topic"
	ColumnDivision = "Division"
)

// Row is one line of a topic mapping table: a topic without its level.
type Row struct {
	Code     string `toml:"code"`
	Name     string `toml:"name"`
	Division string `toml:"division"`
}

// ReadMapping parses a CSV mapping table. The header must name the
// topic_code, Topic and Division columns; their order and any extra
// columns are ignored. A table with no data rows is an error.
func ReadMapping(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidMapping, "mapping is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMapping, err, "read mapping header")
	}

	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	idx := make([]int, 3)
	for i, name := range []string{ColumnCode, ColumnName, ColumnDivision} {
		c, ok := cols[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidMapping, "mapping is missing column %q", name)
		}
		idx[i] = c
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMapping, err, "read mapping line %d", line)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		field := func(i int) string {
			if idx[i] >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx[i]])
		}
		rows = append(rows, Row{Code: field(0), Name: field(1), Division: field(2)})
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMapping, "mapping has no rows")
	}
	return rows, nil
}

// ReadMappingFile opens path and parses it with ReadMapping.
func ReadMappingFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "mapping %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadMapping(f)
}

// Join attaches a level from mastery to every row, keyed by topic code,
// applying floor to each level. Rows without a mastery entry are an error;
// mastery entries without a row are ignored.
func Join(rows []Row, mastery map[string]Level, floor Level) ([]Topic, error) {
	topics := make([]Topic, 0, len(rows))
	var missing []string
	for _, row := range rows {
		lvl, ok := mastery[row.Code]
		if !ok {
			missing = append(missing, row.Code)
			continue
		}
		topics = append(topics, Topic{
			Code:     row.Code,
			Name:     row.Name,
			Division: row.Division,
			Level:    lvl.Floor(floor),
		})
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidLevel,
			"no mastery level for topic(s): %s", strings.Join(missing, ", "))
	}
	return topics, nil
}
