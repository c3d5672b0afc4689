package nodectl

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// SegmentEndRecord is persisted state of a segment end: identity plus configuration
type SegmentEndRecord struct {
	SegmentID SegmentID
	NodeID    NodeID
	Config    Config
}

// Record returns persisted part of segment end
func (segEnd *SegmentEnd) Record() SegmentEndRecord {
	return SegmentEndRecord{
		SegmentID: segEnd.SegmentID,
		NodeID:    segEnd.NodeID,
		Config:    segEnd.Config,
	}
}

// ErrRecordsHeader is returned for CSV files whose header does not match the records layout
var ErrRecordsHeader = errors.New("unexpected records header")

var recordsHeader = []string{
	"segment_id", "node_id", "corner_offset", "flat_junctions",
	"no_crossings", "no_markings", "no_junction_texture", "no_junction_props", "no_tl_props",
	"delta_left_pos_x", "delta_left_pos_y", "delta_left_pos_z",
	"delta_left_dir_x", "delta_left_dir_y", "delta_left_dir_z",
	"delta_right_pos_x", "delta_right_pos_y", "delta_right_pos_z",
	"delta_right_dir_x", "delta_right_dir_y", "delta_right_dir_z",
}

// formatFloat is lossless so records survive save/load unchanged
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func appendVector(row []string, v Vector3) []string {
	return append(row, formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
}

// WriteRecordsCSV writes records in semicolon separated format
func WriteRecordsCSV(w io.Writer, records []SegmentEndRecord) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	err := writer.Write(recordsHeader)
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, record := range records {
		cfg := record.Config
		row := []string{
			fmt.Sprintf("%d", record.SegmentID),
			fmt.Sprintf("%d", record.NodeID),
			formatFloat(cfg.CornerOffset),
			fmt.Sprintf("%t", cfg.FlatJunctions),
			fmt.Sprintf("%t", cfg.NoCrossings),
			fmt.Sprintf("%t", cfg.NoMarkings),
			fmt.Sprintf("%t", cfg.NoJunctionTexture),
			fmt.Sprintf("%t", cfg.NoJunctionProps),
			fmt.Sprintf("%t", cfg.NoTLProps),
		}
		row = appendVector(row, cfg.DeltaLeftCornerPos)
		row = appendVector(row, cfg.DeltaLeftCornerDir)
		row = appendVector(row, cfg.DeltaRightCornerPos)
		row = appendVector(row, cfg.DeltaRightCornerDir)
		err = writer.Write(row)
		if err != nil {
			return errors.Wrap(err, "Can't write record")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "Can't flush records")
}

// ExportRecordsToCSV saves records to file
func ExportRecordsToCSV(fname string, records []SegmentEndRecord) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	return WriteRecordsCSV(file, records)
}

// fieldParser parses CSV row keeping the first error
type fieldParser struct {
	row []string
	err error
}

func (parser *fieldParser) uint32(idx int) uint32 {
	if parser.err != nil {
		return 0
	}
	v, err := strconv.ParseUint(parser.row[idx], 10, 32)
	if err != nil {
		parser.err = errors.Wrapf(err, "Bad %s", recordsHeader[idx])
	}
	return uint32(v)
}

func (parser *fieldParser) float(idx int) float64 {
	if parser.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(parser.row[idx], 64)
	if err != nil {
		parser.err = errors.Wrapf(err, "Bad %s", recordsHeader[idx])
	}
	return v
}

func (parser *fieldParser) bool(idx int) bool {
	if parser.err != nil {
		return false
	}
	v, err := strconv.ParseBool(parser.row[idx])
	if err != nil {
		parser.err = errors.Wrapf(err, "Bad %s", recordsHeader[idx])
	}
	return v
}

func (parser *fieldParser) vector(idx int) Vector3 {
	return Vector3{X: parser.float(idx), Y: parser.float(idx + 1), Z: parser.float(idx + 2)}
}

// ReadRecordsCSV reads records written by WriteRecordsCSV
func ReadRecordsCSV(r io.Reader) ([]SegmentEndRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = len(recordsHeader)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "Can't read records")
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrRecordsHeader, "Missing header")
	}
	for i, column := range rows[0] {
		if column != recordsHeader[i] {
			return nil, errors.Wrapf(ErrRecordsHeader, "Column %d is '%s', but '%s' expected", i+1, column, recordsHeader[i])
		}
	}
	records := make([]SegmentEndRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		parser := fieldParser{row: row}
		record := SegmentEndRecord{
			SegmentID: SegmentID(parser.uint32(0)),
			NodeID:    NodeID(parser.uint32(1)),
			Config: Config{
				CornerOffset:        parser.float(2),
				FlatJunctions:       parser.bool(3),
				NoCrossings:         parser.bool(4),
				NoMarkings:          parser.bool(5),
				NoJunctionTexture:   parser.bool(6),
				NoJunctionProps:     parser.bool(7),
				NoTLProps:           parser.bool(8),
				DeltaLeftCornerPos:  parser.vector(9),
				DeltaLeftCornerDir:  parser.vector(12),
				DeltaRightCornerPos: parser.vector(15),
				DeltaRightCornerDir: parser.vector(18),
			},
		}
		if parser.err != nil {
			return nil, errors.Wrapf(parser.err, "Row %d", i+2)
		}
		records = append(records, record)
	}
	return records, nil
}

// ImportRecordsFromCSV loads records saved by ExportRecordsToCSV
func ImportRecordsFromCSV(fname string) ([]SegmentEndRecord, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer file.Close()
	return ReadRecordsCSV(file)
}
