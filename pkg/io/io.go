package io

import (
	"bufio"
	"encoding/csv"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"qpfeat/pkg/model"
)

var (
	ErrUnlabeled       = errors.New("row has no is_duplicate label")
	ErrIndexOutOfRange = errors.New("row index out of range")
	ErrEmptyMatrix     = errors.New("feature matrix has no rows")
)

const (
	Question1Column = "question1"
	Question2Column = "question2"
	LabelColumn     = "is_duplicate"
	QuestionColumn  = "question"
)

// nanText is what a missing field becomes when legacy parity is requested.
const nanText = "nan"

type DataParameters struct {
	DataFile  string
	BatchSize int
	// NullAsNaN turns empty text fields into the literal "nan" instead of ""
	NullAsNaN bool
}

type DataError struct {
	Line  int
	Error string
}

type pairColumns struct {
	id, qid1, qid2, question1, question2, label int
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = ','
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

// LoadPairs reads a question-pair table. Rows with problems are kept, with the offending
// fields left empty, and reported as DataErrors so that every input row yields one output row.
func LoadPairs(p DataParameters) (*DataSet, []DataError, error) {
	var dataErrors []DataError
	inputFile, err := os.Open(p.DataFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening file: %w", err)
	}
	defer inputFile.Close()

	reader := newCSVReader(inputFile)

	//First line is expected to be a header
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading data header: %w", err)
	}
	columns, err := findPairColumns(header)
	if err != nil {
		return nil, nil, err
	}

	var pairs []*Pair
	currentLine := 0
	var record []string
	for record, err = reader.Read(); err == nil; record, err = reader.Read() {
		if len(record) != len(header) {
			dataErrors = append(dataErrors, DataError{
				Line:  currentLine,
				Error: fmt.Sprintf("expected %d fields, got %d", len(header), len(record)),
			})
		}
		pair := &Pair{
			ID:        field(record, columns.id),
			Qid1:      field(record, columns.qid1),
			Qid2:      field(record, columns.qid2),
			Question1: textField(record, columns.question1, p.NullAsNaN),
			Question2: textField(record, columns.question2, p.NullAsNaN),
		}
		if columns.label >= 0 {
			label, err := parseLabel(field(record, columns.label))
			if err != nil {
				dataErrors = append(dataErrors, DataError{
					Line:  currentLine,
					Error: err.Error(),
				})
			} else {
				pair.Label = label
				pair.Labeled = true
			}
		}
		pairs = append(pairs, pair)
		currentLine++
	}
	if err != io.EOF {
		return nil, nil, fmt.Errorf("error reading data at line %d: %w", currentLine, err)
	}

	return NewDataSet(pairs, p.BatchSize), dataErrors, nil
}

func findPairColumns(header []string) (pairColumns, error) {
	columns := pairColumns{
		id:        lo.IndexOf(header, "id"),
		qid1:      lo.IndexOf(header, "qid1"),
		qid2:      lo.IndexOf(header, "qid2"),
		question1: lo.IndexOf(header, Question1Column),
		question2: lo.IndexOf(header, Question2Column),
		label:     lo.IndexOf(header, LabelColumn),
	}
	if columns.id < 0 {
		columns.id = lo.IndexOf(header, "test_id")
	}
	if columns.question1 < 0 || columns.question2 < 0 {
		return columns, fmt.Errorf("columns %s and %s are required, header is %v", Question1Column, Question2Column, header)
	}
	return columns, nil
}

func field(record []string, column int) string {
	if column < 0 || column >= len(record) {
		return ""
	}
	return record[column]
}

func textField(record []string, column int, nullAsNaN bool) string {
	value := field(record, column)
	if value == "" && nullAsNaN {
		return nanText
	}
	return value
}

func parseLabel(value string) (int, error) {
	label, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("error parsing %s: %w", LabelColumn, err)
	}
	if label != 0 && label != 1 {
		return 0, fmt.Errorf("%s must be 0 or 1, got %d", LabelColumn, label)
	}
	return label, nil
}

// LoadQuestions reads the question column of a deduplicated question table.
func LoadQuestions(fileName string, nullAsNaN bool) ([]string, error) {
	inputFile, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer inputFile.Close()

	reader := newCSVReader(inputFile)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading question header: %w", err)
	}
	column := lo.IndexOf(header, QuestionColumn)
	if column < 0 {
		return nil, fmt.Errorf("column %s not found in header %v", QuestionColumn, header)
	}

	var questions []string
	var record []string
	for record, err = reader.Read(); err == nil; record, err = reader.Read() {
		questions = append(questions, textField(record, column, nullAsNaN))
	}
	if err != io.EOF {
		return nil, fmt.Errorf("error reading questions: %w", err)
	}
	return questions, nil
}

// LoadIndices reads one 0-based row index per line.
func LoadIndices(r io.Reader) ([]int, error) {
	var indices []int
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		value := strings.TrimSpace(scanner.Text())
		if value == "" {
			continue
		}
		index, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("error parsing index at line %d: %w", line, err)
		}
		indices = append(indices, index)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading indices: %w", err)
	}
	return indices, nil
}

// SaveFeatures writes m in sparse text form: a "rows cols" header, then one line per row
// holding the space separated col:value pairs of its non-zero values.
func SaveFeatures(m mat.Matrix, writer io.Writer) error {
	w := bufio.NewWriter(writer)
	rows, cols := m.Dims()
	fmt.Fprintf(w, "%d %d\n", rows, cols)
	for i := 0; i < rows; i++ {
		first := true
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if v == 0 {
				continue
			}
			if !first {
				w.WriteByte(' ')
			}
			first = false
			fmt.Fprintf(w, "%d:%s", j, strconv.FormatFloat(v, 'g', -1, 64))
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("error writing features: %w", err)
	}
	return nil
}

// LoadFeatures reads a matrix written by SaveFeatures.
func LoadFeatures(r io.Reader) (*mat.Dense, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("error reading features header: %w", err)
		}
		return nil, fmt.Errorf("missing features header: %w", io.ErrUnexpectedEOF)
	}
	var rows, cols int
	if _, err := fmt.Sscanf(scanner.Text(), "%d %d", &rows, &cols); err != nil {
		return nil, fmt.Errorf("error parsing features header: %w", err)
	}
	if rows == 0 || cols == 0 {
		return nil, ErrEmptyMatrix
	}

	m := mat.NewDense(rows, cols, nil)
	row := 0
	for ; row < rows && scanner.Scan(); row++ {
		for _, entry := range strings.Fields(scanner.Text()) {
			col, value, err := parseEntry(entry)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			if col < 0 || col >= cols {
				return nil, fmt.Errorf("row %d: column %d out of range", row, col)
			}
			m.Set(row, col, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading features: %w", err)
	}
	if row != rows {
		return nil, fmt.Errorf("expected %d rows, got %d: %w", rows, row, io.ErrUnexpectedEOF)
	}
	return m, nil
}

func parseEntry(entry string) (int, float64, error) {
	sep := strings.IndexByte(entry, ':')
	if sep < 0 {
		return 0, 0, fmt.Errorf("malformed entry %q", entry)
	}
	col, err := strconv.Atoi(entry[:sep])
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing column in %q: %w", entry, err)
	}
	value, err := strconv.ParseFloat(entry[sep+1:], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing value in %q: %w", entry, err)
	}
	return col, value, nil
}

// SaveWordPower writes one line per word: the word followed by its statistics, tab
// separated, at 5 decimals.
func SaveWordPower(records []model.WordPower, writer io.Writer) error {
	w := bufio.NewWriter(writer)
	for _, record := range records {
		w.WriteString(record.Word)
		for _, v := range record.Stats {
			fmt.Fprintf(w, "\t%.5f", v)
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("error writing word power: %w", err)
	}
	return nil
}

func SaveModel(model *model.Model, writer io.Writer) error {
	encoder := gob.NewEncoder(writer)
	err := encoder.Encode(model)
	if err != nil {
		return fmt.Errorf("error encoding model: %w", err)
	}
	return nil
}

func LoadModel(input io.Reader) (*model.Model, error) {
	decoder := gob.NewDecoder(input)
	model := model.Model{}
	err := decoder.Decode(&model)
	if err != nil {
		return nil, fmt.Errorf("error decoding model: %w", err)
	}
	return &model, nil

}
