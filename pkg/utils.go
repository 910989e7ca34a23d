package pkg

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"qpfeat/pkg/io"
	"qpfeat/pkg/text"
)

func printDataErrors(file string, errors []io.DataError) {
	for _, err := range errors {
		log.Error().Str("File", file).Msgf("Error parsing data at line %d: %s", err.Line, err.Error)
	}
}

func createFile(fileName string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return nil, fmt.Errorf("error creating directory for %s: %w", fileName, err)
	}
	file, err := os.Create(fileName)
	if err != nil {
		return nil, fmt.Errorf("error creating file %s: %w", fileName, err)
	}
	return file, nil
}

// loadStopwords reads the stopword file, or returns the English list when fileName is empty.
func loadStopwords(fileName string) (text.Set, error) {
	if fileName == "" {
		return text.English(), nil
	}
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("error opening stopwords file %s: %w", fileName, err)
	}
	defer file.Close()
	return text.LoadStopwords(file)
}

func loadPairs(fileName string, batchSize int, nullAsNaN bool) (*io.DataSet, error) {
	data, dataErrors, err := io.LoadPairs(io.DataParameters{
		DataFile:  fileName,
		BatchSize: batchSize,
		NullAsNaN: nullAsNaN,
	})
	if err != nil {
		return nil, fmt.Errorf("error loading data from %s: %w", fileName, err)
	}
	printDataErrors(fileName, dataErrors)
	return data, nil
}
