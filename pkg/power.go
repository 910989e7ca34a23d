package pkg

import (
	"errors"
	"fmt"
	gio "io"
	"math/rand"
	"os"

	"github.com/rs/zerolog/log"

	"qpfeat/pkg/feature"
	"qpfeat/pkg/io"
)

type PowerParameters struct {
	TrainFile string
	// IndexFile lists the training rows to use. When empty a random TrainFraction of the
	// rows is drawn with RndSeed.
	IndexFile     string
	TrainFraction float64
	RndSeed       uint64
	OutputFile    string
	BatchSize     int
	NullAsNaN     bool
	// Top > 0 renders the most frequent words
	Top int
}

// Power computes the word power statistics over a subset of the training rows and saves
// them to OutputFile.
func Power(p PowerParameters, out gio.Writer) error {
	train, err := loadPairs(p.TrainFile, p.BatchSize, p.NullAsNaN)
	if err != nil {
		return err
	}
	subset, err := powerSubset(train, p)
	if err != nil {
		return err
	}
	log.Info().Int("Rows", train.Size()).Int("Subset", subset.Size()).Msg("Computing word power")

	records, err := feature.CalWordPower(subset)
	if err != nil {
		return fmt.Errorf("error computing word power: %w", err)
	}

	file, err := createFile(p.OutputFile)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := io.SaveWordPower(records, file); err != nil {
		return fmt.Errorf("error saving word power to %s: %w", p.OutputFile, err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	log.Info().Int("Words", len(records)).Str("File", p.OutputFile).Msg("Word power saved")

	if p.Top > 0 {
		return WriteWordPower(out, records, p.Top)
	}
	return nil
}

func powerSubset(train *io.DataSet, p PowerParameters) (*io.DataSet, error) {
	if p.IndexFile != "" {
		file, err := os.Open(p.IndexFile)
		if err != nil {
			return nil, fmt.Errorf("error opening index file %s: %w", p.IndexFile, err)
		}
		defer file.Close()
		indices, err := io.LoadIndices(file)
		if err != nil {
			return nil, err
		}
		return io.NewDataSetSplit(train.Data, train.BatchSize, indices)
	}

	if p.TrainFraction <= 0 || p.TrainFraction > 1 {
		return nil, fmt.Errorf("train fraction must be in (0, 1], got %g", p.TrainFraction)
	}
	size := int(p.TrainFraction * float64(train.Size()))
	if size == 0 {
		return nil, errors.New("train fraction selects no rows")
	}
	train.Rand = rand.New(rand.NewSource(int64(p.RndSeed)))
	return train.RandomSplit(size)[0], nil
}
