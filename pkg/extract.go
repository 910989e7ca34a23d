package pkg

import (
	"context"
	"errors"
	"fmt"
	gio "io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"qpfeat/pkg/feature"
	"qpfeat/pkg/io"
	"qpfeat/pkg/model"
	"qpfeat/pkg/text"
)

const featureExtension = ".smat"

type ExtractParameters struct {
	Feature       string
	TrainFile     string
	TestFile      string
	QuestionsFile string
	FeatureDir    string
	StopwordsFile string
	// WeightsDir is where fitted weight tables are saved, or loaded from with LoadWeights
	WeightsDir  string
	LoadWeights bool
	Workers     int
	BatchSize   int
	NullAsNaN   bool
	// HistogramBins > 0 renders the label split histogram of each train feature
	HistogramBins int
	CountWeights  model.CountWeightParameters
}

// FeatureFile is where the features of a split are saved.
func FeatureFile(dir, name, split string) string {
	return filepath.Join(dir, name+"."+split+featureExtension)
}

// WeightsFile is where the fitted table of a feature is saved.
func WeightsFile(dir, name string) string {
	return filepath.Join(dir, name+".weights.gob")
}

type split struct {
	name string
	data *io.DataSet
}

type extractor struct {
	params ExtractParameters
	stops  text.Set
	corpus feature.Corpus
	splits []split
	out    gio.Writer
}

// Extract fits the selected features on the train split and saves the features of the
// train and test splits.
func Extract(ctx context.Context, p ExtractParameters, out gio.Writer) error {
	extractors, err := feature.Lookup(p.Feature)
	if err != nil {
		return err
	}
	if p.LoadWeights && p.WeightsDir == "" {
		return errors.New("loading weights requires a weights directory")
	}

	x := &extractor{params: p, out: out}
	x.stops, err = loadStopwords(p.StopwordsFile)
	if err != nil {
		return err
	}

	train, err := loadPairs(p.TrainFile, p.BatchSize, p.NullAsNaN)
	if err != nil {
		return err
	}
	if train.Size() == 0 {
		return fmt.Errorf("no training data in %s: %w", p.TrainFile, feature.ErrNoData)
	}
	x.splits = append(x.splits, split{name: "train", data: train})
	if p.TestFile != "" {
		test, err := loadPairs(p.TestFile, p.BatchSize, p.NullAsNaN)
		if err != nil {
			return err
		}
		x.splits = append(x.splits, split{name: "test", data: test})
	}

	x.corpus = feature.Corpus{Train: train, CountWeights: p.CountWeights}
	if p.QuestionsFile == "" {
		x.corpus.Questions = train.UniqueQuestions()
		log.Debug().Int("Questions", len(x.corpus.Questions)).Msg("Question corpus derived from the train data")
	} else {
		x.corpus.Questions, err = io.LoadQuestions(p.QuestionsFile, p.NullAsNaN)
		if err != nil {
			return fmt.Errorf("error loading questions from %s: %w", p.QuestionsFile, err)
		}
	}

	for _, e := range extractors {
		if err := x.run(ctx, e); err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
	}
	return nil
}

func (x *extractor) run(ctx context.Context, e feature.Extractor) error {
	table, err := x.weights(e)
	if err != nil {
		return err
	}
	f := e.Bind(x.stops, table)

	for _, s := range x.splits {
		if s.data.Size() == 0 {
			log.Warn().Str("Feature", e.Name).Str("Split", s.name).Msg("Split is empty, nothing to save")
			continue
		}
		features, err := feature.Apply(ctx, s.data, f, x.params.Workers)
		if err != nil {
			return fmt.Errorf("error computing %s features: %w", s.name, err)
		}
		fileName := FeatureFile(x.params.FeatureDir, e.Name, s.name)
		if err := saveFeatures(features, fileName); err != nil {
			return err
		}
		rows, _ := features.Dims()
		log.Info().Str("Feature", e.Name).Str("Split", s.name).Int("Rows", rows).Str("File", fileName).Msg("Features saved")

		if s.name == "train" && x.params.HistogramBins > 0 {
			if err := x.histogram(e.Name, s.data, features); err != nil {
				return err
			}
		}
	}
	return nil
}

// weights fits the table of a weighted extractor, or loads it when requested.
func (x *extractor) weights(e feature.Extractor) (*model.WeightTable, error) {
	if !e.Weighted {
		return nil, nil
	}
	fileName := WeightsFile(x.params.WeightsDir, e.Name)
	if x.params.LoadWeights {
		m, err := loadModel(fileName)
		if err != nil {
			return nil, err
		}
		if m.Feature != e.Name || m.Weights == nil {
			return nil, fmt.Errorf("%s does not hold weights for %s", fileName, e.Name)
		}
		log.Info().Str("Feature", e.Name).Int("Words", m.Weights.Size()).Str("File", fileName).Msg("Weights loaded")
		return m.Weights, nil
	}

	table, err := e.Fit(x.corpus)
	if err != nil {
		return nil, fmt.Errorf("error fitting weights: %w", err)
	}
	log.Info().Str("Feature", e.Name).Str("Kind", table.Kind.String()).Int("Documents", table.Documents).Int("Words", table.Size()).Msg("Weights fitted")
	if x.params.WeightsDir != "" {
		if err := saveModel(&model.Model{Feature: e.Name, Weights: table}, fileName); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func (x *extractor) histogram(name string, data *io.DataSet, features *mat.Dense) error {
	labels, err := data.Labels()
	if err != nil {
		log.Warn().Str("Feature", name).Err(err).Msg("Skipping histogram")
		return nil
	}
	h, err := feature.NewLabelHistogram(mat.Col(nil, 0, features), labels, x.params.HistogramBins)
	if err != nil {
		return fmt.Errorf("error computing histogram: %w", err)
	}
	return WriteHistogram(x.out, name, h)
}

func saveFeatures(features mat.Matrix, fileName string) error {
	file, err := createFile(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := io.SaveFeatures(features, file); err != nil {
		return fmt.Errorf("error saving features to %s: %w", fileName, err)
	}
	return file.Close()
}

func saveModel(m *model.Model, fileName string) error {
	file, err := createFile(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := io.SaveModel(m, file); err != nil {
		return fmt.Errorf("error saving weights to %s: %w", fileName, err)
	}
	return file.Close()
}

func loadModel(fileName string) (*model.Model, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("error opening weights file %s: %w", fileName, err)
	}
	defer file.Close()
	m, err := io.LoadModel(file)
	if err != nil {
		return nil, fmt.Errorf("error loading weights from %s: %w", fileName, err)
	}
	return m, nil
}
