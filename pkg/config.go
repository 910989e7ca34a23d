package pkg

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// Config holds the data layout shared by all commands. Values come from the environment,
// optionally seeded from a .env file.
type Config struct {
	// OriginDir holds train.csv and test.csv
	OriginDir string `env:"QPFEAT_ORIGIN_DIR,default=data/origin" validate:"required"`
	// DevelDir holds train_qid2question.csv
	DevelDir        string `env:"QPFEAT_DEVEL_DIR,default=data/devel" validate:"required"`
	FeatureDir      string `env:"QPFEAT_FEATURE_DIR,default=data/feature/question_pair" validate:"required"`
	StatDir         string `env:"QPFEAT_STAT_DIR,default=data/feature/stat" validate:"required"`
	TrainIndexFile  string `env:"QPFEAT_TRAIN_INDEX_FILE"`
	TrainSubsetName string `env:"QPFEAT_TRAIN_SUBSET_NAME,default=train" validate:"required"`
	StopwordsFile   string `env:"QPFEAT_STOPWORDS_FILE"`
	Workers         int    `env:"QPFEAT_WORKERS,default=1" validate:"min=1"`
	BatchSize       int    `env:"QPFEAT_BATCH_SIZE,default=1024" validate:"min=1"`
	NullAsNaN       bool   `env:"QPFEAT_NULL_AS_NAN,default=false"`
}

// LoadConfig loads envFile when it exists, then reads and validates the configuration from
// the environment. Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	var config Config
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return config, fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c Config) TrainFile() string {
	return filepath.Join(c.OriginDir, "train.csv")
}

func (c Config) TestFile() string {
	return filepath.Join(c.OriginDir, "test.csv")
}

func (c Config) QuestionsFile() string {
	return filepath.Join(c.DevelDir, "train_qid2question.csv")
}

func (c Config) WordPowerFile() string {
	return filepath.Join(c.StatDir, fmt.Sprintf("words_power.%s.txt", c.TrainSubsetName))
}
