package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"qpfeat/pkg"
	"qpfeat/pkg/feature"
	"qpfeat/pkg/model"
)

var envFile string

func loadConfig() (pkg.Config, error) {
	return pkg.LoadConfig(envFile)
}

func ExtractCommand() *cobra.Command {
	var params pkg.ExtractParameters
	params.CountWeights = model.DefaultCountWeightParameters()

	var cmd = &cobra.Command{
		Use:   "extract [-f feature] [-i trainFile] [--test-file testFile] [-o featureDir]",
		Short: "Fits the selected features on the train data and saves the features of the train and test data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("train-file") {
				params.TrainFile = config.TrainFile()
			}
			if !cmd.Flags().Changed("test-file") {
				params.TestFile = config.TestFile()
			}
			if !cmd.Flags().Changed("questions-file") {
				params.QuestionsFile = config.QuestionsFile()
				if _, err := os.Stat(params.QuestionsFile); err != nil {
					log.Debug().Str("File", params.QuestionsFile).Msg("No question corpus, deriving it from the train data")
					params.QuestionsFile = ""
				}
			}
			if !cmd.Flags().Changed("feature-dir") {
				params.FeatureDir = config.FeatureDir
			}
			if !cmd.Flags().Changed("stopwords-file") {
				params.StopwordsFile = config.StopwordsFile
			}
			if !cmd.Flags().Changed("workers") {
				params.Workers = config.Workers
			}
			if !cmd.Flags().Changed("batch-size") {
				params.BatchSize = config.BatchSize
			}
			params.NullAsNaN = params.NullAsNaN || config.NullAsNaN
			return pkg.Extract(context.Background(), params, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&params.Feature, "feature", "f", feature.AllFeatures, fmt.Sprintf("feature to extract, one of %v or %s", feature.Names(), feature.AllFeatures))
	cmd.Flags().StringVarP(&params.TrainFile, "train-file", "i", "", "name of train file")
	cmd.Flags().StringVarP(&params.TestFile, "test-file", "", "", "name of test file (empty to skip)")
	cmd.Flags().StringVarP(&params.QuestionsFile, "questions-file", "q", "", "name of the deduplicated question file")
	cmd.Flags().StringVarP(&params.FeatureDir, "feature-dir", "o", "", "directory to save features to")
	cmd.Flags().StringVarP(&params.StopwordsFile, "stopwords-file", "", "", "file with one stopword per line (default English list)")
	cmd.Flags().StringVarP(&params.WeightsDir, "weights-dir", "w", "", "directory to save fitted weights to")
	cmd.Flags().BoolVarP(&params.LoadWeights, "load-weights", "", false, "load fitted weights from the weights directory instead of fitting")
	cmd.Flags().IntVarP(&params.Workers, "workers", "j", 1, "number of concurrent scoring batches")
	cmd.Flags().IntVarP(&params.BatchSize, "batch-size", "b", 1024, "rows per scoring batch")
	cmd.Flags().BoolVarP(&params.NullAsNaN, "null-as-nan", "", false, "score empty questions as the word \"nan\"")
	cmd.Flags().IntVarP(&params.HistogramBins, "histogram-bins", "", 0, "render a label histogram of the train features with this many bins")
	cmd.Flags().Float64VarP(&params.CountWeights.Eps, "eps", "", params.CountWeights.Eps, "smoothing constant of the tf-idf word weights")
	cmd.Flags().IntVarP(&params.CountWeights.MinCount, "min-count", "", params.CountWeights.MinCount, "words seen fewer times weigh 0")

	return cmd
}

func PowerCommand() *cobra.Command {
	var params pkg.PowerParameters

	var cmd = &cobra.Command{
		Use:   "power [-i trainFile] [-x indexFile | --train-fraction f] [-o outputFile]",
		Short: "Computes how predictive every word is of duplicates over a subset of the train data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("train-file") {
				params.TrainFile = config.TrainFile()
			}
			if !cmd.Flags().Changed("index-file") && !cmd.Flags().Changed("train-fraction") {
				params.IndexFile = config.TrainIndexFile
			}
			if !cmd.Flags().Changed("output-file") {
				params.OutputFile = config.WordPowerFile()
			}
			if !cmd.Flags().Changed("batch-size") {
				params.BatchSize = config.BatchSize
			}
			params.NullAsNaN = params.NullAsNaN || config.NullAsNaN
			return pkg.Power(params, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&params.TrainFile, "train-file", "i", "", "name of train file")
	cmd.Flags().StringVarP(&params.IndexFile, "index-file", "x", "", "file with the train rows to use, one index per line")
	cmd.Flags().Float64VarP(&params.TrainFraction, "train-fraction", "", 1.0, "fraction of random train rows to use when there is no index file")
	cmd.Flags().Uint64VarP(&params.RndSeed, "random-seed", "", 42, "random seed")
	cmd.Flags().StringVarP(&params.OutputFile, "output-file", "o", "", "name of the file to save word power to")
	cmd.Flags().IntVarP(&params.BatchSize, "batch-size", "b", 1024, "rows per batch")
	cmd.Flags().BoolVarP(&params.NullAsNaN, "null-as-nan", "", false, "read empty questions as the word \"nan\"")
	cmd.Flags().IntVarP(&params.Top, "top", "t", 0, "render the top words")

	return cmd
}

func ReportCommand() *cobra.Command {
	var params pkg.ReportParameters

	var cmd = &cobra.Command{
		Use:   "report -m featuresFile [-i trainFile]",
		Short: "Renders the label distribution of saved train features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("train-file") {
				params.TrainFile = config.TrainFile()
			}
			params.BatchSize = config.BatchSize
			return pkg.Report(params, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&params.FeaturesFile, "features", "m", "", "name of the train features file")
	cmd.Flags().StringVarP(&params.TrainFile, "train-file", "i", "", "name of train file")
	cmd.Flags().IntVarP(&params.HistogramBins, "histogram-bins", "", 20, "number of histogram bins")

	_ = cmd.MarkFlagRequired("features")

	return cmd
}

var logLevel string
var logFormat string

func main() {

	Main := &cobra.Command{Use: "qpfeat", PersistentPreRunE: setupLogging, SilenceUsage: true}

	Main.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info", "Logging level: info error or debug")
	Main.PersistentFlags().StringVarP(&logFormat, "log-format", "", "pretty", "Logging format: pretty or json")
	Main.PersistentFlags().StringVarP(&envFile, "env-file", "", ".env", "file with QPFEAT_* settings, loaded when present")

	Main.AddCommand(ExtractCommand())
	Main.AddCommand(PowerCommand())
	Main.AddCommand(ReportCommand())

	if err := Main.Execute(); err != nil {
		log.Error().Err(err).Msg("")
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {

	switch logLevel {
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		return fmt.Errorf("invalid logging level %q", logLevel)
	}

	switch logFormat {
	case "pretty":
		setupPrettyLogging()
	case "json":
	default:
		return fmt.Errorf("invalid log format %q", logFormat)

	}
	return nil
}

func setupPrettyLogging() {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	writer.FormatFieldValue = func(i interface{}) string {
		switch v := i.(type) {
		case json.Number:
			if !strings.ContainsAny(v.String(), ".eE") {
				return v.String()
			}
			val, _ := v.Float64()
			return fmt.Sprintf("%.3f", val)
		default:
			return fmt.Sprintf("%v", i)
		}

	}
	log.Logger = log.Output(writer)

}
