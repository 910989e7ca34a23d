package pkg

import (
	"fmt"
	gio "io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"qpfeat/pkg/feature"
	"qpfeat/pkg/io"
	"qpfeat/pkg/model"
)

type ReportParameters struct {
	TrainFile     string
	FeaturesFile  string
	HistogramBins int
	BatchSize     int
}

// Report renders the label split histogram of every column of a saved train feature file.
func Report(p ReportParameters, out gio.Writer) error {
	train, err := loadPairs(p.TrainFile, p.BatchSize, false)
	if err != nil {
		return err
	}
	labels, err := train.Labels()
	if err != nil {
		return fmt.Errorf("error reading labels of %s: %w", p.TrainFile, err)
	}

	file, err := os.Open(p.FeaturesFile)
	if err != nil {
		return fmt.Errorf("error opening features file %s: %w", p.FeaturesFile, err)
	}
	defer file.Close()
	features, err := io.LoadFeatures(file)
	if err != nil {
		return fmt.Errorf("error loading features from %s: %w", p.FeaturesFile, err)
	}

	rows, cols := features.Dims()
	if rows != len(labels) {
		return fmt.Errorf("%s has %d rows but %s has %d", p.FeaturesFile, rows, p.TrainFile, len(labels))
	}
	log.Info().Int("Rows", rows).Int("Columns", cols).Str("File", p.FeaturesFile).Msg("Features loaded")

	for j := 0; j < cols; j++ {
		h, err := feature.NewLabelHistogram(mat.Col(nil, j, features), labels, p.HistogramBins)
		if err != nil {
			return fmt.Errorf("column %d: %w", j, err)
		}
		if err := WriteHistogram(out, fmt.Sprintf("%s[%d]", p.FeaturesFile, j), h); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// WriteHistogram renders the per label densities of h as a table.
func WriteHistogram(w gio.Writer, name string, h *feature.LabelHistogram) error {
	if _, err := fmt.Fprintf(w, "Label distribution over %s\n", name); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Bin", "Not Duplicate", "Duplicate"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i := range h.Density[0] {
		table.Append([]string{
			fmt.Sprintf("[%s, %s)", formatFloat(h.Dividers[i]), formatFloat(h.Dividers[i+1])),
			formatFloat(h.Density[0][i]),
			formatFloat(h.Density[1][i]),
		})
	}
	table.SetFooter([]string{
		"Mean",
		formatFloat(h.Mean[0]) + " (n=" + strconv.Itoa(h.Count[0]) + ")",
		formatFloat(h.Mean[1]) + " (n=" + strconv.Itoa(h.Count[1]) + ")",
	})
	table.Render()
	_, err := fmt.Fprintf(w, "Correlation with is_duplicate: %s\n\n", formatFloat(h.Correlation))
	return err
}

// WriteWordPower renders the first top records as a table.
func WriteWordPower(w gio.Writer, records []model.WordPower, top int) error {
	if top > len(records) {
		top = len(records)
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Word", "Count", "Ratio", "Correct", "One Side", "One Side Correct", "Both Side", "Both Side Correct"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range records[:top] {
		row := []string{r.Word}
		for _, v := range r.Stats {
			row = append(row, formatFloat(v))
		}
		table.Append(row)
	}
	table.Render()
	return nil
}
