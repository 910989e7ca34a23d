package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestQuora(t *testing.T) {
	dir := t.TempDir()
	featureDir := filepath.Join(dir, "features")
	weightsDir := filepath.Join(dir, "weights")

	b := bytes.NewBufferString("")
	log.Logger = zerolog.New(b)
	defer func() { log.Logger = zerolog.New(os.Stderr) }()

	extractCmd := ExtractCommand()
	var out bytes.Buffer
	extractCmd.SetOut(&out)
	extractCmd.SetArgs(strings.Split("-i datasets/quora/train.csv --test-file datasets/quora/test.csv "+
		"-q datasets/quora/train_qid2question.csv -o "+featureDir+" -w "+weightsDir+" -j 2 -b 4 --histogram-bins 10", " "))
	err := extractCmd.Execute()
	require.NoError(t, err)
	logs := b.String()
	require.False(t, strings.Contains(strings.ToLower(logs), "error"))
	require.Equal(t, 8, strings.Count(logs, "Features saved"))
	require.True(t, strings.Contains(out.String(), "Label distribution over tfidf_word_match_share"))

	for _, name := range []string{"word_match_share", "tfidf_word_match_share", "my_word_match_share", "my_tfidf_word_match_share"} {
		for split, rows := range map[string]int{"train": 10, "test": 6} {
			content, err := os.ReadFile(filepath.Join(featureDir, name+"."+split+".smat"))
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
			require.Equal(t, fmt.Sprintf("%d 1", rows), lines[0], name+"."+split)
			require.Len(t, lines, rows+1, name+"."+split)
		}
	}

	powerFile := filepath.Join(dir, "words_power.train.txt")
	powerCmd := PowerCommand()
	out.Reset()
	powerCmd.SetOut(&out)
	powerCmd.SetArgs(strings.Split("-i datasets/quora/train.csv -x datasets/quora/train_index.txt -o "+powerFile+" -t 5", " "))
	b.Reset()
	err = powerCmd.Execute()
	require.NoError(t, err)
	require.True(t, strings.Contains(b.String(), "Word power saved"))
	content, err := os.ReadFile(powerFile)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(content), "what\t6.00000\t0.75000\t"))

	reportCmd := ReportCommand()
	out.Reset()
	reportCmd.SetOut(&out)
	reportCmd.SetArgs(strings.Split("-m "+filepath.Join(featureDir, "word_match_share.train.smat")+" -i datasets/quora/train.csv", " "))
	err = reportCmd.Execute()
	require.NoError(t, err)
	require.True(t, strings.Contains(out.String(), "Correlation with is_duplicate"))
	require.False(t, strings.Contains(strings.ToLower(b.String()), "error"))
}
