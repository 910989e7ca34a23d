package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "data/origin", config.OriginDir)
	require.Equal(t, 1, config.Workers)
	require.Equal(t, 1024, config.BatchSize)
	require.False(t, config.NullAsNaN)
	require.Equal(t, filepath.Join("data", "origin", "train.csv"), config.TrainFile())
	require.Equal(t, filepath.Join("data", "feature", "stat", "words_power.train.txt"), config.WordPowerFile())
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"QPFEAT_ORIGIN_DIR=/data/quora\nQPFEAT_WORKERS=4\nQPFEAT_TRAIN_SUBSET_NAME=cv0\n"), 0o644))
	// godotenv does not override variables that are already set
	t.Setenv("QPFEAT_WORKERS", "2")
	t.Setenv("QPFEAT_ORIGIN_DIR", "")
	t.Setenv("QPFEAT_TRAIN_SUBSET_NAME", "")
	os.Unsetenv("QPFEAT_ORIGIN_DIR")
	os.Unsetenv("QPFEAT_TRAIN_SUBSET_NAME")

	config, err := LoadConfig(envFile)
	require.NoError(t, err)
	require.Equal(t, "/data/quora", config.OriginDir)
	require.Equal(t, 2, config.Workers)
	require.Equal(t, filepath.Join("/data/quora", "test.csv"), config.TestFile())
	require.Equal(t, filepath.Join("data", "feature", "stat", "words_power.cv0.txt"), config.WordPowerFile())
}

func TestLoadConfigValidates(t *testing.T) {
	t.Setenv("QPFEAT_WORKERS", "0")
	_, err := LoadConfig("")
	require.Error(t, err)
}
