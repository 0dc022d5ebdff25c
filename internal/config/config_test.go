package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/accres/internal/accession"
)

func TestLoadEffective_NoConfigUsesDefaults(t *testing.T) {
	cwd := t.TempDir()

	eff, err := LoadEffective(cwd, CLIArgs{})
	require.NoError(t, err)
	require.Empty(t, eff.ConfigPath)
	require.Equal(t, accession.DefaultOptions(), eff.Options)
	require.Equal(t, DefaultLogLevel, eff.LogLevel)
	require.False(t, eff.Hybrid)
}

func TestLoadEffective_ExplicitConfigNotFound(t *testing.T) {
	cwd := t.TempDir()

	_, err := LoadEffective(cwd, CLIArgs{ConfigPath: "missing.yaml"})
	require.Equal(t, ErrCodeNotFound, Code(err))
}

func TestLoadEffective_ReadsYAML(t *testing.T) {
	cwd := t.TempDir()
	writeFile(t, filepath.Join(cwd, DefaultFileName), []byte("database: TAIR10\nhybrid: true\nmin_gi: 500\nmin_accession_length: 4\nlog_level: debug\n"))

	eff, err := LoadEffective(cwd, CLIArgs{})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(cwd, DefaultFileName), eff.ConfigPath)
	require.Equal(t, "TAIR10", eff.Database)
	require.True(t, eff.Hybrid)
	require.Equal(t, accession.Options{MinGI: 500, MinAccessionLength: 4}, eff.Options)
	require.Equal(t, slog.LevelDebug, eff.LogLevel)
}

func TestLoadEffective_ReadsJSON(t *testing.T) {
	cwd := t.TempDir()
	writeFile(t, filepath.Join(cwd, "custom.json"), []byte(`{"database":"swissprot","min_gi":2000}`))

	eff, err := LoadEffective(cwd, CLIArgs{ConfigPath: "custom.json"})
	require.NoError(t, err)
	require.Equal(t, "swissprot", eff.Database)
	require.Equal(t, int64(2000), eff.Options.MinGI)
	require.Equal(t, accession.DefaultMinAccessionLength, eff.Options.MinAccessionLength)
}

func TestLoadEffective_CLIOverridesFile(t *testing.T) {
	cwd := t.TempDir()
	writeFile(t, filepath.Join(cwd, DefaultFileName), []byte("database: TAIR10\nhybrid: true\nmin_gi: 500\n"))

	eff, err := LoadEffective(cwd, CLIArgs{
		Database:    "swissprot",
		DatabaseSet: true,
		Hybrid:      false,
		HybridSet:   true, // --hybrid=false
		MinGI:       3000,
		MinGISet:    true,
	})
	require.NoError(t, err)
	require.Equal(t, "swissprot", eff.Database)
	require.False(t, eff.Hybrid)
	require.Equal(t, int64(3000), eff.Options.MinGI)
}

func TestLoadEffective_TrimsDatabaseFromBothSources(t *testing.T) {
	cwd := t.TempDir()
	writeFile(t, filepath.Join(cwd, DefaultFileName), []byte("database: '  TAIR10  '\n"))

	eff, err := LoadEffective(cwd, CLIArgs{})
	require.NoError(t, err)
	require.Equal(t, "TAIR10", eff.Database)

	eff, err = LoadEffective(cwd, CLIArgs{Database: "  swissprot ", DatabaseSet: true})
	require.NoError(t, err)
	require.Equal(t, "swissprot", eff.Database)

	// 全空白等同于不指定数据库名。
	eff, err = LoadEffective(cwd, CLIArgs{Database: "   ", DatabaseSet: true})
	require.NoError(t, err)
	require.Equal(t, "", eff.Database)
}

func TestLoadEffective_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"unparsable":    "min_gi: [",
		"negative gi":   "min_gi: -1",
		"zero length":   "min_accession_length: 0",
		"bad log level": "log_level: loud",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			cwd := t.TempDir()
			writeFile(t, filepath.Join(cwd, DefaultFileName), []byte(body))

			_, err := LoadEffective(cwd, CLIArgs{})
			require.Equal(t, ErrCodeInvalid, Code(err), "err=%v", err)
		})
	}
}

func TestLoadEffective_InvalidCLILogLevel(t *testing.T) {
	_, err := LoadEffective(t.TempDir(), CLIArgs{LogLevel: "verbose", LogLevelSet: true})
	require.Equal(t, ErrCodeInvalid, Code(err))
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, b, 0o644))
}
