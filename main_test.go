package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keepConfig restores the package-level configuration that preProcess sets.
func keepConfig(t *testing.T) {
	t.Helper()

	in, svg, out := inPath, svgPath, outRoot
	level, flags := compLevel, outFileFlags
	logLevel := log.GetLevel()
	noColor := color.NoColor

	color.NoColor = true
	t.Cleanup(func() {
		inPath, svgPath, outRoot = in, svg, out
		compLevel, outFileFlags = level, flags
		log.SetLevel(logLevel)
		color.NoColor = noColor
	})
}

// runApp runs the CLI with args and returns what it wrote.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	app.ErrWriter = &buf
	err := app.Run(append([]string{"logo-palettes"}, args...))
	return buf.String(), err
}

func TestAppFlags(t *testing.T) {
	dir := t.TempDir()
	logoPath, tmplPath := writeTestInputs(t, dir)

	tests := []struct {
		name      string
		args      []string
		wantLevel png.CompressionLevel
		wantFlags int
		wantLog   logrus.Level
	}{
		{
			name:      "defaults",
			wantLevel: png.DefaultCompression,
			wantFlags: os.O_WRONLY | os.O_CREATE | os.O_TRUNC,
			wantLog:   logrus.InfoLevel,
		},
		{
			name:      "no compression",
			args:      []string{"--compression", "no"},
			wantLevel: png.NoCompression,
			wantFlags: os.O_WRONLY | os.O_CREATE | os.O_TRUNC,
			wantLog:   logrus.InfoLevel,
		},
		{
			name:      "best speed",
			args:      []string{"-c", "speed"},
			wantLevel: png.BestSpeed,
			wantFlags: os.O_WRONLY | os.O_CREATE | os.O_TRUNC,
			wantLog:   logrus.InfoLevel,
		},
		{
			name:      "smallest files without overwriting",
			args:      []string{"--compression", "size", "--no-overwrite"},
			wantLevel: png.BestCompression,
			wantFlags: os.O_WRONLY | os.O_CREATE | os.O_EXCL,
			wantLog:   logrus.InfoLevel,
		},
		{
			name:      "verbose",
			args:      []string{"--verbose"},
			wantLevel: png.DefaultCompression,
			wantFlags: os.O_WRONLY | os.O_CREATE | os.O_TRUNC,
			wantLog:   logrus.DebugLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keepConfig(t)
			out := filepath.Join(t.TempDir(), "palettes")

			args := append([]string{"--in", logoPath, "--svg", tmplPath, "-o", out}, tt.args...)
			stdout, err := runApp(t, args...)
			require.NoError(t, err)

			assert.Equal(t, logoPath, inPath)
			assert.Equal(t, tmplPath, svgPath)
			assert.Equal(t, out, outRoot)
			assert.Equal(t, tt.wantLevel, compLevel)
			assert.Equal(t, tt.wantFlags, outFileFlags)
			assert.Equal(t, tt.wantLog, log.GetLevel())

			assert.Equal(t, "Generated 6 logo palette sets at: "+out+"\n", stdout)
			assert.FileExists(t, filepath.Join(out, manifestFilename))
		})
	}
}

func TestAppInvalidCompression(t *testing.T) {
	keepConfig(t)
	dir := t.TempDir()
	logoPath, tmplPath := writeTestInputs(t, dir)
	out := filepath.Join(dir, "out")

	_, err := runApp(t, "--in", logoPath, "--svg", tmplPath, "--out", out, "--compression", "max")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid compression type 'max'")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAppNoOverwrite(t *testing.T) {
	keepConfig(t)
	dir := t.TempDir()
	logoPath, tmplPath := writeTestInputs(t, dir)
	out := filepath.Join(dir, "out")

	_, err := runApp(t, "-i", logoPath, "--svg", tmplPath, "-o", out)
	require.NoError(t, err)

	_, err = runApp(t, "-i", logoPath, "--svg", tmplPath, "-o", out, "--no-overwrite")
	assert.ErrorIs(t, err, os.ErrExist)

	_, err = runApp(t, "-i", logoPath, "--svg", tmplPath, "-o", out)
	assert.NoError(t, err)
}

func TestAppEnvironment(t *testing.T) {
	keepConfig(t)
	dir := t.TempDir()
	logoPath, tmplPath := writeTestInputs(t, dir)
	out := filepath.Join(dir, "from-env")

	t.Setenv("LOGO_PALETTES_IN", logoPath)
	t.Setenv("LOGO_PALETTES_SVG", tmplPath)
	t.Setenv("LOGO_PALETTES_OUT", out)

	stdout, err := runApp(t)
	require.NoError(t, err)

	assert.Equal(t, logoPath, inPath)
	assert.Equal(t, tmplPath, svgPath)
	assert.Equal(t, out, outRoot)
	assert.Equal(t, "Generated 6 logo palette sets at: "+out+"\n", stdout)
	for _, p := range palettes {
		assert.FileExists(t, filepath.Join(out, p.Name, svgFilename))
	}
}

func TestAppFlagOverridesEnvironment(t *testing.T) {
	keepConfig(t)
	dir := t.TempDir()
	logoPath, tmplPath := writeTestInputs(t, dir)
	out := filepath.Join(dir, "from-flag")

	t.Setenv("LOGO_PALETTES_OUT", filepath.Join(dir, "from-env"))

	_, err := runApp(t, "-i", logoPath, "--svg", tmplPath, "-o", out)
	require.NoError(t, err)
	assert.Equal(t, out, outRoot)
	assert.NoDirExists(t, filepath.Join(dir, "from-env"))
}

func TestAppSummaryIsAbsolute(t *testing.T) {
	keepConfig(t)
	dir := t.TempDir()
	logoPath, tmplPath := writeTestInputs(t, dir)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	stdout, err := runApp(t, "-i", logoPath, "--svg", tmplPath, "-o", "rel/out")
	require.NoError(t, err)

	abs, err := filepath.Abs("rel/out")
	require.NoError(t, err)
	assert.Equal(t, "Generated 6 logo palette sets at: "+abs+"\n", stdout)
	assert.True(t, filepath.IsAbs(abs))
}
