package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	inPath  = defaultInPath
	svgPath = defaultSVGPath
	outRoot = defaultOutRoot

	compLevel = png.DefaultCompression

	outFileFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC // For os.OpenFile

	log = logrus.New()
)

// preProcess is automatically called by the app before anything else.
// It's run in the global context.
func preProcess(c *cli.Context) error {
	runtime.GOMAXPROCS(int(c.Uint("threads")))

	if c.Bool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}

	inPath = c.String("in")
	svgPath = c.String("svg")
	outRoot = c.String("out")

	// Set PNG compression type

	switch c.String("compression") {
	case "default":
		compLevel = png.DefaultCompression
	case "no":
		compLevel = png.NoCompression
	case "speed":
		compLevel = png.BestSpeed
	case "size":
		compLevel = png.BestCompression
	default:
		return fmt.Errorf("invalid compression type '%s'", c.String("compression"))
	}

	if c.Bool("no-overwrite") {
		outFileFlags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	} else {
		outFileFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	return nil
}

// generate is the app action. It writes every palette set and the manifest.
func generate(c *cli.Context) error {
	n, err := generatePalettes(inPath, svgPath, outRoot)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(outRoot)
	if err != nil {
		return fmt.Errorf("'%s': %w", outRoot, err)
	}
	fmt.Fprintf(c.App.Writer, "Generated %s logo palette sets at: %s\n",
		color.New(color.FgGreen, color.Bold).Sprint(n), abs)
	return nil
}

// generatePalettes loads the base logo and the SVG template, then writes one
// directory per palette under root, plus the manifest. It stops at the first
// error. The number of palettes written is returned.
func generatePalettes(logoPath, templatePath, root string) (int, error) {
	base, err := imaging.Open(logoPath)
	if err != nil {
		return 0, fmt.Errorf("error loading '%s': %w", logoPath, err)
	}
	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return 0, fmt.Errorf("error loading '%s': %w", templatePath, err)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return 0, fmt.Errorf("'%s': %w", root, err)
	}

	m := newManifest()

	for _, p := range palettes {
		if err := writePaletteAssets(p, base, string(tmpl), root); err != nil {
			return 0, fmt.Errorf("palette %s: %w", p.Name, err)
		}
		m.add(p.Name, manifestEntry{
			Background: strings.ToLower(p.Background),
			Foreground: strings.ToLower(p.Foreground),
		})
	}

	data, err := m.encode()
	if err != nil {
		return 0, fmt.Errorf("error encoding manifest: %w", err)
	}
	if err := writeFile(filepath.Join(root, manifestFilename), data); err != nil {
		return 0, err
	}

	return len(palettes), nil
}

// writePaletteAssets writes all the PNG sizes and the SVG favicon for p into
// its own directory under root.
func writePaletteAssets(p palette, base image.Image, tmpl, root string) error {
	dir := filepath.Join(root, p.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("'%s': %w", dir, err)
	}

	bg, err := hexToColor(p.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	fg, err := hexToColor(p.Foreground)
	if err != nil {
		return fmt.Errorf("foreground: %w", err)
	}

	logo := recolor(base, bg, fg)

	for i, img := range resizeAll(logo) {
		path := filepath.Join(dir, outputSizes[i].filename())
		if err := writePNG(path, img); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"palette": p.Name, "file": path}).Debug("wrote image")
	}

	path := filepath.Join(dir, svgFilename)
	if err := writeFile(path, []byte(recolorSVG(tmpl, p.Background, p.Foreground))); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"palette": p.Name, "file": path}).Debug("wrote svg")

	return nil
}
