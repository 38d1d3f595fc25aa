package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"strings"

	"github.com/disintegration/imaging"
)

func hexToColor(hex string) (color.NRGBA, error) {
	// Modified from https://github.com/lucasb-eyer/go-colorful/blob/v1.2.0/colors.go#L333

	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("%s is not a hex color", hex)
	}
	hex = strings.ToLower(hex)
	for _, c := range hex {
		// Sscanf would stop at the first non-hex rune and still succeed
		if !strings.ContainsRune("0123456789abcdef", c) {
			return color.NRGBA{}, fmt.Errorf("%s is not a hex color", hex)
		}
	}

	format := "%02x%02x%02x"
	var r, g, b uint8
	n, err := fmt.Sscanf(hex, format, &r, &g, &b)
	if err != nil {
		return color.NRGBA{}, err
	}
	if n != 3 {
		return color.NRGBA{}, fmt.Errorf("%s is not a hex color", hex)
	}
	return color.NRGBA{r, g, b, 255}, nil
}

// blendChannel rounds half to even.
func blendChannel(a, b uint8, t float64) uint8 {
	v := math.RoundToEven(float64(a)*(1.0-t) + float64(b)*t)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// blend linearly interpolates the RGB channels of a and b. t=0 gives a,
// t=1 gives b. The returned alpha is always 255.
func blend(a, b color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{
		blendChannel(a.R, b.R, t),
		blendChannel(a.G, b.G, t),
		blendChannel(a.B, b.B, t),
		255,
	}
}

// dist is the Euclidean distance between two colors in RGB space. Alpha is
// ignored.
func dist(c1, c2 color.NRGBA) float64 {
	dr := float64(c1.R) - float64(c2.R)
	dg := float64(c1.G) - float64(c2.G)
	db := float64(c1.B) - float64(c2.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// blendFraction returns how far c is from the base background, relative to
// its distance to both base colors.
func blendFraction(c color.NRGBA) float64 {
	dBg := dist(c, baseBackground)
	dFg := dist(c, baseForeground)
	total := dBg + dFg
	if total == 0 {
		return 0
	}
	return dBg / total
}

// recolor maps every pixel of src between newBg and newFg, keeping its alpha.
// Fully transparent pixels become transparent black. The returned image
// starts at (0, 0).
func recolor(src image.Image, newBg, newFg color.NRGBA) *image.NRGBA {
	// Clone gives a non-premultiplied copy with predictable Pix layout
	img := imaging.Clone(src)
	b := img.Bounds()

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := img.PixOffset(x, y)
			px := img.Pix[i : i+4 : i+4]

			if px[3] == 0 {
				px[0], px[1], px[2] = 0, 0, 0
				continue
			}

			t := blendFraction(color.NRGBA{px[0], px[1], px[2], 255})
			c := blend(newBg, newFg, t)
			px[0], px[1], px[2] = c.R, c.G, c.B
		}
	}
	return img
}

// resizeAll returns one image per entry of outputSizes, in the same order.
func resizeAll(img *image.NRGBA) []*image.NRGBA {
	imgs := make([]*image.NRGBA, len(outputSizes))
	for i, o := range outputSizes {
		if o.unscaled {
			imgs[i] = img
			continue
		}
		imgs[i] = imaging.Resize(img, o.size, o.size, imaging.Lanczos)
	}
	return imgs
}

// recolorSVG swaps the template's two color tokens for the palette's colors,
// in lowercase. Nothing else in the template is touched.
func recolorSVG(template, bgHex, fgHex string) string {
	return strings.NewReplacer(
		svgBackgroundToken, strings.ToLower(bgHex),
		svgForegroundToken, strings.ToLower(fgHex),
	).Replace(template)
}

// manifestEntry is the JSON value stored for each palette.
type manifestEntry struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// manifest maps palette names to their colors. It's written as a JSON object
// with the palettes in the order they were added.
type manifest struct {
	names   []string
	entries map[string]manifestEntry
}

func newManifest() *manifest {
	return &manifest{entries: make(map[string]manifestEntry)}
}

// add sets the entry for name. Adding a name twice keeps its first position.
func (m *manifest) add(name string, e manifestEntry) {
	if _, ok := m.entries[name]; !ok {
		m.names = append(m.names, name)
	}
	m.entries[name] = e
}

func (m *manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.entries[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *manifest) encode() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// writeFile writes data to path, using outFileFlags.
func writeFile(path string, data []byte) error {
	file, err := os.OpenFile(path, outFileFlags, 0644)
	if err != nil {
		return fmt.Errorf("'%s': %w", path, err)
	}
	_, err = file.Write(data)
	if err != nil {
		file.Close()
		return fmt.Errorf("error writing '%s': %w", path, err)
	}
	return file.Close()
}

// writePNG encodes img to path at the configured compression level.
func writePNG(path string, img image.Image) error {
	file, err := os.OpenFile(path, outFileFlags, 0644)
	if err != nil {
		return fmt.Errorf("'%s': %w", path, err)
	}
	err = (&png.Encoder{CompressionLevel: compLevel}).Encode(file, img)
	if err != nil {
		file.Close()
		return fmt.Errorf("error writing PNG to '%s': %w", path, err)
	}
	return file.Close()
}
