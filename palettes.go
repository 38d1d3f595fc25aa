package main

import (
	"fmt"
	"image/color"
)

// palette is a named background/foreground pair. Colors are hex strings,
// as they appear in the manifest.
type palette struct {
	Name       string
	Background string
	Foreground string
}

// palettes is processed in this order.
var palettes = []palette{
	{"midnight-cyan", "#101820", "#4fd1c5"},
	{"sunset-ember", "#fff1e6", "#d9480f"},
	{"forest-mint", "#eef7ef", "#2f6b3c"},
	{"royal-ink", "#eef2ff", "#3730a3"},
	{"charcoal-gold", "#1f2937", "#f59e0b"},
	{"rose-crimson", "#fff1f2", "#be123c"},
}

// Original tones of the base logo. Every pixel is weighted by how close it is
// to each of them.
var (
	baseBackground = color.NRGBA{242, 244, 246, 255}
	baseForeground = color.NRGBA{90, 122, 138, 255}
)

// Literal colors in the favicon SVG template.
const (
	svgBackgroundToken = "#1e2830"
	svgForegroundToken = "#7a9aaa"
)

// outputSize is one PNG written for every palette.
type outputSize struct {
	purpose string // "logo" or "favicon"
	size    int
	// Unscaled entries get the recolored source image as-is
	unscaled bool
}

func (o outputSize) filename() string {
	return fmt.Sprintf("%s-%d.png", o.purpose, o.size)
}

var outputSizes = []outputSize{
	{purpose: "logo", size: 512, unscaled: true},
	{purpose: "logo", size: 256},
	{purpose: "logo", size: 128},
	{purpose: "favicon", size: 64},
	{purpose: "favicon", size: 32},
}

const (
	svgFilename      = "favicon.svg"
	manifestFilename = "manifest.json"

	defaultInPath  = "public/logo-512.png"
	defaultSVGPath = "public/favicon.svg"
	defaultOutRoot = "public/logo-palettes"
)
