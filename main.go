package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// Set by compiler, see Makefile
var (
	version = "v0.1.0"
	commit  = "unknown"
	builtBy = "unknown"
)

// newApp builds the CLI. Running it without flags generates everything from
// the default paths.
func newApp() *cli.App {
	return &cli.App{
		Name:                   "logo-palettes",
		Usage:                  "generate recolored logo and favicon sets from a fixed palette table.",
		Description:            "logo-palettes recolors the base logo for every built-in palette, writes\nseveral PNG sizes and an SVG favicon per palette, and a manifest.json.",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "in",
				Aliases: []string{"i"},
				Value:   defaultInPath,
				EnvVars: []string{"LOGO_PALETTES_IN"},
			},
			&cli.StringFlag{
				Name:    "svg",
				Value:   defaultSVGPath,
				EnvVars: []string{"LOGO_PALETTES_SVG"},
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   defaultOutRoot,
				EnvVars: []string{"LOGO_PALETTES_OUT"},
			},
			&cli.StringFlag{
				Name:    "compression",
				Aliases: []string{"c"},
				Value:   "default",
			},
			&cli.BoolFlag{
				Name: "no-overwrite",
			},
			&cli.UintFlag{
				Name:    "threads",
				Aliases: []string{"j"},
			},
			&cli.BoolFlag{
				Name: "verbose",
			},
			&cli.BoolFlag{
				Name:    "version",
				Aliases: []string{"v"},
			},
		},
		Before: preProcess,
		Action: generate,
	}
}

func main() {
	// Path overrides may come from a .env file, it's fine if there isn't one
	_ = godotenv.Load()

	app := newApp()

	// Handle version flag
	if len(os.Args) == 2 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println("logo-palettes", version)
		fmt.Println("Commit:", commit)
		fmt.Println("Built by:", builtBy)
		return
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
