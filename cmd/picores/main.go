package main

import (
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/bodgit/picores"
	"github.com/bodgit/picores/raster"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newCompiler(c *cli.Context, options ...picores.Option) (*picores.Compiler, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	if cache := c.String("cache"); cache != "" {
		options = append(options, picores.WithCache(cache))
	}

	return picores.New(c.String("out"), logger, options...)
}

func main() {
	app := cli.NewApp()

	app.Name = "picores"
	app.Usage = "Firmware bitmap and font compiler"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			EnvVars: []string{"PICORES_OUT"},
			Value:   cwd,
			Usage:   "directory to write headers to",
		},
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"PICORES_CACHE"},
			Usage:   "path to build cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "bitmaps",
			Usage:       "Compile images into run-length encoded bitmaps",
			Description: "Every PNG, BMP and TIFF image found in DIRECTORY is compiled into a header named after it, along with bitmaps.h to look them up by name.",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "colors",
					Usage: "reduce each image to at most this many colors, 0 to disable",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				var options []picores.Option
				if n := c.Int("colors"); n > 0 {
					options = append(options, picores.WithColors(n))
				}

				p, err := newCompiler(c, options...)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer p.Close()

				if err := p.CompileBitmaps(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "fonts",
			Usage:       "Compile fonts into packed 4-bit glyphs",
			Description: "Each line of MANIFEST names a font, its path and point size. Every font is compiled into a header named after it.",
			ArgsUsage:   "MANIFEST",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "rasterizer",
					EnvVars: []string{"PICORES_RASTERIZER"},
					Usage:   "external command to render glyphs, passed the font, size and output directory",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				var options []picores.Option
				if args := strings.Fields(c.String("rasterizer")); len(args) > 0 {
					options = append(options, picores.WithRasterizer(&raster.Command{Args: args}))
				}

				p, err := newCompiler(c, options...)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer p.Close()

				if err := p.CompileFonts(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
