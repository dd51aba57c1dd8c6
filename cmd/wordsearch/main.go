// Command wordsearch generates a single puzzle from the words given as
// arguments and prints it, optionally rendering a PNG.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/kyiku/wordsearch-back/internal/puzzle"
	"github.com/kyiku/wordsearch-back/internal/render"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).With().Timestamp().Logger()

	fs := flag.NewFlagSet("wordsearch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	attempts := fs.Int("attempts", 500, "maximum generation attempts")
	seed := fs.Int64("seed", 0, "random seed (0 uses the clock)")
	pngPath := fs.String("png", "", "write the board as PNG to this file")
	highlight := fs.Bool("highlight", false, "mark solutions in the PNG")
	asJSON := fs.Bool("json", false, "print the puzzle record as JSON")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: wordsearch [flags] word...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	p, err := puzzle.NewGenerator(rand.NewSource(*seed)).FromWords(fs.Args(), *attempts)
	if err != nil {
		logger.Error().Err(err).Strs("words", fs.Args()).Int64("seed", *seed).Msg("generation failed")
		if errors.Is(err, puzzle.ErrInvalidArgument) {
			fs.Usage()
			return 2
		}
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p.Record()); err != nil {
			logger.Error().Err(err).Msg("encode failed")
			return 1
		}
	} else {
		fmt.Fprint(stdout, p.String())
	}

	if *pngPath != "" {
		if err := writePNG(*pngPath, p, *highlight); err != nil {
			logger.Error().Err(err).Str("path", *pngPath).Msg("render failed")
			return 1
		}
		logger.Info().Str("path", *pngPath).Msg("png written")
	}
	return 0
}

func writePNG(path string, p *puzzle.Puzzle, highlight bool) error {
	opts := render.DefaultOptions()
	if highlight {
		opts.Highlight = p.Solutions()
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.PNG(f, p, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
