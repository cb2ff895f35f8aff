// Command raytrace reads an NFF scene description and writes a rendered
// P6 PPM image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/dkirby/nfftracer/internal/kdtree"
	"github.com/dkirby/nfftracer/internal/nff"
	"github.com/dkirby/nfftracer/internal/ppm"
	"github.com/dkirby/nfftracer/internal/render"
)

var (
	phong      = flag.Bool("phong", true, "shade with the Phong model (back-face culled)")
	blinnPhong = flag.Bool("blinn-phong", false, "shade with the Blinn-Phong model instead of Phong")

	inFile  = flag.String("in", "", "NFF scene file to read (default stdin)")
	outFile = flag.String("out", "", "PPM file to write (default stdout)")
)

func openInput() (io.ReadCloser, error) {
	if len(*inFile) == 0 {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(*inFile)
}

func openOutput() (io.WriteCloser, error) {
	if len(*outFile) == 0 {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(*outFile)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func usePhongModel() bool {
	if *blinnPhong {
		return false
	}
	return *phong
}

func run() error {
	in, err := openInput()
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	sc, view, err := nff.Parse(in, usePhongModel(), logger)
	if err != nil {
		var pe *nff.ParseError
		if errors.As(err, &pe) {
			return fmt.Errorf("parsing scene: command %q: %s", pe.Command, pe.Message)
		}
		return fmt.Errorf("parsing scene: %w", err)
	}

	tree := kdtree.Build(sc.Primitives())
	target := render.Render(view, sc, tree)

	out, err := openOutput()
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer out.Close()

	if err := ppm.Write(out, target); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}
	return nil
}

func main() {
	flag.Parse()
	if *blinnPhong && *phong {
		// --phong defaults to true, so a bare --blinn-phong should win
		// without forcing the caller to also pass --phong=false.
		phongFlagSet := false
		flag.Visit(func(f *flag.Flag) {
			if f.Name == "phong" {
				phongFlagSet = true
			}
		})
		if phongFlagSet {
			log.Fatal("--phong and --blinn-phong are mutually exclusive")
		}
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}
