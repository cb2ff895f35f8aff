// Package ppm writes a render target out as a binary PPM (P6) image.
package ppm

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/dkirby/nfftracer/internal/render"
)

// Write encodes target as a P6 PPM: header, then width*height RGB triples in
// row-major top-to-bottom order, each channel floor(clamp(c,0,1)*255.9).
func Write(w io.Writer, target *render.Target) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", target.Width, target.Height); err != nil {
		return err
	}

	row := make([]byte, target.Width*3)
	for j := 0; j < target.Height; j++ {
		for i := 0; i < target.Width; i++ {
			c := target.At(i, j).Clamp()
			row[i*3+0] = toByte(c.R)
			row[i*3+1] = toByte(c.G)
			row[i*3+2] = toByte(c.B)
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func toByte(c float64) byte {
	return byte(math.Floor(c * 255.9))
}
