package imaging

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// WritePPM writes img as a plain-text P3 PPM: a "P3\n{w} {h}\n255\n" header
// followed by one "R G B" line per pixel in stored order.
// The dimensions are validated before any byte is written.
func WritePPM(w io.Writer, img *Image) error {
	if err := img.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height)
	for _, c := range img.Pixels {
		fmt.Fprintf(bw, "%d %d %d\n", Quantize(c.X), Quantize(c.Y), Quantize(c.Z))
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "failed to write PPM")
	}
	return nil
}
