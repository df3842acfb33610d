// Command wavecmp compares two image files pixel by pixel, e.g. a PNG and the
// same render stored as raw or TIFF.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/cocosip/go-wavey/render"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: wavecmp <a> <b>")
		os.Exit(2)
	}

	aPath, bPath := os.Args[1], os.Args[2]
	fmt.Printf("Comparing pixels:\n")
	fmt.Printf("  A: %s\n", aPath)
	fmt.Printf("  B: %s\n\n", bPath)

	a, aCodec, err := render.ReadFile(aPath)
	if err != nil {
		fmt.Printf("ERROR reading A: %v\n", err)
		os.Exit(1)
	}
	b, bCodec, err := render.ReadFile(bPath)
	if err != nil {
		fmt.Printf("ERROR reading B: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("A: %dx%d (%s)\n", a.Width, a.Height, aCodec.Name())
	fmt.Printf("B: %dx%d (%s)\n\n", b.Width, b.Height, bCodec.Name())

	if a.Width != b.Width || a.Height != b.Height {
		fmt.Println("ERROR: dimension mismatch")
		os.Exit(1)
	}

	fmt.Println("=== SAMPLE PIXEL COMPARISON (first 10) ===")
	for i := 0; i < 10 && i*4 < len(a.PixelData); i++ {
		pa := a.PixelData[i*4 : i*4+4]
		pb := b.PixelData[i*4 : i*4+4]
		match := "✓"
		if !bytes.Equal(pa, pb) {
			match = "✗"
		}
		fmt.Printf("  Pixel %d: a=%v b=%v %s\n", i, pa, pb, match)
	}

	fmt.Println("\n=== FULL COMPARISON ===")
	mismatches, maxDiff, first := 0, 0, -1
	for i := range a.PixelData {
		d := int(a.PixelData[i]) - int(b.PixelData[i])
		if d == 0 {
			continue
		}
		if d < 0 {
			d = -d
		}
		if first < 0 {
			first = i / 4
		}
		mismatches++
		maxDiff = max(maxDiff, d)
	}

	if mismatches == 0 {
		fmt.Println("✓ PERFECT MATCH: all pixels identical")
		return
	}
	fmt.Printf("✗ MISMATCH: %d samples differ (%.2f%%), max difference %d, first at (%d,%d)\n",
		mismatches, float64(mismatches)/float64(len(a.PixelData))*100, maxDiff, first%a.Width, first/a.Width)
	os.Exit(1)
}
