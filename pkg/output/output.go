package output

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// EncodeColor averages an accumulated color over its samples, applies gamma 2
// and quantizes each channel to [0, 255]
func EncodeColor(sum core.Vec3, samples int) (r, g, b uint8) {
	if samples <= 0 {
		return 0, 0, 0
	}
	avg := sum.Multiply(1.0 / float64(samples))
	c := core.NewVec3(gamma2(avg.X), gamma2(avg.Y), gamma2(avg.Z)).Clamp(0, 0.999)
	return quantize(c.X), quantize(c.Y), quantize(c.Z)
}

// gamma2 maps linear to display space; non-positive values and NaN become 0
func gamma2(value float64) float64 {
	if !(value > 0) {
		return 0
	}
	return math.Sqrt(value)
}

func quantize(value float64) uint8 {
	return uint8(math.Floor(256 * value))
}

// WritePPM writes the image as plain-text P3 PPM, top row first
func WritePPM(w io.Writer, img *renderer.Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return err
	}
	for _, ps := range img.Pixels {
		r, g, b := EncodeColor(ps.ColorAccum, ps.SampleCount)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ToRGBA converts the accumulated image to an 8-bit RGBA image
func ToRGBA(img *renderer.Image) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			ps := img.At(x, y)
			r, g, b := EncodeColor(ps.ColorAccum, ps.SampleCount)
			rgba.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return rgba
}

// Save writes the image to path, choosing the format from the file extension
func Save(path string, img *renderer.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ppm":
		return savePPM(path, img)
	case ".png":
		if err := gg.SavePNG(path, ToRGBA(img)); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
		return nil
	case ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp":
		return saveImage(path, ToRGBA(img))
	default:
		return fmt.Errorf("unsupported output format %q (use .ppm, .png, .jpg, .gif, .tif or .bmp)", ext)
	}
}

// SavePreview writes a copy of the image scaled down to width pixels,
// keeping the aspect ratio
func SavePreview(path string, img *renderer.Image, width int) error {
	if width <= 0 {
		return fmt.Errorf("preview width must be positive, got %d", width)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".ppm" {
		return fmt.Errorf("previews cannot be written as PPM")
	}
	return saveImage(path, Resize(ToRGBA(img), width))
}

// Resize scales src to the given width, keeping the aspect ratio
func Resize(src image.Image, width int) *image.NRGBA {
	return imaging.Resize(src, width, 0, imaging.Lanczos)
}

func savePPM(path string, img *renderer.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WritePPM(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

func saveImage(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
