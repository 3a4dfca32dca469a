// Package barcode membuat nilai barcode unik untuk produk baru dan
// merender gambar Code128-nya ke folder statis.
package barcode

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	bb "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
)

const (
	scaleFactor  = 3
	barHeightPx  = 90
	textRowPx    = 24
	marginPx     = 10
	valueNumByte = 4
)

// GenerateValue menghasilkan nilai barcode 8 karakter hex uppercase.
// Tidak ada pengecekan tabrakan dengan barcode yang sudah ada.
func GenerateValue() (string, error) {
	buf := make([]byte, valueNumByte)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate barcode value: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

type Generator struct {
	outputDir string
}

func NewGenerator(outputDir string) *Generator {
	return &Generator{outputDir: outputDir}
}

func (g *Generator) GenerateValue() (string, error) {
	return GenerateValue()
}

// Render merender gambar Code128 (plus teks human-readable di bawah bar)
// ke <outputDir>/<value>.png dan mengembalikan path relatif untuk disimpan
// di kolom barcode_image.
func (g *Generator) Render(value string) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create barcode directory: %w", err)
	}

	encoded, err := code128.Encode(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode barcode: %w", err)
	}

	barWidth := encoded.Bounds().Dx() * scaleFactor
	scaled, err := bb.Scale(encoded, barWidth, barHeightPx)
	if err != nil {
		return "", fmt.Errorf("failed to scale barcode: %w", err)
	}

	img := compose(scaled, value, barWidth)

	fileName := value + ".png"
	outputPath := filepath.Join(g.outputDir, fileName)
	f, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create barcode file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		logger.Error("Render: png encode failed for "+outputPath, err)
		return "", fmt.Errorf("failed to write barcode image: %w", err)
	}
	return "/barcodes/" + fileName, nil
}

// compose menumpuk bar hasil scale dengan satu baris teks di bawahnya.
func compose(bars image.Image, text string, barWidth int) image.Image {
	totalWidth := barWidth + 2*marginPx
	totalHeight := barHeightPx + textRowPx + 2*marginPx

	canvas := image.NewRGBA(image.Rect(0, 0, totalWidth, totalHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(marginPx, marginPx, marginPx+barWidth, marginPx+barHeightPx), bars, bars.Bounds().Min, draw.Src)

	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()
	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot: fixed.P(
			(totalWidth-textWidth)/2,
			marginPx+barHeightPx+textRowPx/2+face.Metrics().Ascent.Ceil()/2,
		),
	}
	drawer.DrawString(text)
	return canvas
}
