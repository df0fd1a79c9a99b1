package stitch

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
)

// Composite geometry. Every input is scaled to stitchWidth so the OCR
// service sees uniform line lengths, and each entry is preceded by a
// machine-readable [[ID:x]] marker rendered as ordinary text plus a
// dashed rule, which is how the per-student spans are recovered from
// the recognized text afterwards.
const (
	stitchWidth   = 600
	markerBandH   = 28
	entryPadding  = 16
	sideMargin    = 8
	stitchQuality = 85
)

// InputImage is one handwriting crop to composite.
type InputImage struct {
	ID      string
	DataURL string
}

// Stitch composites the inputs vertically into a single JPEG data URL.
// It fails if any input fails to decode; a half-stitched composite
// would silently drop answers.
func Stitch(images []InputImage) (string, error) {
	if len(images) == 0 {
		return "", fmt.Errorf("no images to stitch")
	}

	decoded := make([]image.Image, 0, len(images))
	totalH := 0
	for _, in := range images {
		img, err := decodeDataURL(in.DataURL)
		if err != nil {
			return "", fmt.Errorf("image %q: %w", in.ID, err)
		}
		scaled := scaleToWidth(img, stitchWidth-2*sideMargin)
		decoded = append(decoded, scaled)
		totalH += markerBandH + scaled.Bounds().Dy() + entryPadding
	}

	dc := gg.NewContext(stitchWidth, totalH)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	y := 0
	for i, in := range images {
		dc.SetRGB(0, 0, 0)
		dc.DrawString(fmt.Sprintf("[[ID:%s]]", in.ID), sideMargin, float64(y)+16)

		dc.SetDash(6, 4)
		dc.DrawLine(sideMargin, float64(y+markerBandH-4), float64(stitchWidth-sideMargin), float64(y+markerBandH-4))
		dc.Stroke()
		dc.SetDash()

		dc.DrawImage(decoded[i], sideMargin, y+markerBandH)
		y += markerBandH + decoded[i].Bounds().Dy() + entryPadding
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: stitchQuality}); err != nil {
		return "", fmt.Errorf("encode composite: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func decodeDataURL(dataURL string) (image.Image, error) {
	payload := dataURL
	if idx := strings.Index(dataURL, ";base64,"); idx >= 0 {
		payload = dataURL[idx+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func scaleToWidth(src image.Image, width int) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() == width || bounds.Dx() == 0 {
		return src
	}
	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
