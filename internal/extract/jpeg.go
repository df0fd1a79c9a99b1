package extract

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	xdraw "golang.org/x/image/draw"
)

// maxOCRPayloadBytes caps the base64-encoded size of an image sent to
// the OCR service; larger requests get rejected upstream.
const maxOCRPayloadBytes = 3 << 20

// jpegUnderOCRLimit loads a rendered page and re-encodes it until its
// base64 form fits the OCR payload cap. Quality drops first; once at
// the floor, the image is downscaled instead.
func jpegUnderOCRLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode rendered page: %w", err)
	}

	quality := 80
	for {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
		if base64.StdEncoding.EncodedLen(buf.Len()) <= maxOCRPayloadBytes {
			return buf.Bytes(), nil
		}
		if quality > 30 {
			quality -= 10
			continue
		}
		bounds := img.Bounds()
		w, h := bounds.Dx(), bounds.Dy()
		if w < 200 || h < 200 {
			// Cannot shrink further; let the OCR service decide.
			return buf.Bytes(), nil
		}
		img = scaleImage(img, w*4/5, h*4/5)
	}
}

func scaleImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}
