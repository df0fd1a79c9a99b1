package stitch

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestStitch_ProducesJPEGDataURL(t *testing.T) {
	out, err := Stitch([]InputImage{
		{ID: "a1", DataURL: pngDataURL(t, 300, 100)},
		{ID: "b2", DataURL: pngDataURL(t, 1200, 400)},
	})
	if err != nil {
		t.Fatalf("Stitch: %v", err)
	}
	if !strings.HasPrefix(out, "data:image/jpeg;base64,") {
		t.Fatalf("output is not a jpeg data URL: %.40s", out)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(out, "data:image/jpeg;base64,"))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	if img.Bounds().Dx() != stitchWidth {
		t.Errorf("composite width = %d, want %d", img.Bounds().Dx(), stitchWidth)
	}
	// both entries scaled to the common width plus marker bands
	if img.Bounds().Dy() <= 100 {
		t.Errorf("composite height = %d, too small for two entries", img.Bounds().Dy())
	}
}

func TestStitch_UndecodableInputFails(t *testing.T) {
	_, err := Stitch([]InputImage{
		{ID: "ok", DataURL: pngDataURL(t, 50, 50)},
		{ID: "bad", DataURL: "data:image/png;base64,bm90IGFuIGltYWdl"},
	})
	if err == nil || !strings.Contains(err.Error(), "bad") {
		t.Fatalf("err = %v, want decode failure naming the image", err)
	}
}

func TestStitch_Empty(t *testing.T) {
	if _, err := Stitch(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParseStitchedOCRResult_SplitsOnMarkers(t *testing.T) {
	text := "[[ID:s1]]\n------\nI am happy.\n[[ID:s2]]\n____\nShe is a baker."
	got, ids := ParseStitchedOCRResult(text)
	if len(ids) != 2 || ids[0] != "s1" || ids[1] != "s2" {
		t.Fatalf("ids = %v, want [s1 s2]", ids)
	}
	if got["s1"] != "I am happy." {
		t.Errorf("s1 = %q", got["s1"])
	}
	if got["s2"] != "She is a baker." {
		t.Errorf("s2 = %q", got["s2"])
	}
}

func TestParseStitchedOCRResult_ToleratesOCRNoise(t *testing.T) {
	// spaces inside the marker and a fullwidth colon
	text := "[[ ID：q7 ]] —— good morning"
	got, ids := ParseStitchedOCRResult(text)
	if len(ids) != 1 || ids[0] != "q7" {
		t.Fatalf("ids = %v, want [q7]", ids)
	}
	if got["q7"] != "good morning" {
		t.Errorf("q7 = %q", got["q7"])
	}
}

func TestParseStitchedOCRResult_RoundTripOrdering(t *testing.T) {
	// Simulate the text layer the composite would OCR into: each marker
	// rendered verbatim followed by that student's answer.
	ids := []string{"a", "b", "c", "d"}
	var b strings.Builder
	for i, id := range ids {
		fmt.Fprintf(&b, "[[ID:%s]]\n----\nanswer %d\n", id, i)
	}
	_, gotIDs := ParseStitchedOCRResult(b.String())
	if len(gotIDs) != len(ids) {
		t.Fatalf("got %d ids, want %d", len(gotIDs), len(ids))
	}
	for i := range ids {
		if gotIDs[i] != ids[i] {
			t.Errorf("ids[%d] = %q, want %q", i, gotIDs[i], ids[i])
		}
	}
}

func TestParseStitchedOCRResult_MarkerWithNoText(t *testing.T) {
	got, _ := ParseStitchedOCRResult("[[ID:empty]]\n----\n")
	if got["empty"] != "" {
		t.Errorf("empty = %q, want \"\"", got["empty"])
	}
}
