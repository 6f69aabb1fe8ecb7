package renderer

import (
	"bytes"
	"image"
	"strings"
	"sync"
	"testing"

	"github.com/safetyfirst/incident-engine/internal/fontfit"
	"github.com/safetyfirst/incident-engine/internal/layout"
	"github.com/safetyfirst/incident-engine/internal/textmetrics"
)

func testFontManager(t *testing.T) *textmetrics.FontManager {
	t.Helper()
	fm, err := textmetrics.NewFontManager("")
	if err != nil {
		t.Fatalf("NewFontManager failed: %v", err)
	}
	return fm
}

func TestFitText_KeepsPlannedSizeWhenItFits(t *testing.T) {
	m := textmetrics.NewEstimator()
	op := layout.TextOp{
		Text: "short text",
		Box:  layout.Rect{X: 0, Y: 0, W: 800, H: 200},
		Size: 20,
	}
	fitted := fitText(m, op)
	if fitted.size != 20 {
		t.Errorf("Expected planned size kept, got %v", fitted.size)
	}
	if fitted.clipped {
		t.Error("Short text must not be clipped")
	}
}

func TestFitText_ShrinksWhenEstimateWasOptimistic(t *testing.T) {
	m := textmetrics.NewEstimator()
	op := layout.TextOp{
		Text: strings.Repeat("several words of body text ", 30),
		Box:  layout.Rect{X: 0, Y: 0, W: 500, H: 220},
		Size: 22,
	}
	fitted := fitText(m, op)
	if fitted.size >= 22 {
		t.Errorf("Expected shrink below 22, got %v", fitted.size)
	}
	budget := int(op.Box.H / (fitted.size * textmetrics.LineHeightFactor))
	if !fitted.clipped && len(fitted.lines) > budget {
		t.Errorf("Unclipped result exceeds budget: %d lines, budget %d", len(fitted.lines), budget)
	}
}

func TestFitText_ClipsAtFloor(t *testing.T) {
	m := textmetrics.NewEstimator()
	op := layout.TextOp{
		Text: strings.Repeat("far too much text for this tiny box ", 200),
		Box:  layout.Rect{X: 0, Y: 0, W: 300, H: 60},
		Size: 22,
	}
	fitted := fitText(m, op)
	if fitted.size != fontfit.FloorBase {
		t.Errorf("Expected floor size %d, got %v", fontfit.FloorBase, fitted.size)
	}
	if !fitted.clipped {
		t.Error("Expected clipping at the floor")
	}
	budget := int(op.Box.H / (fitted.size * textmetrics.LineHeightFactor))
	if len(fitted.lines) != budget {
		t.Errorf("Expected exactly %d clipped lines, got %d", budget, len(fitted.lines))
	}
}

func TestFitText_ExplicitMaxLinesTruncatesWithoutShrink(t *testing.T) {
	// Meta values truncate at the planned size; the cap is the one place
	// truncation rather than shrink-to-fit applies, so a long site value
	// must never come back smaller than planned.
	m := textmetrics.NewEstimator()
	op := layout.TextOp{
		Text:     strings.Repeat("Site Name Segment ", 30),
		Box:      layout.Rect{X: 0, Y: 0, W: 336, H: 500},
		Size:     18.7,
		MaxLines: 3,
	}
	fitted := fitText(m, op)
	if fitted.size != 18.7 {
		t.Errorf("Capped op changed size: planned 18.7, drawn %v", fitted.size)
	}
	if len(fitted.lines) != 3 {
		t.Errorf("Expected exactly 3 lines, got %d", len(fitted.lines))
	}
	if !fitted.clipped {
		t.Error("Expected the overlong value to be clipped")
	}
}

func TestFitText_FractionalSizeClampsToFloor(t *testing.T) {
	// Label sizes are fractional (0.65x base); stepping down by whole
	// points must land exactly on the floor, never below it.
	m := textmetrics.NewEstimator()
	op := layout.TextOp{
		Text: strings.Repeat("far too much text for this tiny box ", 200),
		Box:  layout.Rect{X: 0, Y: 0, W: 300, H: 60},
		Size: 18.7,
	}
	fitted := fitText(m, op)
	if fitted.size != fontfit.FloorBase {
		t.Errorf("Expected floor size %d, got %v", fontfit.FloorBase, fitted.size)
	}
	if !fitted.clipped {
		t.Error("Expected clipping at the floor")
	}
}

func renderTestPlan(t *testing.T, b Backend) []byte {
	t.Helper()
	fmgr := testFontManager(t)
	engine := layout.NewEngine(textmetrics.New(fmgr))
	inc := testRecord("investigation")
	plan := engine.PlanCard(inc, fontfit.Derive(18), layout.VariantSplit, testImage())

	img, err := b.Render(plan, nil)
	if err != nil {
		t.Fatalf("%s render failed: %v", b.Name(), err)
	}
	if img.Bounds().Dx() != 1920 || img.Bounds().Dy() != 1080 {
		t.Fatalf("%s produced %v canvas", b.Name(), img.Bounds())
	}
	data, err := encodeJPEG(img)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	return data
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 120, 80))
	for i := range img.Pix {
		img.Pix[i] = byte(i * 7)
	}
	return img
}

func TestBackends_RenderAndDeterminism(t *testing.T) {
	fm := testFontManager(t)
	backends := []Backend{NewPreviewBackend(fm), NewFinalBackend(fm)}

	for _, b := range backends {
		first := renderTestPlan(t, b)
		second := renderTestPlan(t, b)
		if !bytes.Equal(first, second) {
			t.Errorf("%s backend output is not deterministic", b.Name())
		}
	}
}

func TestBackends_ConcurrentRenderSharedFonts(t *testing.T) {
	// One font manager shared across parallel renders, as the server
	// shares it across request handlers. Fails under the race detector
	// if any glyph cache leaks between goroutines.
	fm := testFontManager(t)
	engine := layout.NewEngine(textmetrics.New(fm))
	inc := testRecord("investigation")
	plan := engine.PlanCard(inc, fontfit.Derive(18), layout.VariantSplit, testImage())

	for _, b := range []Backend{NewPreviewBackend(fm), NewFinalBackend(fm)} {
		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := b.Render(plan, nil); err != nil {
					t.Errorf("%s concurrent render failed: %v", b.Name(), err)
				}
			}()
		}
		wg.Wait()
	}
}

func TestPreviewBackend_Thumbnail(t *testing.T) {
	fm := testFontManager(t)
	b := NewPreviewBackend(fm)
	card := image.NewRGBA(image.Rect(0, 0, 1920, 1080))

	thumb := b.Thumbnail(card)
	if thumb.Bounds().Dx() != ThumbWidth || thumb.Bounds().Dy() != ThumbHeight {
		t.Errorf("Unexpected thumbnail size %v", thumb.Bounds())
	}
}
