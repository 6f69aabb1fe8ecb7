package textmetrics

import (
	"strings"
	"sync"
	"testing"
)

func TestNormalizeParagraphs_CollapsesRuns(t *testing.T) {
	got := NormalizeParagraphs("a\n\n\n\n\nb")
	if got != "a\n\nb" {
		t.Errorf("Expected collapse to one blank line, got %q", got)
	}
}

func TestNormalizeParagraphs_KeepsSingleBlank(t *testing.T) {
	got := NormalizeParagraphs("a\n\nb")
	if got != "a\n\nb" {
		t.Errorf("Expected text unchanged, got %q", got)
	}
}

func TestApplyBullet(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"- check the valve", "• check the valve"},
		{"-no space", "• no space"},
		{"  - indented", "• indented"},
		{"no dash here", "no dash here"},
		{"mid - dash stays", "mid - dash stays"},
	}
	for _, c := range cases {
		if got := ApplyBullet(c.in); got != c.want {
			t.Errorf("ApplyBullet(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestWrapToLines_EmptyText(t *testing.T) {
	m := NewEstimator()
	if lines := m.WrapToLines("", 500, WeightRegular, 16); lines != nil {
		t.Errorf("Expected nil for empty text, got %v", lines)
	}
	if lines := m.WrapToLines("   \n  ", 500, WeightRegular, 16); lines != nil {
		t.Errorf("Expected nil for whitespace text, got %v", lines)
	}
}

func TestWrapToLines_PreservesParagraphBreaks(t *testing.T) {
	m := NewEstimator()
	lines := m.WrapToLines("first\n\nsecond", 5000, WeightRegular, 16)
	want := []string{"first", "", "second"}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapToLines_LongWordStandsAlone(t *testing.T) {
	m := NewEstimator()
	long := strings.Repeat("x", 200)
	lines := m.WrapToLines("short "+long+" tail", 300, WeightRegular, 16)

	found := false
	for _, l := range lines {
		if l == long {
			found = true
		}
		if strings.Contains(l, long) && l != long {
			t.Errorf("Over-wide word shares a line: %q", l)
		}
	}
	if !found {
		t.Errorf("Expected the long word on its own line, got %v", lines)
	}
}

func TestWrapToLines_GreedyFill(t *testing.T) {
	m := NewEstimator()
	// 16px * 0.52 ratio = 8.32px per char; 200px fits ~24 chars per line.
	lines := m.WrapToLines("one two three four five six seven", 200, WeightRegular, 16)
	if len(lines) < 2 {
		t.Errorf("Expected wrapping into multiple lines, got %v", lines)
	}
	for _, l := range lines {
		if EstimateWidth(l, 16) > 200 {
			t.Errorf("Line exceeds max width: %q", l)
		}
	}
}

func TestWrapToLines_RealFontMetrics(t *testing.T) {
	fm, err := NewFontManager("")
	if err != nil {
		t.Fatalf("NewFontManager failed: %v", err)
	}
	m := New(fm)

	lines := m.WrapToLines("the quick brown fox jumps over the lazy dog", 160, WeightRegular, 18)
	if len(lines) < 2 {
		t.Fatalf("Expected multiple lines at 160px, got %v", lines)
	}
	for _, l := range lines {
		if w := m.MeasureWidth(l, WeightRegular, 18); w > 160 {
			t.Errorf("Line %q measures %0.f px, exceeds 160", l, w)
		}
	}
}

func TestEstimateLineCount_EmptyIsZero(t *testing.T) {
	if n := EstimateLineCount("", 40); n != 0 {
		t.Errorf("Expected 0 lines for empty text, got %d", n)
	}
	if n := EstimateLineCount("  \n ", 40); n != 0 {
		t.Errorf("Expected 0 lines for whitespace, got %d", n)
	}
}

func TestEstimateLineCount_ParagraphSpacers(t *testing.T) {
	// "abc" + blank + "def" at generous width: 1 + 1 + 1 lines.
	if n := EstimateLineCount("abc\n\ndef", 40); n != 3 {
		t.Errorf("Expected 3 lines, got %d", n)
	}
}

func TestWrap_RoundTripBound(t *testing.T) {
	// Sanity bound from the wrap contract: for text with no over-wide
	// words, wrapped line count never exceeds ceil(len/charsPerLine)+1.
	m := NewEstimator()
	texts := []string{
		"a short sentence",
		strings.Repeat("word ", 50),
		strings.Repeat("slightly longer words here ", 20),
	}
	for _, text := range texts {
		size := 16.0
		width := 400.0
		cpl := CharsPerLine(width, size)
		lines := m.WrapToLines(text, width, WeightRegular, size)
		bound := (len([]rune(text))+cpl-1)/cpl + 1
		if len(lines) > bound {
			t.Errorf("Wrap of %d chars produced %d lines, bound %d", len([]rune(text)), len(lines), bound)
		}
	}
}

func TestFontManager_FacesAreNotShared(t *testing.T) {
	// Faces carry a mutable glyph cache, so handing the same instance to
	// two goroutines is a data race. Every call must build its own.
	fm, err := NewFontManager("")
	if err != nil {
		t.Fatalf("NewFontManager failed: %v", err)
	}

	a := fm.Face(WeightBold, 24)
	b := fm.Face(WeightBold, 24)
	if a == b {
		t.Error("Expected a fresh face per call, got a shared instance")
	}
}

func TestMetrics_ConcurrentWrapAndMeasure(t *testing.T) {
	// One manager shared by parallel workers, as the server shares it
	// across request handlers. Fails under the race detector if any face
	// leaks across goroutines.
	fm, err := NewFontManager("")
	if err != nil {
		t.Fatalf("NewFontManager failed: %v", err)
	}
	m := New(fm)
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 20)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				m.WrapToLines(text, 400, WeightRegular, 18)
				m.MeasureWidth(text, WeightBold, 28.8)
			}
		}()
	}
	wg.Wait()
}
