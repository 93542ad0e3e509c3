package bytesutil

import (
	"math"
	"testing"
)

func TestFastAtoi(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"123", 123},
		{"-123", -123},
		{"  42", 42},
		{"+7", 7},
		{"0", 0},
	}
	for _, c := range cases {
		got := FastAtoi([]byte(c.in))
		if got != c.want {
			t.Errorf("FastAtoi(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseFloatBasic(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"3.14", 3.14},
		{"-2.5", -2.5},
		{"1e3", 1000},
		{"1.5E2", 150},
		{"0", 0},
	}
	for _, c := range cases {
		got := ParseFloat([]byte(c.in))
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ParseFloat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseFloatLargeExponent(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1e64", 1e64},
		{"1e100", 1e100},
		{"1.5e200", 1.5e200},
		{"1e-300", 1e-300},
	}
	for _, c := range cases {
		got := ParseFloat([]byte(c.in))
		if math.Abs(got-c.want) > math.Abs(c.want)*1e-9 {
			t.Errorf("ParseFloat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseFloatNaN(t *testing.T) {
	for _, in := range []string{"", "nan", "NaN", "?", "n"} {
		got := ParseFloat([]byte(in))
		if !math.IsNaN(got) {
			t.Errorf("ParseFloat(%q) = %v, want NaN", in, got)
		}
	}
}

func TestIsNaNToken(t *testing.T) {
	for _, tok := range []string{"nan", "NaN", "NAN", "?"} {
		if !IsNaNToken([]byte(tok)) {
			t.Errorf("IsNaNToken(%q) = false, want true", tok)
		}
	}
	for _, tok := range []string{"banana", "na", "123"} {
		if IsNaNToken([]byte(tok)) {
			t.Errorf("IsNaNToken(%q) = true, want false", tok)
		}
	}
}

func TestDecodeQuotedEscapes(t *testing.T) {
	out, err := DecodeQuoted([]byte(`hello\nworld\x41B`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "hello\nworldAB"
	if string(out) != want {
		t.Errorf("DecodeQuoted = %q, want %q", out, want)
	}
}

func TestDecodeUnquotedVerticalTab(t *testing.T) {
	out, err := DecodeUnquoted([]byte(`a\vb`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "a\vb" {
		t.Errorf("DecodeUnquoted = %q", out)
	}
}

func TestScanBitmaps(t *testing.T) {
	data := []byte(`a,"b",c` + "\n")
	words := BitmapWords(len(data))
	quotes := make([]uint64, words)
	seps := make([]uint64, words)
	newlines := make([]uint64, words)
	Scan(data, ',', quotes, seps, newlines)

	if quotes[0]&(1<<2) == 0 {
		t.Errorf("expected quote bit at position 2")
	}
	if seps[0]&(1<<1) == 0 {
		t.Errorf("expected separator bit at position 1")
	}
	if newlines[0]&(1<<7) == 0 {
		t.Errorf("expected newline bit at position 7")
	}
}
