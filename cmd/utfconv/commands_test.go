package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/utfcodec/errors"
)

func testConfig() config {
	return config{
		from:        "utf8",
		to:          "utf16le",
		encoding:    "utf8",
		replacement: 0xFFFD,
		styles:      plainStyles(),
	}
}

func TestValidate(t *testing.T) {
	var buf bytes.Buffer
	if err := validate(&buf, []byte("\xEF\xBB\xBFhé"), plainStyles()); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got, want := buf.String(), "valid UTF-8: 6 bytes, 3 code points (with BOM)\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	err := validate(&buf, []byte("ab\xC0\xAF"), plainStyles())
	if !stderrors.Is(err, errors.ErrInvalidUTF8) {
		t.Fatalf("err = %v, want InvalidUTF8", err)
	}
	var e *errors.Error
	if stderrors.As(err, &e) && e.Offset != 2 {
		t.Errorf("Offset = %d, want 2", e.Offset)
	}
}

func TestRun_Fix(t *testing.T) {
	cfg := testConfig()
	cfg.replacement = '?'
	var buf bytes.Buffer
	if err := run(context.Background(), "fix", cfg, []byte("a\xFF\xFEb"), &buf); err != nil {
		t.Fatalf("fix: %v", err)
	}
	if buf.String() != "a??b" {
		t.Errorf("fix = %q, want %q", buf.String(), "a??b")
	}

	cfg.replacement = 0xD800
	if err := run(context.Background(), "fix", cfg, []byte("a"), &buf); !stderrors.Is(err, errors.ErrInvalidCodePoint) {
		t.Errorf("fix with surrogate replacement err = %v", err)
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		in   []byte
		want []byte
		bom  bool
	}{
		{"utf8 to utf16le", "utf8", "utf16le", []byte("A\U0001D11E"), []byte{0x41, 0x00, 0x34, 0xD8, 0x1E, 0xDD}, false},
		{"utf8 to utf16be", "utf8", "utf16be", []byte("é"), []byte{0x00, 0xE9}, false},
		{"utf8 to utf32be", "utf8", "utf32be", []byte("ш"), []byte{0x00, 0x00, 0x04, 0x48}, false},
		{"utf16le to utf8", "utf16le", "utf8", []byte{0x34, 0xD8, 0x1E, 0xDD}, []byte("\U0001D11E"), false},
		{"utf32le to utf8", "utf32le", "utf8", []byte{0xE5, 0x65, 0x00, 0x00}, []byte("日"), false},
		{"bom dropped from utf8", "utf8", "utf16le", []byte("\xEF\xBB\xBFa"), []byte{0x61, 0x00}, false},
		{"bom written", "utf8", "utf16be", []byte("a"), []byte{0xFE, 0xFF, 0x00, 0x61}, true},
		{"identity", "utf8", "utf8", []byte("κόσμε"), []byte("κόσμε"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convert(tt.in, tt.from, tt.to, tt.bom)
			if err != nil {
				t.Fatalf("convert: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("convert = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		to     string
		in     []byte
		target error
	}{
		{"invalid utf8", "utf8", "utf16le", []byte("a\xFF"), errors.ErrInvalidUTF8},
		{"lone surrogate", "utf16le", "utf8", []byte{0x00, 0xD8}, errors.ErrInvalidUTF16},
		{"odd utf16 length", "utf16le", "utf8", []byte{0x41, 0x00, 0x42}, errors.ErrNotEnoughRoom},
		{"utf32 out of range", "utf32le", "utf8", []byte{0x00, 0x00, 0x11, 0x00}, errors.ErrInvalidCodePoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := convert(tt.in, tt.from, tt.to, false)
			if !stderrors.Is(err, tt.target) {
				t.Errorf("err = %v, want %v", err, tt.target)
			}
		})
	}

	if _, err := convert(nil, "ebcdic", "utf8", false); err == nil || !strings.Contains(err.Error(), "unknown encoding") {
		t.Errorf("unknown encoding err = %v", err)
	}
}

func TestInspect(t *testing.T) {
	var buf bytes.Buffer
	if err := inspect(&buf, []byte("a\xFFш"), plainStyles()); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if want := "       0  61           U+0061    a"; lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
	if !strings.HasPrefix(lines[1], "       1  FF           ") || !strings.Contains(lines[1], "invalid_utf8") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if want := "       2  D1 88        U+0448    ш"; lines[2] != want {
		t.Errorf("line 2 = %q, want %q", lines[2], want)
	}
	if want := "2 code points, 1 invalid bytes"; lines[3] != want {
		t.Errorf("summary = %q, want %q", lines[3], want)
	}
}

func TestRun_Guest(t *testing.T) {
	for _, enc := range []string{"utf8", "utf16", "latin1+utf16"} {
		t.Run(enc, func(t *testing.T) {
			cfg := testConfig()
			cfg.encoding = enc
			var buf bytes.Buffer
			if err := run(context.Background(), "guest", cfg, []byte("façade 日本"), &buf); err != nil {
				t.Fatalf("guest: %v", err)
			}
			if !strings.Contains(buf.String(), "lifted 9 code points") {
				t.Errorf("output = %q", buf.String())
			}
		})
	}

	var buf bytes.Buffer
	cfg := testConfig()
	if err := run(context.Background(), "guest", cfg, []byte("bad\xFF"), &buf); !stderrors.Is(err, errors.ErrInvalidUTF8) {
		t.Errorf("guest with invalid input err = %v", err)
	}
	// Larger than the initial page forces the allocator to grow memory.
	big := bytes.Repeat([]byte("日"), 40000)
	if err := run(context.Background(), "guest", cfg, big, &buf); err != nil {
		t.Errorf("guest with %d bytes: %v", len(big), err)
	}
}

func TestRun_Unknown(t *testing.T) {
	var buf bytes.Buffer
	if err := run(context.Background(), "frobnicate", testConfig(), nil, &buf); err == nil {
		t.Error("expected error for unknown command")
	}
}
