package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeInput(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRealMain_FlagPlacement(t *testing.T) {
	in := writeInput(t, []byte("é"))

	tests := []struct {
		name string
		args []string
		want []byte
	}{
		{"flags after command", []string{"convert", "-from", "utf8", "-to", "utf16be", in}, []byte{0x00, 0xE9}},
		{"flags before command", []string{"-from", "utf8", "-to", "utf16be", "convert", in}, []byte{0x00, 0xE9}},
		{"split flags", []string{"-to", "utf32le", "convert", "-bom", in}, []byte{0xFF, 0xFE, 0x00, 0x00, 0xE9, 0x00, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := realMain(tt.args, strings.NewReader(""), &stdout, &stderr); code != 0 {
				t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
			}
			if !bytes.Equal(stdout.Bytes(), tt.want) {
				t.Errorf("output = % X, want % X", stdout.Bytes(), tt.want)
			}
		})
	}
}

func TestRealMain_Guest(t *testing.T) {
	in := writeInput(t, []byte("façade"))
	for _, args := range [][]string{
		{"guest", "-enc", "latin1+utf16", in},
		{"-enc", "latin1+utf16", "guest", in},
	} {
		var stdout, stderr bytes.Buffer
		if code := realMain(args, strings.NewReader(""), &stdout, &stderr); code != 0 {
			t.Fatalf("%v: exit code = %d, stderr = %q", args, code, stderr.String())
		}
		if !strings.Contains(stdout.String(), "as latin1+utf16") {
			t.Errorf("%v: output = %q", args, stdout.String())
		}
	}
}

func TestRealMain_Stdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := realMain([]string{"fix", "-r", "?"}, strings.NewReader("a\xFFb"), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}
	if stdout.String() != "a?b" {
		t.Errorf("output = %q, want %q", stdout.String(), "a?b")
	}
}

func TestRealMain_OutputFile(t *testing.T) {
	in := writeInput(t, []byte("hi"))
	out := filepath.Join(t.TempDir(), "out.bin")

	var stdout, stderr bytes.Buffer
	if code := realMain([]string{"convert", "-o", out, in}, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x68, 0x00, 0x69, 0x00}; !bytes.Equal(got, want) {
		t.Errorf("output file = % X, want % X", got, want)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}
}

func TestRealMain_Errors(t *testing.T) {
	in := writeInput(t, []byte("ok"))

	tests := []struct {
		name   string
		args   []string
		code   int
		stderr string
	}{
		{"no command", nil, 2, "Usage:"},
		{"bad flag", []string{"convert", "-nope", in}, 2, "flag provided but not defined"},
		{"unknown encoding", []string{"convert", "-from", "ebcdic", in}, 1, "unknown encoding"},
		{"missing file", []string{"validate", filepath.Join(t.TempDir(), "absent")}, 1, "read file"},
		{"long replacement", []string{"fix", "-r", "ab", in}, 1, "single character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := realMain(tt.args, strings.NewReader(""), &stdout, &stderr); code != tt.code {
				t.Errorf("exit code = %d, want %d", code, tt.code)
			}
			if !strings.Contains(stderr.String(), tt.stderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.stderr)
			}
		})
	}
}
