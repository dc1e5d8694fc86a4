package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/utfcodec/canon"
	"github.com/wippyai/utfcodec/codec"
)

var log = zap.NewNop()

var stdoutIsTerminal int32 = -1 // -1 = unchecked, 0 = no, 1 = yes

func isTerminal(fd int, cached *int32) bool {
	if v := atomic.LoadInt32(cached); v >= 0 {
		return v == 1
	}
	result := term.IsTerminal(fd)
	if result {
		atomic.StoreInt32(cached, 1)
	} else {
		atomic.StoreInt32(cached, 0)
	}
	return result
}

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// realMain runs the command line and returns the process exit code. Flags
// are accepted both before and after the command name.
func realMain(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("utfconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		from        = fs.String("from", "utf8", "Input encoding for convert (utf8, utf16le, utf16be, utf32le, utf32be)")
		to          = fs.String("to", "utf16le", "Output encoding for convert")
		bom         = fs.Bool("bom", false, "Write a byte order mark before converted output")
		replacement = fs.String("r", "", "Replacement character for fix (default U+FFFD)")
		encoding    = fs.String("enc", "utf8", "Canonical string encoding for guest (utf8, utf16, latin1+utf16)")
		output      = fs.String("o", "", "Write output to file instead of stdout")
		noColor     = fs.Bool("no-color", false, "Disable styled output")
		verbose     = fs.Bool("v", false, "Verbose logging to stderr")
		interactive = fs.Bool("i", false, "Interactive mode with TUI")
	)
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(args); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	rest := fs.Args()
	var cmd string
	if !*interactive && len(rest) > 0 {
		cmd = rest[0]
		if err := fs.Parse(rest[1:]); err != nil {
			if stderrors.Is(err, flag.ErrHelp) {
				return 0
			}
			return 2
		}
		rest = fs.Args()
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		log = l
		defer log.Sync()
	}
	canon.SetLogger(log)

	if *interactive {
		var data []byte
		if len(rest) > 0 {
			var err error
			if data, err = os.ReadFile(rest[0]); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return 1
			}
		}
		if err := runInteractive(data); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if cmd == "" {
		usage(fs)
		return 2
	}

	cfg := config{
		from:        *from,
		to:          *to,
		bom:         *bom,
		encoding:    *encoding,
		replacement: codec.ReplacementChar,
		styles:      plainStyles(),
	}
	if *replacement != "" {
		r := []rune(*replacement)
		if len(r) != 1 {
			fmt.Fprintf(stderr, "Error: -r takes a single character, got %q\n", *replacement)
			return 1
		}
		cfg.replacement = r[0]
	}

	w := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		w = f
	} else if f, ok := stdout.(*os.File); ok && !*noColor && isTerminal(int(f.Fd()), &stdoutIsTerminal) {
		cfg.styles = colorStyles()
	}

	data, err := readInput(stdin, rest)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := run(context.Background(), cmd, cfg, data, w); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "Usage: utfconv [flags] validate [file]")
	fmt.Fprintln(out, "       utfconv [flags] fix [-r char] [file]")
	fmt.Fprintln(out, "       utfconv [flags] convert [-from utf8] [-to utf16le] [-bom] [file]")
	fmt.Fprintln(out, "       utfconv [flags] inspect [file]")
	fmt.Fprintln(out, "       utfconv [flags] guest [-enc latin1+utf16] [file]")
	fmt.Fprintln(out, "       utfconv -i [file]  (interactive mode)")
	fmt.Fprintln(out, "\nFlags may appear before or after the command.")
	fmt.Fprintln(out, "Input is read from stdin when no file is given.")
	fs.PrintDefaults()
}

func readInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}
