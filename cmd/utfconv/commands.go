package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/wippyai/utfcodec/checked"
	"github.com/wippyai/utfcodec/codec"
)

type config struct {
	styles      styles
	from        string
	to          string
	encoding    string
	replacement rune
	bom         bool
}

func run(ctx context.Context, cmd string, cfg config, data []byte, w io.Writer) error {
	log.Debug("run", zap.String("command", cmd), zap.Int("bytes", len(data)))

	switch cmd {
	case "validate":
		return validate(w, data, cfg.styles)
	case "fix":
		out, err := checked.ReplaceInvalidWith(make([]byte, 0, len(data)), data, cfg.replacement)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "convert":
		out, err := convert(data, cfg.from, cfg.to, cfg.bom)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "inspect":
		return inspect(w, data, cfg.styles)
	case "guest":
		return guestRoundTrip(ctx, w, data, cfg.encoding)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// validate reports the code point count, or the first malformed sequence.
func validate(w io.Writer, data []byte, st styles) error {
	n, err := checked.Distance(data)
	if err != nil {
		return err
	}
	bom := ""
	if checked.StartsWithBOM(data) {
		bom = " (with BOM)"
	}
	fmt.Fprintf(w, "%s %d bytes, %d code points%s\n", st.ok("valid UTF-8:"), len(data), n, bom)
	return nil
}

func convert(data []byte, from, to string, bom bool) ([]byte, error) {
	src, err := parseTextEncoding(from)
	if err != nil {
		return nil, err
	}
	dst, err := parseTextEncoding(to)
	if err != nil {
		return nil, err
	}

	text, err := src.decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src.name, err)
	}
	if bom {
		text = append(append([]byte(nil), codec.BOM[:]...), text...)
	}
	out, err := dst.encode(text)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", dst.name, err)
	}

	log.Debug("converted",
		zap.String("from", src.name),
		zap.String("to", dst.name),
		zap.Int("in", len(data)),
		zap.Int("out", len(out)))
	return out, nil
}

// inspect prints one line per code point: offset, bytes, U+XXXX and glyph.
// Each malformed byte gets its own line with the decode error.
func inspect(w io.Writer, data []byte, st styles) error {
	var points, invalid int
	for pos := 0; pos < len(data); {
		cp, next, err := checked.Next(data, pos)
		if err != nil {
			fmt.Fprintf(w, "%s  %s  %s\n",
				st.offset(fmt.Sprintf("%8d", pos)),
				st.bytes(fmt.Sprintf("%-11s", hexBytes(data[pos:pos+1]))),
				st.err(err.Error()))
			invalid++
			pos++
			continue
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			st.offset(fmt.Sprintf("%8d", pos)),
			st.bytes(fmt.Sprintf("%-11s", hexBytes(data[pos:next]))),
			st.cp(fmt.Sprintf("%-8s", fmt.Sprintf("U+%04X", cp))),
			glyph(cp))
		points++
		pos = next
	}
	fmt.Fprintf(w, "%s\n", st.help(fmt.Sprintf("%d code points, %d invalid bytes", points, invalid)))
	return nil
}

func hexBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("%02X", c)
	}
	return strings.Join(parts, " ")
}

func glyph(cp rune) string {
	if unicode.IsPrint(cp) {
		return string(cp)
	}
	return "."
}
