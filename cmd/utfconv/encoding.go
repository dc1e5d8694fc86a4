package main

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/wippyai/utfcodec/checked"
	"github.com/wippyai/utfcodec/codec"
	"github.com/wippyai/utfcodec/errors"
)

// textEncoding is a byte serialization of Unicode text.
type textEncoding struct {
	order binary.ByteOrder
	name  string
	width int
}

var textEncodings = map[string]textEncoding{
	"utf8":    {name: "utf8", width: 1},
	"utf16le": {name: "utf16le", width: 2, order: binary.LittleEndian},
	"utf16be": {name: "utf16be", width: 2, order: binary.BigEndian},
	"utf32le": {name: "utf32le", width: 4, order: binary.LittleEndian},
	"utf32be": {name: "utf32be", width: 4, order: binary.BigEndian},
}

func parseTextEncoding(name string) (textEncoding, error) {
	if enc, ok := textEncodings[name]; ok {
		return enc, nil
	}
	names := make([]string, 0, len(textEncodings))
	for n := range textEncodings {
		names = append(names, n)
	}
	sort.Strings(names)
	return textEncoding{}, fmt.Errorf("unknown encoding %q (want one of %v)", name, names)
}

// decode returns data as validated UTF-8. A leading UTF-8 BOM is dropped.
func (e textEncoding) decode(data []byte) ([]byte, error) {
	if rem := len(data) % e.width; rem != 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindNotEnoughRoom).
			Offset(len(data) - rem).
			Detail("%d trailing bytes do not form a %s unit", rem, e.name).
			Build()
	}

	switch e.width {
	case 2:
		words := make([]uint16, len(data)/2)
		for i := range words {
			words[i] = e.order.Uint16(data[2*i:])
		}
		return checked.UTF16ToUTF8(make([]byte, 0, len(data)), words)
	case 4:
		runes := make([]rune, len(data)/4)
		for i := range runes {
			runes[i] = rune(e.order.Uint32(data[4*i:]))
		}
		return checked.UTF32ToUTF8(make([]byte, 0, len(data)), runes)
	}

	if checked.StartsWithBOM(data) {
		log.Debug("dropping byte order mark")
		data = data[len(codec.BOM):]
	}
	if off := checked.FindInvalid(data); off < len(data) {
		_, _, err := checked.Next(data, off)
		return nil, err
	}
	return data, nil
}

// encode serializes valid UTF-8 text.
func (e textEncoding) encode(text []byte) ([]byte, error) {
	switch e.width {
	case 2:
		words, err := checked.UTF8ToUTF16(nil, text)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 2*len(words))
		for i, w := range words {
			e.order.PutUint16(out[2*i:], w)
		}
		return out, nil
	case 4:
		runes, err := checked.UTF8ToUTF32(nil, text)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 4*len(runes))
		for i, r := range runes {
			e.order.PutUint32(out[4*i:], uint32(r))
		}
		return out, nil
	}
	if off := checked.FindInvalid(text); off < len(text) {
		_, _, err := checked.Next(text, off)
		return nil, err
	}
	return text, nil
}
