package utils

import (
	"bytes"
	"unicode/utf8"
)

// binarySniffWindow bounds how many leading bytes the sniff inspects.
const binarySniffWindow = 8000

// IsBinary reports whether data looks like binary rather than text. Only a
// leading window is inspected: a NUL byte or an invalid UTF-8 sequence inside
// it marks the data binary, while a multibyte rune cut off by the window
// boundary does not.
func IsBinary(data []byte) bool {
	window := data
	truncated := false
	if len(window) > binarySniffWindow {
		window = window[:binarySniffWindow]
		truncated = true
	}
	if bytes.IndexByte(window, 0x00) >= 0 {
		return true
	}
	for offset := 0; offset < len(window); {
		decodedRune, runeSize := utf8.DecodeRune(window[offset:])
		if decodedRune == utf8.RuneError && runeSize == 1 {
			if truncated && len(window)-offset < utf8.UTFMax {
				break
			}
			return true
		}
		offset += runeSize
	}
	return false
}
