package extract

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// latin1Umlauts are the Latin-1 code points of Ä ä Ö ö Ü ü ß. Only these
// bytes are assumed to be Latin-1; any other byte >= 0x80 is taken to be
// part of an already valid UTF-8 sequence. This covers German comments and
// nothing else.
var latin1Umlauts = [256]bool{
	0xC4: true, 0xE4: true,
	0xD6: true, 0xF6: true,
	0xDC: true, 0xFC: true,
	0xDF: true,
}

// AppendByte appends ch to dst, transcoding it to UTF-8 when it looks like
// a Latin-1 umlaut. Invalid UTF-8 is passed through unchanged.
func AppendByte(dst []byte, ch byte) []byte {
	if ch < utf8.RuneSelf || !latin1Umlauts[ch] {
		return append(dst, ch)
	}
	return utf8.AppendRune(dst, charmap.ISO8859_1.DecodeByte(ch))
}
