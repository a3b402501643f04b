package utils

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadPermissiveText reads everything from reader as UTF-8 text.
// Invalid byte sequences are replaced with U+FFFD instead of failing the read,
// so only genuine I/O errors are returned.
func ReadPermissiveText(reader io.Reader) (string, error) {
	decodingReader := transform.NewReader(reader, unicode.UTF8.NewDecoder())
	decodedBytes, readError := io.ReadAll(decodingReader)
	if readError != nil {
		return EmptyString, readError
	}
	return string(decodedBytes), nil
}
