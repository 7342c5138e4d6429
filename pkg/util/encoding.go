package util

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// DecodeGBK converts a GBK-encoded payload to UTF-8. Several quote hosts
// still serve GBK text.
func DecodeGBK(b []byte) ([]byte, error) {
	r := transform.NewReader(bytes.NewReader(b), simplifiedchinese.GBK.NewDecoder())
	return io.ReadAll(r)
}
