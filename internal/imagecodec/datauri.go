package imagecodec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"nanomerch/internal/domain"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64"

	// PNG is the MIME type every generated result is labelled with.
	PNG = "image/png"
)

// Encode reads an uploaded file and returns it as a data-URI. The MIME type is
// sniffed from the content rather than trusted from the client.
func Encode(r io.Reader) (domain.SourceImage, error) {
	if r == nil {
		return "", fmt.Errorf("imagecodec: %w: no reader", domain.ErrUnreadableFile)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("imagecodec: %w: %v", domain.ErrUnreadableFile, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("imagecodec: %w: empty file", domain.ErrUnreadableFile)
	}
	mime := DetectMIME(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("imagecodec: %w: unsupported type %s", domain.ErrUnreadableFile, mime)
	}
	return EncodeBytes(data, mime), nil
}

// EncodeBytes wraps raw bytes into a data-URI without inspecting them.
func EncodeBytes(data []byte, mime string) domain.SourceImage {
	return EncodeBase64(base64.StdEncoding.EncodeToString(data), mime)
}

// EncodeBase64 wraps an already encoded payload.
func EncodeBase64(payload, mime string) domain.SourceImage {
	return domain.SourceImage(dataPrefix + mime + base64Marker + "," + payload)
}

// DecodeForTransport splits a data-URI into its base64 payload and MIME type.
// A string without a comma-delimited header is treated as a bare payload with
// an unknown MIME type.
func DecodeForTransport(src domain.SourceImage) (payload, mime string) {
	s := string(src)
	header, body, found := strings.Cut(s, ",")
	if !found {
		return s, ""
	}
	header = strings.TrimPrefix(header, dataPrefix)
	if idx := strings.IndexByte(header, ';'); idx >= 0 {
		header = header[:idx]
	}
	return body, strings.TrimSpace(header)
}

// DecodeBytes returns the raw bytes behind a data-URI. When the header does
// not name a MIME type it is sniffed from the decoded bytes.
func DecodeBytes(src domain.SourceImage) ([]byte, string, error) {
	payload, mime := DecodeForTransport(src)
	if payload == "" {
		return nil, "", fmt.Errorf("imagecodec: %w: empty payload", domain.ErrUnreadableFile)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		var corrupt base64.CorruptInputError
		if errors.As(err, &corrupt) {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return nil, "", fmt.Errorf("imagecodec: %w: %v", domain.ErrUnreadableFile, err)
		}
	}
	if mime == "" {
		mime = DetectMIME(data)
	}
	return data, mime, nil
}

// DetectMIME sniffs the content type, dropping any parameters.
func DetectMIME(data []byte) string {
	mime := mimetype.Detect(data).String()
	if idx := strings.IndexByte(mime, ';'); idx >= 0 {
		mime = mime[:idx]
	}
	return strings.TrimSpace(mime)
}
