package imagecodec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
	"testing/iotest"

	"nanomerch/internal/domain"
)

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func sampleJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		mime string
	}{
		{name: "png", data: samplePNG(t), mime: "image/png"},
		{name: "jpeg", data: sampleJPEG(t), mime: "image/jpeg"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src, err := Encode(bytes.NewReader(tc.data))
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if !strings.HasPrefix(string(src), "data:"+tc.mime+";base64,") {
				t.Fatalf("Encode() = %q, want data:%s;base64 prefix", string(src)[:32], tc.mime)
			}

			payload, mime := DecodeForTransport(src)
			if mime != tc.mime {
				t.Fatalf("mime = %q, want %q", mime, tc.mime)
			}
			raw, err := base64.StdEncoding.DecodeString(payload)
			if err != nil {
				t.Fatalf("payload is not base64: %v", err)
			}
			if !bytes.Equal(raw, tc.data) {
				t.Fatalf("payload bytes differ from input")
			}

			decoded, decodedMIME, err := DecodeBytes(src)
			if err != nil {
				t.Fatalf("DecodeBytes() error: %v", err)
			}
			if decodedMIME != tc.mime || !bytes.Equal(decoded, tc.data) {
				t.Fatalf("DecodeBytes() mime=%q equal=%v", decodedMIME, bytes.Equal(decoded, tc.data))
			}
		})
	}
}

func TestEncodeRejectsUnreadableInput(t *testing.T) {
	tests := []struct {
		name string
		src  func() (domain.SourceImage, error)
	}{
		{name: "read failure", src: func() (domain.SourceImage, error) {
			return Encode(iotest.ErrReader(errors.New("disk gone")))
		}},
		{name: "empty", src: func() (domain.SourceImage, error) {
			return Encode(strings.NewReader(""))
		}},
		{name: "not an image", src: func() (domain.SourceImage, error) {
			return Encode(strings.NewReader("just some text, definitely not pixels"))
		}},
		{name: "nil reader", src: func() (domain.SourceImage, error) {
			return Encode(nil)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src, err := tc.src()
			if !errors.Is(err, domain.ErrUnreadableFile) {
				t.Fatalf("err = %v, want ErrUnreadableFile", err)
			}
			if src != "" {
				t.Fatalf("src = %q, want empty", src)
			}
		})
	}
}

func TestDecodeForTransportWithoutHeader(t *testing.T) {
	payload, mime := DecodeForTransport("iVBORw0KGgo=")
	if payload != "iVBORw0KGgo=" {
		t.Fatalf("payload = %q, want whole input", payload)
	}
	if mime != "" {
		t.Fatalf("mime = %q, want empty", mime)
	}
}

func TestDecodeBytesSniffsMissingMIME(t *testing.T) {
	data := samplePNG(t)
	bare := domain.SourceImage(base64.StdEncoding.EncodeToString(data))
	got, mime, err := DecodeBytes(bare)
	if err != nil {
		t.Fatalf("DecodeBytes() error: %v", err)
	}
	if mime != "image/png" {
		t.Fatalf("mime = %q, want image/png", mime)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("decoded bytes differ")
	}
}

func TestDecodeBytesRejectsGarbage(t *testing.T) {
	if _, _, err := DecodeBytes("data:image/png;base64,***"); !errors.Is(err, domain.ErrUnreadableFile) {
		t.Fatalf("err = %v, want ErrUnreadableFile", err)
	}
	if _, _, err := DecodeBytes("data:image/png;base64,"); !errors.Is(err, domain.ErrUnreadableFile) {
		t.Fatalf("err = %v, want ErrUnreadableFile", err)
	}
}

func TestEncodeBytesUsesGivenMIME(t *testing.T) {
	got := EncodeBytes([]byte{1, 2, 3}, PNG)
	if want := domain.SourceImage("data:image/png;base64,AQID"); got != want {
		t.Fatalf("EncodeBytes() = %q, want %q", got, want)
	}
}
