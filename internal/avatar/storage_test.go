package avatar

import (
	"errors"
	"testing"
)

var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13}
	jpegHeader = []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10, 'J', 'F', 'I', 'F'}
)

func TestSniffImageAcceptsJPEGAndPNG(t *testing.T) {
	ext, contentType, err := sniffImage(pngHeader)
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if ext != ".png" || contentType != "image/png" {
		t.Fatalf("png: got ext %q type %q", ext, contentType)
	}

	ext, contentType, err = sniffImage(jpegHeader)
	if err != nil {
		t.Fatalf("jpeg: %v", err)
	}
	if ext != ".jpg" || contentType != "image/jpeg" {
		t.Fatalf("jpeg: got ext %q type %q", ext, contentType)
	}
}

func TestSniffImageRejectsOtherTypes(t *testing.T) {
	cases := map[string][]byte{
		"gif":  []byte("GIF89a"),
		"html": []byte("<!DOCTYPE html><html></html>"),
		"text": []byte("just some text pretending to be avatar.png"),
	}
	for name, buf := range cases {
		if _, _, err := sniffImage(buf); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("%s: expected ErrUnsupportedType, got %v", name, err)
		}
	}
}
