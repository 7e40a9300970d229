// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging validates uploaded banner images and produces the
// base64 payloads stored with them: the original bytes untouched, plus a
// downscaled PNG thumbnail for the admin list. Thumbnails are never
// upscaled.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ThumbWidth is the maximum width of generated thumbnails.
const ThumbWidth = 320

var (
	// ErrEmpty is returned when no image bytes were uploaded.
	ErrEmpty = errors.New("imaging: empty image")
	// ErrTooLarge is returned when the upload exceeds the size limit.
	ErrTooLarge = errors.New("imaging: image too large")
	// ErrNotImage is returned when the bytes do not decode as an image.
	ErrNotImage = errors.New("imaging: unsupported or corrupt image")
)

// Processed holds a validated upload ready to be stored.
type Processed struct {
	Format    string // "png", "jpeg", "gif" or "webp"
	Width     int
	Height    int
	Image     string // base64 of the original bytes
	Thumbnail string // base64 PNG, at most ThumbWidth wide
}

// Process validates data as an image no larger than maxBytes and builds
// its base64 forms. maxBytes <= 0 disables the size check.
func Process(data []byte, maxBytes int64) (*Processed, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), maxBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	thumb, err := EncodePNG(Thumbnail(img, ThumbWidth))
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &Processed{
		Format:    format,
		Width:     b.Dx(),
		Height:    b.Dy(),
		Image:     base64.StdEncoding.EncodeToString(data),
		Thumbnail: base64.StdEncoding.EncodeToString(thumb),
	}, nil
}

// Thumbnail scales img down to maxWidth, keeping its aspect ratio.
// Images already narrow enough are returned as-is.
func Thumbnail(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxWidth || maxWidth <= 0 {
		return img
	}

	height := b.Dy() * maxWidth / b.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// EncodePNG encodes img as a PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("imaging: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
