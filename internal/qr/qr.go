// Package qr renders and reads the QR images the program exchanges:
// resident profile codes, voucher claims, and the image-file fallback for
// scan screens on devices without a camera.
package qr

import (
	"image"
	"image/png"
	"os"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// EncodePNG writes content as a square QR PNG of the given pixel size.
func EncodePNG(content, path string, size int) error {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return err
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close() //nolint:errcheck

	return png.Encode(file, scaled)
}

// DecodeImage reads a QR payload out of an image file.
func DecodeImage(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close() //nolint:errcheck

	img, _, err := image.Decode(file)
	if err != nil {
		return "", err
	}
	return Decode(img)
}

// Decode reads a QR payload out of a decoded image.
func Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", err
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", err
	}
	return result.GetText(), nil
}
