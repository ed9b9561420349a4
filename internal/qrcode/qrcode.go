package qrcode

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

const dataURLPrefix = "data:image/png;base64,"

// DataURL renders content as a PNG QR code embedded in a data URL.
func DataURL(content string, size int) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	return dataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// ASCII renders content as a block-character QR code for terminals.
func ASCII(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	var sb strings.Builder
	for _, row := range qr.Bitmap() {
		for _, dark := range row {
			if dark {
				sb.WriteString("██")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
