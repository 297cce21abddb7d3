// Package qrcode renders per-user check-in QR cards.
package qrcode

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/pkg/errors"
	qr "github.com/skip2/go-qrcode"
)

const imageSize = 256

// CheckInURL builds the link a scanned card opens.
func CheckInURL(baseURL, userID string) string {
	return fmt.Sprintf("%s/check-in?user_id=%s", baseURL, url.QueryEscape(userID))
}

// Generate writes the user's check-in QR PNG under dir and returns the
// file path.
func Generate(dir, baseURL, userID string) (string, error) {
	fileName := filepath.Join(dir, fmt.Sprintf("qr_%s.png", userID))

	if err := qr.WriteFile(CheckInURL(baseURL, userID), qr.Medium, imageSize, fileName); err != nil {
		return "", errors.Wrap(err, "writing qr code")
	}

	return fileName, nil
}
