package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf/v2"
	qrcode "github.com/skip2/go-qrcode"
)

const badgeDir = "statics/badges"

// QRBadge writes the employee's check-in QR code as a PNG and returns its
// path.
func QRBadge(employeeID string) (string, error) {
	if err := os.MkdirAll(badgeDir, os.ModePerm); err != nil {
		return "", err
	}

	path := filepath.Join(badgeDir, employeeID+".png")
	if err := qrcode.WriteFile(employeeID, qrcode.Medium, 256, path); err != nil {
		return "", fmt.Errorf("generating qr badge: %w", err)
	}

	return path, nil
}

// QRBadgeSheet lays every employee's QR badge onto one printable PDF and
// returns its path.
func QRBadgeSheet(employeeIDs []string, fileName string) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 10)

	const (
		cols     = 3
		cellW    = 60.0
		cellH    = 70.0
		imgSize  = 50.0
		marginX  = 15.0
		marginY  = 15.0
		perSheet = 12
	)

	for i, id := range employeeIDs {
		if i%perSheet == 0 {
			pdf.AddPage()
		}

		path, err := QRBadge(id)
		if err != nil {
			return "", err
		}

		pos := i % perSheet
		x := marginX + float64(pos%cols)*cellW
		y := marginY + float64(pos/cols)*cellH

		pdf.ImageOptions(path, x+(cellW-imgSize)/2, y, imgSize, imgSize, false,
			gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.SetXY(x, y+imgSize+2)
		pdf.CellFormat(cellW, 6, id, "", 0, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(fileName); err != nil {
		return "", err
	}
	return fileName, nil
}
