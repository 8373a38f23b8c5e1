package itinerary

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
)

// ExportPDF renders the itinerary as a printable A4 PDF. When shareURL is
// non-empty a QR code pointing at the shared trip is stamped on the first
// page.
func ExportPDF(plan *models.Itinerary, location, shareURL string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(plan.Title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(0, 9, plan.Title, "", "L", false)
	pdf.SetFont("Arial", "I", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Destination: %s", location))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, plan.Overview, "", "L", false)
	pdf.Ln(4)

	if shareURL != "" {
		qrPNG, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("failed to generate QR code: %w", err)
		}
		imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("share-qr", imageOpts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("share-qr", 165, 10, 30, 30, false, imageOpts, 0, "")
	}

	for _, day := range plan.Days {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, fmt.Sprintf("Day %d", day.Day))
		pdf.Ln(10)

		for _, seg := range day.Segments {
			pdf.SetFont("Arial", "B", 11)
			pdf.Cell(0, 7, fmt.Sprintf("%s - %s", seg.TimeOfDay, seg.Title))
			pdf.Ln(7)

			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 5, seg.Description, "", "L", false)
			if seg.TravelEstimate != "" {
				pdf.SetFont("Arial", "I", 9)
				pdf.Cell(0, 5, fmt.Sprintf("Travel: %s", seg.TravelEstimate))
				pdf.Ln(5)
			}
			writeAux(pdf, "Food", seg.FoodRecommendations)
			writeAux(pdf, "Hidden gems", seg.HiddenGems)
			writeAux(pdf, "Tips", seg.InsiderTips)
			writeAux(pdf, "Getting around", seg.Transportation)
			writeAux(pdf, "Safety", seg.Safety)
			writeAux(pdf, "Budget", seg.Budget)
			pdf.Ln(2)
		}

		if len(day.SuggestedStays) > 0 {
			pdf.SetFont("Arial", "B", 11)
			pdf.Cell(0, 7, "Suggested stays")
			pdf.Ln(7)
			pdf.SetFont("Arial", "", 10)
			for _, stay := range day.SuggestedStays {
				pdf.MultiCell(0, 5, fmt.Sprintf("%s (%s, %.1f) %s", stay.Name, stay.Type, stay.Rating, stay.PriceRange), "", "L", false)
			}
			pdf.Ln(2)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeAux(pdf *gofpdf.Fpdf, label, value string) {
	if value == "" {
		return
	}
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, fmt.Sprintf("%s: %s", label, value), "", "L", false)
}
