package services

import (
	"bytes"
	"fmt"

	"commuteai/internal/domain"
	"commuteai/internal/domain/models"
	"commuteai/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ItinerarySheet renders an itinerary, enriched or not, as a one-page PDF.
type ItinerarySheet struct {
	Title string
}

// Render returns the PDF bytes and a download filename.
func (s ItinerarySheet) Render(it *models.Itinerary) ([]byte, string, error) {
	if it == nil {
		return nil, "", domain.ValidationError{Field: "itinerary", Msg: "must not be nil"}
	}
	title := s.Title
	if title == "" {
		title = "Itinerary"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Depart   : %s", it.Start.Format("2006-01-02 15:04")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Arrive   : %s", it.End.Format("2006-01-02 15:04")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Duration : %s", utils.FormatDuration(it.Duration)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Walking  : %s, %s", utils.FormatDistance(it.WalkDistance), utils.FormatDuration(it.WalkTime)))
	pdf.Ln(10)

	if it.AIDescription != nil {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, tr(*it.AIDescription), "", "", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Legs:")
	pdf.Ln(8)

	for i, leg := range it.Legs {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, tr(fmt.Sprintf("%d) %s  %s - %s", i+1, legLabel(leg),
			utils.FormatHM(leg.Start), utils.FormatHM(leg.End))))
		pdf.Ln(6)

		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s -> %s (%s, %s)",
			utils.Deref(leg.FromPlace.Name, "-"), utils.Deref(leg.ToPlace.Name, "-"),
			utils.FormatDistance(leg.Distance), utils.FormatDuration(leg.Duration))), "", "", false)

		if leg.AIInsight != nil {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 5, tr(*leg.AIInsight), "", "", false)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render itinerary pdf", Err: err}
	}
	filename := fmt.Sprintf("itinerary_%s.pdf", utils.SafeFilenamePart(it.Start.Format("20060102_1504")))
	return buf.Bytes(), filename, nil
}

func legLabel(leg models.Leg) string {
	if leg.Route == nil || leg.Mode.IsWalk() {
		return string(leg.Mode)
	}
	if leg.Route.LongName == "" {
		return fmt.Sprintf("%s %s", leg.Mode, leg.Route.ShortName)
	}
	return fmt.Sprintf("%s %s (%s)", leg.Mode, leg.Route.ShortName, leg.Route.LongName)
}
