package renderer

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/safetyfirst/incident-engine/internal/fontfit"
	"github.com/safetyfirst/incident-engine/internal/layout"
	"github.com/safetyfirst/incident-engine/pkg/incidentformat"
)

// ComposeReport renders the A4 report page and wraps it into a
// single-page PDF. The page is rasterized by the configured backend at
// 300dpi and embedded full-bleed; the PDF is the printable artifact.
func (c *Compositor) ComposeReport(inc *incidentformat.Incident) (Artifact, error) {
	if err := incidentformat.Validate(inc); err != nil {
		return Artifact{}, fmt.Errorf("invalid record: %w", err)
	}

	sizes := fontfit.Solve(fontfit.FieldsFromIncident(inc), fontfit.MaxBaseFor(inc.FontSize))
	embedded := ResolveEmbeddedImage(inc, c.cfg.UploadsDir)

	plan := c.engine.PlanReport(inc, sizes, embedded)
	c.addReferenceQR(plan, inc)

	img, err := c.backend.Render(plan, nil)
	if err != nil {
		log.Printf("report render failed for %s (type=%s lang=%s backend=%s): %v",
			inc.Reference, inc.Type, inc.Language, c.backend.Name(), err)
		return Artifact{}, err
	}

	pageJPEG, err := encodeJPEG(img)
	if err != nil {
		return Artifact{}, err
	}

	data, err := wrapPDF(pageJPEG)
	if err != nil {
		log.Printf("report export failed for %s: %v", inc.Reference, err)
		return Artifact{}, err
	}

	name := strings.TrimSuffix(OutputFilename(inc, 0), ".jpg") + ".pdf"
	return Artifact{Filename: name, Bytes: data}, nil
}

// addReferenceQR puts a QR code with the incident reference in the page
// footer so the printed document links back to the record. Skipped for
// records without a reference; a QR encode failure only loses the code.
func (c *Compositor) addReferenceQR(plan *layout.Plan, inc *incidentformat.Incident) {
	if inc.Reference == "" {
		return
	}
	qr, err := qrcode.New(inc.Reference, qrcode.Medium)
	if err != nil {
		log.Printf("Warning: could not build reference QR for %s: %v", inc.Reference, err)
		return
	}
	g := layout.Report
	size := g.QRSize
	plan.AddImage(qr.Image(int(size)), layout.Rect{
		X: float64(g.Width) - g.Margin - size,
		Y: float64(g.Height) - g.Margin - size,
		W: size,
		H: size,
	}, 0)
}

// wrapPDF embeds the rendered page into a single A4 PDF page.
func wrapPDF(pageJPEG []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("page", opts, bytes.NewReader(pageJPEG))
	pdf.ImageOptions("page", 0, 0, 210, 297, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}
