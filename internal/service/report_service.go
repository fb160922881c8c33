package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/remitrack/internal/config"
	"github.com/remitrack/internal/logger"
	"github.com/remitrack/internal/models"
	"github.com/remitrack/internal/repository"

	"github.com/go-pdf/fpdf"
)

// ReportService renders the printable pre-staging report of one
// remision: document header, pre-staging info, the piece table and
// the evidence photos.
type ReportService struct {
	cfg          *config.Config
	remisionRepo repository.RemisionRepository
	infoRepo     repository.PreembarqueInfoRepository
	imageRepo    repository.ImageRepository
	upload       *UploadService
}

// NewReportService creates the report service.
func NewReportService(
	cfg *config.Config,
	remisionRepo repository.RemisionRepository,
	infoRepo repository.PreembarqueInfoRepository,
	imageRepo repository.ImageRepository,
	upload *UploadService,
) *ReportService {
	return &ReportService{
		cfg:          cfg,
		remisionRepo: remisionRepo,
		infoRepo:     infoRepo,
		imageRepo:    imageRepo,
		upload:       upload,
	}
}

// BuildReportFilename names the download after the document number and
// the generation date.
func BuildReportFilename(numeroRemision string, now time.Time) string {
	return fmt.Sprintf("preembarque-%s-%s.pdf", strings.TrimSpace(numeroRemision), now.Format("2006-01-02"))
}

// GeneratePreembarqueReport renders the PDF and returns its bytes
// along with the suggested filename.
func (s *ReportService) GeneratePreembarqueReport(remisionID uint) ([]byte, string, error) {
	remision, err := s.remisionRepo.GetByIDWithPiezas(remisionID)
	if err != nil {
		return nil, "", err
	}
	if remision == nil {
		return nil, "", ErrNotFound
	}
	info, err := s.infoRepo.GetByRemisionID(remisionID)
	if err != nil {
		return nil, "", err
	}
	images, err := s.imageRepo.ListByRemision(remisionID)
	if err != nil {
		return nil, "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentWidth := pageWidth - left - right

	// Header.
	company := strings.TrimSpace(s.cfg.Report.CompanyName)
	if company != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentWidth, 5, tr(company), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentWidth, 9, tr("Reporte de Pre-Embarque"), "", 1, "L", false, 0, "")
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.4)
	pdf.Line(left, pdf.GetY()+1, left+contentWidth, pdf.GetY()+1)
	pdf.Ln(5)

	// Document details.
	s.writeField(pdf, tr, "Remisión", remision.NumeroRemision)
	s.writeField(pdf, tr, "Cliente", remision.Cliente)
	s.writeField(pdf, tr, "Estado", remision.Estado)
	s.writeField(pdf, tr, "Fecha de creación", remision.FechaCreacion.Format("2006-01-02"))
	s.writeField(pdf, tr, "Total de piezas", fmt.Sprintf("%d", remision.TotalPiezas))
	if remision.Observaciones != "" {
		s.writeField(pdf, tr, "Observaciones", remision.Observaciones)
	}
	pdf.Ln(3)

	// Pre-staging info, when captured.
	if info != nil {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(contentWidth, 7, tr("Información de Pre-Embarque"), "", 1, "L", false, 0, "")
		s.writeField(pdf, tr, "Supervisor de obra", info.SupervisorObra)
		s.writeField(pdf, tr, "Operador", info.Operador)
		s.writeField(pdf, tr, "Teléfono", info.Telefono)
		s.writeField(pdf, tr, "Placas del camión", info.PlacasCamion)
		s.writeField(pdf, tr, "Transportista", info.Transportista)
		s.writeField(pdf, tr, "Barrotes", info.Barrotes)
		pdf.Ln(3)
	}

	// Piece table in scan order.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentWidth, 7, tr("Piezas Embarcadas"), "", 1, "L", false, 0, "")
	s.writePiezaTable(pdf, tr, contentWidth, remision.Piezas)
	pdf.Ln(3)

	// Evidence photos.
	if len(images) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(contentWidth, 7, tr("Evidencia Fotográfica"), "", 1, "L", false, 0, "")
		for _, image := range images {
			s.writeImage(pdf, tr, contentWidth, image)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), BuildReportFilename(remision.NumeroRemision, time.Now()), nil
}

func (s *ReportService) writeField(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(45, 6, tr(label+":"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, tr(value), "", "L", false)
}

func (s *ReportService) writePiezaTable(pdf *fpdf.Fpdf, tr func(string) string, contentWidth float64, piezas []models.PiezaEmbarcada) {
	colWidths := []float64{contentWidth * 0.35, contentWidth * 0.15, contentWidth * 0.2, contentWidth * 0.3}
	headers := []string{"Marca", "Cantidad", "Folio", "Registrado"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 7, tr(header), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if len(piezas) == 0 {
		pdf.CellFormat(contentWidth, 7, tr("Sin piezas registradas"), "1", 1, "L", false, 0, "")
		return
	}
	for _, pieza := range piezas {
		folio := ""
		if pieza.Folio != nil {
			folio = *pieza.Folio
		}
		pdf.CellFormat(colWidths[0], 7, tr(pieza.Marca), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, fmt.Sprintf("%d", pieza.Cantidad), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, tr(folio), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[3], 7, pieza.TimestampRegistro.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
}

// writeImage embeds the stored file when it is readable, otherwise it
// lists the photo by name so the report stays complete.
func (s *ReportService) writeImage(pdf *fpdf.Fpdf, tr func(string) string, contentWidth float64, image models.RemisionImage) {
	caption := strings.TrimSpace(image.Description)
	if caption == "" {
		caption = image.ImageName
	}

	path, ok := s.upload.LocalPathForURL(image.ImageURL)
	if ok {
		opts := fpdf.ImageOptions{ReadDpi: true}
		infoPtr := pdf.RegisterImageOptions(path, opts)
		if pdf.Err() {
			logger.Warnw("report_image_embed_failed", "image_url", image.ImageURL, "error", pdf.Error())
			pdf.ClearError()
			ok = false
		} else if infoPtr != nil {
			width := contentWidth * 0.6
			height := width * infoPtr.Height() / infoPtr.Width()
			_, pageHeight := pdf.GetPageSize()
			if pdf.GetY()+height > pageHeight-25 {
				pdf.AddPage()
			}
			pdf.ImageOptions(path, pdf.GetX(), pdf.GetY(), width, height, true, opts, 0, "")
			pdf.Ln(2)
		}
	}

	pdf.SetFont("Helvetica", "I", 9)
	if ok {
		pdf.CellFormat(contentWidth, 5, tr(caption), "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(contentWidth, 5, tr(fmt.Sprintf("%s (archivo no disponible)", caption)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}
