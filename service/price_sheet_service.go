package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"commission-catalog/models"
	"commission-catalog/utils"
)

//go:embed templates/price_sheet.html
var templateFS embed.FS

var priceSheetTemplate = template.Must(template.ParseFS(templateFS, "templates/price_sheet.html"))

// PriceSheetPath is the route the printable price sheet is served on
const PriceSheetPath = "/api/price-sheet"

type priceLine struct {
	Name string
	CLP  string
	USD  string
}

type priceSheetService struct {
	Name        string
	Description string
	FromCLP     string
	FromUSD     string
	IsPack      bool
	UnitCount   int
	Tiers       []priceLine
	Variants    []priceLine
	Extras      []priceLine
}

type priceSheetData struct {
	Title       string
	GeneratedAt string
	Services    []priceSheetService
}

// PriceSheetService renders the printable price list and turns it into a PDF
type PriceSheetService struct {
	reader     *CatalogReader
	baseURL    string
	chromePath string
	title      string
	now        func() time.Time
	log        *zap.SugaredLogger
}

// NewPriceSheetService creates a new PriceSheetService
func NewPriceSheetService(reader *CatalogReader, baseURL, chromePath string, logger *zap.Logger) *PriceSheetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceSheetService{
		reader:     reader,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		chromePath: chromePath,
		title:      "Lista de precios",
		now:        time.Now,
		log:        logger.Sugar(),
	}
}

// detectChromePath returns the configured Chrome/Chromium executable, or the
// first one found at a common installation path
func (s *PriceSheetService) detectChromePath() string {
	if s.chromePath != "" {
		if _, err := os.Stat(s.chromePath); err == nil {
			return s.chromePath
		}
		s.log.Warnf("⚠️  CHROME_PATH %s not found, probing defaults", s.chromePath)
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// RenderHTML renders the price sheet of the available catalog
func (s *PriceSheetService) RenderHTML(ctx context.Context) (string, error) {
	view := s.reader.View(ctx)
	if len(view.Errors) > 0 {
		s.log.Warnf("⚠️  Price sheet rendered with missing data: %v", view.Errors)
	}

	data := priceSheetData{
		Title:       s.title,
		GeneratedAt: s.now().Format("02-01-2006"),
	}
	for _, svc := range view.Services {
		entry := priceSheetService{
			Name:        svc.Name,
			Description: svc.Description,
			FromCLP:     utils.FormatCLP(svc.PriceMinCLP),
			FromUSD:     utils.FormatUSD(svc.PriceMinUSD),
			IsPack:      svc.IsMultiUnitPack,
			UnitCount:   svc.UnitCount,
		}
		for _, dl := range view.DetailLevels {
			if dl.ServiceID == svc.ID {
				entry.Tiers = append(entry.Tiers, line(dl.Name, dl.PriceCLP, dl.PriceUSD))
			}
		}
		for _, v := range view.Variants {
			if v.ServiceID == svc.ID {
				entry.Variants = append(entry.Variants, line(v.Name, v.PriceCLP, v.PriceUSD))
			}
		}
		for _, e := range offeredExtras(view.Extras, svc.ID) {
			entry.Extras = append(entry.Extras, line(e.Name, e.PriceCLP, e.PriceUSD))
		}
		data.Services = append(data.Services, entry)
	}

	var buf bytes.Buffer
	if err := priceSheetTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func line(name string, clp int64, usd float64) priceLine {
	return priceLine{Name: name, CLP: utils.FormatCLP(clp), USD: utils.FormatUSD(usd)}
}

func offeredExtras(extras []models.Extra, serviceID string) []models.Extra {
	out := make([]models.Extra, 0, len(extras))
	for _, e := range extras {
		if e.OfferedTo(serviceID) {
			out = append(out, e)
		}
	}
	return out
}

// GeneratePDF prints the price sheet page served at PriceSheetPath to PDF
// using headless Chrome
func (s *PriceSheetService) GeneratePDF(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := s.detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.baseURL + PriceSheetPath
	s.log.Infof("📄 GeneratePDF: rendering %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	s.log.Infof("✓ Price sheet PDF generated: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}
