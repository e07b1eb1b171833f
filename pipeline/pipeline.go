// Package pipeline runs one ingestion pass: crawl every configured area,
// enrich and transform the rows, then persist the batch.
package pipeline

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"atm-scraper/models"
	"atm-scraper/services"
	"atm-scraper/storage"
	"atm-scraper/utils"
)

// Crawler yields the pages of an area. *bdo.Scraper implements it.
type Crawler interface {
	PageCount(ctx context.Context, area string) (int, error)
	ScrapePage(ctx context.Context, area string, page int) ([]*models.RawListingItem, error)
}

// Deps are the collaborators of a Pipeline. RawWriter and Out are optional.
type Deps struct {
	Areas         []string
	Logger        *utils.Logger
	Crawler       Crawler
	Enricher      *services.Enricher
	Transformer   *services.Transformer
	Persister     *services.Persister
	Summary       *services.SummaryService
	RawWriter     storage.RawItemWriter
	StrictGeocode bool
	Out           io.Writer
}

// Pipeline is a single-use, sequential ingestion run.
type Pipeline struct {
	Deps
}

// New creates a Pipeline.
func New(deps Deps) *Pipeline {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	return &Pipeline{Deps: deps}
}

type crawlResult struct {
	records []*models.CanonicalRecord
	raw     []*models.RawListingItem
	areas   int
	pages   int
}

// Run crawls, persists and prints the summary. A crawl failure returns
// before anything is written.
func (p *Pipeline) Run(ctx context.Context) (*models.RunSummary, error) {
	crawled, err := p.crawl(ctx)
	if err != nil {
		return nil, err
	}

	if p.RawWriter != nil {
		if err := p.RawWriter.WriteRaw(crawled.raw); err != nil {
			p.Logger.Error("[pipeline] Raw CSV export failed: %v", err)
		}
	}

	res := p.Persister.Persist(ctx, crawled.records)

	summary := p.Summary.Generate(crawled.records, res)
	summary.AreasCrawled = crawled.areas
	summary.PagesFetched = crawled.pages
	p.Summary.Print(p.Out, summary)

	return summary, nil
}

func (p *Pipeline) crawl(ctx context.Context) (*crawlResult, error) {
	out := &crawlResult{}

	for _, area := range p.Areas {
		n, err := p.Crawler.PageCount(ctx, area)
		if err != nil {
			p.Logger.Error("[pipeline] Area %s: %v", area, err)
			return nil, err
		}

		for page := 0; page < n; page++ {
			items, err := p.Crawler.ScrapePage(ctx, area, page)
			if err != nil {
				p.Logger.Error("[pipeline] Area %s page %d: %v", area, page, err)
				return nil, err
			}
			out.pages++

			for _, item := range items {
				rec, err := p.build(ctx, item)
				if err != nil {
					return nil, err
				}
				out.raw = append(out.raw, item)
				out.records = append(out.records, rec)
			}
		}
		out.areas++
	}

	p.Logger.Info("[pipeline] Crawl complete: %d areas, %d pages, %d records",
		out.areas, out.pages, len(out.records))
	return out, nil
}

// build enriches one item and turns it into a canonical record.
func (p *Pipeline) build(ctx context.Context, item *models.RawListingItem) (*models.CanonicalRecord, error) {
	now := p.Transformer.Now()

	addr, err := p.Enricher.Enrich(ctx, item.GeoPoint.Lat, item.GeoPoint.Lng)
	switch {
	case err == nil:
		return p.Transformer.Transform(item, &addr, now), nil
	case errors.Is(err, services.ErrNoStructuredAddress):
		p.Logger.Debug("[pipeline] Fallback address for %s", item.Name)
	case p.StrictGeocode:
		return nil, eris.Wrapf(err, "pipeline: enrich %q", item.Name)
	default:
		p.Logger.Warn("[pipeline] Geocoding failed for %s, using fallback address: %v", item.Name, err)
	}

	return p.Transformer.Transform(item, nil, now), nil
}
