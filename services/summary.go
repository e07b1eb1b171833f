package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"atm-scraper/models"
	"atm-scraper/utils"
)

type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

// Generate folds the transformed batch and the persist outcome into a summary.
func (s *SummaryService) Generate(records []*models.CanonicalRecord, res PersistResult) *models.RunSummary {
	summary := &models.RunSummary{
		Processed:     len(records),
		Saved:         res.Saved,
		Skipped:       res.Skipped,
		Failed:        res.Failed,
		RecordsByCity: make(map[string]int),
	}

	for _, r := range records {
		if !r.Geocoded {
			summary.FallbackAddress++
		}
		if r.Address.City != "" {
			summary.RecordsByCity[r.Address.City]++
		}
	}

	s.logger.Info("[summary] %d processed: %d saved, %d skipped, %d failed, %d fallback addresses",
		summary.Processed, summary.Saved, summary.Skipped, summary.Failed, summary.FallbackAddress)
	return summary
}

func (s *SummaryService) Print(w io.Writer, r *models.RunSummary) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n%s\n", sep)
	fmt.Fprintf(w, "  LOCATOR SCRAPE SUMMARY\n")
	fmt.Fprintf(w, "%s\n\n", sep)

	fmt.Fprintf(w, "  Areas crawled      : %d\n", r.AreasCrawled)
	fmt.Fprintf(w, "  Pages fetched      : %d\n", r.PagesFetched)
	fmt.Fprintf(w, "  Saved              : %d\n", r.Saved)
	fmt.Fprintf(w, "  Skipped            : %d\n", r.Skipped)
	fmt.Fprintf(w, "  Failed             : %d\n", r.Failed)
	fmt.Fprintf(w, "  Fallback addresses : %d\n", r.FallbackAddress)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Records by City\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.RecordsByCity) == 0 {
		fmt.Fprintf(w, "  No city data\n")
	} else {
		type cityCount struct {
			city  string
			count int
		}
		var cities []cityCount
		for city, cnt := range r.RecordsByCity {
			cities = append(cities, cityCount{city, cnt})
		}
		sort.Slice(cities, func(i, j int) bool {
			if cities[i].count != cities[j].count {
				return cities[i].count > cities[j].count
			}
			return cities[i].city < cities[j].city
		})
		for _, cc := range cities {
			fmt.Fprintf(w, "  %-30s %d\n", truncate(cc.city, 28), cc.count)
		}
	}

	fmt.Fprintf(w, "\n%s\n", sep)
	fmt.Fprintf(w, "Total number of objects: %d\n", r.Processed)
	fmt.Fprintf(w, "Number of objects not saved because it already exists OR raw data is not available: %d\n", r.Skipped)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
