package stats

import (
	"sort"
	"time"

	"github.com/opencrawl/opencrawl/internal/model"
)

// MaxPerformers caps the top and bottom organization rankings.
const MaxPerformers = 10

// ManualReviewBar is the confidence below which a verdict should be
// checked by a human before publication.
const ManualReviewBar = 0.3

// CrawlStats aggregates the crawl stage across all organizations.
type CrawlStats struct {
	// TotalOrganizations is the number of organizations processed.
	TotalOrganizations int `json:"total_organizations"`

	// SuccessfulCrawls counts organizations with at least one
	// successfully fetched page.
	SuccessfulCrawls int `json:"successful_crawls"`

	// FailedCrawls counts organizations where not even the homepage
	// could be fetched.
	FailedCrawls int `json:"failed_crawls"`

	// TotalPages is the number of fetch attempts across all crawls.
	TotalPages int `json:"total_pages"`

	// SuccessfulPages is the number of successfully fetched pages.
	SuccessfulPages int `json:"successful_pages"`

	// AveragePages is the mean page count per successful crawl.
	AveragePages float64 `json:"average_pages"`

	// TotalDuration is the summed crawl time across organizations.
	TotalDuration time.Duration `json:"total_duration"`
}

// CriterionStats aggregates one criterion across all organizations.
type CriterionStats struct {
	// CriterionID is the catalog identifier.
	CriterionID string `json:"criterion_id"`

	// CriterionName is the display name.
	CriterionName string `json:"criterion_name"`

	// Organizations is the number of organizations evaluated.
	Organizations int `json:"organizations"`

	// Fulfilled counts organizations fulfilling the criterion.
	Fulfilled int `json:"fulfilled"`

	// HitRate is Fulfilled/Organizations*100.
	HitRate float64 `json:"hit_rate"`

	// AverageConfidence is the mean confidence across organizations.
	AverageConfidence float64 `json:"average_confidence"`
}

// Performer ranks one organization by fulfillment percentage.
type Performer struct {
	// Organization is the display name.
	Organization string `json:"organization"`

	// Percentage is the organization's fulfillment percentage.
	Percentage float64 `json:"percentage"`
}

// DimensionPerformance aggregates one dimension across organizations.
type DimensionPerformance struct {
	// Dimension is the dimension key.
	Dimension string `json:"dimension"`

	// Fulfilled and Total are summed over all organizations.
	Fulfilled int `json:"fulfilled"`
	Total     int `json:"total"`

	// Percentage is Fulfilled/Total*100.
	Percentage float64 `json:"percentage"`
}

// Report is the cross-organization statistics for one assessment run.
type Report struct {
	// CatalogName names the criteria catalog used.
	CatalogName string `json:"catalog_name"`

	// CollectedAt is the collection timestamp.
	CollectedAt time.Time `json:"collected_at"`

	// Crawl aggregates the crawl stage.
	Crawl CrawlStats `json:"crawl"`

	// ByConfidence buckets all criterion verdicts across organizations.
	ByConfidence model.ConfidenceBands `json:"by_confidence"`

	// ManualReviewNeeded counts verdicts below ManualReviewBar.
	ManualReviewNeeded int `json:"manual_review_needed"`

	// Criteria holds per-criterion aggregates sorted by criterion ID.
	Criteria []CriterionStats `json:"criteria"`

	// TopPerformers and BottomPerformers rank organizations by
	// fulfillment percentage, capped at MaxPerformers each.
	TopPerformers    []Performer `json:"top_performers"`
	BottomPerformers []Performer `json:"bottom_performers"`

	// Dimensions holds per-dimension aggregates sorted by key.
	Dimensions []DimensionPerformance `json:"dimensions"`

	// StrongestDimension and WeakestDimension name the dimensions with
	// the highest and lowest aggregate percentage. Empty without data.
	StrongestDimension string `json:"strongest_dimension"`
	WeakestDimension   string `json:"weakest_dimension"`
}

// Collect builds the cross-organization report. crawls and evaluations
// are parallel slices in organization order; a nil entry (e.g. a run
// cancelled before that stage) is skipped.
func Collect(catalogName string, crawls []*model.OrganizationCrawlResult, evaluations []*model.OrganizationEvaluation) *Report {
	report := &Report{
		CatalogName: catalogName,
		CollectedAt: time.Now(),
	}

	collectCrawls(report, crawls)
	collectCriteria(report, evaluations)
	collectRankings(report, evaluations)
	collectDimensions(report, evaluations)

	return report
}

func collectCrawls(report *Report, crawls []*model.OrganizationCrawlResult) {
	for _, crawl := range crawls {
		if crawl == nil {
			continue
		}
		report.Crawl.TotalOrganizations++
		report.Crawl.TotalPages += crawl.TotalPages
		report.Crawl.SuccessfulPages += crawl.SuccessfulPages
		report.Crawl.TotalDuration += crawl.Duration
		if crawl.SuccessfulPages > 0 {
			report.Crawl.SuccessfulCrawls++
		} else {
			report.Crawl.FailedCrawls++
		}
	}
	if report.Crawl.SuccessfulCrawls > 0 {
		report.Crawl.AveragePages = float64(report.Crawl.TotalPages) / float64(report.Crawl.SuccessfulCrawls)
	}
}

func collectCriteria(report *Report, evaluations []*model.OrganizationEvaluation) {
	type accumulator struct {
		name          string
		organizations int
		fulfilled     int
		confidenceSum float64
	}
	byID := make(map[string]*accumulator)

	for _, evaluation := range evaluations {
		if evaluation == nil {
			continue
		}
		for _, result := range evaluation.Results {
			acc := byID[result.CriterionID]
			if acc == nil {
				acc = &accumulator{name: result.CriterionName}
				byID[result.CriterionID] = acc
			}
			acc.organizations++
			acc.confidenceSum += result.Confidence
			if result.Fulfilled {
				acc.fulfilled++
			}

			switch {
			case result.Confidence > 0.8:
				report.ByConfidence.High++
			case result.Confidence >= 0.5:
				report.ByConfidence.Medium++
			default:
				report.ByConfidence.Low++
			}
			if result.Confidence < ManualReviewBar {
				report.ManualReviewNeeded++
			}
		}
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	report.Criteria = make([]CriterionStats, 0, len(ids))
	for _, id := range ids {
		acc := byID[id]
		report.Criteria = append(report.Criteria, CriterionStats{
			CriterionID:       id,
			CriterionName:     acc.name,
			Organizations:     acc.organizations,
			Fulfilled:         acc.fulfilled,
			HitRate:           float64(acc.fulfilled) / float64(acc.organizations) * 100,
			AverageConfidence: acc.confidenceSum / float64(acc.organizations),
		})
	}
}

func collectRankings(report *Report, evaluations []*model.OrganizationEvaluation) {
	performers := make([]Performer, 0, len(evaluations))
	for _, evaluation := range evaluations {
		if evaluation == nil {
			continue
		}
		performers = append(performers, Performer{
			Organization: evaluation.OrganizationName,
			Percentage:   evaluation.FulfillmentPercentage,
		})
	}
	if len(performers) == 0 {
		return
	}

	sort.SliceStable(performers, func(i, j int) bool {
		return performers[i].Percentage > performers[j].Percentage
	})

	top := len(performers)
	if top > MaxPerformers {
		top = MaxPerformers
	}
	report.TopPerformers = append([]Performer(nil), performers[:top]...)

	bottom := len(performers) - MaxPerformers
	if bottom < 0 {
		bottom = 0
	}
	report.BottomPerformers = append([]Performer(nil), performers[bottom:]...)
}

func collectDimensions(report *Report, evaluations []*model.OrganizationEvaluation) {
	totals := make(map[string]*DimensionPerformance)
	for _, evaluation := range evaluations {
		if evaluation == nil {
			continue
		}
		for dimension, stats := range evaluation.Summary.ByDimension {
			perf := totals[dimension]
			if perf == nil {
				perf = &DimensionPerformance{Dimension: dimension}
				totals[dimension] = perf
			}
			perf.Fulfilled += stats.Fulfilled
			perf.Total += stats.Total
		}
	}
	if len(totals) == 0 {
		return
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	report.Dimensions = make([]DimensionPerformance, 0, len(keys))
	for _, key := range keys {
		perf := totals[key]
		if perf.Total > 0 {
			perf.Percentage = float64(perf.Fulfilled) / float64(perf.Total) * 100
		}
		report.Dimensions = append(report.Dimensions, *perf)

		if report.StrongestDimension == "" {
			report.StrongestDimension = key
			report.WeakestDimension = key
			continue
		}
		if perf.Percentage > percentageOf(report.Dimensions, report.StrongestDimension) {
			report.StrongestDimension = key
		}
		if perf.Percentage < percentageOf(report.Dimensions, report.WeakestDimension) {
			report.WeakestDimension = key
		}
	}
}

// percentageOf looks up a dimension's percentage in the collected slice.
func percentageOf(dimensions []DimensionPerformance, name string) float64 {
	for _, dimension := range dimensions {
		if dimension.Dimension == name {
			return dimension.Percentage
		}
	}
	return 0
}
