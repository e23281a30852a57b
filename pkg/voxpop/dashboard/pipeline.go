// Package dashboard wires the filter, aggregate and text mining packages
// into the pipeline run on every filter change, and keeps the session's
// dataset handle.
package dashboard

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/oklog/ulid/v2"

	"github.com/cognicore/voxpop/pkg/voxpop/aggregate"
	"github.com/cognicore/voxpop/pkg/voxpop/config"
	"github.com/cognicore/voxpop/pkg/voxpop/dataset"
	"github.com/cognicore/voxpop/pkg/voxpop/filter"
	"github.com/cognicore/voxpop/pkg/voxpop/internalerr"
	"github.com/cognicore/voxpop/pkg/voxpop/textmine"
)

// Pipeline computes dashboard snapshots for one profile. It is safe for
// concurrent use; it holds no per-run state.
type Pipeline struct {
	profile  *config.Profile
	cloud    textmine.Tokenizer
	keywords textmine.Tokenizer
	stops    *textmine.Stoplist
	clock    clockwork.Clock

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock used for snapshot timestamps and IDs.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// NewPipeline validates the profile and prepares its tokenizers.
func NewPipeline(profile *config.Profile, opts ...Option) (*Pipeline, error) {
	if profile == nil {
		return nil, fmt.Errorf("nil profile: %w", internalerr.ErrInvalidConfig)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	words, err := profile.Stopwords()
	if err != nil {
		return nil, err
	}
	stops := textmine.NewStoplist(words)
	for _, w := range profile.Text.KeepWords {
		stops.Remove(w)
	}
	normalizer := textmine.NewNormalizer(stops, profile.Text.StripMarkup)

	p := &Pipeline{
		profile:  profile,
		cloud:    textmine.Whitespace{},
		keywords: textmine.Whitespace{},
		stops:    stops,
		clock:    clockwork.NewRealClock(),
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
	if profile.Text.NormalizeWordCloud {
		p.cloud = normalizer
	}
	if profile.Text.NormalizeKeywords {
		p.keywords = normalizer
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Profile returns the profile the pipeline was built for.
func (p *Pipeline) Profile() *config.Profile { return p.profile }

// Stoplist returns the stopwords the normalizing tokenizers drop. It must
// not be modified.
func (p *Pipeline) Stoplist() *textmine.Stoplist { return p.stops }

// FilterControl describes one sidebar multi-select.
type FilterControl struct {
	Dimension string   `json:"dimension"`
	Options   []string `json:"options"`
	Labels    []string `json:"labels"`
}

// Filters lists the sidebar controls with every observed value; selecting
// all of them is the default, unfiltered state.
func (p *Pipeline) Filters(view dataset.View) []FilterControl {
	controls := make([]FilterControl, 0, len(p.profile.Dimensions))
	for _, dim := range p.profile.Dimensions {
		if !view.HasColumn(dim) {
			continue
		}
		opts := filter.Options(view, dim)
		labels := make([]string, len(opts))
		for i, o := range opts {
			labels[i] = o
			if dim == config.ColumnSentiment {
				labels[i] = p.profile.SentimentLabel(o)
			}
		}
		controls = append(controls, FilterControl{Dimension: dim, Options: opts, Labels: labels})
	}
	return controls
}

// Run filters view by sel and computes every dashboard section. A nil
// selection selects everything. Dimensions the profile does not filter on
// are rejected with internalerr.ErrUnknownFilter.
func (p *Pipeline) Run(view dataset.View, sel filter.Selection) (*Snapshot, error) {
	allowed := make(map[string]struct{}, len(p.profile.Dimensions))
	for _, d := range p.profile.Dimensions {
		allowed[d] = struct{}{}
	}
	for dim := range sel {
		if _, ok := allowed[dim]; !ok {
			return nil, fmt.Errorf("%q: %w", dim, internalerr.ErrUnknownFilter)
		}
	}

	effective := filter.DefaultSelection(view, p.profile.Dimensions)
	for dim, vals := range sel {
		effective.Set(dim, vals...)
	}
	filtered := filter.Apply(view, sel)

	now := p.clock.Now().UTC()
	snap := &Snapshot{
		ID:          p.newID(now),
		GeneratedAt: now,
		Profile:     p.profile.Name,
		Title:       p.profile.Title,
		DatasetRows: view.Len(),
		Selection:   effective,
	}
	if ds, ok := view.(*dataset.Dataset); ok {
		snap.Source = ds.Source()
	}

	p.kpis(snap, filtered)
	p.distribution(snap, filtered)
	p.wordCloud(snap, filtered)
	p.trend(snap, filtered)
	p.topKeywords(snap, filtered)
	p.topTopics(snap, filtered)
	p.recent(snap, filtered)
	return snap, nil
}

func (p *Pipeline) kpis(snap *Snapshot, view dataset.View) {
	snap.KPIs = KPIs{
		TotalReviews:  aggregate.Count(view),
		UniqueUsers:   aggregate.DistinctCount(view, config.ColumnUser),
		AvgAngerScore: aggregate.Round(aggregate.Mean(view, config.ColumnAngerScore, 0), Decimals),
	}
	if !view.HasColumn(config.ColumnUser) {
		snap.notice(SectionKPIs, "user column absent: unique users reported as 0")
	}
	if !view.HasColumn(config.ColumnAngerScore) {
		snap.notice(SectionKPIs, "anger_score column absent: average anger reported as 0")
	}
}

func (p *Pipeline) distribution(snap *Snapshot, view dataset.View) {
	if !view.HasColumn(config.ColumnSentiment) {
		snap.SentimentDistribution = []SentimentSlice{}
		snap.notice(SectionDistribution, "sentiment column absent: distribution suppressed")
		return
	}
	freqs := aggregate.ValueFrequency(view, config.ColumnSentiment, 0)
	total := 0
	for _, f := range freqs {
		total += f.Count
	}
	snap.SentimentDistribution = make([]SentimentSlice, 0, len(freqs))
	for _, f := range freqs {
		snap.SentimentDistribution = append(snap.SentimentDistribution, SentimentSlice{
			Value:   f.Value,
			Label:   p.profile.SentimentLabel(f.Value),
			Count:   f.Count,
			Percent: aggregate.Round(100*float64(f.Count)/float64(total), Decimals),
		})
	}
}

func (p *Pipeline) wordCloud(snap *Snapshot, view dataset.View) {
	freqs := textmine.TokenFrequency(view, config.ColumnText,
		textmine.Equals(config.ColumnSentiment, p.profile.Sentiment.Negative),
		textmine.Options{Tokenizer: p.cloud})
	snap.WordCloud = textmine.WordCloud(freqs, p.profile.Limits.WordCloudTerms)
	if len(snap.WordCloud) == 0 {
		snap.notice(SectionWordCloud, "No negative text available.")
	}
}

func (p *Pipeline) trend(snap *Snapshot, view dataset.View) {
	snap.Trend = []TrendPoint{}
	if !view.HasColumn(config.ColumnDate) {
		snap.notice(SectionTrend, "date column absent: trend suppressed")
		return
	}
	for _, pt := range aggregate.DateBucketedMean(view, config.ColumnDate, config.ColumnSentiment) {
		snap.Trend = append(snap.Trend, TrendPoint{
			Date:         pt.Date.Format("2006-01-02"),
			AvgSentiment: aggregate.Round(pt.Mean, Decimals),
			Reviews:      pt.Count,
		})
	}
	if len(snap.Trend) == 0 {
		snap.notice(SectionTrend, "no dated reviews with a numeric sentiment")
	}
}

func (p *Pipeline) topKeywords(snap *Snapshot, view dataset.View) {
	if !view.HasColumn(config.ColumnText) {
		snap.TopKeywords = []textmine.TokenCount{}
		snap.notice(SectionKeywords, "text column absent: keywords suppressed")
		return
	}
	snap.TopKeywords = textmine.TokenFrequency(view, config.ColumnText, textmine.All(),
		textmine.Options{Tokenizer: p.keywords, TopK: p.profile.Limits.TopKeywords})
}

func (p *Pipeline) topTopics(snap *Snapshot, view dataset.View) {
	snap.TopTopics = []aggregate.Frequency{}
	if p.profile.Limits.TopTopics <= 0 {
		return
	}
	if !view.HasColumn(config.ColumnTopic) {
		snap.notice(SectionTopics, "topic_cluster column absent: topics suppressed")
		return
	}
	snap.TopTopics = aggregate.ValueFrequency(view, config.ColumnTopic, p.profile.Limits.TopTopics)
}

func (p *Pipeline) recent(snap *Snapshot, view dataset.View) {
	if p.profile.Limits.RecentRows <= 0 {
		return
	}
	table := aggregate.RecentRows(view, p.profile.Recent.Columns, p.profile.Limits.RecentRows, p.profile.Recent.SortBy)
	snap.RecentReviews = &table
	if len(table.Columns) == 0 {
		snap.notice(SectionRecent, "none of the configured columns are present")
	}
}

func (p *Pipeline) newID(now time.Time) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), p.entropy).String()
}

func (s *Snapshot) notice(section, msg string) {
	s.Notices = append(s.Notices, Notice{Section: section, Message: msg})
}
