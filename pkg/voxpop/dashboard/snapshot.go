package dashboard

import (
	"time"

	"github.com/cognicore/voxpop/pkg/voxpop/aggregate"
	"github.com/cognicore/voxpop/pkg/voxpop/filter"
	"github.com/cognicore/voxpop/pkg/voxpop/textmine"
)

// Decimals is the precision of every mean and percentage in a Snapshot.
const Decimals = 3

// Snapshot is the render-ready output of one pipeline run.
type Snapshot struct {
	ID          string           `json:"id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Profile     string           `json:"profile"`
	Title       string           `json:"title,omitempty"`
	Source      string           `json:"source"`
	DatasetRows int              `json:"dataset_rows"`
	Selection   filter.Selection `json:"selection"`

	KPIs                  KPIs                  `json:"kpis"`
	SentimentDistribution []SentimentSlice      `json:"sentiment_distribution"`
	WordCloud             []textmine.Term       `json:"word_cloud"`
	Trend                 []TrendPoint          `json:"trend"`
	TopKeywords           []textmine.TokenCount `json:"top_keywords"`
	TopTopics             []aggregate.Frequency `json:"top_topics"`
	RecentReviews         *aggregate.Table      `json:"recent_reviews,omitempty"`

	Notices []Notice `json:"notices,omitempty"`
}

// KPIs are the values of the metric tiles.
type KPIs struct {
	TotalReviews  int     `json:"total_reviews"`
	UniqueUsers   int     `json:"unique_users"`
	AvgAngerScore float64 `json:"avg_anger_score"`
}

// SentimentSlice is one segment of the sentiment donut chart.
type SentimentSlice struct {
	Value   string  `json:"value"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// TrendPoint is one day of the sentiment trend line.
type TrendPoint struct {
	Date         string  `json:"date"`
	AvgSentiment float64 `json:"avg_sentiment"`
	Reviews      int     `json:"reviews"`
}

// Chart sections that can be replaced by a notice.
const (
	SectionKPIs         = "kpis"
	SectionDistribution = "sentiment_distribution"
	SectionWordCloud    = "word_cloud"
	SectionTrend        = "trend"
	SectionKeywords     = "top_keywords"
	SectionTopics       = "top_topics"
	SectionRecent       = "recent_reviews"
)

// Notice tells the presentation layer why a section is empty.
type Notice struct {
	Section string `json:"section"`
	Message string `json:"message"`
}
