package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TextOptions controls WriteText.
type TextOptions struct {
	// Lang selects number formatting, e.g. "en" or "de". Defaults to English.
	Lang string
	// CloudTerms limits the word cloud listing. Zero prints 20 terms.
	CloudTerms int
}

// WriteText renders a snapshot as a plain-text report.
func WriteText(w io.Writer, snap *Snapshot, opts TextOptions) error {
	tag := language.English
	if opts.Lang != "" {
		parsed, err := language.Parse(opts.Lang)
		if err != nil {
			return fmt.Errorf("language %q: %w", opts.Lang, err)
		}
		tag = parsed
	}
	p := message.NewPrinter(tag)
	cloudTerms := opts.CloudTerms
	if cloudTerms <= 0 {
		cloudTerms = 20
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	title := snap.Title
	if title == "" {
		title = "VoxPop dashboard"
	}
	p.Fprintf(tw, "%s\n", title)
	p.Fprintf(tw, "%s\n", strings.Repeat("=", len(title)))
	p.Fprintf(tw, "Source:\t%s (%d rows)\n", snap.Source, snap.DatasetRows)
	p.Fprintf(tw, "Generated:\t%s\n", snap.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	for _, dim := range snap.Selection.Dimensions() {
		p.Fprintf(tw, "Filter %s:\t%s\n", dim, strings.Join(snap.Selection[dim], ", "))
	}

	p.Fprintf(tw, "\nKey metrics\n")
	p.Fprintf(tw, "  Total reviews\t%d\n", snap.KPIs.TotalReviews)
	p.Fprintf(tw, "  Unique users\t%d\n", snap.KPIs.UniqueUsers)
	p.Fprintf(tw, "  Avg anger score\t%.3f\n", snap.KPIs.AvgAngerScore)

	if len(snap.SentimentDistribution) > 0 {
		p.Fprintf(tw, "\nSentiment distribution\n")
		for _, s := range snap.SentimentDistribution {
			p.Fprintf(tw, "  %s\t%d\t%.1f%%\n", s.Label, s.Count, s.Percent)
		}
	}

	if len(snap.Trend) > 0 {
		p.Fprintf(tw, "\nSentiment trend\n")
		for _, t := range snap.Trend {
			p.Fprintf(tw, "  %s\t%.3f\t%d reviews\n", t.Date, t.AvgSentiment, t.Reviews)
		}
	}

	if len(snap.TopKeywords) > 0 {
		p.Fprintf(tw, "\nTop keywords\n")
		for i, k := range snap.TopKeywords {
			p.Fprintf(tw, "  %d.\t%s\t%d\n", i+1, k.Token, k.Count)
		}
	}

	if len(snap.WordCloud) > 0 {
		p.Fprintf(tw, "\nNegative word cloud\n")
		for i, term := range snap.WordCloud {
			if i >= cloudTerms {
				break
			}
			p.Fprintf(tw, "  %s\t%d\t%.2f\n", term.Text, term.Count, term.Weight)
		}
	}

	if len(snap.TopTopics) > 0 {
		p.Fprintf(tw, "\nTop topics\n")
		for _, t := range snap.TopTopics {
			p.Fprintf(tw, "  %s\t%d\n", t.Value, t.Count)
		}
	}

	if snap.RecentReviews != nil && len(snap.RecentReviews.Columns) > 0 {
		p.Fprintf(tw, "\nRecent reviews\n")
		p.Fprintf(tw, "  %s\n", strings.Join(snap.RecentReviews.Columns, "\t"))
		for _, row := range snap.RecentReviews.Rows {
			p.Fprintf(tw, "  %s\n", strings.Join(row, "\t"))
		}
	}

	if len(snap.Notices) > 0 {
		p.Fprintf(tw, "\nNotes\n")
		for _, n := range snap.Notices {
			p.Fprintf(tw, "  %s:\t%s\n", n.Section, n.Message)
		}
	}
	return tw.Flush()
}
