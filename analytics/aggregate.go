// Package analytics computes display-ready aggregates over an accumulated
// chat message sequence: total volume, a time-bucketed series, sentiment
// proportions, and a recent-message detail table. Every call recomputes
// from the full input; a single broadcast's chat is small enough that no
// incremental state is worth the complexity.
package analytics

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/onnwee/streampulse/backend/chat"
	"github.com/onnwee/streampulse/backend/sentiment"
)

// Bucketing selects the time-series grouping.
type Bucketing int

const (
	// ByMinute groups by timestamp truncated to the minute, labeled HH:MM.
	ByMinute Bucketing = iota
	// ByHourOfDay groups cyclically by hour 0-23 regardless of date.
	ByHourOfDay
)

// ParseBucketing maps a query-string value to a Bucketing mode.
func ParseBucketing(s string) (Bucketing, bool) {
	switch s {
	case "", "minute":
		return ByMinute, true
	case "hour":
		return ByHourOfDay, true
	default:
		return ByMinute, false
	}
}

// RecentDetailLimit caps the detail table at the tail of the store.
const RecentDetailLimit = 50

// BucketCount is one point of the time series.
type BucketCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MessageDetail is one row of the recent-message table.
type MessageDetail struct {
	Timestamp time.Time          `json:"timestamp"`
	Text      string             `json:"text"`
	Author    string             `json:"author,omitempty"`
	Category  sentiment.Category `json:"category"`
}

// Result is the aggregate snapshot handed to the presentation layer.
// A zero-message input produces the zero Result; callers treat that as
// "insufficient data", not an error.
type Result struct {
	TotalCount           int                            `json:"total_count"`
	TimeSeries           []BucketCount                  `json:"time_series"`
	SentimentProportions map[sentiment.Category]float64 `json:"sentiment_proportions"`
	RecentDetail         []MessageDetail                `json:"recent_detail"`
}

// Aggregate recomputes the full Result for msgs. classify derives each
// message's category from its text; it is consulted once per message per
// call, never persisted. msgs keeps store order and is not modified.
func Aggregate(msgs []chat.Message, classify func(string) sentiment.Category, b Bucketing) Result {
	res := Result{TotalCount: len(msgs)}
	if len(msgs) == 0 {
		return res
	}

	res.TimeSeries = timeSeries(msgs, b)

	counts := map[sentiment.Category]int{}
	categories := make([]sentiment.Category, len(msgs))
	for i, m := range msgs {
		c := classify(m.Text)
		categories[i] = c
		counts[c]++
	}
	res.SentimentProportions = make(map[sentiment.Category]float64, len(counts))
	for c, n := range counts {
		res.SentimentProportions[c] = round2(float64(n) / float64(len(msgs)))
	}

	start := 0
	if len(msgs) > RecentDetailLimit {
		start = len(msgs) - RecentDetailLimit
	}
	res.RecentDetail = make([]MessageDetail, 0, len(msgs)-start)
	for i := start; i < len(msgs); i++ {
		res.RecentDetail = append(res.RecentDetail, MessageDetail{
			Timestamp: msgs[i].Timestamp,
			Text:      msgs[i].Text,
			Author:    msgs[i].Author,
			Category:  categories[i],
		})
	}
	return res
}

func timeSeries(msgs []chat.Message, b Bucketing) []BucketCount {
	switch b {
	case ByHourOfDay:
		counts := map[int]int{}
		for _, m := range msgs {
			counts[m.Timestamp.Hour()]++
		}
		out := make([]BucketCount, 0, len(counts))
		for h := 0; h < 24; h++ {
			if n, ok := counts[h]; ok {
				out = append(out, BucketCount{Label: strconv.Itoa(h), Count: n})
			}
		}
		return out
	default:
		// Key on the unix instant so timestamps carrying distinct Location
		// values for the same moment land in one bucket.
		type minuteBucket struct {
			at    time.Time
			count int
		}
		buckets := map[int64]*minuteBucket{}
		for _, m := range msgs {
			tr := m.Timestamp.Truncate(time.Minute)
			mb, ok := buckets[tr.Unix()]
			if !ok {
				mb = &minuteBucket{at: tr}
				buckets[tr.Unix()] = mb
			}
			mb.count++
		}
		ordered := make([]*minuteBucket, 0, len(buckets))
		for _, mb := range buckets {
			ordered = append(ordered, mb)
		}
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].at.Before(ordered[j].at) })
		out := make([]BucketCount, 0, len(ordered))
		for _, mb := range ordered {
			out = append(out, BucketCount{Label: mb.at.Format("15:04"), Count: mb.count})
		}
		return out
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
