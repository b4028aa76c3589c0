package calculator

import (
	"fmt"
	"strconv"
	"strings"

	"TrendLens/internal/model"
)

// AggregateFixed rolls every n consecutive bars into one, stamped with the last
// bar's time. A trailing partial chunk is still emitted.
func AggregateFixed(bars []model.Bar, n int) []model.Bar {
	if n <= 1 {
		return append([]model.Bar(nil), bars...)
	}
	out := make([]model.Bar, 0, (len(bars)+n-1)/n)
	for i := 0; i < len(bars); i += n {
		end := i + n
		if end > len(bars) {
			end = len(bars)
		}
		out = append(out, merge(bars[i:end]))
	}
	return out
}

// AggregateWeekly converts daily bars into ISO-week bars stamped with the first day's time.
func AggregateWeekly(daily []model.Bar) []model.Bar {
	if len(daily) == 0 {
		return nil
	}
	var weekly []model.Bar
	chunkStart := 0
	for i := 1; i <= len(daily); i++ {
		if i < len(daily) && sameISOWeek(daily[i], daily[chunkStart]) {
			continue
		}
		w := merge(daily[chunkStart:i])
		w.Time = daily[chunkStart].Time
		weekly = append(weekly, w)
		chunkStart = i
	}
	return weekly
}

func sameISOWeek(a, b model.Bar) bool {
	ay, aw := a.Time.ISOWeek()
	by, bw := b.Time.ISOWeek()
	return ay == by && aw == bw
}

func merge(chunk []model.Bar) model.Bar {
	out := model.Bar{
		Time:  chunk[len(chunk)-1].Time,
		Open:  chunk[0].Open,
		High:  chunk[0].High,
		Low:   chunk[0].Low,
		Close: chunk[len(chunk)-1].Close,
	}
	for _, b := range chunk {
		if b.High > out.High {
			out.High = b.High
		}
		if b.Low < out.Low {
			out.Low = b.Low
		}
		out.Volume += b.Volume
	}
	return out
}

// Timeframe kinds accepted by ParseTimeframe.
const (
	TimeframeDaily  = "daily"
	TimeframeWeekly = "weekly"
	TimeframeChunk  = "chunk"
)

// Timeframe selects how normalized daily bars are rolled up before analysis.
// The zero value leaves bars unchanged.
type Timeframe struct {
	Kind  string
	Chunk int // bars per chunk when Kind is TimeframeChunk
}

// ParseTimeframe accepts "daily" (or empty), "weekly" and "chunk:N" with N >= 2.
func ParseTimeframe(s string) (Timeframe, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", TimeframeDaily:
		return Timeframe{Kind: TimeframeDaily}, nil
	case TimeframeWeekly:
		return Timeframe{Kind: TimeframeWeekly}, nil
	}
	if n, ok := strings.CutPrefix(s, TimeframeChunk+":"); ok {
		size, err := strconv.Atoi(n)
		if err != nil || size < 2 {
			return Timeframe{}, fmt.Errorf("timeframe %q: chunk size must be an integer >= 2", s)
		}
		return Timeframe{Kind: TimeframeChunk, Chunk: size}, nil
	}
	return Timeframe{}, fmt.Errorf("timeframe %q: want daily, weekly or chunk:N", s)
}

// Apply rolls bars up to the timeframe.
func (tf Timeframe) Apply(bars []model.Bar) []model.Bar {
	switch tf.Kind {
	case TimeframeWeekly:
		return AggregateWeekly(bars)
	case TimeframeChunk:
		return AggregateFixed(bars, tf.Chunk)
	default:
		return bars
	}
}

func (tf Timeframe) String() string {
	switch tf.Kind {
	case "":
		return TimeframeDaily
	case TimeframeChunk:
		return fmt.Sprintf("%s:%d", TimeframeChunk, tf.Chunk)
	default:
		return tf.Kind
	}
}
