package wrapped

import (
	"math"
	"sort"
)

// Reserved fingerprint dimensions (tool density, error rate, edit ratio,
// thinking ratio) stay zero until content-level analysis lands; consumers
// already read an 8-value vector so adding them later is wire-compatible.

// buildFingerprints shapes the most significant sessions of the year.
// Significance is message count weighted by the square root of duration, so
// a long quiet session does not outrank a short dense one.
func buildFingerprints(sessions []yearSession) []Fingerprint {
	type scored struct {
		ys    yearSession
		score float64
	}
	ranked := make([]scored, 0, len(sessions))
	for _, ys := range sessions {
		score := float64(ys.MessageCount()) * math.Sqrt(ys.Duration().Minutes())
		ranked = append(ranked, scored{ys: ys, score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].ys.ID < ranked[j].ys.ID
	})
	if len(ranked) > maxFingerprints {
		ranked = ranked[:maxFingerprints]
	}

	prints := make([]Fingerprint, 0, len(ranked))
	for _, r := range ranked {
		prints = append(prints, fingerprintOf(r.ys))
	}
	return prints
}

// fingerprintOf distributes a session's messages over four time quarters
// and normalizes against the densest quarter.
func fingerprintOf(ys yearSession) Fingerprint {
	var quarters [4]int
	duration := ys.EndedAt.Sub(ys.StartedAt)
	for _, rec := range ys.Records {
		q := 0
		if duration > 0 && !rec.Timestamp.IsZero() {
			pos := float64(rec.Timestamp.Sub(ys.StartedAt)) / float64(duration)
			q = int(pos * 4)
			if q > 3 {
				q = 3
			}
			if q < 0 {
				q = 0
			}
		}
		quarters[q]++
	}

	max := 0
	for _, v := range quarters {
		if v > max {
			max = v
		}
	}
	var fp Fingerprint
	if max == 0 {
		return fp
	}
	for i, v := range quarters {
		fp.Shape[i] = int(math.Round(float64(v) * 100 / float64(max)))
	}
	return fp
}
