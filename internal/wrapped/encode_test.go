package wrapped

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/recaplabs/claude-recap/internal/history"
)

// buildRealisticSummary assembles a year with enough texture that every
// payload section is populated.
func buildRealisticSummary(t *testing.T) *Summary {
	t.Helper()
	var projects []history.Project
	for i := 0; i < 15; i++ {
		var sessions []history.Session
		for d := 0; d < 8; d++ {
			start := time.Date(2025, time.Month(1+d), 2+i, 9+i%10, 0, 0, 0, time.UTC)
			sessions = append(sessions, mkSession(fmt.Sprintf("p%d-s%d", i, d),
				start, time.Duration(20+10*d)*time.Minute, 5+i+d, i%4 == 0))
		}
		// some history in the previous year so the comparison block exists
		sessions = append(sessions, mkSession(fmt.Sprintf("p%d-prev", i),
			time.Date(2024, 6, 2+i, 9, 0, 0, 0, time.UTC), time.Hour, 10, false))
		projects = append(projects, history.Project{
			Path:     fmt.Sprintf("home/alice/p%02d", i),
			Sessions: sessions,
		})
	}
	s, err := Build(projects, BuildOptions{Year: 2025, Name: "Alice", Now: testNow})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func TestEncodeRoundTrip(t *testing.T) {
	s := buildRealisticSummary(t)

	payload, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Fatalf("round trip changed the summary\nencoded: %+v\ndecoded: %+v", s, got)
	}
	if len(s.Heatmap) != HeatmapCells || s.HeatmapRLE {
		t.Fatalf("in-memory summary must carry the expanded heatmap")
	}
}

func TestEncodeSparseHeatmapRoundTrip(t *testing.T) {
	// One busy hour in an otherwise empty week compresses well; the wire
	// form must still decode back to all 168 cells.
	s := buildRealisticSummary(t)
	s.Heatmap = make([]int, HeatmapCells)
	s.Heatmap[34] = 15

	if _, shorter := rleIfShorter(s.Heatmap); !shorter {
		t.Fatalf("sparse heatmap should run-length encode smaller")
	}

	payload, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got.Heatmap, s.Heatmap) {
		t.Fatalf("heatmap changed: %v", got.Heatmap)
	}
	if got.HeatmapRLE {
		t.Fatalf("decode must clear the run-length flag")
	}
}

func TestEncodeIncompressibleHeatmapStaysRaw(t *testing.T) {
	cells := make([]int, HeatmapCells)
	for i := range cells {
		cells[i] = i % 16
	}
	if _, shorter := rleIfShorter(cells); shorter {
		t.Fatalf("alternating cells must not run-length encode")
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Run("not base64url", func(t *testing.T) {
		_, err := Decode("!!! not a payload !!!")
		if !errors.Is(err, ErrMalformedPayload) {
			t.Fatalf("err=%v want ErrMalformedPayload", err)
		}
	})

	t.Run("valid base64 but not msgpack", func(t *testing.T) {
		_, err := Decode("aGVsbG8gd29ybGQ")
		if !errors.Is(err, ErrMalformedPayload) {
			t.Fatalf("err=%v want ErrMalformedPayload", err)
		}
	})

	t.Run("unknown version", func(t *testing.T) {
		s := buildRealisticSummary(t)
		s.Version = 99
		payload, err := Encode(s)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		_, err = Decode(payload)
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Fatalf("err=%v want ErrUnsupportedVersion", err)
		}
	})

	t.Run("truncated heatmap", func(t *testing.T) {
		s := buildRealisticSummary(t)
		s.Heatmap = s.Heatmap[:10]
		payload, err := Encode(s)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		_, err = Decode(payload)
		if !errors.Is(err, ErrMalformedPayload) {
			t.Fatalf("err=%v want ErrMalformedPayload", err)
		}
	})
}

func TestDecodeToleratesPaddingAndWhitespace(t *testing.T) {
	s := buildRealisticSummary(t)
	payload, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode("  " + payload + "==\n")
	if err != nil {
		t.Fatalf("Decode padded payload: %v", err)
	}
	if got.Year != s.Year {
		t.Fatalf("year=%d want %d", got.Year, s.Year)
	}
}

func TestPayloadStaysSmall(t *testing.T) {
	s := buildRealisticSummary(t)
	payload, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(payload) > MaxPayloadBytes {
		t.Fatalf("payload is %d bytes, budget is %d", len(payload), MaxPayloadBytes)
	}
}

func TestExpandRLE(t *testing.T) {
	cases := []struct {
		name  string
		pairs []int
		ok    bool
	}{
		{"exact fill", []int{0, 160, 3, 8}, true},
		{"odd pair list", []int{0, 160, 3}, false},
		{"zero repeat", []int{0, 0, 1, 168}, false},
		{"overflow", []int{1, 200}, false},
		{"underfill", []int{1, 100}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := expandRLE(tc.pairs, HeatmapCells)
			if tc.ok {
				if err != nil {
					t.Fatalf("expandRLE: %v", err)
				}
				if len(out) != HeatmapCells {
					t.Fatalf("cells=%d", len(out))
				}
				return
			}
			if !errors.Is(err, ErrMalformedPayload) {
				t.Fatalf("err=%v want ErrMalformedPayload", err)
			}
		})
	}
}
