package wrapped

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode serializes a summary to a URL-safe string: optional run-length
// compression of the heatmap, msgpack, then unpadded base64url.
func Encode(s *Summary) (string, error) {
	wire := *s
	if rle, shorter := rleIfShorter(s.Heatmap); shorter {
		wire.Heatmap = rle
		wire.HeatmapRLE = true
	}
	b, err := msgpack.Marshal(&wire)
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Decode is the exact inverse of Encode. It dispatches on the version tag
// and refuses payloads it does not recognize instead of guessing at their
// layout.
func Decode(payload string) (*Summary, error) {
	payload = strings.TrimRight(strings.TrimSpace(payload), "=")
	b, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var tag struct {
		Version int `msgpack:"v"`
	}
	if err := msgpack.Unmarshal(b, &tag); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	switch tag.Version {
	case Version:
		return decodeV1(b)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, tag.Version)
	}
}

func decodeV1(b []byte) (*Summary, error) {
	var s Summary
	if err := msgpack.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if s.HeatmapRLE {
		expanded, err := expandRLE(s.Heatmap, HeatmapCells)
		if err != nil {
			return nil, err
		}
		s.Heatmap = expanded
		s.HeatmapRLE = false
	} else if len(s.Heatmap) != HeatmapCells {
		return nil, fmt.Errorf("%w: heatmap has %d cells", ErrMalformedPayload, len(s.Heatmap))
	}
	return &s, nil
}

// rleIfShorter converts cells to (value, repeat) pairs, keeping them only
// when the msgpack encoding actually shrinks.
func rleIfShorter(cells []int) ([]int, bool) {
	if len(cells) == 0 {
		return nil, false
	}
	var pairs []int
	value := cells[0]
	count := 1
	for _, v := range cells[1:] {
		if v == value {
			count++
			continue
		}
		pairs = append(pairs, value, count)
		value = v
		count = 1
	}
	pairs = append(pairs, value, count)

	raw, err := msgpack.Marshal(cells)
	if err != nil {
		return nil, false
	}
	packed, err := msgpack.Marshal(pairs)
	if err != nil {
		return nil, false
	}
	if len(packed) < len(raw) {
		return pairs, true
	}
	return nil, false
}

func expandRLE(pairs []int, want int) ([]int, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("%w: odd run-length pair list", ErrMalformedPayload)
	}
	out := make([]int, 0, want)
	for i := 0; i < len(pairs); i += 2 {
		value, repeat := pairs[i], pairs[i+1]
		if repeat <= 0 || len(out)+repeat > want {
			return nil, fmt.Errorf("%w: run-length overflow", ErrMalformedPayload)
		}
		for j := 0; j < repeat; j++ {
			out = append(out, value)
		}
	}
	if len(out) != want {
		return nil, fmt.Errorf("%w: run-length expands to %d cells, want %d", ErrMalformedPayload, len(out), want)
	}
	return out, nil
}
