package wrapped

// Summary is the versioned year-in-review payload. Field tags are kept to
// one or two characters: the whole structure has to fit in a URL segment.
type Summary struct {
	Version int    `msgpack:"v"`
	Year    int    `msgpack:"y"`
	Name    string `msgpack:"n,omitempty"`

	Counts Counts `msgpack:"c"`

	// Heatmap holds 168 cells quantized to 0..15, indexed by
	// weekday*24+hour with Monday as weekday 0. On the wire it may instead
	// hold (value, repeat) pairs; HeatmapRLE says which. Decode always
	// returns the expanded form with the flag cleared.
	Heatmap    []int `msgpack:"h"`
	HeatmapRLE bool  `msgpack:"hr,omitempty"`

	MonthlyMessages [12]int `msgpack:"mm"`
	MonthlyHours    [12]int `msgpack:"mh"`
	MonthlySessions [12]int `msgpack:"ms"`

	DurationHist []int `msgpack:"hd"`
	AgentHist    []int `msgpack:"ha"`
	LengthHist   []int `msgpack:"hl"`

	Traits TraitScores `msgpack:"t"`

	Projects []ProjectSummary `msgpack:"p"`
	Other    ProjectSummary   `msgpack:"po"`

	Links        []Link        `msgpack:"l"`
	Events       []Event       `msgpack:"e"`
	Fingerprints []Fingerprint `msgpack:"f"`

	Compare *Comparison `msgpack:"x,omitempty"`
	Streaks StreakBlock `msgpack:"s"`
	Tokens  TokenBlock  `msgpack:"k"`
}

type Counts struct {
	Projects   int `msgpack:"p"`
	Sessions   int `msgpack:"s"`
	Messages   int `msgpack:"m"`
	Hours      int `msgpack:"h"`
	ActiveDays int `msgpack:"d"`
}

// TraitScores are 0..100 integers, each normalized against its own
// documented reference (see traits.go) and defaulting to 50 on an empty
// sample.
type TraitScores struct {
	Delegation  int `msgpack:"dg"`
	DeepWork    int `msgpack:"dw"`
	Weekend     int `msgpack:"we"`
	NightOwl    int `msgpack:"no"`
	EarlyBird   int `msgpack:"eb"`
	Consistency int `msgpack:"cs"`
	Explorer    int `msgpack:"ex"`
	Velocity    int `msgpack:"vl"`
	Stamina     int `msgpack:"st"`
	Momentum    int `msgpack:"mo"`
}

type ProjectSummary struct {
	Name     string `msgpack:"n,omitempty"`
	Messages int    `msgpack:"m"`
	Sessions int    `msgpack:"s"`
	Hours    int    `msgpack:"h"`
}

// Link is a co-occurrence edge between two entries of Projects, referenced
// by index to keep the payload small. A < B always.
type Link struct {
	A     int `msgpack:"a"`
	B     int `msgpack:"b"`
	Count int `msgpack:"c"`
}

// Event types, in descending retention priority.
const (
	EventPeak = iota
	EventMilestone
	EventStreakStart
	EventStreakEnd
	EventGapStart
	EventGapEnd
	EventNewProject
)

// Event is one timeline entry. Day is the day of year (1..366). Value
// carries the event magnitude: messages for a peak, the threshold for a
// milestone, the length for a streak end, the gap width in days for a gap
// end. Project indexes into Projects for new-project events.
type Event struct {
	Type    int `msgpack:"t"`
	Day     int `msgpack:"d"`
	Value   int `msgpack:"v,omitempty"`
	Project int `msgpack:"p,omitempty"`
}

// Fingerprint is the 8-value shape vector of one significant session: four
// quarter densities normalized 0..100 against the densest quarter, then
// four dimensions reserved for content-derived signals, currently zero.
type Fingerprint struct {
	Shape [8]int `msgpack:"q"`
}

// Comparison carries the previous year's totals so consumers can render
// year-over-year deltas.
type Comparison struct {
	Messages  int `msgpack:"m"`
	Sessions  int `msgpack:"s"`
	Hours     int `msgpack:"h"`
	GrowthPct int `msgpack:"g"`
}

type StreakBlock struct {
	Longest int `msgpack:"l"`
	Current int `msgpack:"c"`
	Count   int `msgpack:"n"`
	Average int `msgpack:"a"`
}

type TokenBlock struct {
	Input         int64 `msgpack:"i"`
	Output        int64 `msgpack:"o"`
	CacheCreation int64 `msgpack:"cc"`
	CacheRead     int64 `msgpack:"cr"`
}
