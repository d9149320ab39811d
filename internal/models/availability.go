package models

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// MediaType is the catalog kind of a title, using TMDB's path segment values.
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeSeries MediaType = "tv"
)

// Label returns the display label used in availability reports.
func (m MediaType) Label() string {
	if m == MediaTypeSeries {
		return "TV Show"
	}
	return "Movie"
}

// Valid reports whether m is one of the supported catalog kinds.
func (m MediaType) Valid() bool {
	return m == MediaTypeMovie || m == MediaTypeSeries
}

// Region is a supported country/market for availability reporting.
type Region struct {
	Code        string `json:"code"`
	DisplayName string `json:"country"`
}

// Provider is a raw watch provider as reported by the catalog source.
type Provider struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Platform is a normalized streaming-service label such as "Netflix".
type Platform string

// RegionalProviders maps a region code to its flatrate providers.
type RegionalProviders map[string][]Provider

// CandidateTitle is a movie or series returned by a free-text search.
type CandidateTitle struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Overview    string    `json:"overview"`
	MediaType   MediaType `json:"media_type"`
	ReleaseDate string    `json:"release_date"`
	PosterPath  string    `json:"poster_path,omitempty"`
}

// RegionAvailability lists the recognized platforms offering a title in one region.
type RegionAvailability struct {
	Region    Region
	Platforms []Platform
}

type regionAvailabilityJSON struct {
	Country   string     `json:"country"`
	Platforms []Platform `json:"platforms"`
}

// RegionAvailabilityMap is a sparse region -> availability mapping that keeps
// the canonical region order when serialized.
type RegionAvailabilityMap []RegionAvailability

// Codes returns the region codes in map order.
func (m RegionAvailabilityMap) Codes() []string {
	codes := make([]string, 0, len(m))
	for _, ra := range m {
		codes = append(codes, ra.Region.Code)
	}
	return codes
}

// Get returns the availability for a region code.
func (m RegionAvailabilityMap) Get(code string) (RegionAvailability, bool) {
	for _, ra := range m {
		if ra.Region.Code == code {
			return ra, true
		}
	}
	return RegionAvailability{}, false
}

func (m RegionAvailabilityMap) MarshalJSON() ([]byte, error) {
	pairs := make(OrderedPairs, 0, len(m))
	for _, ra := range m {
		platforms := ra.Platforms
		if platforms == nil {
			platforms = []Platform{}
		}
		pairs = append(pairs, Pair{
			Key:   ra.Region.Code,
			Value: regionAvailabilityJSON{Country: ra.Region.DisplayName, Platforms: platforms},
		})
	}
	return pairs.MarshalJSON()
}

// SeasonSummary describes one regular season of a series.
type SeasonSummary struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date"`
}

// ContentAvailabilityReport is the per-title result of a resolution.
// Seasons and TotalSeasons are only present for series.
type ContentAvailabilityReport struct {
	ID               int                   `json:"id"`
	Title            string                `json:"title"`
	Overview         string                `json:"overview"`
	Type             string                `json:"type"`
	MediaType        MediaType             `json:"media_type"`
	ReleaseDate      string                `json:"release_date"`
	Availability     RegionAvailabilityMap `json:"availability"`
	AvailableRegions []string              `json:"available_regions"`
	TotalRegions     int                   `json:"total_regions"`
	Seasons          []SeasonSummary       `json:"seasons,omitzero"`
	TotalSeasons     *int                  `json:"total_seasons,omitempty"`
	// Partial is set when an upstream lookup for this title failed, so missing
	// availability may be a transient error rather than "not streaming anywhere".
	Partial bool `json:"partial,omitempty"`
}

// NewContentAvailabilityReport builds a report whose derived region fields
// always agree with the availability map.
func NewContentAvailabilityReport(title CandidateTitle, availability RegionAvailabilityMap) ContentAvailabilityReport {
	if availability == nil {
		availability = RegionAvailabilityMap{}
	}
	return ContentAvailabilityReport{
		ID:               title.ID,
		Title:            title.Title,
		Overview:         title.Overview,
		Type:             title.MediaType.Label(),
		MediaType:        title.MediaType,
		ReleaseDate:      title.ReleaseDate,
		Availability:     availability,
		AvailableRegions: availability.Codes(),
		TotalRegions:     len(availability),
	}
}

// WithSeasons returns a copy of the report carrying season data.
func (r ContentAvailabilityReport) WithSeasons(seasons []SeasonSummary) ContentAvailabilityReport {
	if seasons == nil {
		seasons = []SeasonSummary{}
	}
	total := len(seasons)
	r.Seasons = seasons
	r.TotalSeasons = &total
	return r
}

// ResolveResult is the response of a content resolution.
type ResolveResult struct {
	Results    []ContentAvailabilityReport `json:"results"`
	TotalFound int                         `json:"total_found"`
	Error      string                      `json:"error,omitempty"`
}

// AvailabilityRequest is the body of POST /availability.
type AvailabilityRequest struct {
	Query string `json:"query" binding:"required"`
}

// Pair is a single key/value of an OrderedPairs object.
type Pair struct {
	Key   string
	Value interface{}
}

// OrderedPairs serializes as a JSON object whose keys keep slice order.
type OrderedPairs []Pair

func (p OrderedPairs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pair := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(pair.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
