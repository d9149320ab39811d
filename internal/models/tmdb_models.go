// Package models defines data structures for TMDB API responses and the
// availability/recommendation payloads built from them.
package models

// TMDBMultiResult is one entry of /search/multi. Movies carry title and
// release_date; series carry name and first_air_date; people carry neither.
type TMDBMultiResult struct {
	ID           int    `json:"id"`
	MediaType    string `json:"media_type"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
	PosterPath   string `json:"poster_path"`
}

type TMDBSearchResponse struct {
	Page         int               `json:"page"`
	Results      []TMDBMultiResult `json:"results"`
	TotalPages   int               `json:"total_pages"`
	TotalResults int               `json:"total_results"`
}

type TMDBMovie struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	ReleaseDate   string  `json:"release_date"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	GenreIDs      []int   `json:"genre_ids"`
	Popularity    float64 `json:"popularity"`
}

type TMDBMovieResponse struct {
	Page         int         `json:"page"`
	Results      []TMDBMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// TMDBWatchProvider is a single offering inside a region block.
type TMDBWatchProvider struct {
	ProviderID      int    `json:"provider_id"`
	ProviderName    string `json:"provider_name"`
	LogoPath        string `json:"logo_path"`
	DisplayPriority int    `json:"display_priority"`
}

// TMDBRegionProviders groups offerings by monetization type. Only flatrate
// (subscription) offers count towards availability.
type TMDBRegionProviders struct {
	Link     string              `json:"link"`
	Flatrate []TMDBWatchProvider `json:"flatrate"`
	Rent     []TMDBWatchProvider `json:"rent"`
	Buy      []TMDBWatchProvider `json:"buy"`
	Free     []TMDBWatchProvider `json:"free"`
	Ads      []TMDBWatchProvider `json:"ads"`
}

type TMDBWatchProvidersResponse struct {
	ID      int                            `json:"id"`
	Results map[string]TMDBRegionProviders `json:"results"`
}

type TMDBSeason struct {
	ID           int    `json:"id"`
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	AirDate      string `json:"air_date"`
	EpisodeCount int    `json:"episode_count"`
	PosterPath   string `json:"poster_path"`
}

type TMDBTVDetails struct {
	ID               int          `json:"id"`
	Name             string       `json:"name"`
	OriginalName     string       `json:"original_name"`
	Overview         string       `json:"overview"`
	FirstAirDate     string       `json:"first_air_date"`
	NumberOfSeasons  int          `json:"number_of_seasons"`
	NumberOfEpisodes int          `json:"number_of_episodes"`
	Seasons          []TMDBSeason `json:"seasons"`
}
