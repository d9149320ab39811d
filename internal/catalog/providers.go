package catalog

import "github.com/amaumene/gostreamfinder/internal/models"

// Provider ids from TMDB's watch provider list.
const (
	ProviderNetflix    = 8
	ProviderPrimeVideo = 9
)

const (
	PlatformNetflix    models.Platform = "Netflix"
	PlatformPrimeVideo models.Platform = "Prime Video"
)

// platformTable is the allow-list of recognized providers. Anything else is dropped.
var platformTable = map[int]models.Platform{
	ProviderNetflix:    PlatformNetflix,
	ProviderPrimeVideo: PlatformPrimeVideo,
}

// Classify maps a raw provider to its normalized platform label.
func Classify(p models.Provider) (models.Platform, bool) {
	platform, ok := platformTable[p.ID]
	return platform, ok
}

// ClassifyAll classifies providers, dropping unknown ids and duplicates while
// keeping first-seen order. The result is never nil.
func ClassifyAll(providers []models.Provider) []models.Platform {
	platforms := make([]models.Platform, 0, len(providers))
	seen := make(map[models.Platform]struct{}, len(providers))
	for _, p := range providers {
		platform, ok := Classify(p)
		if !ok {
			continue
		}
		if _, dup := seen[platform]; dup {
			continue
		}
		seen[platform] = struct{}{}
		platforms = append(platforms, platform)
	}
	return platforms
}
