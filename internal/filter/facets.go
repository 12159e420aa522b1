package filter

import (
	"slices"

	"github.com/Veraticus/museum-pulse/internal/model"
)

// Facets lists the selectable values of every facet. UI surfaces use it to
// populate their "all selected" defaults.
type Facets struct {
	Years        []int               `json:"years" yaml:"years"`
	TouristTypes []model.TouristType `json:"tourist_types" yaml:"tourist_types"`
	Sentiments   []model.Sentiment   `json:"sentiments" yaml:"sentiments"`
	Ratings      []int               `json:"ratings" yaml:"ratings"`
}

// FacetsOf collects the years and ratings present in reviews, sorted
// ascending, alongside the fixed tourist type and sentiment orders.
func FacetsOf(reviews []model.LabeledReview) Facets {
	years := make([]int, 0)
	ratings := make([]int, 0)
	for _, r := range reviews {
		years = append(years, r.Year)
		ratings = append(ratings, r.Rating)
	}
	slices.Sort(years)
	slices.Sort(ratings)

	return Facets{
		Years:        slices.Compact(years),
		TouristTypes: slices.Clone(model.TouristTypes),
		Sentiments:   slices.Clone(model.Sentiments),
		Ratings:      slices.Compact(ratings),
	}
}
