package lookups

// Fixed value sets of the catalog domain.
// Complexity and care are stored as free text in the documents; membership
// checks use these explicit lists rather than any ordinal ranking.

// CareEasy marks plants that need no particular attention
const CareEasy = "easy"

// FeaturedComplexityLevels qualify a garden for the top-aquascapers listing
var FeaturedComplexityLevels = []string{"intermediate", "semi-professional", "professional"}

// FeaturedRatingLevels are the rating levels counted as a recommendation
var FeaturedRatingLevels = []int32{4, 5}
