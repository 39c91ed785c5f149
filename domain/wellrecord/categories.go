package wellrecord

// Standard gap categories. Each applies a different counting rule to decide
// whether a month with no reported production still "counts" as producing.
const (
	// CategoryNoProdIgnoreShutin covers months with no qualifying
	// production, with shut-in status codes ignored.
	CategoryNoProdIgnoreShutin = "NO_PROD_IGNORE_SHUTIN"

	// CategoryNoProdButShutinCounts covers months with no qualifying
	// production, but a shut-in well counts as producing.
	CategoryNoProdButShutinCounts = "NO_PROD_BUT_SHUTIN_COUNTS"
)

// CategoryDescriptions maps the standard categories to human-readable
// descriptions for reports.
var CategoryDescriptions = map[string]string{
	CategoryNoProdIgnoreShutin:    "No production (ignore shut-in)",
	CategoryNoProdButShutinCounts: "No production (shut-in counts as production)",
}

// DescribeCategory returns the human-readable description of a category,
// falling back to the category name itself for non-standard categories.
func DescribeCategory(category string) string {
	if desc, ok := CategoryDescriptions[category]; ok {
		return desc
	}
	return category
}
