package core

import "strings"

// CategoryUncategorized is the sentinel returned when no keyword matches.
const CategoryUncategorized Category = "Uncategorized"

const (
	CategoryFoodAndDrink   Category = "Food and Drink"
	CategoryTransportation Category = "Transportation"
	CategoryShopping       Category = "Shopping"
	CategoryEntertainment  Category = "Entertainment"
	CategoryBillsUtilities Category = "Bills & Utilities"
	CategoryHealthcare     Category = "Healthcare"
	CategoryTravel         Category = "Travel"
	CategoryPersonal       Category = "Personal"
	CategoryEducation      Category = "Education"
	CategoryIncome         Category = "Income"
)

// categoryKeywords maps an internal category to the provider keywords that
// select it. Order matters: the first matching category wins, so the table
// is a slice, not a map.
type categoryKeywords struct {
	category Category
	keywords []string
}

var categoryTable = []categoryKeywords{
	{CategoryFoodAndDrink, []string{"food", "restaurant", "fast food", "coffee shop", "bar", "groceries"}},
	{CategoryTransportation, []string{"gas", "public transportation", "taxi", "uber", "lyft", "parking"}},
	{CategoryShopping, []string{"clothing", "electronics", "general merchandise", "online shopping"}},
	{CategoryEntertainment, []string{"movies", "music", "games", "streaming services", "events"}},
	{CategoryBillsUtilities, []string{"utilities", "phone", "internet", "cable", "rent", "mortgage"}},
	{CategoryHealthcare, []string{"pharmacy", "doctor", "dentist", "hospital", "health insurance"}},
	{CategoryTravel, []string{"airlines", "hotels", "car rental", "travel"}},
	{CategoryPersonal, []string{"gym", "salon", "spa", "personal care"}},
	{CategoryEducation, []string{"books", "tuition", "school supplies"}},
	{CategoryIncome, []string{"paycheck", "salary", "deposit", "refund", "bonus"}},
}

// Classify maps a transaction's provider category tags and display name to
// an internal category. The first raw tag is tested against the keyword
// table in declaration order; if nothing matches (or no tags were
// supplied), the lower-cased name is tested the same way. Identical inputs
// always yield identical output.
func Classify(name string, rawTags []string) Category {
	if len(rawTags) > 0 {
		if c, ok := matchKeywords(rawTags[0]); ok {
			return c
		}
	}
	if c, ok := matchKeywords(name); ok {
		return c
	}
	return CategoryUncategorized
}

func matchKeywords(s string) (Category, bool) {
	lower := strings.ToLower(s)
	for _, entry := range categoryTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category, true
			}
		}
	}
	return "", false
}

// Categories returns every mapped category in declaration order, without
// the Uncategorized sentinel.
func Categories() []Category {
	out := make([]Category, len(categoryTable))
	for i, entry := range categoryTable {
		out[i] = entry.category
	}
	return out
}
