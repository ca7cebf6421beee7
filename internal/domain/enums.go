package domain

// LineSource identifies which extraction strategy produced a line.
type LineSource string

const (
	SourceNativeText     LineSource = "native-text"
	SourceLayoutFallback LineSource = "layout-fallback"
	SourceOCR            LineSource = "ocr"
)

// Nutrition categories form a closed, language-neutral vocabulary. Source
// language labels on the product are locale artifacts and never appear as
// keys.
const (
	CategoryEnergy       = "energy"
	CategoryFat          = "fat"
	CategoryCarbohydrate = "carbohydrate"
	CategorySugar        = "sugar"
	CategoryProtein      = "protein"
	CategorySodium       = "sodium"
)

// NutritionCategories lists the closed category set in display order.
var NutritionCategories = []string{
	CategoryEnergy,
	CategoryFat,
	CategoryCarbohydrate,
	CategorySugar,
	CategoryProtein,
	CategorySodium,
}
