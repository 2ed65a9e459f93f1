package category

import "strings"

// Sections is the display order for shopping-list sections, roughly matching
// the route through a supermarket. Ranking is case-insensitive; categories
// not in the list sort after all known sections, alphabetically.
var Sections = []string{
	"Fruit",
	"Veg",
	"Vegetables",
	"Meat",
	"Fish",
	"Dairy",
	"Bakery",
	"Frozen",
	"Tins",
	"Cans",
	"Dry",
	"Pasta",
	"Rice",
	"Spices",
	"Sauces",
	"Snacks",
	"Drinks",
	"Other",
}

const unknownRank = 999

// Rank returns the sort position of a category name within Sections.
func Rank(name string) int {
	for i, s := range Sections {
		if strings.EqualFold(s, name) {
			return i
		}
	}
	return unknownRank
}

// Normalize maps an empty category to "Other".
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Other"
	}
	return name
}

// Guess returns the likely category for a free-text item name. Exact match
// first, then substring match, falling back to "Other".
func Guess(itemName string) string {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return "Other"
	}

	if cat, ok := exactMatch[name]; ok {
		return cat
	}

	for _, entry := range substringMatches {
		if strings.Contains(name, entry.keyword) {
			return entry.category
		}
	}

	return "Other"
}

var exactMatch = map[string]string{
	// Fruit
	"apple":        "Fruit",
	"apples":       "Fruit",
	"banana":       "Fruit",
	"bananas":      "Fruit",
	"orange":       "Fruit",
	"oranges":      "Fruit",
	"lemon":        "Fruit",
	"lemons":       "Fruit",
	"lime":         "Fruit",
	"limes":        "Fruit",
	"grapes":       "Fruit",
	"strawberries": "Fruit",
	"blueberries":  "Fruit",
	"raspberries":  "Fruit",
	"pears":        "Fruit",
	"avocado":      "Fruit",
	"avocados":     "Fruit",

	// Veg
	"tomato":    "Veg",
	"tomatoes":  "Veg",
	"potato":    "Veg",
	"potatoes":  "Veg",
	"onion":     "Veg",
	"onions":    "Veg",
	"garlic":    "Veg",
	"lettuce":   "Veg",
	"spinach":   "Veg",
	"kale":      "Veg",
	"broccoli":  "Veg",
	"carrot":    "Veg",
	"carrots":   "Veg",
	"celery":    "Veg",
	"cucumber":  "Veg",
	"courgette": "Veg",
	"peppers":   "Veg",
	"mushroom":  "Veg",
	"mushrooms": "Veg",
	"leek":      "Veg",
	"leeks":     "Veg",

	// Meat
	"chicken":  "Meat",
	"beef":     "Meat",
	"mince":    "Meat",
	"pork":     "Meat",
	"lamb":     "Meat",
	"bacon":    "Meat",
	"sausages": "Meat",

	// Fish
	"salmon":   "Fish",
	"cod":      "Fish",
	"tuna":     "Fish",
	"prawns":   "Fish",
	"haddock":  "Fish",
	"mackerel": "Fish",

	// Dairy
	"milk":    "Dairy",
	"butter":  "Dairy",
	"cheese":  "Dairy",
	"cheddar": "Dairy",
	"yoghurt": "Dairy",
	"yogurt":  "Dairy",
	"cream":   "Dairy",
	"eggs":    "Dairy",

	// Bakery
	"bread":     "Bakery",
	"baguette":  "Bakery",
	"rolls":     "Bakery",
	"tortillas": "Bakery",
	"pitta":     "Bakery",

	// Frozen
	"peas":      "Frozen",
	"ice cream": "Frozen",

	// Tins
	"chopped tomatoes": "Tins",
	"baked beans":      "Tins",
	"chickpeas":        "Tins",
	"coconut milk":     "Tins",
	"kidney beans":     "Tins",

	// Dry
	"flour":   "Dry",
	"sugar":   "Dry",
	"oats":    "Dry",
	"lentils": "Dry",

	// Pasta
	"spaghetti":   "Pasta",
	"penne":       "Pasta",
	"lasagne":     "Pasta",
	"tagliatelle": "Pasta",
	"noodles":     "Pasta",

	// Rice
	"rice":         "Rice",
	"basmati rice": "Rice",
	"risotto rice": "Rice",

	// Spices
	"cumin":         "Spices",
	"paprika":       "Spices",
	"oregano":       "Spices",
	"curry powder":  "Spices",
	"chilli flakes": "Spices",

	// Sauces
	"soy sauce":    "Sauces",
	"passata":      "Sauces",
	"pesto":        "Sauces",
	"mayonnaise":   "Sauces",
	"ketchup":      "Sauces",
	"tomato puree": "Sauces",

	// Snacks
	"crisps":    "Snacks",
	"biscuits":  "Snacks",
	"chocolate": "Snacks",

	// Drinks
	"coffee": "Drinks",
	"tea":    "Drinks",
	"juice":  "Drinks",
	"squash": "Drinks",
}

// substringMatches are checked in order; keep more specific keywords first.
var substringMatches = []struct {
	keyword  string
	category string
}{
	{"frozen", "Frozen"},
	{"tinned", "Tins"},
	{"canned", "Tins"},
	{"sauce", "Sauces"},
	{"paste", "Sauces"},
	{"pasta", "Pasta"},
	{"rice", "Rice"},
	{"bread", "Bakery"},
	{"cheese", "Dairy"},
	{"milk", "Dairy"},
	{"chicken", "Meat"},
	{"beef", "Meat"},
	{"pork", "Meat"},
	{"fish", "Fish"},
	{"berries", "Fruit"},
	{"juice", "Drinks"},
	{"spice", "Spices"},
	{"dried", "Dry"},
	{"chips", "Frozen"},
	{"crackers", "Snacks"},
}
