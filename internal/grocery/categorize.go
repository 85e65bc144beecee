package grocery

import "strings"

// fallbackCategory buckets an item name by keyword. It only runs when
// the UPC lookup supplied no category (or there was no lookup at all),
// and unknown names land in "Uncategorized", the same default used for
// products the lookup cannot classify.
//
// The longest matching keyword wins, so "peanut butter" goes to Pantry
// rather than Dairy and "ice cream" to Frozen rather than Dairy.
func fallbackCategory(itemName string) string {
	name := strings.ToLower(strings.TrimSpace(itemName))
	category, matched := "Uncategorized", 0
	for _, bucket := range categoryBuckets {
		for _, kw := range bucket.keywords {
			if len(kw) > matched && strings.Contains(name, kw) {
				category, matched = bucket.name, len(kw)
			}
		}
	}
	return category
}

var categoryBuckets = []struct {
	name     string
	keywords []string
}{
	{"Produce", []string{
		"apple", "banana", "orange", "lemon", "lime", "avocado",
		"tomato", "potato", "onion", "garlic", "lettuce", "spinach",
		"carrot", "celery", "cucumber", "pepper", "jalapeño",
		"mushroom", "berries", "melon", "fruit", "squash",
	}},
	{"Dairy", []string{
		"milk", "egg", "butter", "cheese", "yogurt", "cream",
	}},
	{"Meat & Seafood", []string{
		"chicken", "beef", "pork", "turkey", "bacon", "sausage",
		"ham", "steak", "salmon", "shrimp", "tuna", "fish",
	}},
	{"Bakery", []string{
		"bread", "bagel", "tortilla", "bun", "roll", "muffin",
	}},
	{"Pantry", []string{
		"rice", "pasta", "noodle", "flour", "sugar", "salt",
		"olive oil", "peanut butter", "vinegar", "cereal", "oatmeal",
		"sauce", "soup", "broth", "bean", "lentil", "canned",
	}},
	{"Frozen", []string{
		"frozen", "ice cream", "popsicle",
	}},
	{"Beverages", []string{
		"sparkling water", "water", "juice", "coffee", "tea",
		"soda", "beer", "wine",
	}},
	{"Snacks", []string{
		"chip", "cracker", "cookie", "popcorn", "pretzel",
		"candy", "chocolate", "granola bar",
	}},
	{"Household", []string{
		"paper towel", "toilet paper", "trash bag", "dish soap",
		"detergent", "sponge", "foil", "battery",
	}},
	{"Personal Care", []string{
		"shampoo", "conditioner", "soap", "toothpaste", "toothbrush",
		"deodorant", "lotion", "sunscreen", "razor", "tissue",
	}},
}
