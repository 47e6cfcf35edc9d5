package note

import "time"

// SampleNotes returns the demo notebook shown on first start.
func SampleNotes() []Note {
	return []Note{
		{
			ID:        "1",
			Title:     "Meeting Notes 2024-07-29",
			Content:   "Discussed Q3 goals. Key takeaways: increase marketing budget by 15%, focus on user retention, and launch new feature by September. Action items assigned to John (marketing) and Jane (product).",
			Summary:   "The meeting covered Q3 objectives, including a 15% marketing budget increase, enhancing user retention, and a new feature launch by September. John will handle marketing tasks, and Jane will manage product-related action items.",
			CreatedAt: time.Date(2024, 7, 29, 10, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 7, 29, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:        "2",
			Title:     "Brainstorming Session",
			Content:   "Ideas for new app: a social network for pets, a recipe app that suggests meals based on ingredients you have, and a language learning game. The pet network idea seems most promising. We should explore monetization options.",
			CreatedAt: time.Date(2024, 7, 28, 14, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 7, 28, 15, 0, 0, 0, time.UTC),
		},
		{
			ID:        "3",
			Title:     "My Novel Idea",
			Content:   "A sci-fi epic set in a distant galaxy where sentient plants have replaced all other life forms. The protagonist is a young botanist who discovers a human seedling, the last of its kind. It is a story of hope and survival against all odds.",
			CreatedAt: time.Date(2024, 7, 27, 18, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 7, 27, 18, 0, 0, 0, time.UTC),
		},
		{
			ID:        "4",
			Title:     "Grocery List",
			Content:   "- Milk\n- Bread\n- Eggs\n- Cheese\n- Coffee\n- Apples",
			CreatedAt: time.Date(2024, 7, 26, 9, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 7, 26, 9, 5, 0, 0, time.UTC),
		},
	}
}
