package rank

// Category is an area of self-improvement. Quests and assessment questions
// both belong to exactly one category.
type Category string

const (
	CategoryMind       Category = "mind"
	CategoryWork       Category = "work"
	CategoryBody       Category = "body"
	CategoryDiscipline Category = "discipline"
	CategoryWillpower  Category = "willpower"
	CategoryHabits     Category = "habits"
)

// AllCategories returns all categories in display order. Daily quest batches
// follow this order.
func AllCategories() []Category {
	return []Category{
		CategoryMind,
		CategoryWork,
		CategoryBody,
		CategoryDiscipline,
		CategoryWillpower,
		CategoryHabits,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMind, CategoryWork, CategoryBody, CategoryDiscipline, CategoryWillpower, CategoryHabits:
		return true
	default:
		return false
	}
}

// CategoryDisplayName returns a human-readable name for a category.
func CategoryDisplayName(c Category) string {
	switch c {
	case CategoryMind:
		return "Mind"
	case CategoryWork:
		return "Work"
	case CategoryBody:
		return "Body"
	case CategoryDiscipline:
		return "Discipline"
	case CategoryWillpower:
		return "Willpower"
	case CategoryHabits:
		return "Habits"
	default:
		return string(c)
	}
}

// Difficulty is a display-only label on a quest.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)
