package rank

// Template is the blueprint for one category's daily quest at one rank.
type Template struct {
	Rank        Rank
	Category    Category
	Title       string
	Description string
	XPReward    int
	Difficulty  Difficulty
}

func tpl(r Rank, c Category, d Difficulty, xp int, title, desc string) Template {
	return Template{Rank: r, Category: c, Title: title, Description: desc, XPReward: xp, Difficulty: d}
}

// DefaultTemplates returns the built-in quest templates for the E through SS
// ladder, six per rank.
func DefaultTemplates() []Template {
	easy, medium, hard := DifficultyEasy, DifficultyMedium, DifficultyHard
	return []Template{
		tpl(E, CategoryMind, easy, 10, "Focus Training", "1 hour of focused work or study (no phone)"),
		tpl(E, CategoryWork, easy, 8, "Skill Development", "Practice a skill for 30 minutes"),
		tpl(E, CategoryBody, easy, 10, "Basic Physical Training", "50 pushups, 50 squats, 1 km run"),
		tpl(E, CategoryDiscipline, easy, 8, "Discipline Challenge", "No junk food for the entire day"),
		tpl(E, CategoryWillpower, easy, 8, "Mindfulness Practice", "10 minutes of meditation or reflection"),
		tpl(E, CategoryHabits, easy, 8, "Habit Check", "Keep social media under 2 hours and log it"),

		tpl(D, CategoryMind, easy, 15, "Extended Focus", "2 hours of focused work or study"),
		tpl(D, CategoryWork, easy, 12, "Skill Advancement", "Practice a skill for 45 minutes"),
		tpl(D, CategoryBody, easy, 15, "Trainee Workout", "100 pushups, 100 squats, 2 km run"),
		tpl(D, CategoryDiscipline, easy, 12, "Digital Discipline", "No junk food and limit social media to under 2 hours"),
		tpl(D, CategoryWillpower, easy, 12, "Gratitude Practice", "15 minutes of meditation, then write down 3 gratitudes"),
		tpl(D, CategoryHabits, easy, 12, "Scroll Breaker", "No endless scrolling and phone out of the bedroom tonight"),

		tpl(C, CategoryMind, medium, 20, "Deep Work Session", "3 hours of focused work or study"),
		tpl(C, CategoryWork, medium, 18, "Skill Mastery", "Practice a skill for 1 hour with full focus"),
		tpl(C, CategoryBody, medium, 20, "Intermediate Training", "150 pushups, 150 squats, 3 km run"),
		tpl(C, CategoryDiscipline, medium, 18, "Evening Reflection", "Journal at night with no social media scrolling"),
		tpl(C, CategoryWillpower, medium, 18, "Inner Work", "20 minutes of meditation plus a journal reflection"),
		tpl(C, CategoryHabits, medium, 18, "Clean Day", "No junk food, no alcohol, under 1 hour of social media"),

		tpl(B, CategoryMind, medium, 25, "Advanced Focus", "4 hours of focused work or study"),
		tpl(B, CategoryWork, medium, 22, "Expert Practice", "Practice a skill for 1.5 hours with intensity"),
		tpl(B, CategoryBody, medium, 25, "Advanced Workout", "200 pushups, 200 squats, 4 km run"),
		tpl(B, CategoryDiscipline, medium, 22, "Complete Discipline", "No adult content, no junk food, and a daily reflection"),
		tpl(B, CategoryWillpower, medium, 22, "Spiritual Discipline", "30 minutes of meditation plus focused reading"),
		tpl(B, CategoryHabits, medium, 22, "Habit Audit", "Track every habit today and cut one time sink completely"),

		tpl(A, CategoryMind, hard, 30, "Elite Focus", "5 hours of focused work or study"),
		tpl(A, CategoryWork, hard, 28, "Mastery Training", "Practice a skill for 2 hours with perfect focus"),
		tpl(A, CategoryBody, hard, 30, "Elite Training", "300 pushups, 300 squats, 5 km run"),
		tpl(A, CategoryDiscipline, hard, 28, "Cold Discipline", "Cold shower and strictly no distractions"),
		tpl(A, CategoryWillpower, hard, 28, "Advanced Stillness", "45 minutes of meditation, then teach the practice to someone"),
		tpl(A, CategoryHabits, hard, 28, "Dopamine Fast", "No social media, no sugar, no screens after sunset"),

		tpl(S, CategoryMind, hard, 35, "Master Focus", "6 hours of focused work or study"),
		tpl(S, CategoryWork, hard, 32, "Master Craft", "Practice a skill for 3 hours and teach someone"),
		tpl(S, CategoryBody, hard, 35, "Master Training", "400 pushups, 400 squats, 6 km run"),
		tpl(S, CategoryDiscipline, hard, 32, "Master Discipline", "Mentor someone and give no ground to a bad habit"),
		tpl(S, CategoryWillpower, hard, 32, "Master Stillness", "1 hour of meditation and guide someone else through one"),
		tpl(S, CategoryHabits, hard, 32, "Iron Routine", "Follow your full routine from wake to sleep with zero slips"),

		tpl(SS, CategoryMind, hard, 40, "Transcendent Focus", "8 hours of focused work or study"),
		tpl(SS, CategoryWork, hard, 38, "Transcendent Mastery", "Practice a skill for 4+ hours, then build something new"),
		tpl(SS, CategoryBody, hard, 40, "Transcendent Training", "500 pushups, 500 squats, 8 km run"),
		tpl(SS, CategoryDiscipline, hard, 38, "Absolute Detox", "No social media, adult content, or junk food"),
		tpl(SS, CategoryWillpower, hard, 38, "Transcendent Being", "2 hours of meditation and silent practice"),
		tpl(SS, CategoryHabits, hard, 38, "Total Control", "A full day with every habit tracked and every urge refused"),
	}
}
