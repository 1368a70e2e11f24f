package assessment

import "github.com/hunter-system/hunter/internal/rank"

func q(id int, c rank.Category, text string, options ...string) Question {
	opts := make([]Option, len(options))
	for i, o := range options {
		opts[i] = Option{Text: o, Score: i + 1}
	}
	return Question{ID: id, Category: c, Text: text, Options: opts}
}

// questionnaire is the onboarding questionnaire: five questions per
// category, options ordered from weakest (1) to strongest (5).
var questionnaire = []Question{
	// Mind
	q(1, rank.CategoryMind, "How often do you read or learn new things?",
		"Almost never, I get bored quickly.", "Sometimes, if it's easy or short.", "Regularly, when I need it.", "I seek out new knowledge weekly.", "I hunger for learning every day."),
	q(2, rank.CategoryMind, "When faced with stress, you…",
		"Panic or avoid it.", "Complain and feel overwhelmed.", "Try to manage but lose focus.", "Face it calmly and solve it.", "Turn it into growth energy."),
	q(3, rank.CategoryMind, "Do you journal or reflect on your life?",
		"Never.", "Only during crises.", "Occasionally.", "Weekly habit.", "Daily ritual."),
	q(4, rank.CategoryMind, "When you fail at something, you…",
		"Quit immediately.", "Feel defeated for a long time.", "Move on without deep reflection.", "Learn and retry.", "See failure as training XP."),
	q(5, rank.CategoryMind, "How do you handle criticism?",
		"Hate it, avoid it.", "Take it personally.", "Listen but ignore.", "Learn from it.", "Seek it out to improve."),

	// Work
	q(6, rank.CategoryWork, "How do you approach your daily work/study?",
		"Avoid until forced.", "Start late, rush to finish.", "Do it as required.", "Plan and execute.", "Treat it like a mission."),
	q(7, rank.CategoryWork, "How many hours do you dedicate daily?",
		"Almost none.", "Less than 1 hour.", "1–2 hours.", "3–4 hours.", "5+ hours with focus."),
	q(8, rank.CategoryWork, "Do you procrastinate?",
		"Always.", "Frequently.", "Sometimes.", "Rarely.", "Never, I strike instantly."),
	q(9, rank.CategoryWork, "How do you treat deadlines?",
		"I ignore them.", "Often miss them.", "Barely meet them.", "Usually on time.", "Always ahead of time."),
	q(10, rank.CategoryWork, "How do you balance work and rest?",
		"No balance, mostly idle.", "Work too little.", "Work and rest equally.", "Work more than rest.", "Work with discipline, rest strategically."),

	// Body
	q(11, rank.CategoryBody, "How often do you exercise?",
		"Never.", "Rarely.", "Sometimes.", "Weekly routine.", "Daily commitment."),
	q(12, rank.CategoryBody, "Can you run 1 km without stopping?",
		"Not possible.", "Barely.", "With effort.", "Comfortably.", "Easily, with energy left."),
	q(13, rank.CategoryBody, "Pushup ability:",
		"0–5 max.", "6–10 max.", "11–20 max.", "21–40 max.", "40+ with ease."),
	q(14, rank.CategoryBody, "Eating habits:",
		"Mostly junk.", "Frequent junk.", "Balanced but inconsistent.", "Mostly healthy.", "Disciplined clean diet."),
	q(15, rank.CategoryBody, "Sleep routine:",
		"Chaotic, random.", "Late nights, little rest.", "Inconsistent.", "Mostly regular.", "Strict, 7–8 hours daily."),

	// Discipline
	q(16, rank.CategoryDiscipline, "Morning routine:",
		"No structure.", "Random wake-ups.", "Loose schedule.", "Some structure.", "Strict, daily ritual."),
	q(17, rank.CategoryDiscipline, "Phone use in bed:",
		"Always scroll till late.", "Often scroll before sleep.", "Sometimes.", "Rarely.", "Never."),
	q(18, rank.CategoryDiscipline, "Keeping promises to yourself:",
		"Always break them.", "Often fail.", "Sometimes succeed.", "Usually succeed.", "Always honor them."),
	q(19, rank.CategoryDiscipline, "Following schedules:",
		"Never.", "Rarely.", "Sometimes.", "Often.", "Always."),
	q(20, rank.CategoryDiscipline, "Do you track progress (journals, apps)?",
		"Never.", "Rarely.", "Occasionally.", "Often.", "Daily discipline."),

	// Willpower
	q(21, rank.CategoryWillpower, "How long can you focus without distraction?",
		"<10 min.", "10–20 min.", "30 min.", "1 hour.", "2+ hours."),
	q(22, rank.CategoryWillpower, "Handling urges (food, social media):",
		"Always give in.", "Mostly give in.", "Sometimes resist.", "Usually resist.", "Strong self-control."),
	q(23, rank.CategoryWillpower, "Meditation/breathing practice:",
		"Never.", "Tried once.", "Occasionally.", "Weekly.", "Daily ritual."),
	q(24, rank.CategoryWillpower, "Long-term goals:",
		"Don't have any.", "Vague ideas only.", "Some goals, not tracked.", "Clear goals, partly tracked.", "Clear goals, strict tracking."),
	q(25, rank.CategoryWillpower, "Can you work in silence, no phone?",
		"Impossible.", "Rarely.", "Sometimes.", "Often.", "Easily for hours."),

	// Habits
	q(26, rank.CategoryHabits, "Social media time daily:",
		"6+ hours.", "4–6 hours.", "2–4 hours.", "1–2 hours.", "<1 hour."),
	q(27, rank.CategoryHabits, "Do you watch adult content?",
		"Daily.", "Few times a week.", "Occasionally.", "Rarely.", "Never."),
	q(28, rank.CategoryHabits, "Junk food frequency:",
		"Every day.", "4–6 days/week.", "2–3 days/week.", "Once/week.", "Almost never."),
	q(29, rank.CategoryHabits, "Alcohol/smoking:",
		"Daily.", "Several times/week.", "Sometimes.", "Rarely.", "Never."),
	q(30, rank.CategoryHabits, "Do you waste time endlessly scrolling?",
		"All the time.", "Often.", "Sometimes.", "Rarely.", "Almost never."),
}
