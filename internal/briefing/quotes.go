package briefing

var quotes = []string{
	"The dungeon never sleeps. Neither should your discipline.",
	"Every quest completed brings you closer to S-Rank.",
	"True hunters rise before dawn and train after dusk.",
	"Weakness is a choice. Strength is earned daily.",
	"The system rewards consistency, not intensity.",
	"Your streak is your shadow. Don't let it fade.",
	"Legends aren't born. They're forged through daily quests.",
	"The stronger you become, the harder the trials. Keep pushing.",
	"A hunter's greatest weapon is their unbreakable routine.",
	"Small daily wins create unstoppable momentum.",
	"Your future self is watching. Make them proud.",
	"The path to SS-Rank starts with today's quest.",
	"Discipline today, dominance tomorrow.",
	"Every day you miss is a gift to your competition.",
	"The grind never stops. Neither should you.",
}

// QuoteFor returns the quote of the day. It rotates on the day of the month.
func QuoteFor(day int) string {
	return quotes[((day%len(quotes))+len(quotes))%len(quotes)]
}
