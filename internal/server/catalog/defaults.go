package catalog

import "github.com/yukta/symposium/internal/server/models"

// Default is the built-in event list used when no source is configured.
func Default() []models.Event {
	return []models.Event{
		{
			ID:          "1",
			Title:       "Code-A-Thon",
			Description: "A 12-hour intense hackathon to solve real-world problems using cutting-edge technologies.",
			Category:    "Technical",
			Icon:        "Code",
			Prize:       "₹25,000",
			Date:        "March 15, 2026",
			Time:        "09:00 AM",
			Venue:       "Main Lab",
		},
		{
			ID:          "2",
			Title:       "Paper Presentation",
			Description: "Present your research and innovative ideas in front of an expert panel.",
			Category:    "Technical",
			Icon:        "FileText",
			Prize:       "₹10,000",
			Date:        "March 15, 2026",
			Time:        "11:00 AM",
			Venue:       "Seminar Hall A",
		},
		{
			ID:          "3",
			Title:       "AI Workshop",
			Description: "Hands-on session on Generative AI and LLM integration in modern apps.",
			Category:    "Workshop",
			Icon:        "Cpu",
			Date:        "March 16, 2026",
			Time:        "10:00 AM",
			Venue:       "Auditorium",
		},
		{
			ID:          "4",
			Title:       "Gaming Hub",
			Description: "Valorant and FIFA tournament for the ultimate gamers.",
			Category:    "Non-Technical",
			Icon:        "Gamepad2",
			Prize:       "₹15,000",
			Date:        "March 16, 2026",
			Time:        "02:00 PM",
			Venue:       "Student Lounge",
		},
		{
			ID:          "5",
			Title:       "Robo-Race",
			Description: "Design a bot that can navigate through a complex obstacle course in minimum time.",
			Category:    "Technical",
			Icon:        "Bot",
			Prize:       "₹20,000",
			Date:        "March 15, 2026",
			Time:        "01:00 PM",
			Venue:       "Open Ground",
		},
	}
}
