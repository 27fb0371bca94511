package game

// Team is one entry of the fixed drink-team catalog. Players pick a team
// when joining; the catalog never changes at runtime.
type Team struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Color string `json:"color"`
}

const defaultTeamID = "pearl-tea-latte"

var teamCatalog = []Team{
	{ID: "pearl-tea-latte", Name: "Pearl Tea Latte", Image: "/teams/pearl-tea-latte.png", Color: "#D4A574"},
	{ID: "roasted-barley", Name: "Roasted Barley", Image: "/teams/roasted-barley.png", Color: "#8B7355"},
	{ID: "plum-green", Name: "Plum Green Tea", Image: "/teams/plum-green.png", Color: "#A8D5BA"},
	{ID: "light-buckwheat", Name: "Light Buckwheat", Image: "/teams/light-buckwheat.png", Color: "#E6D3A3"},
	{ID: "lime-tea", Name: "Lime Tea", Image: "/teams/lime-tea.png", Color: "#B8E6B8"},
	{ID: "pomelo-green", Name: "Pomelo Green Tea", Image: "/teams/pomelo-green.png", Color: "#F0E68C"},
}

// Teams returns the full catalog in its fixed order.
func Teams() []Team {
	list := make([]Team, len(teamCatalog))
	copy(list, teamCatalog)
	return list
}

// TeamByID resolves a team id, falling back to the default team for
// unknown or empty ids so a join request can never fail on team choice.
func TeamByID(id string) Team {
	for _, team := range teamCatalog {
		if team.ID == id {
			return team
		}
	}
	return mustTeam(defaultTeamID)
}

func mustTeam(id string) Team {
	for _, team := range teamCatalog {
		if team.ID == id {
			return team
		}
	}
	return teamCatalog[0]
}
