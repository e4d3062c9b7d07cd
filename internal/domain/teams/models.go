package teams

// Team is the normalized team reference carried on every game.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// Valid reports whether the team carries the identity fields every consumer relies on.
func (t Team) Valid() bool {
	return t.ID != "" && t.Name != ""
}
