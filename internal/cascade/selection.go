package cascade

import (
	"fmt"
	"slices"
)

// Level identifies one step of the country -> state -> city chain.
type Level int

const (
	Countries Level = iota
	States
	Cities
)

var levels = [...]Level{Countries, States, Cities}

func (l Level) String() string {
	switch l {
	case Countries:
		return "countries"
	case States:
		return "states"
	case Cities:
		return "cities"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Phase is how far down the chain the user has selected.
type Phase int

const (
	NoCountry Phase = iota
	CountrySelected
	StateSelected
	CitySelected
)

func (p Phase) String() string {
	switch p {
	case NoCountry:
		return "no-country"
	case CountrySelected:
		return "country-selected"
	case StateSelected:
		return "state-selected"
	case CitySelected:
		return "city-selected"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Selection is the chosen country, state and city plus the candidate lists
// they were chosen from. Empty strings mean unset.
type Selection struct {
	Country string
	State   string
	City    string

	Countries []string
	States    []string
	Cities    []string
}

// Candidates returns the candidate list for level.
func (s Selection) Candidates(l Level) []string {
	switch l {
	case Countries:
		return s.Countries
	case States:
		return s.States
	case Cities:
		return s.Cities
	}
	return nil
}

// Value returns the selected name at level, or "".
func (s Selection) Value(l Level) string {
	switch l {
	case Countries:
		return s.Country
	case States:
		return s.State
	case Cities:
		return s.City
	}
	return ""
}

// Phase derives the state machine phase from the selection.
func (s Selection) Phase() Phase {
	switch {
	case s.City != "":
		return CitySelected
	case s.State != "":
		return StateSelected
	case s.Country != "":
		return CountrySelected
	}
	return NoCountry
}

// Summary renders "{city}, {state}, {country}", or "" while no city is chosen.
func (s Selection) Summary() string {
	if s.City == "" {
		return ""
	}
	return fmt.Sprintf("%s, %s, %s", s.City, s.State, s.Country)
}

func (s Selection) clone() Selection {
	s.Countries = slices.Clone(s.Countries)
	s.States = slices.Clone(s.States)
	s.Cities = slices.Clone(s.Cities)
	return s
}

func (s *Selection) setCandidates(l Level, names []string) {
	switch l {
	case Countries:
		s.Countries = names
	case States:
		s.States = names
	case Cities:
		s.Cities = names
	}
}
