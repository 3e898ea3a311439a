package aggregate

import (
	"slices"
	"sort"
	"strings"

	"campaign-speeches/backend/internal/constants"
)

// Locator classifies the location column as a U.S. state or a news channel
type Locator struct {
	states   map[string]bool
	channels []string
}

// NewLocator takes lowercase state names and channel names as written in
// the dataset.
func NewLocator(states, channels []string) *Locator {
	l := &Locator{states: make(map[string]bool, len(states)), channels: channels}
	for _, s := range states {
		l.states[strings.ToLower(s)] = true
	}
	return l
}

// State returns "State" for "City, State" and a bare state name as is.
func (l *Locator) State(location string) (string, bool) {
	parts := strings.Split(location, ",")
	if len(parts) == 2 {
		state := strings.TrimSpace(parts[1])
		return state, state != ""
	}
	first := strings.TrimSpace(parts[0])
	if l.states[strings.ToLower(first)] {
		return first, true
	}
	return "", false
}

// Channel returns the location when it is a news channel
func (l *Locator) Channel(location string) (string, bool) {
	if slices.Contains(l.channels, location) {
		return location, true
	}
	return "", false
}

// partyCounts counts distinct speeches per (label, party) for top speakers
func partyCounts(rows []Row, top []string, party func(string) string, label func(Row) (string, bool)) map[string]map[string]int {
	type key struct {
		label, party string
		speechID     int
	}
	seen := make(map[key]bool)
	out := make(map[string]map[string]int)
	for _, r := range rows {
		if !slices.Contains(top, r.Speaker) {
			continue
		}
		l, ok := label(r)
		if !ok {
			continue
		}
		k := key{label: l, party: party(r.Speaker), speechID: r.SpeechID}
		if seen[k] {
			continue
		}
		seen[k] = true
		if out[l] == nil {
			out[l] = make(map[string]int)
		}
		out[l][k.party]++
	}
	return out
}

// PartyByState counts top-speaker speeches per state (rows, sorted) and
// party (columns).
func (l *Locator) PartyByState(rows []Row, top, parties []string, party func(string) string) *Table {
	counts := partyCounts(rows, top, party, func(r Row) (string, bool) { return l.State(r.Location) })

	states := make([]string, 0, len(counts))
	for s := range counts {
		states = append(states, s)
	}
	sort.Strings(states)

	t := NewTable(states, parties)
	for i, s := range states {
		for j, p := range parties {
			t.Cells[i][j] = counts[s][p]
		}
	}
	return t
}

// ChannelByParty counts top-speaker speeches per news channel and party.
// Every channel gets a row.
func (l *Locator) ChannelByParty(rows []Row, top, parties []string, party func(string) string) *Table {
	counts := partyCounts(rows, top, party, func(r Row) (string, bool) { return l.Channel(r.Location) })

	t := NewTable(l.channels, parties)
	for i, c := range l.channels {
		for j, p := range parties {
			t.Cells[i][j] = counts[c][p]
		}
	}
	return t
}

// Unclassified returns the top-speaker rows whose location is neither a
// state nor a news channel.
func (l *Locator) Unclassified(rows []Row, top []string) []Row {
	var out []Row
	for _, r := range rows {
		if !slices.Contains(top, r.Speaker) {
			continue
		}
		if _, ok := l.State(r.Location); ok {
			continue
		}
		if _, ok := l.Channel(r.Location); ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Winners maps every row of a party table to the column with the most
// speeches, or Tie when the highest count is shared.
func Winners(t *Table) map[string]string {
	out := make(map[string]string, len(t.Rows))
	for i, row := range t.Rows {
		best, winner := -1, constants.PartyTie
		for j, col := range t.Columns {
			switch v := t.Cells[i][j]; {
			case v > best:
				best, winner = v, col
			case v == best:
				winner = constants.PartyTie
			}
		}
		out[row] = winner
	}
	return out
}
