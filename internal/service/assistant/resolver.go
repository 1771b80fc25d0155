package assistant

import (
	"sort"

	"github.com/google/uuid"
)

// MatchType records which name field produced a fuzzy match's best score.
type MatchType string

const (
	MatchFirstName MatchType = "firstName"
	MatchLastName  MatchType = "lastName"
	MatchFullName  MatchType = "fullName"
)

// nameRecord is the minimal view of a person the resolver needs.
type nameRecord struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
}

func (n nameRecord) fullName() string {
	if n.FirstName == "" {
		return n.LastName
	}
	if n.LastName == "" {
		return n.FirstName
	}
	return n.FirstName + " " + n.LastName
}

// FuzzyMatch is one scored candidate for a name fragment.
type FuzzyMatch struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Score     float64   `json:"score"`
	MatchType MatchType `json:"match_type"`
}

// ResolutionKind is the outcome class of a resolution pass. Exactly one
// of the three holds.
type ResolutionKind int

const (
	// ResolutionAuto means a single record scored high enough to act on
	// without asking.
	ResolutionAuto ResolutionKind = iota
	// ResolutionAmbiguous means one or more passable matches need the
	// actor to pick.
	ResolutionAmbiguous
	// ResolutionNone means nothing passed the threshold.
	ResolutionNone
)

// Resolution is the result of matching a text fragment against records.
type Resolution struct {
	Kind        ResolutionKind
	Match       FuzzyMatch   // set when Kind == ResolutionAuto
	Suggestions []FuzzyMatch // set when Kind == ResolutionAmbiguous
}

// resolveName scores query against each record's first name, last name
// and full name, keeping the best field per record. Records at or above
// autoSelect win outright; otherwise up to maxSuggestions passing the
// threshold come back for disambiguation. Equal scores order
// alphabetically by full name, then by id, so resolution is stable
// regardless of storage order.
func resolveName(query string, records []nameRecord, threshold, autoSelect float64, maxSuggestions int) Resolution {
	matches := make([]FuzzyMatch, 0, len(records))
	for _, rec := range records {
		best := FuzzyMatch{ID: rec.ID, Name: rec.fullName()}

		if s := Score(query, rec.FirstName); s > best.Score {
			best.Score, best.MatchType = s, MatchFirstName
		}
		if s := Score(query, rec.LastName); s > best.Score {
			best.Score, best.MatchType = s, MatchLastName
		}
		if s := Score(query, rec.fullName()); s > best.Score {
			best.Score, best.MatchType = s, MatchFullName
		}

		if best.Score >= threshold {
			matches = append(matches, best)
		}
	}

	if len(matches) == 0 {
		return Resolution{Kind: ResolutionNone}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Name != matches[j].Name {
			return matches[i].Name < matches[j].Name
		}
		return matches[i].ID.String() < matches[j].ID.String()
	})

	if matches[0].Score >= autoSelect {
		return Resolution{Kind: ResolutionAuto, Match: matches[0]}
	}

	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	return Resolution{Kind: ResolutionAmbiguous, Suggestions: matches}
}
