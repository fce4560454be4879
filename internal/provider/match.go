package provider

import (
	"slices"
	"strings"
)

// minMatchScore is the floor below which a winning candidate is still
// rejected, so no-real-match queries don't end up tagged with the
// nearest wrong song.
const minMatchScore = 30

// minCoverBytes is the size heuristic for cover responses that arrive
// without a usable content type: small bodies are error pages.
const minCoverBytes = 1000

// bestMatch picks the highest-scoring candidate for the query. Ties keep
// the earliest candidate, preserving upstream result order.
func bestMatch(candidates []Candidate, artist, title string, platforms []string) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}

	artistLower := strings.ToLower(artist)
	titleLower := strings.ToLower(title)

	var best Candidate
	bestScore := -1
	for _, c := range candidates {
		if score := matchScore(c, artistLower, titleLower, platforms); score > bestScore {
			best = c
			bestScore = score
		}
	}

	if bestScore < minMatchScore {
		return Candidate{}, false
	}
	return best, true
}

// matchScore weighs one candidate: exact title match 100, substring 50;
// artist substring either direction 30; platform priority 10 minus its
// index in the configured list.
func matchScore(c Candidate, artistLower, titleLower string, platforms []string) int {
	score := 0

	name := strings.ToLower(c.Name)
	switch {
	case name == titleLower:
		score += 100
	case strings.Contains(name, titleLower):
		score += 50
	}

	// An empty artist on either side is a substring of the other, so the
	// bonus applies and a lone candidate still clears the floor.
	candArtist := strings.ToLower(c.Artist)
	if strings.Contains(candArtist, artistLower) || strings.Contains(artistLower, candArtist) {
		score += 30
	}

	if idx := slices.Index(platforms, c.Platform); idx >= 0 {
		score += 10 - idx
	}

	return score
}
