package ui

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// SearchState holds the query line editor and matching configuration for
// transcript search. The query is kept as runes so editing never splits a
// multi-byte character.
type SearchState struct {
	query         []rune
	cursorPos     int // rune offset into query
	caseSensitive bool
	minScore      int
}

// Score threshold constants (based on raw fzf scores)
const (
	ScoreThresholdStrict     = 70 // only high quality matches
	ScoreThresholdNormal     = 50 // balanced (default)
	ScoreThresholdPermissive = 30 // include marginal matches
	ScoreThresholdNone       = 0  // accept all matches
)

// NewSearchState creates a search state with the default threshold.
func NewSearchState() *SearchState {
	return &SearchState{minScore: ScoreThresholdNormal}
}

// Query returns the current query text.
func (s *SearchState) Query() string {
	return string(s.query)
}

// CursorPos returns the cursor offset into the query.
func (s *SearchState) CursorPos() int {
	return s.cursorPos
}

// SetMinScore sets the minimum score threshold.
func (s *SearchState) SetMinScore(score int) {
	s.minScore = score
}

// Clear resets the query and cursor.
func (s *SearchState) Clear() {
	s.query = nil
	s.cursorPos = 0
}

// InsertChar inserts a character at the cursor position.
func (s *SearchState) InsertChar(ch rune) {
	if s.cursorPos >= len(s.query) {
		s.query = append(s.query, ch)
	} else {
		s.query = append(s.query[:s.cursorPos], append([]rune{ch}, s.query[s.cursorPos:]...)...)
	}
	s.cursorPos++
}

// DeleteChar deletes the character before the cursor (backspace).
func (s *SearchState) DeleteChar() {
	if s.cursorPos > 0 {
		s.query = append(s.query[:s.cursorPos-1], s.query[s.cursorPos:]...)
		s.cursorPos--
	}
}

// MoveCursorLeft moves the cursor left one character.
func (s *SearchState) MoveCursorLeft() {
	if s.cursorPos > 0 {
		s.cursorPos--
	}
}

// MoveCursorRight moves the cursor right one character.
func (s *SearchState) MoveCursorRight() {
	if s.cursorPos < len(s.query) {
		s.cursorPos++
	}
}

// MoveCursorStart moves the cursor to the start of the query (Ctrl+A).
func (s *SearchState) MoveCursorStart() {
	s.cursorPos = 0
}

// MoveCursorEnd moves the cursor to the end of the query (Ctrl+E).
func (s *SearchState) MoveCursorEnd() {
	s.cursorPos = len(s.query)
}

// DeleteWord deletes the word before the cursor (Ctrl+W).
func (s *SearchState) DeleteWord() {
	if s.cursorPos == 0 {
		return
	}
	start := s.cursorPos - 1
	for start > 0 && s.query[start] == ' ' {
		start--
	}
	for start > 0 && s.query[start-1] != ' ' {
		start--
	}
	s.query = append(s.query[:start], s.query[s.cursorPos:]...)
	s.cursorPos = start
}

// MatchResult contains a match score and the rune positions that matched.
type MatchResult struct {
	Score     int
	Positions []int
}

// MatchMessage checks one message's rendered text against the query and
// returns the rune positions that matched, for highlighting.
func (s *SearchState) MatchMessage(text string) (bool, MatchResult) {
	if len(s.query) == 0 {
		return true, MatchResult{}
	}
	result := s.matchWithPositions(text)
	if result.Score < 0 {
		return false, result
	}
	if s.minScore > 0 && result.Score < s.minScore {
		return false, result
	}
	return true, result
}

// matchWithPositions runs the fzf v2 fuzzy matcher with position tracking.
func (s *SearchState) matchWithPositions(text string) MatchResult {
	algo.Init("default")

	searchText := text
	pattern := string(s.query)
	if !s.caseSensitive {
		searchText = strings.ToLower(text)
		pattern = strings.ToLower(pattern)
	}

	chars := util.ToChars([]byte(searchText))
	slab := util.MakeSlab(16384, 1024)
	result, positions := algo.FuzzyMatchV2(s.caseSensitive, false, true, &chars, []rune(pattern), true, slab)

	if result.Start < 0 {
		return MatchResult{Score: -1}
	}

	var matchPositions []int
	if positions != nil {
		// fzf positions index the Chars array, which already corresponds to
		// rune positions.
		matchPositions = make([]int, len(*positions))
		copy(matchPositions, *positions)
	}
	return MatchResult{Score: result.Score, Positions: matchPositions}
}
