package scoring

// SeniorityKeyword binds a label keyword to its ordinal level.
type SeniorityKeyword struct {
	Keyword string `mapstructure:"keyword"`
	Level   int    `mapstructure:"level"`
}

// Lexicon is the keyword configuration consumed by the engine. The tables
// are hand-curated and English/French-biased; treat them as data to extend,
// not as algorithm logic. Seniority keywords are an ordered slice because
// the first keyword found in the job text wins.
type Lexicon struct {
	Seniority    []SeniorityKeyword `mapstructure:"seniority"`
	DefaultLevel int                `mapstructure:"default-level"`
	FrenchHints  []string           `mapstructure:"french-hints"`
	EnglishHints []string           `mapstructure:"english-hints"`
	RemoteHints  []string           `mapstructure:"remote-hints"`
}

// DefaultLexicon returns the built-in keyword tables.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Seniority: []SeniorityKeyword{
			{Keyword: "junior", Level: 1},
			{Keyword: "mid", Level: 2},
			{Keyword: "intermediate", Level: 2},
			{Keyword: "senior", Level: 3},
			{Keyword: "lead", Level: 4},
			{Keyword: "staff", Level: 4},
			{Keyword: "principal", Level: 5},
			{Keyword: "architect", Level: 5},
		},
		DefaultLevel: 2,
		FrenchHints:  []string{"french", "français"},
		EnglishHints: []string{"english"},
		RemoteHints:  []string{"remote", "anywhere"},
	}
}

// levelFor maps a free-form seniority label to its ordinal level.
func (l Lexicon) levelFor(label string) int {
	for _, entry := range l.Seniority {
		if entry.Keyword == label {
			return entry.Level
		}
	}
	return l.DefaultLevel
}
