package bingo

// Rule is the win rule enforced for a round. A claim is judged against the
// rule of the round that is active when the claim is declared.
type Rule string

const (
	RuleSingleLine Rule = "single-line"
	RuleTwoLines   Rule = "two-lines"
	RuleThreeLines Rule = "three-lines"
	RuleFullCard   Rule = "full-card"
)

// DefaultRule is the rule a freshly created session's first round starts with.
const DefaultRule = RuleSingleLine

// ParseRule returns the Rule for s, or false if s is not a known rule.
func ParseRule(s string) (Rule, bool) {
	switch Rule(s) {
	case RuleSingleLine, RuleTwoLines, RuleThreeLines, RuleFullCard:
		return Rule(s), true
	}
	return "", false
}

// Win-condition kinds an organizer can enable when creating a session. These
// are session metadata shown to clients; adjudication itself uses the round
// Rule above.
var winConditionKinds = map[string]bool{
	"row":     true,
	"col":     true,
	"diag":    true,
	"diagX":   true,
	"corners": true,
	"full":    true,
}

// IsWinConditionKind reports whether s is a known win-condition kind.
func IsWinConditionKind(s string) bool {
	return winConditionKinds[s]
}

// Mark is one marked cell on a player's card.
type Mark struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
