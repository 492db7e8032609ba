package query

import "strings"

// Match implements smart-case substring matching: case-sensitive iff the
// pattern contains an uppercase ASCII character.
func (l *Literal) Match(text string) bool {
	if l.CaseSensitive {
		return strings.Contains(text, l.Pattern)
	}
	return containsFold(text, l.lowered)
}

// containsFold reports whether text contains lowered (already-lowercased)
// as a substring, ignoring ASCII case in text.
func containsFold(text, lowered string) bool {
	if lowered == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), lowered)
}

// Match runs the compiled automaton unanchored over text.
func (r *Regex) Match(text string) bool {
	if r.Compiled == nil {
		return false
	}
	return r.Compiled.MatchString(text)
}

// Match requires every child to match, short-circuiting in declaration
// (i.e. AST Children) order.
func (a *And) Match(text string) bool {
	for _, c := range a.Children {
		if !c.Match(text) {
			return false
		}
	}
	return true
}

// Match requires any child to match, short-circuiting in declaration
// order.
func (o *Or) Match(text string) bool {
	for _, c := range o.Children {
		if c.Match(text) {
			return true
		}
	}
	return false
}

// Match negates the child.
func (n *Not) Match(text string) bool {
	return !n.Child.Match(text)
}

// hasUpperASCII reports whether s contains any uppercase ASCII letter,
// the smart-case trigger: any uppercase letter in the pattern switches
// matching to case-sensitive.
func hasUpperASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}

// newLiteral builds a Literal node, computing smart case and the cached
// lowercase form used by the insensitive matching path.
func newLiteral(pattern string, forceCaseSensitive bool) *Literal {
	cs := forceCaseSensitive || hasUpperASCII(pattern)
	lit := &Literal{Pattern: pattern, CaseSensitive: cs}
	if !cs {
		lit.lowered = strings.ToLower(pattern)
	}
	return lit
}

// cost estimates relative matching cost so siblings of an And/Or can be
// ordered cheapest-first: short literals before long ones, and literals
// before regexes, to minimize regex work on non-matching records. Lower
// is cheaper.
func cost(n Node) int {
	switch v := n.(type) {
	case *Literal:
		return len(v.Pattern)
	case *Regex:
		return 1_000_000 + len(v.Pattern)
	case *Not:
		return cost(v.Child)
	case *And:
		return sumCost(v.Children)
	case *Or:
		return sumCost(v.Children)
	default:
		return 500_000
	}
}

func sumCost(nodes []Node) int {
	total := 0
	for _, n := range nodes {
		total += cost(n)
	}
	return total
}
