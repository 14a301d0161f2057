package repl

import (
	"sort"
	"strings"

	"brio/lower"
	"brio/util"
)

// completionBreaks are the characters that end the word being completed.
const completionBreaks = " \t(),;+-*/<>=!%&|^~:?.@"

// keywords are the keyword candidates offered by completion.
var keywords = []string{
	"binary", "def", "else", "extern", "for", "if", "in", "let", "then", "unary",
}

// symbolCompleter implements readline.AutoCompleter by enumerating the
// language keywords and the functions defined in the session.
type symbolCompleter struct {
	sess *lower.Session
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed: backwards from the cursor to a break
	// character.
	start := pos
	for start > 0 {
		if strings.ContainsRune(completionBreaks, line[start-1]) {
			break
		}
		start--
	}

	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collect(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Build completions: each entry is the suffix to append.
	return util.Map(candidates, func(name string) []rune {
		return []rune(name[len(prefix):])
	}), len(prefix)
}

func (c *symbolCompleter) collect(prefix string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, kw := range keywords {
		if strings.HasPrefix(kw, prefix) && !seen[kw] {
			seen[kw] = true
			result = append(result, kw)
		}
	}

	for _, name := range c.sess.FuncNames() {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}

	sort.Strings(result)
	return result
}
