package scenario

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Filter decides whether a scenario should run.
type Filter interface {
	Match(ID) bool
}

// FilterFunc adapts a function to Filter.
type FilterFunc func(ID) bool

func (f FilterFunc) Match(id ID) bool { return f(id) }

type RegexFilters struct {
	MustMatch    IDPatternList
	MustNotMatch IDPatternList
}

func (r RegexFilters) Match(id ID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(id, true)) &&
		!r.MustNotMatch.AnyMatch(id, false)
}

// IDPattern matches scenario IDs component by component. A pattern with fewer components than
// an ID matches all of that ID's descendants.
type IDPattern struct {
	source string
	parts  []*regexp.Regexp
}

// ParseIDPattern parses a "/"-separated pattern in which each component is a regex that may
// match anywhere in the corresponding ID component.
func ParseIDPattern(s string) (IDPattern, error) {
	return compileIDPattern(s, func(part string) string { return part })
}

// ExactIDPattern parses a "/"-separated scenario ID, as written by String on an ID, into a
// pattern whose components must equal the ID's components literally.
func ExactIDPattern(s string) (IDPattern, error) {
	return compileIDPattern(s, func(part string) string { return "^" + regexp.QuoteMeta(part) + "$" })
}

func compileIDPattern(s string, toRegex func(string) string) (IDPattern, error) {
	parts := strings.Split(s, "/")
	p := IDPattern{source: s, parts: make([]*regexp.Regexp, 0, len(parts))}
	for _, part := range parts {
		rx, err := regexp.Compile(toRegex(part))
		if err != nil {
			return IDPattern{}, fmt.Errorf("invalid regex: %w", err)
		}
		p.parts = append(p.parts, rx)
	}
	return p, nil
}

// Match reports whether the ID matches. If includeParents is true, an ID with fewer components
// than the pattern matches when its components match, so that the feature containing a selected
// scenario is selected too.
func (p IDPattern) Match(id ID, includeParents bool) bool {
	if len(p.parts) > len(id) && !includeParents {
		return false
	}
	for i, rx := range p.parts {
		if i >= len(id) {
			break
		}
		if !rx.MatchString(id[i]) {
			return false
		}
	}
	return true
}

func (p IDPattern) String() string { return p.source }

// IDPatternList is a flag.Value that collects any number of patterns.
type IDPatternList []IDPattern

func (l IDPatternList) String() string {
	ss := make([]string, 0, len(l))
	for _, p := range l {
		ss = append(ss, strconv.Quote(p.String()))
	}
	return strings.Join(ss, " or ")
}

// Set adds a regex pattern parsed from a command-line value.
func (l *IDPatternList) Set(value string) error {
	p, err := ParseIDPattern(value)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

func (l IDPatternList) IsDefined() bool {
	return len(l) != 0
}

func (l IDPatternList) AnyMatch(id ID, includeParents bool) bool {
	for _, p := range l {
		if p.Match(id, includeParents) {
			return true
		}
	}
	return false
}

// ReadSkipFile adds one exact scenario ID per line of a file to the list, so that the file
// written for failed scenarios can be fed back in as-is. Blank lines and lines starting with "#"
// are ignored.
func (l *IDPatternList) ReadSkipFile(path string) error {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := ExactIDPattern(line)
		if err != nil {
			return fmt.Errorf("%s line %d: %w", path, lineNum, err)
		}
		*l = append(*l, p)
	}
	return scanner.Err()
}

func PrintFilterDescription(filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Println("Some scenarios will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Printf("  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Printf("  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Println()
	}
}
