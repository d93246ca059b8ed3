package browser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bookstore-qa/ui-test-harness/framework/opt"
)

// Strategy is how a Locator's selector is interpreted.
type Strategy int

const (
	ByCSS Strategy = iota
	ByID
	ByXPath
	ByText
	ByName
)

func (s Strategy) String() string {
	switch s {
	case ByID:
		return "id"
	case ByXPath:
		return "xpath"
	case ByText:
		return "text"
	case ByName:
		return "name"
	default:
		return "css"
	}
}

// Locator addresses a UI node by strategy and selector. Locators are plain values supplied by
// page objects; they do not refer to any particular session.
type Locator struct {
	Strategy Strategy
	Selector string
	index    opt.Maybe[int]
}

func CSS(selector string) Locator { return Locator{Strategy: ByCSS, Selector: selector} }
func ID(id string) Locator        { return Locator{Strategy: ByID, Selector: id} }
func XPath(path string) Locator   { return Locator{Strategy: ByXPath, Selector: path} }
func Text(text string) Locator    { return Locator{Strategy: ByText, Selector: text} }
func Name(name string) Locator    { return Locator{Strategy: ByName, Selector: name} }

// Nth narrows the locator to the match at a zero-based index. Without Nth, the first match is
// used.
func (l Locator) Nth(index int) Locator {
	l.index = opt.Some(index)
	return l
}

// Index returns the index set by Nth, if any.
func (l Locator) Index() opt.Maybe[int] { return l.index }

// Query returns the selector in the engine-prefixed form understood by Playwright, without any
// index.
func (l Locator) Query() string {
	switch l.Strategy {
	case ByID:
		return "id=" + l.Selector
	case ByXPath:
		return "xpath=" + l.Selector
	case ByText:
		return "text=" + l.Selector
	case ByName:
		return fmt.Sprintf(`css=[name="%s"]`, strings.ReplaceAll(l.Selector, `"`, `\"`))
	default:
		return "css=" + l.Selector
	}
}

func (l Locator) String() string {
	s := l.Strategy.String() + "=" + l.Selector
	if l.index.IsDefined() {
		s += " >> nth=" + strconv.Itoa(l.index.Value())
	}
	return s
}
