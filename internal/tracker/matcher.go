package tracker

import (
	"regexp"

	"pip-follow/internal/wm"
)

// Rule decides whether a single window attribute qualifies. The concrete
// pattern syntax lives behind this interface so the state machine can be
// reused with different matching criteria.
type Rule interface {
	Matches(text string) bool
}

// RegexpRule adapts a compiled regular expression to the Rule interface.
type RegexpRule struct {
	re *regexp.Regexp
}

// NewRegexpRule wraps a compiled pattern.
func NewRegexpRule(re *regexp.Regexp) RegexpRule {
	return RegexpRule{re: re}
}

func (r RegexpRule) Matches(text string) bool {
	return r.re.MatchString(text)
}

// Matcher is the predicate deciding whether a window qualifies as the
// tracked window.
type Matcher struct {
	title Rule
	appID Rule
}

// NewMatcher builds a matcher from a title rule and an app-id rule.
func NewMatcher(title, appID Rule) Matcher {
	return Matcher{title: title, appID: appID}
}

// Matches reports whether the window qualifies. A window without a title
// never matches: a titleless window carries no reliable signal. A window
// without an app id is not rejected on that basis alone; the app-id rule
// only applies when the attribute is present.
func (m Matcher) Matches(w wm.Window) bool {
	appIDMatches := true
	if w.AppID != nil {
		appIDMatches = m.appID.Matches(*w.AppID)
	}

	if w.Title != nil {
		return m.title.Matches(*w.Title) && appIDMatches
	}

	return false
}
