package tracker

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"pip-follow/internal/wm"
)

// literalRule matches a single exact string, keeping matcher tests
// independent of the regex syntax.
type literalRule struct {
	want string
}

func (r literalRule) Matches(text string) bool {
	return text == r.want
}

func strPtr(s string) *string {
	return &s
}

func testMatcher() Matcher {
	return NewMatcher(
		literalRule{want: "Picture-in-Picture"},
		literalRule{want: "firefox"},
	)
}

func TestMatcherRejectsWindowWithoutTitle(t *testing.T) {
	m := testMatcher()

	assert.False(t, m.Matches(wm.Window{ID: 1}))
	assert.False(t, m.Matches(wm.Window{ID: 2, AppID: strPtr("firefox")}))
}

func TestMatcherAcceptsMatchingTitleWithoutAppID(t *testing.T) {
	m := testMatcher()

	assert.True(t, m.Matches(wm.Window{ID: 1, Title: strPtr("Picture-in-Picture")}))
}

func TestMatcherRequiresAppIDRuleWhenAppIDPresent(t *testing.T) {
	m := testMatcher()

	matching := wm.Window{ID: 1, Title: strPtr("Picture-in-Picture"), AppID: strPtr("firefox")}
	assert.True(t, m.Matches(matching))

	wrongAppID := wm.Window{ID: 2, Title: strPtr("Picture-in-Picture"), AppID: strPtr("mpv")}
	assert.False(t, m.Matches(wrongAppID))
}

func TestMatcherRequiresTitleRule(t *testing.T) {
	m := testMatcher()

	wrongTitle := wm.Window{ID: 1, Title: strPtr("Settings"), AppID: strPtr("firefox")}
	assert.False(t, m.Matches(wrongTitle))
}

func TestRegexpRule(t *testing.T) {
	rule := NewRegexpRule(regexp.MustCompile(`firefox$`))

	assert.True(t, rule.Matches("firefox"))
	assert.True(t, rule.Matches("org.mozilla.firefox"))
	assert.False(t, rule.Matches("firefox-nightly-fork"))
}
