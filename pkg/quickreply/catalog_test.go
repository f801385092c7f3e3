package quickreply

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabels(t *testing.T) {
	en := Labels("en")
	assert.Len(t, en, 4)
	assert.Contains(t, en, "Refund not received yet")

	hi := Labels("hi")
	assert.Len(t, hi, 4)
	assert.Contains(t, hi, "रिफंड अभी तक नहीं मिला")

	// Unknown languages fall back to English.
	assert.Equal(t, en, Labels("fr"))
}

func TestMatch(t *testing.T) {
	opt := Match("  refund not received yet ")
	assert.NotNil(t, opt)
	assert.Equal(t, "refund_not_received", opt.Subtype)
	assert.Equal(t, "refund", opt.Category)

	opt = Match("शो कैंसिल हुआ")
	assert.NotNil(t, opt)
	assert.Equal(t, "show_cancelled", opt.Subtype)

	assert.Nil(t, Match("my refund is late"))
}

func TestExpandQuery(t *testing.T) {
	canonical := ExpandQuery("refund_not_received", "kab tak", "en", false)
	assert.True(t, strings.HasPrefix(canonical, "Refund not received yet."))
	assert.NotContains(t, canonical, "kab tak")

	followup := ExpandQuery("refund_not_received", "kab tak", "en", true)
	assert.True(t, strings.HasSuffix(followup, "kab tak"))

	// Unknown subtype passes the message through untouched.
	assert.Equal(t, "hello", ExpandQuery("nope", "hello", "en", false))
}
