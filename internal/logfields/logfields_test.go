package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    interface{}
	}{
		{"Master", KeyMaster, "usersguide/usersguide.adoc", Master("usersguide/usersguide.adoc")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"File", KeyFile, "intro.adoc", File("intro.adoc")},
		{"Target", KeyTarget, "chapters/one.adoc", Target("chapters/one.adoc")},
		{"Alias", KeyAlias, "book/alias.adoc", Alias("book/alias.adoc")},
		{"Title", KeyTitle, "Introduction", Title("Introduction")},
		{"RunID", KeyRunID, "abc-123", RunID("abc-123")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			attr, ok := c.attr.(interface {
				String() string
			})
			require.True(t, ok)
			require.Contains(t, attr.String(), c.attrKey+"=")
			require.Contains(t, attr.String(), c.attrVal)
		})
	}
}

func TestError_NilError_EmptyValue(t *testing.T) {
	attr := Error(nil)
	require.Equal(t, KeyError, attr.Key)
	require.Equal(t, "", attr.Value.String())
}

func TestError_NonNil_CarriesMessage(t *testing.T) {
	attr := Error(errors.New("boom"))
	require.Equal(t, "boom", attr.Value.String())
}
