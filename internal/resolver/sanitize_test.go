package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "hex entities",
			raw:  "https&#x3a;&#x2f;&#x2f;example&#x2e;org",
			want: "https://example.org",
		},
		{
			name: "hex entities with path",
			raw:  "https&#x3a;&#x2f;&#x2f;www&#x2e;regione&#x2e;veneto&#x2e;it&#x2f;organizzazione",
			want: "https://www.regione.veneto.it/organizzazione",
		},
		{
			name: "decimal and named entities",
			raw:  "http&#58;//example.org/a?x=1&amp;y=2",
			want: "http://example.org/a?x=1&y=2",
		},
		{
			name: "backslashes in query are encoded",
			raw:  `http://example.org/?ref=http:\\other`,
			want: "http://example.org/?ref=http:%5C%5Cother",
		},
		{
			name: "backslashes in path are dropped",
			raw:  `http:\\example.org\dir\page.html`,
			want: "http:example.orgdirpage.html",
		},
		{
			name: "trailing space",
			raw:  "http://og.maggioli.cloud/ATGovWeb/BURAGODIMOLGORA/EntryPoint.aspx ",
			want: "http://og.maggioli.cloud/ATGovWeb/BURAGODIMOLGORA/EntryPoint.aspx",
		},
		{
			name: "trailing mis-decoded no-break space",
			raw:  "http://og.maggioli.cloud/ATGovWeb/BURAGODIMOLGORA/EntryPoint.aspx\u00c2\u00a0",
			want: "http://og.maggioli.cloud/ATGovWeb/BURAGODIMOLGORA/EntryPoint.aspx",
		},
		{
			name: "embedded spaces are removed",
			raw:  "  /amministrazione trasparente/bandi di gara  ",
			want: "/amministrazionetrasparente/bandidigara",
		},
		{
			name: "existing escapes pass through",
			raw:  "/search?q=caf%C3%A9&page=2",
			want: "/search?q=caf%C3%A9&page=2",
		},
		{
			name: "unicode and stray percent in query",
			raw:  "/search?q=café&pct=100%",
			want: "/search?q=caf%C3%A9&pct=100%25",
		},
		{
			name: "fragment after query is kept",
			raw:  "/page.php?id=1#top",
			want: "/page.php?id=1#top",
		},
		{
			name: "second question mark is encoded",
			raw:  "/a?b=1?c=2",
			want: "/a?b=1%3Fc=2",
		},
		{
			name: "nested references are decoded fully",
			raw:  "http://x.org/a&amp;amp;b",
			want: "http://x.org/a&b",
		},
		{
			name: "nested encoded backslash is dropped",
			raw:  "http://x.org/a&amp;#92;b",
			want: "http://x.org/ab",
		},
		{
			name: "nested encoded space is trimmed",
			raw:  "&amp;#32;http://x.org",
			want: "http://x.org",
		},
		{
			name: "whitespace behind a backslash is trimmed",
			raw:  "0\v\\",
			want: "0",
		},
		{
			name: "unterminated reference is not decoded",
			raw:  "/list?a=1&para=2",
			want: "/list?a=1&para=2",
		},
		{
			name: "query only",
			raw:  "?id=1",
			want: "?id=1",
		},
		{
			name: "empty",
			raw:  "   ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.raw))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"https&#x3a;&#x2f;&#x2f;example&#x2e;org",
		`http://example.org/?ref=http:\\other`,
		"https://web.spaggiari.eu/sdg/app/default/trasparenza.php?sede_codice=BAIT0004&amp;referer=http:\\www.itclenoci.it",
		"/search?q=café&pct=100%",
		"/a?b=1?c=2#frag ment",
		" /x y/z?q=a b ",
		"http://example.org/path\u00c2\u00a0",
		"?",
		"#",
		"",
		"&#32;/spaced&#32;",
		"http://x.org/a&amp;amp;b",
		"http://x.org/a&amp;#92;b",
		"&amp;#32;http://x.org",
		"0\v\\",
		"\\\v/x?q",
		"a\u00c2\\\u00a0b",
		"/p&am\\p;q",
		"/a&amp;amp;amp;amp;amp;#63;b?c",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func FuzzSanitize(f *testing.F) {
	for _, seed := range []string{
		"https&#x3a;&#x2f;&#x2f;example&#x2e;org",
		`http://example.org/?ref=http:\\other`,
		"http://x.org/a&amp;amp;b",
		"http://x.org/a&amp;#92;b",
		"&amp;#32;http://x.org",
		"0\v\\",
		"/search?q=café&pct=100%",
		"a\u00c2\\\u00a0b",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		once := Sanitize(raw)
		assert.Equal(t, once, Sanitize(once), "input %q", raw)
	})
}

// Entities are decoded before backslashes are handled, so an encoded
// backslash behaves exactly like a literal one.
func TestSanitize_EncodedBackslash(t *testing.T) {
	assert.Equal(t, "http://example.org/dir/page", Sanitize("http://example.org/dir&#92;/page"))
	assert.Equal(t, "http://example.org/?ref=http:%5Cother", Sanitize("http://example.org/?ref=http:&#x5c;other"))
}

func TestSanitizeTarget_PseudoProtocol(t *testing.T) {
	neutral := []string{
		"javascript:",
		"javascript:;",
		"JavaScript:",
		"javascript: void()",
		"javascript:void(0);",
		"javascript:void(0)",
		" javascript : void ( 'x' ) ; ",
		"javascript&#58;void(0)",
		"javascript&amp;#58;void(0)",
	}
	for _, in := range neutral {
		assert.Equal(t, "/", SanitizeTarget(in), "input %q", in)
	}

	kept := []string{
		"javascript:openWindow('a')",
		"/javascript:",
		"javascript.html",
	}
	for _, in := range kept {
		assert.NotEqual(t, "/", SanitizeTarget(in), "input %q", in)
	}

	// Sanitize alone leaves pseudo-protocol links alone.
	assert.Equal(t, "javascript:", Sanitize("javascript:"))
}

func TestEscapeSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a=1&b=2", "a=1&b=2"},
		{"a b", "a%20b"},
		{"%", "%25"},
		{"%4", "%254"},
		{"%41", "%41"},
		{"%zz%41", "%25zz%41"},
		{`\`, "%5C"},
		{"a/b", "a%2Fb"},
	}
	for _, tt := range tests {
		if got := escapeSegment(tt.in); got != tt.want {
			t.Errorf("escapeSegment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
