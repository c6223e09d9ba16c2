package rewrite

import (
	"bytes"
	"regexp"
)

const (
	// MalformedPattern matches blob URLs that had an absolute local checkout
	// path glued onto them. The captured group is the path relative to the
	// repository root, ending before a quote, angle bracket or line break.
	MalformedPattern = `https://github\.com/melonjs/melonJS/blob/master//Users/obiot/Documents/GitHub/melonJS/([^"'<>\r\n]*)`

	// CanonicalPrefix is what the captured relative path is appended to.
	CanonicalPrefix = "https://github.com/melonjs/melonJS/blob/master/"
)

// Rule pairs a match pattern with the prefix its first capture group is
// appended to. Pattern is expected to be a literal head followed by the
// capture group.
type Rule struct {
	Pattern *regexp.Regexp
	Prefix  string
}

var defaultRule = Rule{
	Pattern: regexp.MustCompile(MalformedPattern),
	Prefix:  CanonicalPrefix,
}

// DefaultRule returns the malformed melonJS blob link rule.
func DefaultRule() Rule {
	return defaultRule
}

// Apply replaces every match in content with Prefix followed by the captured
// segment, copied literally. A greedy capture can swallow further occurrences
// of the pattern's literal head on the same line; those are replaced inside
// the segment in the same pass, so the result never matches again. It returns
// the new content and the number of replacements made; content is returned
// unchanged when there are none.
func (r Rule) Apply(content []byte) ([]byte, int) {
	matches := r.Pattern.FindAllSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, 0
	}
	head, _ := r.Pattern.LiteralPrefix()

	var b bytes.Buffer
	b.Grow(len(content))
	last, n := 0, 0
	for _, m := range matches {
		b.Write(content[last:m[0]])
		b.WriteString(r.Prefix)
		n++
		last = m[1]
		if len(m) < 4 || m[2] < 0 {
			continue
		}
		seg := content[m[2]:m[3]]
		if head != "" && m[2] >= m[0]+len(head) {
			n += replaceHead(&b, seg, []byte(head), r.Prefix)
		} else {
			b.Write(seg)
		}
	}
	b.Write(content[last:])

	if n == 0 || bytes.Equal(b.Bytes(), content) {
		return content, 0
	}
	return b.Bytes(), n
}

// replaceHead writes seg to b with every occurrence of head swapped for prefix.
func replaceHead(b *bytes.Buffer, seg, head []byte, prefix string) int {
	n := 0
	for {
		i := bytes.Index(seg, head)
		if i < 0 {
			b.Write(seg)
			return n
		}
		b.Write(seg[:i])
		b.WriteString(prefix)
		seg = seg[i+len(head):]
		n++
	}
}

// RewriteContent applies the default rule to content.
func RewriteContent(content []byte) ([]byte, int) {
	return defaultRule.Apply(content)
}
