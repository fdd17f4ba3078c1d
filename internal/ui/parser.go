package ui

import (
	"fmt"
	"strings"
)

// ParseCSS parses a primitive CSS file: selectors .class or #id, optionally grouped
// with commas, and blocks of "key: value;". No combinators, no @rules. Blocks with
// other selectors are skipped. Later rules override earlier ones.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	s := stripCSSComments(content)
	for {
		open := strings.Index(s, "{")
		if open == -1 {
			if strings.TrimSpace(s) != "" {
				return nil, fmt.Errorf("ui: css: trailing text %q", strings.TrimSpace(s))
			}
			return sheet, nil
		}
		end := findMatchingBrace(s, open)
		if end == -1 {
			return nil, fmt.Errorf("ui: css: unclosed block after %q", strings.TrimSpace(s[:open]))
		}
		props := parseDeclarations(strings.TrimSpace(s[open+1 : end]))
		for _, sel := range strings.Split(s[:open], ",") {
			sel = strings.TrimSpace(sel)
			if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
		}
		s = s[end+1:]
	}
}

func stripCSSComments(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if i+1 < len(s) && s[i] == '/' && s[i+1] == '*' {
			j := i + 2
			for j+1 < len(s) && !(s[j] == '*' && s[j+1] == '/') {
				j++
			}
			if j+1 < len(s) {
				j += 2
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func findMatchingBrace(s string, openIdx int) int {
	depth := 1
	for i := openIdx + 1; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseDeclarations(body string) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(body, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		colon := strings.Index(part, ":")
		if colon == -1 {
			continue
		}
		k := strings.TrimSpace(part[:colon])
		v := strings.TrimSpace(part[colon+1:])
		if k != "" {
			props[k] = v
		}
	}
	return props
}
