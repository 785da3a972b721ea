package formatter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mcncl/dartyper/internal/errors"
)

var (
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	blankRun      = regexp.MustCompile(`\n{3,}`)
	importLine    = regexp.MustCompile(`^import\s+'([^']+)'.*;$`)
)

// Formatter normalises generated Dart source
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format takes Dart code as a string and returns it with normalised
// whitespace and a sorted import block. Unbalanced brackets are reported
// as a format error.
func (f *Formatter) Format(code string) (string, error) {
	// Handle empty input
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = trailingSpace.ReplaceAllString(code+"\n", "\n")
	code = blankRun.ReplaceAllString(code, "\n\n")
	code = strings.Trim(code, "\n") + "\n"

	if err := checkBalance(code); err != nil {
		return "", errors.NewFormatError("generated code is not well formed", err)
	}

	return f.formatImports(code), nil
}

// formatImports organizes the leading import directives with dart: imports
// first, followed by package: and relative imports with a blank line in
// between
func (f *Formatter) formatImports(code string) string {
	lines := strings.Split(code, "\n")

	end := 0
	var imports []string
	for end < len(lines) {
		line := lines[end]
		if line == "" {
			end++
			continue
		}
		if !importLine.MatchString(line) {
			break
		}
		imports = append(imports, line)
		end++
	}
	if len(imports) == 0 {
		return code
	}

	var dartImports, otherImports []string
	for _, imp := range imports {
		uri := importLine.FindStringSubmatch(imp)[1]
		if strings.HasPrefix(uri, "dart:") {
			dartImports = append(dartImports, imp)
		} else {
			otherImports = append(otherImports, imp)
		}
	}
	sort.Strings(dartImports)
	sort.Strings(otherImports)

	var b strings.Builder
	for _, imp := range dartImports {
		b.WriteString(imp + "\n")
	}
	if len(dartImports) > 0 && len(otherImports) > 0 {
		b.WriteString("\n")
	}
	for _, imp := range otherImports {
		b.WriteString(imp + "\n")
	}

	rest := strings.Join(lines[end:], "\n")
	if strings.TrimSpace(rest) == "" {
		return b.String()
	}
	return b.String() + "\n" + rest
}

var closing = map[byte]byte{'}': '{', ')': '(', ']': '['}

// checkBalance verifies that braces, parentheses and brackets pair up
// outside of string literals and line comments.
func checkBalance(code string) error {
	var (
		stack []byte
		line  = 1
	)
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch c {
		case '\n':
			line++
		case '\'', '"':
			j := skipString(code, i)
			if j < 0 {
				return fmt.Errorf("unterminated string literal on line %d", line)
			}
			i = j
		case '/':
			if i+1 < len(code) && code[i+1] == '/' {
				for i < len(code) && code[i] != '\n' {
					i++
				}
				i-- // let the newline be counted
			}
		case '{', '(', '[':
			stack = append(stack, c)
		case '}', ')', ']':
			if len(stack) == 0 || stack[len(stack)-1] != closing[c] {
				return fmt.Errorf("unexpected %q on line %d", c, line)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fmt.Errorf("unclosed %q at end of input", stack[len(stack)-1])
	}
	return nil
}

// skipString returns the index of the quote closing the literal that opens
// at start, or -1 if the line ends first.
func skipString(code string, start int) int {
	quote := code[start]
	for i := start + 1; i < len(code); i++ {
		switch code[i] {
		case '\\':
			i++
		case quote:
			return i
		case '\n':
			return -1
		}
	}
	return -1
}
