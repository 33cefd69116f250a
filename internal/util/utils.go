package util

import (
	"bytes"
	"fmt"
	"strings"
)

// GetLine returns the 1-based line of src, without its terminator.
func GetLine(src string, line int) (string, bool) {
	if line < 1 {
		return "", false
	}
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}

// GetContextLines renders up to two lines before the error line plus the
// error line itself, the latter marked with an arrow.
func GetContextLines(src string, errorLine int) string {
	if _, ok := GetLine(src, errorLine); !ok {
		return ""
	}
	var result bytes.Buffer

	startLine := errorLine - 2
	if startLine < 1 {
		startLine = 1
	}

	for i := startLine; i <= errorLine; i++ {
		lineContent, _ := GetLine(src, i)
		if i == errorLine {
			result.WriteString(fmt.Sprintf("  >  %3d | %s", i, lineContent))
		} else {
			result.WriteString(fmt.Sprintf("     %3d | %s\n", i, lineContent))
		}
	}

	return result.String()
}
