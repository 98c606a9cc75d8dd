package manifest

import (
	"bufio"
	"bytes"
	"strings"
)

// line is one manifest line with its comment removed and surrounding
// whitespace trimmed. Num is 1-based.
type line struct {
	Num  int
	Text string
}

// readLines splits src on \n or \r\n and strips // comments.
func readLines(src []byte) []line {
	var out []line
	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), len(src)+1)
	for n := 1; sc.Scan(); n++ {
		out = append(out, line{Num: n, Text: stripComment(sc.Text())})
	}
	return out
}

func stripComment(s string) string {
	if i := strings.Index(s, "//"); i != -1 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// section returns the lines between the line opening with keyword and
// the next END line. head is the text following the keyword on the
// opening line; open is the opening line number.
func section(lines []line, keyword string) (head string, open int, body []line, err error) {
	start := -1
	for i, l := range lines {
		if strings.HasPrefix(l.Text, keyword) {
			start = i
			break
		}
	}
	if start == -1 {
		return "", 0, nil, notFound(keyword)
	}
	for i := start + 1; i < len(lines); i++ {
		if lines[i].Text == "END" {
			l := lines[start]
			return strings.TrimSpace(l.Text[len(keyword):]), l.Num, lines[start+1 : i], nil
		}
	}
	return "", 0, nil, notFound("END after " + keyword)
}

// removeSpace deletes every whitespace rune from s.
func removeSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
