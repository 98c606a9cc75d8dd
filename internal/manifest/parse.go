// Package manifest parses the text manifest that drives alias table
// generation: a DICTIONARY of named offsets and an OBJECT POOL of
// labelled instruction calls.
package manifest

import (
	"strconv"
	"strings"

	"zobj-alias-compiler/internal/errs"
)

// Section keywords.
const (
	KeywordDictionary = "DICTIONARY"
	KeywordPool       = "OBJECT POOL"

	aliasPrefix = "DL_"
)

// Parse reads both sections of a manifest. name is used in errors.
func Parse(name string, src []byte) (*Manifest, error) {
	lines := readLines(src)
	m := &Manifest{Name: name}

	if err := m.parseDictionary(lines); err != nil {
		return nil, errs.Locate(err, name, 0)
	}
	if err := m.parsePool(lines); err != nil {
		return nil, errs.Locate(err, name, 0)
	}
	return m, nil
}

func (m *Manifest) parseDictionary(lines []line) error {
	head, open, body, err := section(lines, KeywordDictionary)
	if err != nil {
		return err
	}
	if head != "" {
		body = append([]line{{Num: open, Text: head}}, body...)
	}

	for _, l := range body {
		if l.Text == "" {
			continue
		}
		fields := strings.Fields(l.Text)

		if strings.HasPrefix(l.Text, aliasPrefix) {
			a, err := parseAlias(fields)
			if err != nil {
				return err.At(m.Name, l.Num)
			}
			a.Line = l.Num
			m.Aliases = append(m.Aliases, a)
			continue
		}

		if len(fields) != 2 {
			return errs.New(errs.Syntax, "malformed dictionary entry").At(m.Name, l.Num)
		}
		off, err := parseHex(fields[1])
		if err != nil {
			return (&errs.Error{Kind: errs.Syntax, Symbol: fields[0], Msg: "unparsable dictionary entry", Err: err}).At(m.Name, l.Num)
		}
		m.Literals = append(m.Literals, Literal{Name: fields[0], Offset: off, Line: l.Num})
	}
	return nil
}

// parseAlias reads `DL_NAME <bank> "trailer name"`. The quoted name may
// contain spaces.
func parseAlias(fields []string) (Alias, *errs.Error) {
	if len(fields) < 3 {
		return Alias{}, errs.New(errs.Syntax, "malformed dictionary entry")
	}
	quoted := strings.Join(fields[2:], " ")
	parts := strings.Split(quoted, `"`)
	if len(parts) != 3 {
		return Alias{}, errs.New(errs.Syntax, `malformed dictionary entry: wrong number of " symbols`)
	}
	return Alias{Name: fields[0], Key: parts[1]}, nil
}

func (m *Manifest) parsePool(lines []line) error {
	head, open, body, err := section(lines, KeywordPool)
	if err != nil {
		return err
	}

	declLine := open
	if head == "" {
		i := 0
		for i < len(body) && body[i].Text == "" {
			i++
		}
		if i == len(body) {
			return errs.New(errs.Syntax, "malformed OBJECT POOL declaration").At(m.Name, open)
		}
		head, declLine, body = body[i].Text, body[i].Num, body[i+1:]
	}

	base, size, perr := parsePoolDecl(head)
	if perr != nil {
		return perr.At(m.Name, declLine)
	}
	m.Pool = Pool{Base: base, Size: size, Line: declLine}

	var cur *Group
	for _, l := range body {
		text := removeSpace(l.Text)
		if text == "" {
			continue
		}
		if i := strings.IndexByte(text, ':'); i != -1 {
			m.Pool.Groups = append(m.Pool.Groups, Group{Label: text[:i], Line: l.Num})
			cur = &m.Pool.Groups[len(m.Pool.Groups)-1]
			text = text[i+1:]
		}
		if cur == nil {
			return errs.New(errs.Syntax, "instruction outside of a labelled pool entry").At(m.Name, l.Num)
		}
		if cur.Label == "" {
			return errs.New(errs.Syntax, "empty pool entry label").At(m.Name, l.Num)
		}
		for _, c := range strings.Split(text, ";") {
			if c != "" {
				cur.Calls = append(cur.Calls, Call{Text: c, Line: l.Num})
			}
		}
	}
	return nil
}

// parsePoolDecl reads `<anything>=<base>,<size>` with hexadecimal fields.
func parsePoolDecl(s string) (base, size uint32, err *errs.Error) {
	s = removeSpace(s)
	eq := strings.IndexByte(s, '=')
	comma := strings.IndexByte(s, ',')
	if eq == -1 || comma == -1 || comma < eq || comma == len(s)-1 {
		return 0, 0, errs.New(errs.Syntax, "malformed OBJECT POOL declaration")
	}
	b, perr := parseHex(s[eq+1 : comma])
	if perr != nil {
		return 0, 0, &errs.Error{Kind: errs.Syntax, Msg: "malformed OBJECT POOL declaration", Err: perr}
	}
	n, perr := parseHex(s[comma+1:])
	if perr != nil {
		return 0, 0, &errs.Error{Kind: errs.Syntax, Msg: "malformed OBJECT POOL declaration", Err: perr}
	}
	return b, n, nil
}

// parseHex parses a 32-bit hexadecimal number with an optional 0x prefix.
func parseHex(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func notFound(what string) error {
	return errs.New(errs.NotFound, "could not find %s", what)
}
