// strings.go - Localized string tables, one file per locale.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/xob0t/GoFrame/pkg/failure"
)

// Strings maps locale to string key to localized text.
type Strings map[string]map[string]string

// Locales returns the locales in sorted order.
func (s Strings) Locales() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// LoadStrings reads every <locale>.strings, <locale>.json, <locale>.yaml or
// <locale>.yml file in dir whose locale matches filter. A nil filter matches
// every locale.
func LoadStrings(dir string, filter *regexp.Regexp) (Strings, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &failure.ResourceError{Kind: "strings directory", Path: dir}
		}
		return nil, &failure.ResourceError{Kind: "strings directory", Path: dir, Err: err}
	}

	out := make(Strings)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		switch ext {
		case ".strings", ".json", ".yaml", ".yml":
		default:
			continue
		}

		locale := strings.TrimSuffix(name, filepath.Ext(name))
		if filter != nil && !filter.MatchString(locale) {
			continue
		}
		if _, dup := out[locale]; dup {
			return nil, fmt.Errorf("more than one strings file for locale %q", locale)
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &failure.ResourceError{Kind: "strings", Path: path, Err: err}
		}
		table, err := parseStrings(data, ext)
		if err != nil {
			return nil, &failure.ResourceError{Kind: "strings", Path: path, Err: err}
		}
		out[locale] = table
	}
	return out, nil
}

func parseStrings(data []byte, ext string) (map[string]string, error) {
	table := make(map[string]string)
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, err
		}
	default:
		return ParseAppleStrings(data)
	}

	for k, v := range table {
		table[k] = strings.ReplaceAll(v, `\n`, "\n")
	}
	return table, nil
}

// decodeText returns data as UTF-8. A byte order mark selects UTF-8 or
// UTF-16; without one the data is taken as UTF-8.
func decodeText(data []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ParseAppleStrings reads the "key" = "value"; format used by Apple
// localization files. Block and line comments are skipped. Inside quotes
// \n, \t, \", \\ and \Uxxxx escapes are recognized.
func ParseAppleStrings(data []byte) (map[string]string, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("decode strings: %w", err)
	}

	p := &stringsParser{src: []rune(text), line: 1}
	table := make(map[string]string)
	for {
		p.skipSpace()
		if p.eof() {
			return table, nil
		}

		key, err := p.token()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consume('=') {
			return nil, p.errorf("expected '=' after key %q", key)
		}
		p.skipSpace()
		value, err := p.token()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consume(';') {
			return nil, p.errorf("expected ';' after value of %q", key)
		}
		table[key] = value
	}
}

type stringsParser struct {
	src  []rune
	pos  int
	line int
}

func (p *stringsParser) eof() bool { return p.pos >= len(p.src) }

func (p *stringsParser) peek(off int) rune {
	if p.pos+off >= len(p.src) {
		return 0
	}
	return p.src[p.pos+off]
}

func (p *stringsParser) advance() rune {
	r := p.src[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
	}
	return r
}

func (p *stringsParser) consume(r rune) bool {
	if p.peek(0) == r && !p.eof() {
		p.advance()
		return true
	}
	return false
}

func (p *stringsParser) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", p.line, fmt.Sprintf(format, args...))
}

// skipSpace skips whitespace and comments.
func (p *stringsParser) skipSpace() {
	for !p.eof() {
		switch r := p.peek(0); {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\uFEFF':
			p.advance()
		case r == '/' && p.peek(1) == '*':
			p.advance()
			p.advance()
			for !p.eof() && !(p.peek(0) == '*' && p.peek(1) == '/') {
				p.advance()
			}
			if !p.eof() {
				p.advance()
				p.advance()
			}
		case r == '/' && p.peek(1) == '/':
			for !p.eof() && p.peek(0) != '\n' {
				p.advance()
			}
		default:
			return
		}
	}
}

// token reads a quoted string or a bare word.
func (p *stringsParser) token() (string, error) {
	if p.consume('"') {
		return p.quoted()
	}

	start := p.pos
	for !p.eof() {
		r := p.peek(0)
		if r == '=' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '"' {
			break
		}
		p.advance()
	}
	if p.pos == start {
		return "", p.errorf("expected a string")
	}
	return string(p.src[start:p.pos]), nil
}

func (p *stringsParser) hex4() (rune, error) {
	if p.pos+4 > len(p.src) {
		return 0, p.errorf("short unicode escape")
	}
	v, err := strconv.ParseUint(string(p.src[p.pos:p.pos+4]), 16, 32)
	if err != nil {
		return 0, p.errorf("bad unicode escape: %v", err)
	}
	p.pos += 4
	return rune(v), nil
}

// unicodeEscape reads the four hex digits after \U. A high surrogate followed
// by an escaped low surrogate is combined into one code point.
func (p *stringsParser) unicodeEscape() (rune, error) {
	hi, err := p.hex4()
	if err != nil || !utf16.IsSurrogate(hi) {
		return hi, err
	}
	if p.peek(0) != '\\' || (p.peek(1) != 'U' && p.peek(1) != 'u') {
		return utf8.RuneError, nil
	}
	mark := p.pos
	p.pos += 2
	lo, err := p.hex4()
	if err != nil {
		return 0, err
	}
	if r := utf16.DecodeRune(hi, lo); r != utf8.RuneError {
		return r, nil
	}
	// Not a pair; the second escape is decoded on its own.
	p.pos = mark
	return utf8.RuneError, nil
}

func (p *stringsParser) quoted() (string, error) {
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated string")
		}
		r := p.advance()
		switch r {
		case '"':
			return b.String(), nil
		case '\\':
			if p.eof() {
				return "", p.errorf("unterminated string")
			}
			switch e := p.advance(); e {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			case 'U', 'u':
				u, err := p.unicodeEscape()
				if err != nil {
					return "", err
				}
				b.WriteRune(u)
			default:
				b.WriteRune(e)
			}
		default:
			b.WriteRune(r)
		}
	}
}
