package memory

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Render substitutes {Name} placeholders in format with counter values.
// {{ and }} produce literal braces. A placeholder may carry a spec after a
// colon, [[fill]align][sign][0][width][d], e.g. {Memsza:>3}, {MemUsed:05}
// or {Memsza:+4}.
func Render(info Info, format string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(format) + 16)

	for i := 0; i < len(format); i++ {
		c := format[i]
		switch c {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				sb.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(format[i+1:], '}')
			if end < 0 {
				return "", errors.Wrapf(ErrTemplate, "unterminated placeholder at offset %d", i)
			}
			field := format[i+1 : i+1+end]
			if strings.ContainsRune(field, '{') {
				return "", errors.Wrapf(ErrTemplate, "unexpected '{' in placeholder %q", field)
			}
			text, err := renderField(info, field)
			if err != nil {
				return "", err
			}
			sb.WriteString(text)
			i += end + 1
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				sb.WriteByte('}')
				i++
				continue
			}
			return "", errors.Wrapf(ErrTemplate, "single '}' at offset %d", i)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String(), nil
}

func renderField(info Info, field string) (string, error) {
	name, spec, _ := strings.Cut(field, ":")
	if name == "" {
		return "", errors.Wrap(ErrTemplate, "empty placeholder name")
	}

	v, ok := info[name]
	if !ok {
		return "", errors.Wrapf(ErrTemplate, "unknown key %q", name)
	}

	if spec == "" {
		return strconv.FormatInt(v, 10), nil
	}

	fs, err := parseSpec(spec)
	if err != nil {
		return "", err
	}

	text := strconv.FormatInt(v, 10)
	if v >= 0 && fs.sign != '-' {
		text = string(fs.sign) + text
	}
	return fs.pad(text), nil
}

type fieldSpec struct {
	fill  rune
	align byte
	sign  byte
	width int
}

func parseSpec(spec string) (fieldSpec, error) {
	fs := fieldSpec{fill: ' ', align: '>', sign: '-'}
	rest := spec

	isAlign := func(b byte) bool { return b == '<' || b == '>' || b == '^' || b == '=' }

	explicit := false
	if r, size := utf8.DecodeRuneInString(rest); size > 0 && size < len(rest) && isAlign(rest[size]) {
		fs.fill, fs.align = r, rest[size]
		rest = rest[size+1:]
		explicit = true
	} else if len(rest) > 0 && isAlign(rest[0]) {
		fs.align = rest[0]
		rest = rest[1:]
		explicit = true
	}

	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-' || rest[0] == ' ') {
		fs.sign = rest[0]
		rest = rest[1:]
	}

	if strings.HasPrefix(rest, "0") {
		if !explicit {
			fs.fill, fs.align = '0', '='
		}
		rest = rest[1:]
	}

	rest = strings.TrimSuffix(rest, "d")
	if rest != "" {
		w, err := strconv.Atoi(rest)
		if err != nil || strings.TrimLeft(rest, "0123456789") != "" {
			return fieldSpec{}, errors.Wrapf(ErrTemplate, "bad format spec %q", spec)
		}
		fs.width = w
	}
	return fs, nil
}

func (fs fieldSpec) pad(text string) string {
	n := utf8.RuneCountInString(text)
	if n >= fs.width {
		return text
	}
	padding := fs.width - n
	fill := func(k int) string { return strings.Repeat(string(fs.fill), k) }

	switch fs.align {
	case '<':
		return text + fill(padding)
	case '^':
		left := padding / 2
		return fill(left) + text + fill(padding-left)
	case '=':
		if len(text) > 0 && strings.IndexByte("+- ", text[0]) >= 0 {
			return text[:1] + fill(padding) + text[1:]
		}
		return fill(padding) + text
	default:
		return fill(padding) + text
	}
}
