package cfb

import (
	"path"
	"strings"
	"unicode/utf16"
)

type Ordering int

const (
	OrderLess Ordering = iota
	OrderEqual
	OrderGreater
)

// CompareNames orders directory names the CFB way: shorter UTF-16
// encodings sort first, equal lengths compare case-insensitively.
func CompareNames(nameLeft, nameRight string) Ordering {
	nl := len(utf16.Encode([]rune(nameLeft)))
	nr := len(utf16.Encode([]rune(nameRight)))

	if nl == nr {
		l, r := strings.ToUpper(nameLeft), strings.ToUpper(nameRight)
		switch {
		case l == r:
			return OrderEqual
		case l > r:
			return OrderGreater
		default:
			return OrderLess
		}
	}

	if nl > nr {
		return OrderGreater
	}

	return OrderLess
}

func NameChainFromPath(s string) []string {
	s = path.Clean(s)
	if s == "" {
		return []string{}
	}

	if s[0] == '/' {
		s = s[1:]
	}

	if s == "" {
		return []string{}
	}

	if strings.HasPrefix(s, "..") {
		return []string{}
	}

	return strings.Split(s, "/")
}

func PathFromNameChain(names []string) string {
	return "/" + strings.Join(names, "/")
}
