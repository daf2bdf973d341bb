// Package indenter lays out nested textual representations of abstract
// values, breaking every nested group of more than one item over several
// lines, indented two spaces per level.
package indenter

import (
	"strings"
)

type indenter struct {
	buf string
}

// level is the nesting depth of the representation being built. Nested
// String methods run while their parent is laid out, and indent accordingly.
var level = 0

func Indenter() indenter {
	return indenter{}
}

func indent() string {
	return strings.Repeat("  ", level)
}

func (indenter) Start(str string) indenter {
	return indenter{buf: str}
}

func (i indenter) NestStringsSep(sep string, strs ...string) indenter {
	thunks := make([]func() string, len(strs))
	for j, s := range strs {
		s := s
		thunks[j] = func() string { return s }
	}
	return i.NestThunkedSep(sep, thunks...)
}

// NestThunkedSep appends the items, separated by sep. A single item stays
// on the current line.
func (i indenter) NestThunkedSep(sep string, strs ...func() string) indenter {
	if len(strs) == 1 {
		i.buf += strs[0]()
		return i
	}

	level++
	for j, str := range strs {
		i.buf += "\n" + indent() + str()
		if j < len(strs)-1 {
			i.buf += sep
		}
	}
	level--
	i.buf += "\n"
	return i
}

func (i indenter) End(str string) string {
	if strings.HasSuffix(i.buf, "\n") {
		return i.buf + indent() + str
	}
	return i.buf + str
}
