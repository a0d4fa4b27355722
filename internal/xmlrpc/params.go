package xmlrpc

import (
	"fmt"
	"strconv"
	"time"
)

// Params are the decoded arguments of a call. The accessors return a fault when an argument is missing or has a
// type that cannot be read as the requested one.
type Params []any

func (p Params) arg(i int) (any, error) {
	if i >= len(p) {
		return nil, NewFault(CodeUnknown, fmt.Sprintf("Missing parameter %d", i+1))
	}
	return p[i], nil
}

func mismatch(i int, want string, got any) *Fault {
	return NewFault(CodeUnknown, fmt.Sprintf("Parameter %d must be %s, got %T", i+1, want, got))
}

// String reads a string argument. Integers are accepted, since clients send ids either way.
func (p Params) String(i int) (string, error) {
	v, err := p.arg(i)
	if err != nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case int:
		return strconv.Itoa(t), nil
	}
	return "", mismatch(i, "a string", v)
}

func (p Params) Int(i int) (int, error) {
	v, err := p.arg(i)
	if err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case int:
		return t, nil
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, nil
		}
	}
	return 0, mismatch(i, "an int", v)
}

// Bool reads a boolean argument. A missing trailing boolean reads as false.
func (p Params) Bool(i int) (bool, error) {
	if i >= len(p) {
		return false, nil
	}
	switch t := p[i].(type) {
	case bool:
		return t, nil
	case int:
		return t != 0, nil
	case string:
		if b, err := strconv.ParseBool(t); err == nil {
			return b, nil
		}
	}
	return false, mismatch(i, "a boolean", p[i])
}

func (p Params) Struct(i int) (Struct, error) {
	v, err := p.arg(i)
	if err != nil {
		return nil, err
	}
	if s, ok := v.(Struct); ok {
		return s, nil
	}
	return nil, mismatch(i, "a struct", v)
}

func (p Params) Array(i int) (Array, error) {
	v, err := p.arg(i)
	if err != nil {
		return nil, err
	}
	if a, ok := v.(Array); ok {
		return a, nil
	}
	return nil, mismatch(i, "an array", v)
}

// Member helpers read optional struct members, returning the zero value when absent or mistyped.

func MemberString(s Struct, name string) string {
	switch t := s[name].(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	}
	return ""
}

func MemberTime(s Struct, name string) (time.Time, bool) {
	switch t := s[name].(type) {
	case time.Time:
		return t, true
	case string:
		if d, err := parseDate(t); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func MemberBytes(s Struct, name string) []byte {
	switch t := s[name].(type) {
	case []byte:
		return t
	case string:
		return []byte(t)
	}
	return nil
}

// MemberStrings reads an array of strings, skipping entries of other types.
func MemberStrings(s Struct, name string) []string {
	a, _ := s[name].(Array)
	out := make([]string, 0, len(a))
	for _, v := range a {
		switch t := v.(type) {
		case string:
			out = append(out, t)
		case int:
			out = append(out, strconv.Itoa(t))
		}
	}
	return out
}
