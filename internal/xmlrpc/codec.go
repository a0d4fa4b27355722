package xmlrpc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the dateTime.iso8601 format written on the wire.
const DateLayout = "20060102T15:04:05"

var dateLayouts = []string{
	DateLayout,
	"2006-01-02T15:04:05",
	"20060102T15:04:05Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"20060102T150405",
	"20060102T150405Z",
}

var ErrMalformed = errors.New("malformed XML-RPC document")

// Struct and Array are the decoded forms of <struct> and <array>. Scalars decode to string, int, bool, float64,
// time.Time and []byte.
type (
	Struct = map[string]any
	Array  = []any
)

type value struct {
	Text     string     `xml:",chardata"`
	String   *string    `xml:"string"`
	Int      *string    `xml:"int"`
	I4       *string    `xml:"i4"`
	Boolean  *string    `xml:"boolean"`
	Double   *string    `xml:"double"`
	DateTime *string    `xml:"dateTime.iso8601"`
	Base64   *string    `xml:"base64"`
	Struct   *structVal `xml:"struct"`
	Array    *arrayVal  `xml:"array"`
}

type member struct {
	Name  string `xml:"name"`
	Value value  `xml:"value"`
}

type structVal struct {
	Members []member `xml:"member"`
}

type arrayVal struct {
	Values []value `xml:"data>value"`
}

type param struct {
	Value value `xml:"value"`
}

type methodCall struct {
	XMLName xml.Name `xml:"methodCall"`
	Method  string   `xml:"methodName"`
	Params  []param  `xml:"params>param"`
}

type methodResponse struct {
	XMLName xml.Name  `xml:"methodResponse"`
	Params  []param   `xml:"params>param,omitempty"`
	Fault   *faultVal `xml:"fault,omitempty"`
}

type faultVal struct {
	Value value `xml:"value"`
}

// DecodeCall reads a <methodCall> document.
func DecodeCall(r io.Reader) (method string, params Params, err error) {
	var call methodCall
	if err = xml.NewDecoder(r).Decode(&call); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	method = strings.TrimSpace(call.Method)
	if method == "" {
		return "", nil, fmt.Errorf("%w: missing method name", ErrMalformed)
	}
	params = make(Params, 0, len(call.Params))
	for i, p := range call.Params {
		v, err := p.Value.decode()
		if err != nil {
			return "", nil, fmt.Errorf("%w: parameter %d: %w", ErrMalformed, i, err)
		}
		params = append(params, v)
	}
	return method, params, nil
}

// DecodeResponse reads a <methodResponse> document. A fault is returned as a *Fault error.
func DecodeResponse(r io.Reader) (any, error) {
	var res methodResponse
	if err := xml.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if res.Fault != nil {
		v, err := res.Fault.Value.decode()
		if err != nil {
			return nil, fmt.Errorf("%w: fault: %w", ErrMalformed, err)
		}
		s, _ := v.(Struct)
		f := &Fault{}
		f.Code, _ = s["faultCode"].(int)
		f.Message, _ = s["faultString"].(string)
		return nil, f
	}
	if len(res.Params) == 0 {
		return nil, nil
	}
	return res.Params[0].Value.decode()
}

// EncodeCall writes a <methodCall> document, as sent to a remote server.
func EncodeCall(method string, params ...any) ([]byte, error) {
	call := methodCall{Method: method, Params: make([]param, 0, len(params))}
	for i, p := range params {
		v, err := encode(p)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		call.Params = append(call.Params, param{Value: v})
	}
	return marshal(call)
}

// EncodeResponse writes a <methodResponse> carrying a single value.
func EncodeResponse(result any) ([]byte, error) {
	v, err := encode(result)
	if err != nil {
		return nil, err
	}
	return marshal(methodResponse{Params: []param{{Value: v}}})
}

// EncodeFault writes a <methodResponse> carrying a fault.
func EncodeFault(f *Fault) ([]byte, error) {
	v, err := encode(Struct{"faultCode": f.Code, "faultString": f.Message})
	if err != nil {
		return nil, err
	}
	return marshal(methodResponse{Fault: &faultVal{Value: v}})
}

func marshal(doc any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v value) decode() (any, error) {
	switch {
	case v.String != nil:
		return *v.String, nil
	case v.Int != nil:
		return strconv.Atoi(strings.TrimSpace(*v.Int))
	case v.I4 != nil:
		return strconv.Atoi(strings.TrimSpace(*v.I4))
	case v.Boolean != nil:
		switch strings.TrimSpace(*v.Boolean) {
		case "1", "true":
			return true, nil
		case "0", "false":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean %q", *v.Boolean)
	case v.Double != nil:
		return strconv.ParseFloat(strings.TrimSpace(*v.Double), 64)
	case v.DateTime != nil:
		return parseDate(strings.TrimSpace(*v.DateTime))
	case v.Base64 != nil:
		return base64.StdEncoding.DecodeString(strings.Join(strings.Fields(*v.Base64), ""))
	case v.Struct != nil:
		s := make(Struct, len(v.Struct.Members))
		for _, m := range v.Struct.Members {
			mv, err := m.Value.decode()
			if err != nil {
				return nil, fmt.Errorf("member %s: %w", m.Name, err)
			}
			s[strings.TrimSpace(m.Name)] = mv
		}
		return s, nil
	case v.Array != nil:
		a := make(Array, 0, len(v.Array.Values))
		for _, e := range v.Array.Values {
			ev, err := e.decode()
			if err != nil {
				return nil, err
			}
			a = append(a, ev)
		}
		return a, nil
	}
	// A value without a type element is a string.
	return v.Text, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid dateTime.iso8601 %q", s)
}

func encode(x any) (v value, err error) {
	str := func(s string) *string { return &s }
	switch t := x.(type) {
	case nil:
		v.String = str("")
	case string:
		v.String = str(t)
	case int:
		v.Int = str(strconv.Itoa(t))
	case int64:
		v.Int = str(strconv.FormatInt(t, 10))
	case int32:
		v.Int = str(strconv.FormatInt(int64(t), 10))
	case bool:
		if t {
			v.Boolean = str("1")
		} else {
			v.Boolean = str("0")
		}
	case float64:
		v.Double = str(strconv.FormatFloat(t, 'f', -1, 64))
	case time.Time:
		v.DateTime = str(t.UTC().Format(DateLayout))
	case []byte:
		v.Base64 = str(base64.StdEncoding.EncodeToString(t))
	case Struct:
		v.Struct = &structVal{Members: make([]member, 0, len(t))}
		// Sorted names keep the output stable.
		names := make([]string, 0, len(t))
		for k := range t {
			names = append(names, k)
		}
		slices.Sort(names)
		for _, k := range names {
			mv, err := encode(t[k])
			if err != nil {
				return v, fmt.Errorf("member %s: %w", k, err)
			}
			v.Struct.Members = append(v.Struct.Members, member{Name: k, Value: mv})
		}
	case Array:
		v.Array = &arrayVal{Values: make([]value, 0, len(t))}
		for _, e := range t {
			ev, err := encode(e)
			if err != nil {
				return v, err
			}
			v.Array.Values = append(v.Array.Values, ev)
		}
	case []string:
		a := make(Array, len(t))
		for i, s := range t {
			a[i] = s
		}
		return encode(a)
	case []Struct:
		a := make(Array, len(t))
		for i, s := range t {
			a[i] = s
		}
		return encode(a)
	default:
		err = fmt.Errorf("unsupported type %T", x)
	}
	return v, err
}
