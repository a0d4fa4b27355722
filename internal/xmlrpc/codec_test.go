package xmlrpc

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const newPostCall = `<?xml version="1.0"?>
<methodCall>
  <methodName>metaWeblog.newPost</methodName>
  <params>
    <param><value>1</value></param>
    <param><value><string>alice</string></value></param>
    <param><value><string></string></value></param>
    <param><value><struct>
      <member><name>title</name><value>Hello &amp; welcome</value></member>
      <member><name>dateCreated</name><value><dateTime.iso8601>20251016T08:30:00</dateTime.iso8601></value></member>
      <member><name>categories</name><value><array><data>
        <value><string>2</string></value>
        <value><i4>3</i4></value>
      </data></array></value></member>
      <member><name>bits</name><value><base64>aGVs
bG8=</base64></value></member>
      <member><name>rating</name><value><double>4.5</double></value></member>
    </struct></value></param>
    <param><value><boolean>1</boolean></value></param>
  </params>
</methodCall>`

func TestDecodeCall(t *testing.T) {
	method, params, err := DecodeCall(strings.NewReader(newPostCall))
	if err != nil {
		t.Fatal(err)
	}
	if method != "metaWeblog.newPost" {
		t.Errorf("unexpected method %q", method)
	}
	want := Params{
		"1",
		"alice",
		"",
		Struct{
			"title":       "Hello & welcome",
			"dateCreated": time.Date(2025, 10, 16, 8, 30, 0, 0, time.UTC),
			"categories":  Array{"2", 3},
			"bits":        []byte("hello"),
			"rating":      4.5,
		},
		true,
	}
	if diff := cmp.Diff(want, params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCallErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not xml", "post=1"},
		{"no method", "<methodCall><params/></methodCall>"},
		{"bad int", "<methodCall><methodName>m</methodName><params><param><value><int>x</int></value></param></params></methodCall>"},
		{"bad boolean", "<methodCall><methodName>m</methodName><params><param><value><boolean>2</boolean></value></param></params></methodCall>"},
		{"bad date", "<methodCall><methodName>m</methodName><params><param><value><dateTime.iso8601>yesterday</dateTime.iso8601></value></param></params></methodCall>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := DecodeCall(strings.NewReader(tt.doc)); !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestEncodeCallRoundTrip(t *testing.T) {
	created := time.Date(2025, 10, 16, 8, 30, 0, 0, time.UTC)
	body, err := EncodeCall("weblogUpdates.ping", "Test blog", "https://test.blog/blog/main/", Struct{
		"count":   int64(2),
		"created": created,
		"tags":    []string{"go", "blogs"},
		"draft":   false,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(body, []byte("<?xml")) {
		t.Errorf("expected an XML header, got %q", body[:10])
	}

	method, params, err := DecodeCall(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if method != "weblogUpdates.ping" {
		t.Errorf("unexpected method %q", method)
	}
	want := Params{"Test blog", "https://test.blog/blog/main/", Struct{
		"count":   2,
		"created": created,
		"tags":    Array{"go", "blogs"},
		"draft":   false,
	}}
	if diff := cmp.Diff(want, params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestResponses(t *testing.T) {
	body, err := EncodeResponse([]Struct{{"postid": "7", "title": "<b>x</b>"}})
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeResponse(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Array{Struct{"postid": "7", "title": "<b>x</b>"}}, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	body, err = EncodeFault(ErrInvalidPostID)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(body, []byte("<params>")) {
		t.Errorf("a fault must not carry params: %s", body)
	}
	_, err = DecodeResponse(bytes.NewReader(body))
	var f *Fault
	if !errors.As(err, &f) {
		t.Fatalf("expected a fault, got %v", err)
	}
	if diff := cmp.Diff(*ErrInvalidPostID, *f); diff != "" {
		t.Errorf("fault mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeUnsupported(t *testing.T) {
	if _, err := EncodeResponse(map[string]int{"a": 1}); err == nil {
		t.Error("expected an error for an unsupported type")
	}
}

func TestParams(t *testing.T) {
	p := Params{"12", 7, true, Struct{"title": "x"}}

	if s, err := p.String(1); err != nil || s != "7" {
		t.Errorf("String(1) = %q, %v", s, err)
	}
	if n, err := p.Int(0); err != nil || n != 12 {
		t.Errorf("Int(0) = %d, %v", n, err)
	}
	if b, err := p.Bool(2); err != nil || !b {
		t.Errorf("Bool(2) = %v, %v", b, err)
	}
	if b, err := p.Bool(9); err != nil || b {
		t.Errorf("a missing boolean reads as false, got %v, %v", b, err)
	}
	if _, err := p.Struct(0); AsFault(err).Code != CodeUnknown {
		t.Errorf("expected a parameter fault, got %v", err)
	}
	if _, err := p.String(4); AsFault(err).Code != CodeUnknown {
		t.Errorf("expected a missing parameter fault, got %v", err)
	}
}
