package schema

import (
	"errors"
	"fmt"
	"testing"
)

func TestEscapeSegment(t *testing.T) {
	tts := []struct{ in, want string }{
		{in: "plain", want: "plain"},
		{in: "a~b", want: "a~0b"},
		{in: "a/b", want: "a~1b"},
		{in: "a%b", want: "a%25b"},
		{in: "~/%", want: "~0~1%25"},
	}
	for _, tt := range tts {
		if got := EscapeSegment(tt.in); got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPointerFromPath(t *testing.T) {
	if got := PointerFromPath(nil); got != "#" {
		t.Errorf("root pointer is %q", got)
	}
	if got := PointerFromPath([]string{"properties", "x", "items"}); got != "#/properties/x/items" {
		t.Errorf("got %q", got)
	}
}

func TestUnresolvedRef(t *testing.T) {
	_, err := Compile(mustParse(t, `{"$ref": "#/definitions/nope"}`), WithMetaValidation(false))
	if err == nil {
		t.Fatal("expected error")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

type stubFetcher map[string]string

func (f stubFetcher) Fetch(url string) ([]byte, error) {
	body, ok := f[url]
	if !ok {
		return nil, fmt.Errorf("no such url %q", url)
	}
	return []byte(body), nil
}

func TestRemoteRef(t *testing.T) {
	fetcher := stubFetcher{
		"https://example.com/pos.json": `{
			"definitions": {"pos": {"type": "integer", "minimum": 1}},
			"type": "integer"
		}`,
	}
	s, err := Compile(
		mustParse(t, `{"$ref": "https://example.com/pos.json#/definitions/pos"}`),
		WithMetaValidation(false), WithFetcher(fetcher),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(mustParse(t, `3`)); err != nil {
		t.Errorf("3: unexpected error %v", err)
	}
	if err := s.Validate(mustParse(t, `0`)); err == nil {
		t.Error("0: expected error")
	}
	// whole-document remote ref
	s, err = Compile(
		mustParse(t, `{"$ref": "https://example.com/pos.json"}`),
		WithMetaValidation(false), WithFetcher(fetcher),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(mustParse(t, `0`)); err != nil {
		t.Errorf("0: unexpected error %v", err)
	}
	if err := s.Validate(mustParse(t, `"x"`)); err == nil {
		t.Error(`"x": expected error`)
	}
}

func TestRemoteRefCached(t *testing.T) {
	calls := 0
	fetcher := FetcherFunc(func(url string) ([]byte, error) {
		calls++
		return []byte(`{"type": "string"}`), nil
	})
	s, err := Compile(mustParse(t, `{
		"properties": {
			"a": {"$ref": "https://example.com/s.json"},
			"b": {"$ref": "https://example.com/s.json"}
		}
	}`), WithMetaValidation(false), WithFetcher(fetcher))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(mustParse(t, `{"a": "x", "b": "y"}`)); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if calls != 1 {
		t.Errorf("fetched %d times, want 1", calls)
	}
}

func TestRemoteFetchFailure(t *testing.T) {
	fetcher := FetcherFunc(func(url string) ([]byte, error) {
		return nil, fmt.Errorf("boom")
	})
	_, err := Compile(
		mustParse(t, `{"$ref": "https://example.com/missing.json"}`),
		WithMetaValidation(false), WithFetcher(fetcher),
	)
	if err == nil {
		t.Fatal("expected error")
	}
}
