package schema

import (
	"fmt"
	"strings"

	"github.com/signadot/jsonschema/debug"
	"github.com/signadot/jsonschema/parse"
	"github.com/signadot/jsonschema/token"
)

// Resolver is the per-root registry mapping JSON-Pointer fragments to
// compiled schemas, plus the queue of references awaiting resolution.
// It is created at root compile, shared by all descendants, and
// read-only after root compilation completes.
type Resolver struct {
	references     map[string]*Schema
	refsToValidate []pendingRef
	remoteCache    map[string]*Schema
	fetcher        Fetcher
}

type pendingRef struct {
	ref string
	pos *token.Pos
}

func newResolver(fetcher Fetcher) *Resolver {
	if fetcher == nil {
		fetcher = &HTTPFetcher{}
	}
	return &Resolver{
		references:  map[string]*Schema{},
		remoteCache: map[string]*Schema{},
		fetcher:     fetcher,
	}
}

// EscapeSegment escapes one JSON-Pointer path segment.
func EscapeSegment(seg string) string {
	seg = strings.ReplaceAll(seg, "~", "~0")
	seg = strings.ReplaceAll(seg, "/", "~1")
	// engine-specific extension, not part of RFC 6901
	seg = strings.ReplaceAll(seg, "%", "%25")
	return seg
}

// PointerFromPath derives the pointer fragment for a path. The empty
// path is the root "#".
func PointerFromPath(path []string) string {
	if len(path) == 0 {
		return "#"
	}
	segs := make([]string, len(path))
	for i, seg := range path {
		segs[i] = EscapeSegment(seg)
	}
	return "#/" + strings.Join(segs, "/")
}

// AddReference registers a compiled schema under its pointer path.
// Redefinition of a path overwrites silently.
func (r *Resolver) AddReference(path []string, s *Schema) {
	ptr := PointerFromPath(path)
	if debug.Resolve() {
		debug.Logf("resolver: register %s\n", ptr)
	}
	r.references[ptr] = s
}

// AddRefToResolve queues a $ref occurrence for the sweep at the end
// of root compilation.
func (r *Resolver) AddRefToResolve(ref string, pos *token.Pos) {
	r.refsToValidate = append(r.refsToValidate, pendingRef{ref: ref, pos: pos})
}

// ValidateAllRefs looks up every queued reference, collecting the
// unresolved ones.
func (r *Resolver) ValidateAllRefs() []ErrorItem {
	var items []ErrorItem
	for _, p := range r.refsToValidate {
		if _, err := r.GetSchema(p.ref, p.pos); err != nil {
			items = append(items, errItem(p.pos, "unresolved reference %q", p.ref))
		}
	}
	r.refsToValidate = nil
	return items
}

// GetSchema resolves a reference string. Local fragments are looked
// up in the registry; anything else splits into an absolute URL and
// an optional fragment, the URL is fetched (memoized) and compiled as
// a standalone schema, and the fragment is resolved in that schema's
// resolver.
func (r *Resolver) GetSchema(ref string, pos *token.Pos) (*Schema, error) {
	if strings.HasPrefix(ref, "#") {
		s, ok := r.references[ref]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrRef, ref)
		}
		return s, nil
	}
	url, frag := ref, ""
	if i := strings.Index(ref, "#"); i >= 0 {
		url, frag = ref[:i], ref[i:]
	}
	root, err := r.remoteRoot(url, pos)
	if err != nil {
		return nil, err
	}
	if frag == "" || frag == "#" {
		return root, nil
	}
	return root.resolver.GetSchema(frag, pos)
}

func (r *Resolver) remoteRoot(url string, pos *token.Pos) (*Schema, error) {
	if s, ok := r.remoteCache[url]; ok {
		return s, nil
	}
	if debug.Fetch() {
		debug.Logf("resolver: fetching %s\n", url)
	}
	d, err := r.fetcher.Fetch(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrRef, url, err)
	}
	node, err := parse.Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrRef, url, err)
	}
	// remote roots skip meta validation; the fetching side opted in
	// for its own document only
	s, err := Compile(node, WithFetcher(r.fetcher), WithMetaValidation(false))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrRef, url, err)
	}
	r.remoteCache[url] = s
	return s, nil
}
