package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/signadot/jsonschema"
	"github.com/signadot/jsonschema/parse"
	"github.com/signadot/jsonschema/schema"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = &document{
		uri:     uri,
		content: content,
		version: version,
	}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

var compiledSchema *jsonschema.Schema

// loadSchema compiles the schema named by initializationOptions
// {"schemaPath": "..."}. Without one, only parse diagnostics are
// published.
func (s *Server) loadSchema(initOpts any) {
	opts, ok := initOpts.(map[string]any)
	if !ok {
		return
	}
	path, ok := opts["schemaPath"].(string)
	if !ok {
		return
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return
	}
	compiled, err := jsonschema.CompileBytes(d)
	if err != nil {
		return
	}
	compiledSchema = compiled
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}
	diagnostics := s.validateDocument(doc)
	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

func (s *Server) validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	var err error
	if compiledSchema == nil {
		_, err = parse.ParseString(doc.content)
	} else {
		err = compiledSchema.Validate(doc.content)
	}
	if err == nil {
		return diagnostics
	}
	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		// parse error; no structured position, flag the document start
		return append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: 0, Character: 1},
			},
			Severity: protocol.DiagnosticSeverityError,
			Source:   lsName,
			Message:  fmt.Sprintf("parse error: %v", err),
		})
	}
	for _, it := range ve.Errors() {
		line, col := it.Pos.LineCol()
		if line < 0 {
			line, col = 0, 0
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(line), Character: uint32(col)},
				End:   protocol.Position{Line: uint32(line), Character: uint32(col + 1)},
			},
			Severity: protocol.DiagnosticSeverityError,
			Source:   lsName,
			Message:  it.Msg,
		})
	}
	return diagnostics
}
