package api

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/qri-io/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const maxBodyBytes = 1 << 20

// Request schema names, matching files under schemas/.
const (
	schemaSignup            = "signup"
	schemaLogin             = "login"
	schemaCreateJob         = "create_job"
	schemaApply             = "apply"
	schemaApplicationStatus = "application_status"
)

// SchemaSet holds the compiled request body schemas keyed by name. A
// jsonschema.Schema registers its keywords lazily on first use and is not
// safe for concurrent validation, so Validate serializes access.
type SchemaSet struct {
	mu      sync.Mutex
	schemas map[string]*jsonschema.Schema
}

// LoadSchemas compiles every *.json file under schemas/ in fsys.
func LoadSchemas(fsys fs.FS) (*SchemaSet, error) {
	entries, err := fs.ReadDir(fsys, "schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas dir: %w", err)
	}

	set := &SchemaSet{schemas: make(map[string]*jsonschema.Schema)}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}

		b, err := fs.ReadFile(fsys, path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}

		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", e.Name(), err)
		}
		set.schemas[strings.TrimSuffix(e.Name(), ".json")] = rs
	}

	return set, nil
}

// MustLoadSchemas loads the request schemas embedded in the binary.
func MustLoadSchemas() *SchemaSet {
	set, err := LoadSchemas(schemaFS)
	if err != nil {
		panic(err)
	}
	return set
}

// ValidationError describes a request body rejected by its schema.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Validate checks body against the named schema.
func (s *SchemaSet) Validate(ctx context.Context, name string, body []byte) error {
	rs, ok := s.schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	s.mu.Lock()
	kerrs, err := rs.ValidateBytes(ctx, body)
	s.mu.Unlock()
	if err != nil {
		return &ValidationError{Problems: []string{"invalid JSON body"}}
	}
	if len(kerrs) == 0 {
		return nil
	}

	problems := make([]string, 0, len(kerrs))
	for _, ke := range kerrs {
		problems = append(problems, fmt.Sprintf("%s: %s", ke.PropertyPath, ke.Message))
	}

	return &ValidationError{Problems: problems}
}

// decodeBody reads the request body, validates it against the named schema
// and unmarshals it into dst. Failures are written as 400 responses and
// reported by returning false.
func (s *SchemaSet) decodeBody(w http.ResponseWriter, r *http.Request, name string, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request")
		return false
	}

	if err := s.Validate(r.Context(), name, body); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return false
		}
		loggerFromContext(r.Context()).Error("schema validation", "schema", name, "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return false
	}

	return true
}
