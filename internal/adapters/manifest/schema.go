package manifest

import (
	"bytes"
	"embed"
	"errors"
	"strconv"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/zerr"
)

//go:embed schema/*.json
var schemaFS embed.FS

const (
	manifestSchemaURL = "inmemory://natdeps/manifest.schema.json"
	lockSchemaURL     = "inmemory://natdeps/lock.schema.json"
)

// manifestDTO is the on-disk shape of deps.json.
type manifestDTO struct {
	CatalogURL string       `json:"catalog-url"`
	Packages   []packageDTO `json:"packages"`
}

// lockDTO is the on-disk shape of deps.lock.
type lockDTO struct {
	Packages []packageDTO `json:"packages"`
}

type packageDTO struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type schemas struct {
	manifest *jsonschema.Schema
	lock     *jsonschema.Schema
}

var compiledSchemas = sync.OnceValues(func() (*schemas, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	for url, file := range map[string]string{
		manifestSchemaURL: "schema/manifest.schema.json",
		lockSchemaURL:     "schema/lock.schema.json",
	} {
		data, err := schemaFS.ReadFile(file)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to read embedded schema")
		}
		if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to add schema resource"), "schema", file)
		}
	}

	manifest, err := compiler.Compile(manifestSchemaURL)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to compile manifest schema")
	}
	lock, err := compiler.Compile(lockSchemaURL)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to compile lock schema")
	}

	return &schemas{manifest: manifest, lock: lock}, nil
})

// schemaViolation converts a validation failure into ErrSchema naming the offending location.
func schemaViolation(err error, path string) error {
	location, message := "/", err.Error()

	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		for len(ve.Causes) > 0 {
			ve = ve.Causes[0]
		}
		location, message = ve.InstanceLocation, ve.Message
		if location == "" {
			location = "/"
		}
	}

	violation := zerr.With(zerr.Wrap(domain.ErrSchema, message), "path", path)
	return zerr.With(violation, "location", location)
}

// duplicateViolation reports the second occurrence of a package name.
func duplicateViolation(name string, index int, path string) error {
	err := zerr.With(zerr.Wrap(domain.ErrSchema, "duplicate package name"), "path", path)
	err = zerr.With(err, "package", name)
	return zerr.With(err, "location", "/packages/"+strconv.Itoa(index))
}

// nameViolation reports a package name that cannot be a directory below the install root.
func nameViolation(name string, index int, path string) error {
	err := zerr.With(zerr.Wrap(errors.Join(domain.ErrSchema, domain.ErrInvalidPackageName), "unusable package name"), "path", path)
	err = zerr.With(err, "package", name)
	return zerr.With(err, "location", "/packages/"+strconv.Itoa(index)+"/name")
}
