package raffle

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
)

const catalogSchemaURL = "catalog.schema.json"

//go:embed catalog.schema.json
var catalogSchemaJSON []byte

var catalogSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var doc interface{}
	if err := json.Unmarshal(catalogSchemaJSON, &doc); err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(catalogSchemaURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(catalogSchemaURL)
})

// validateCatalogJSON checks a catalog file before it is decoded into prizes
func validateCatalogJSON(data []byte) error {
	schema, err := catalogSchema()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextCatalogSchema, err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, describeSchemaError(err))
	}
	return nil
}

// describeSchemaError flattens the leaf causes into "/path: reason" lines
func describeSchemaError(err error) string {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	var lines []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			keyword := "invalid"
			if e.ErrorKind != nil {
				if kp := e.ErrorKind.KeywordPath(); len(kp) > 0 {
					keyword = strings.Join(kp, ".")
				}
			}
			lines = append(lines, "/"+strings.Join(e.InstanceLocation, "/")+": "+keyword)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)
	return strings.Join(lines, "; ")
}
