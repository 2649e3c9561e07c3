package config

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

var (
	schemaOnce sync.Once
	schemaVal  cue.Value
	schemaErr  error
)

func compiledSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		schemaVal = ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
		schemaErr = schemaVal.Err()
	})
	return schemaVal, schemaErr
}

// ValidateSettings checks a raw settings map against the embedded CUE schema.
// Returned messages carry the offending config path. An empty slice means the
// settings conform.
func ValidateSettings(settings map[string]any) []string {
	schema, err := compiledSchema()
	if err != nil {
		return []string{fmt.Sprintf("internal schema error: %v", err)}
	}

	value := schema.Context().Encode(settings)
	if err := value.Err(); err != nil {
		return []string{fmt.Sprintf("could not encode settings: %v", err)}
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		var msgs []string
		for _, e := range cueerrors.Errors(err) {
			path := cueerrors.Path(e)
			if len(path) > 0 {
				msgs = append(msgs, fmt.Sprintf("%s: %s", pathString(path), e.Error()))
			} else {
				msgs = append(msgs, e.Error())
			}
		}
		return msgs
	}
	return nil
}

func pathString(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}
