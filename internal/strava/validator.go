package strava

import (
	"bytes"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateActivityJSON checks one raw upstream record against the embedded
// activity schema before it is trusted by the aggregation layer.
func ValidateActivityJSON(b []byte) error {
	loader := gojsonschema.NewBytesLoader(b)
	schemaLoader := gojsonschema.NewStringLoader(ActivitySchema)
	result, err := gojsonschema.Validate(schemaLoader, loader)
	if err != nil {
		return err
	}
	if !result.Valid() {
		return fmt.Errorf("activity json invalid: %s", collect(result.Errors()))
	}
	return nil
}

func collect(errs []gojsonschema.ResultError) string {
	var buf bytes.Buffer
	for _, e := range errs {
		buf.WriteString(e.String())
		buf.WriteByte(';')
	}
	return buf.String()
}
