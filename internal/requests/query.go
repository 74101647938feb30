// Package requests builds request descriptors for the Cognitive Services REST APIs.
//
// Every builder is a pure function: given identifiers and parameters it returns a
// fully populated domain.Request. Builders never validate their input; malformed
// values produce malformed descriptors that the service rejects on execution.
package requests

import (
	"encoding/json"

	"github.com/gorilla/schema"
)

var queryEncoder = schema.NewEncoder()

// encodeQuery flattens a schema-tagged struct into single-valued query parameters.
// Returns nil when the struct encodes to no parameters.
func encodeQuery(src any) map[string]string {
	values := make(map[string][]string)
	if err := queryEncoder.Encode(src, values); err != nil {
		// Only reachable with unsupported field types, which the builders never use.
		panic("requests: encode query: " + err.Error())
	}
	if len(values) == 0 {
		return nil
	}

	query := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}
	return query
}

// encodeBody serializes a request payload. Payload types are plain structs of
// strings, so marshaling cannot fail.
func encodeBody(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic("requests: encode body: " + err.Error())
	}
	return string(data)
}
