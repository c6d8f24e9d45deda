package ai

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/kaptinlin/jsonrepair"
)

// GenerateSchema builds the JSON Schema for a response type, used to pin the
// model's structured output to the extraction-result shape. Additional
// properties are disallowed and definitions are inlined, which is what the
// chat-completion strict mode expects.
func GenerateSchema(value any) any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return reflector.Reflect(reflect.New(t).Interface())
}

// UnmarshalFlexible parses a model response into out, tolerating the ways
// extraction models mangle JSON in practice: the object double-encoded as a
// JSON string, an opening brace emitted twice, unquoted keys, single quotes,
// trailing commas and unterminated objects.
//
// The strategies run in order: plain unmarshal, unwrap of a double-encoded
// string, then jsonrepair on the brace-trimmed payload. Only when all of
// them fail is an error returned, carrying the offending payload so the
// extraction layer can log it before degrading to an empty result.
//
// Example:
//
//	var res Result
//	UnmarshalFlexible(`{"equations": ["Navier-Stokes"]}`, &res)    // plain
//	UnmarshalFlexible(`"{\"equations\": []}"`, &res)               // double-encoded
//	UnmarshalFlexible(`{equations: ['Navier-Stokes'],}`, &res)     // repaired
func UnmarshalFlexible(input string, out any) error {
	input = strings.TrimSpace(input)

	if err := json.Unmarshal([]byte(input), out); err == nil {
		return nil
	}

	// Some models serialize the whole object a second time, as a JSON string.
	var unwrapped string
	if err := json.Unmarshal([]byte(input), &unwrapped); err == nil {
		unwrapped = strings.TrimSpace(unwrapped)
		if err := json.Unmarshal([]byte(unwrapped), out); err == nil {
			return nil
		}
		input = unwrapped
	}

	repaired, err := jsonrepair.JSONRepair(trimDoubledBrace(input))
	if err != nil {
		return fmt.Errorf("model response is not repairable JSON: %w (payload: %s)", err, input)
	}
	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf(
			"repaired model response does not match the expected shape: payload=%s repaired=%s",
			input, repaired,
		)
	}
	return nil
}

// trimDoubledBrace drops the first of two consecutive opening braces, a
// failure mode seen when a model restarts its answer mid-object.
func trimDoubledBrace(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		rest := strings.TrimSpace(s[1:])
		if strings.HasPrefix(rest, "{") {
			return rest
		}
	}
	return s
}
