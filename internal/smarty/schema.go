package smarty

import (
	"log"

	"github.com/xeipuuv/gojsonschema"
)

// candidateSchema describes the shape of the service's candidate array. It is
// a soft contract: mismatches are logged so payload drift is visible, but the
// response is still persisted verbatim.
const candidateSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["delivery_line_1", "last_line"],
		"properties": {
			"input_index": {"type": "integer"},
			"candidate_index": {"type": "integer"},
			"delivery_line_1": {"type": "string"},
			"last_line": {"type": "string"},
			"delivery_point_barcode": {"type": "string"},
			"components": {"type": "object"},
			"metadata": {"type": "object"},
			"analysis": {"type": "object"}
		}
	}
}`

func checkCandidateSchema(body []byte) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(candidateSchema),
		gojsonschema.NewBytesLoader(body),
	)
	if err != nil {
		log.Printf("smarty: schema check failed to run: %v", err)
		return
	}
	for _, desc := range result.Errors() {
		log.Printf("smarty: unexpected candidate payload shape: %s", desc)
	}
}
