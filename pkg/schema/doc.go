// Package schema validates the shape of decoded JSON objects.
//
// A Schema maps field names to Types. The density parser builds one per node
// kind and runs it before decoding, so that a wrong shape is reported with the
// offending key instead of a decoder message:
//
//	s := schema.Schema{
//	    "Scale":      schema.Optional(schema.Float()),
//	    "Octaves":    schema.Optional(schema.Int()),
//	    "ReturnType": schema.Optional(schema.Enum("Distance", "CellValue")),
//	    "Inputs":     schema.Optional(schema.Slice(schema.OneOf(schema.Float(), schema.Object()))),
//	}
//
//	if err := schema.Validate(s, raw); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        // *schema.ValidationError carries Key and Reason
//	    }
//	}
//
// Schemas serialize to and from a map of type names ("number?", "[object]",
// "string|number"), which is what the CLI prints for each node kind.
package schema
