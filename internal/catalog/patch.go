package catalog

import (
	"github.com/mitchellh/mapstructure"

	"github.com/rushikulya/marketkit/internal/apperrs"
	"github.com/rushikulya/marketkit/internal/validate"
)

// decodePatch turns a loose field map into a typed patch DTO and validates
// the supplied fields. Unknown keys are rejected so a typo cannot silently
// drop an edit.
func decodePatch(fields map[string]interface{}, out interface{}) error {
	var meta mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		Metadata:         &meta,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return apperrs.Validation("All fields are required")
	}
	if err := dec.Decode(fields); err != nil {
		return apperrs.Validation("All fields are required")
	}
	if len(meta.Unused) > 0 {
		return apperrs.Validation("Unknown field: " + meta.Unused[0])
	}
	return validate.Struct(out)
}
