// Package validation checks records and command input.
//
// Struct tags are checked with go-playground/validator:
//
//	type Product struct {
//	    ID   int    `validate:"gt=0"`
//	    Name string `validate:"required"`
//	}
//	err := validation.Validate(p)
//
// Ad-hoc input uses the collecting Validator:
//
//	v := validation.New()
//	v.OneOf("fields", fields, []string{"all", "names"})
//	err := v.Validate()
//
// Both return an *errors.AppError with code INVALID_INPUT and per-field details.
package validation
