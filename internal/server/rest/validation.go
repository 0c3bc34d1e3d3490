package rest

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// validate is shared by all handlers. Validator instances cache struct
// metadata and are safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// password must not contain the word "password" in any casing
	_ = v.RegisterValidation("notpassword", func(fl validator.FieldLevel) bool {
		return !strings.Contains(strings.ToLower(fl.Field().String()), "password")
	})
	return v
}

// checkAllowedKeys rejects a PATCH body containing any key outside the
// whitelist with common.ErrInvalidUpdates.
func checkAllowedKeys(raw map[string]json.RawMessage, allowed map[string]bool) error {
	for key := range raw {
		if !allowed[key] {
			return common.ErrInvalidUpdates
		}
	}
	return nil
}
