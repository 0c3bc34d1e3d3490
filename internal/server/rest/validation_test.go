package rest

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

func TestCheckAllowedKeys(t *testing.T) {
	raw := map[string]json.RawMessage{"name": nil, "age": nil}
	if err := checkAllowedKeys(raw, allowedUserUpdates); err != nil {
		t.Fatalf("allowed keys rejected: %v", err)
	}

	raw["height"] = nil
	err := checkAllowedKeys(raw, allowedUserUpdates)
	if !errors.Is(err, common.ErrInvalidUpdates) {
		t.Fatalf("want ErrInvalidUpdates, got %v", err)
	}
}
