package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ProductID identifies a catalog product. It is parsed once where data enters
// the system so cart lookups compare integers only.
type ProductID int64

// ParseProductID converts a textual identifier into a ProductID.
func ParseProductID(raw string) (ProductID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("product id is required")
	}
	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", raw)
	}
	if value < 0 {
		return 0, fmt.Errorf("invalid product id %q", raw)
	}
	return ProductID(value), nil
}

// String implements fmt.Stringer.
func (id ProductID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// UnmarshalJSON accepts both JSON numbers and numeric strings.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("product id must not be null")
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		parsed, err := ParseProductID(raw)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return fmt.Errorf("invalid product id %s", string(trimmed))
	}
	parsed, err := ParseProductID(number.String())
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
