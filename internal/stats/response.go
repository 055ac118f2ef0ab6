package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// SuccessCode is the code the statistics API returns when a count is valid.
const SuccessCode = "001"

// CountResponse is the body of both student count endpoints.
type CountResponse struct {
	Code   string     `json:"code"`
	Result []CountRow `json:"result"`
}

type CountRow struct {
	StudentCount StudentCount `json:"STUDENT_COUNT"`
}

// StudentCount decodes STUDENT_COUNT, which the API sends either as a
// JSON number or as a numeric string.
type StudentCount int

func (c *StudentCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		data = []byte(s)
	}
	if len(data) == 0 {
		*c = 0
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("STUDENT_COUNT %q: %w", string(data), err)
	}
	*c = StudentCount(n)
	return nil
}
