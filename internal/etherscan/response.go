package etherscan

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmagro/defitax/internal/numeric"
)

// StatusOK is the status value the explorer sends with a successful result.
const StatusOK = 1

// Response is the explorer's status/message/result envelope. It only lives
// long enough for the fetcher to pull Result out of it.
//
// Status is not checked against StatusOK here: explorers answer "no
// transactions found" with status 0 and an empty result, so the decision is
// left to the caller.
type Response struct {
	Status  uint64
	Message string
	Result  []TokenTransfer
}

// ParseResponse decodes a complete explorer response body. Any malformed
// record fails the whole envelope; no partial result is returned.
func ParseResponse(data []byte) (*Response, error) {
	var r Response
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// UnmarshalJSON implements json.Unmarshaler. The receiver is only written on
// success.
func (r *Response) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("envelope: %w", err)
	}
	if obj == nil {
		return fmt.Errorf("envelope: %w, got null", ErrNotText)
	}

	statusText, err := lookupText(obj, []string{"status"})
	if errors.Is(err, ErrNotText) {
		return fmt.Errorf("envelope status: %w: %w", numeric.ErrMalformedNumber, err)
	}
	if err != nil {
		return fmt.Errorf("envelope status: %w", err)
	}
	status, err := numeric.ParseUint64(statusText)
	if err != nil {
		return fmt.Errorf("envelope status: %w", err)
	}

	message, err := lookupText(obj, []string{"message"})
	if err != nil {
		return fmt.Errorf("envelope message: %w", err)
	}

	rawResult, ok := obj["result"]
	if !ok {
		return fmt.Errorf("envelope result: %w", ErrMissingField)
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(rawResult, &elems); err != nil || elems == nil {
		// Explorers put the error text in result when a request is rejected.
		return fmt.Errorf("envelope result: expected array, got %s (status %d, message %q)",
			truncateRaw(rawResult), status, message)
	}

	result := make([]TokenTransfer, len(elems))
	for i, elem := range elems {
		if err := result[i].UnmarshalJSON(elem); err != nil {
			return fmt.Errorf("result[%d]: %w", i, err)
		}
	}

	*r = Response{Status: status, Message: message, Result: result}
	return nil
}
