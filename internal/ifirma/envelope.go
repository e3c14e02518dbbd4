package ifirma

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Response field names of the vendor envelope
const (
	fieldResponse   = "response"
	fieldCode       = "Kod"
	fieldIdentifier = "Identyfikator"
)

// responseBody is the content of the vendor's top-level "response" object
type responseBody struct {
	Code       *int        `json:"Kod"`
	Message    string      `json:"Informacja"`
	Identifier json.Number `json:"Identyfikator"`
}

type envelope struct {
	Response *responseBody `json:"response"`
}

// decodeEnvelope parses data and insists on the "response" key
func decodeEnvelope(data []byte) (*responseBody, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, unknownError("malformed response", err)
	}
	if env.Response == nil {
		return nil, unknownError("response envelope missing \""+fieldResponse+"\"", nil)
	}
	return env.Response, nil
}

// envelopeError returns the taxonomy error carried by data, or nil when data
// is not an envelope or reports success
func envelopeError(data []byte) *APIError {
	body, err := decodeEnvelope(data)
	if err != nil || body.Code == nil || *body.Code == CodeSuccess {
		return nil
	}
	return ErrorFromCode(*body.Code, body.Message)
}

// checkStatus returns nil for a success envelope and the mapped error otherwise
func checkStatus(data []byte) (*responseBody, error) {
	body, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	if body.Code != nil && *body.Code != CodeSuccess {
		return nil, ErrorFromCode(*body.Code, body.Message)
	}
	return body, nil
}

// parseIdentifier extracts the id of a created document from a success envelope
func parseIdentifier(data []byte) (int64, error) {
	body, err := checkStatus(data)
	if err != nil {
		return 0, err
	}
	if body.Identifier == "" {
		if body.Code == nil {
			return 0, unknownError("response carries neither "+fieldCode+" nor "+fieldIdentifier, nil)
		}
		return 0, unknownError("success response without "+fieldIdentifier, nil)
	}
	id, err := strconv.ParseInt(body.Identifier.String(), 10, 64)
	if err != nil {
		return 0, unknownError("invalid "+fieldIdentifier, err)
	}
	return id, nil
}

// looksLikeJSON reports whether data starts with a JSON object
func looksLikeJSON(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
}
