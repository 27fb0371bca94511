package server

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxNicknameLength = 32

var validate = validator.New()

// decodePayload unmarshals a message payload and runs its validate tags.
func decodePayload(data json.RawMessage, out any) error {
	if len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return err
		}
	}
	return validate.Struct(out)
}

// sanitizeNickname collapses runs of whitespace and caps the length. An
// empty result lets the room assign a default name.
func sanitizeNickname(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	cleaned := strings.Join(fields, " ")
	if len(cleaned) > maxNicknameLength {
		cleaned = cleaned[:maxNicknameLength]
	}
	return cleaned
}
