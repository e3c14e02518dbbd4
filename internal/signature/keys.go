package signature

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
)

// DecodeKey turns the hex text shown in the iFirma panel into raw key bytes.
// An empty string stands for an absent key and decodes to nil without error.
func DecodeKey(hexText string) ([]byte, error) {
	if hexText == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(hexText)
	if err != nil {
		return nil, ErrBadKeyFormat("", err)
	}
	return key, nil
}

// HMACSHA1 returns the lowercase hex HMAC-SHA1 of the UTF-8 message under key
func HMACSHA1(key []byte, message string) string {
	mac := hmac.New(sha1.New, key)
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
