package signature

import "fmt"

// Key names the vendor expects as part of the signed text
const (
	KeyNameInvoice    = "faktura"
	KeyNameSubscriber = "abonent"
)

// SigningString builds the exact text the vendor verifies:
// url, username, key name and body concatenated with no separators.
// GET requests pass a nil body.
func SigningString(url, username, keyName string, body []byte) string {
	return url + username + keyName + string(body)
}

// AuthenticationHeader formats the IAPIS Authentication header value
func AuthenticationHeader(username, digest string) string {
	return fmt.Sprintf("IAPIS user=%s, hmac-sha1=%s", username, digest)
}

// Signer signs requests for one key scope of one account
type Signer struct {
	Username string
	KeyName  string
	Key      []byte
}

// NewSigner creates a signer; a nil key yields a signer whose Sign fails
func NewSigner(username, keyName string, key []byte) *Signer {
	return &Signer{
		Username: username,
		KeyName:  keyName,
		Key:      key,
	}
}

// Sign returns the Authentication header value for a request to url with body
func (s *Signer) Sign(url string, body []byte) (string, error) {
	if len(s.Key) == 0 {
		return "", ErrKeyNotConfigured(s.KeyName)
	}
	text := SigningString(url, s.Username, s.KeyName, body)
	return AuthenticationHeader(s.Username, HMACSHA1(s.Key, text)), nil
}
