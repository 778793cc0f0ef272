package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"passport/config"
	"passport/internal/domain/service"
	"passport/internal/errors"
)

// urlSafeCodec signs arbitrary small payloads together with an issuance
// timestamp, producing tokens safe to embed in links (email verification).
// Wire format: base64url(payload).base64url(unix-seconds).base64url(hmac).
type urlSafeCodec struct {
	secret []byte
	now    func() time.Time
}

// NewURLSafeCodec is the constructor for urlSafeCodec.
func NewURLSafeCodec(cfg *config.Config) (service.URLSafeCodec, error) {
	if cfg.Token.SecretKey == "" {
		return nil, errors.New("token secret key must be provided")
	}

	return &urlSafeCodec{
		secret: []byte(cfg.Token.SecretKey),
		now:    time.Now,
	}, nil
}

// Encode signs the payload with the current timestamp.
func (c *urlSafeCodec) Encode(payload map[string]string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal url-safe payload")
	}

	encodedBody := base64.RawURLEncoding.EncodeToString(body)
	encodedTS := base64.RawURLEncoding.EncodeToString(
		[]byte(strconv.FormatInt(c.now().Unix(), 10)),
	)

	signature := c.sign(encodedBody + "." + encodedTS)

	return encodedBody + "." + encodedTS + "." + signature, nil
}

// Decode verifies the signature first, then applies the age check:
// a token is expired when issuedAt+maxAge is strictly in the past.
func (c *urlSafeCodec) Decode(token string, maxAge time.Duration) (map[string]string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, service.ErrTokenMalformed
	}

	expected := c.sign(parts[0] + "." + parts[1])
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return nil, service.ErrTokenSignatureInvalid
	}

	rawTS, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, service.ErrTokenMalformed
	}
	issuedAt, err := strconv.ParseInt(string(rawTS), 10, 64)
	if err != nil {
		return nil, service.ErrTokenMalformed
	}

	if time.Unix(issuedAt, 0).Add(maxAge).Before(c.now()) {
		return nil, service.ErrTokenExpired
	}

	body, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, service.ErrTokenMalformed
	}

	payload := make(map[string]string)
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, service.ErrTokenMalformed
	}

	return payload, nil
}

func (c *urlSafeCodec) sign(signingInput string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(signingInput))

	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
