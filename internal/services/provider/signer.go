// File: internal/services/provider/signer.go
package provider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// SignURL appends the authorization, date and host query parameters the
// signed gateway requires. The canonical string must match the
// gateway's reconstruction byte for byte:
//
//	host: {host}
//	date: {date}
//	GET {path} HTTP/1.1
//
// with date in RFC-1123 GMT form. The HMAC-SHA256 digest of that string
// (keyed by the API secret) is base64-encoded, embedded into a header
// description, and that description base64-encoded again before URL
// encoding.
func SignURL(baseURL, apiKey, apiSecret string, now time.Time) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", NewConfigError(fmt.Sprintf("invalid provider base URL: %v", err))
	}
	if u.Host == "" {
		return "", NewConfigError("provider base URL has no host")
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	date := now.UTC().Format(http.TimeFormat)
	canonical := fmt.Sprintf("host: %s\ndate: %s\nGET %s HTTP/1.1", u.Host, date, path)

	mac := hmac.New(sha256.New, []byte(apiSecret))
	mac.Write([]byte(canonical))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	origin := fmt.Sprintf(`api_key="%s", algorithm="hmac-sha256", headers="host date request-line", signature="%s"`,
		apiKey, signature)
	authorization := base64.StdEncoding.EncodeToString([]byte(origin))

	query := url.Values{}
	query.Set("authorization", authorization)
	query.Set("date", date)
	query.Set("host", u.Host)

	return baseURL + "?" + query.Encode(), nil
}
