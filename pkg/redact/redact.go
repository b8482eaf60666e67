// Package redact masks credentials before they reach log output.
package redact

import (
	"net/url"
	"strings"
)

const mask = "***"

// secretQueryParams are query parameters whose values carry credentials.
var secretQueryParams = map[string]bool{
	"authorization": true,
}

// Secret masks a credential, keeping the last four characters when the
// value is long enough to stay identifiable without being usable.
func Secret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return mask
	}
	return mask + value[len(value)-4:]
}

// URL masks credential-bearing query parameters and any userinfo password
// in a URL. Unparseable input is fully masked rather than passed through.
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return mask
	}
	query := u.Query()
	for name := range query {
		if secretQueryParams[strings.ToLower(name)] {
			query.Set(name, mask)
		}
	}
	u.RawQuery = query.Encode()
	if user := u.User; user != nil {
		if _, has := user.Password(); has {
			u.User = url.UserPassword(user.Username(), mask)
		}
	}
	return u.String()
}
