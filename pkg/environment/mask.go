// pkg/environment/mask.go

package environment

import (
	"net/url"
	"strings"
)

// MaskURI hides credentials in a connection string for display and logging.
// Unparseable strings are masked conservatively rather than echoed back.
func MaskURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if u.User != nil {
			if _, has := u.User.Password(); has {
				u.User = url.UserPassword(u.User.Username(), "****")
				return u.String()
			}
		}
		return uri
	}

	// Fallback for strings url.Parse rejects: mask everything between
	// "://" and "@" when both markers are present.
	schemeEnd := strings.Index(uri, "://")
	at := strings.LastIndex(uri, "@")
	if schemeEnd >= 0 && at > schemeEnd {
		return uri[:schemeEnd+3] + "****" + uri[at:]
	}
	return uri
}
