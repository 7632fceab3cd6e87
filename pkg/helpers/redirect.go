package helpers

import "net/url"

// NextTarget extracts the `next` query parameter from a referer URL, e.g.
// /accounts/login/?next=/cart/checkout/. Anything unparsable falls back to
// the default target so a bad referer can never break a login.
func NextTarget(referer, def string) string {
	if referer == "" {
		return def
	}
	u, err := url.Parse(referer)
	if err != nil {
		return def
	}
	if next := u.Query().Get("next"); next != "" {
		return next
	}
	return def
}
