package playlist

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var playlistIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{10,}$`)

// ParseRef resolves a playlist reference to a playlist ID. The reference may
// be a full youtube.com or youtu.be URL carrying a list parameter, or a bare
// playlist ID.
func ParseRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty playlist reference", ErrInvalidItem)
	}

	if !strings.Contains(ref, "/") && !strings.Contains(ref, "?") {
		if playlistIDPattern.MatchString(ref) {
			return ref, nil
		}
		return "", fmt.Errorf("%w: malformed playlist id %q", ErrInvalidItem, ref)
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: parse url: %v", ErrInvalidItem, err)
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	if host != "youtube.com" && host != "youtu.be" && !strings.HasSuffix(host, ".youtube.com") {
		return "", fmt.Errorf("%w: unsupported host %q", ErrInvalidItem, parsed.Hostname())
	}
	id := parsed.Query().Get("list")
	if id == "" {
		return "", fmt.Errorf("%w: url carries no list parameter", ErrInvalidItem)
	}
	if !playlistIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: malformed playlist id %q", ErrInvalidItem, id)
	}
	return id, nil
}
