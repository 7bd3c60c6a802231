package draftpipe

import (
	"net/netip"
	"net/url"
	"strings"
)

// privateRanges are the RFC1918 blocks plus loopback that fetch targets
// must never resolve into.
var privateRanges = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("::1/128"),
}

// blockedExtensions are path suffixes that indicate a non-HTML resource.
var blockedExtensions = []string{
	".pdf", ".zip", ".exe", ".dmg", ".iso",
	".png", ".jpg", ".jpeg", ".gif", ".mp4", ".mp3",
}

// ValidateTargetURL checks a candidate URL against protocol, private-network
// and file-type policies. It is a pure function of the URL string and
// performs no network access; checks short-circuit on the first failure.
func ValidateTargetURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Errorf(EINVALID, "invalid URL format")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "invalid protocol %q: only HTTP/HTTPS allowed", u.Scheme)
	}

	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return Errorf(EINVALID, "localhost not allowed")
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		for _, p := range privateRanges {
			if p.Contains(addr.Unmap()) {
				return Errorf(EINVALID, "private network IPs not allowed")
			}
		}
	}

	path := strings.ToLower(u.Path)
	for _, ext := range blockedExtensions {
		if strings.HasSuffix(path, ext) {
			return Errorf(EINVALID, "non-HTML endpoint detected (file extension %s)", ext)
		}
	}

	return nil
}
