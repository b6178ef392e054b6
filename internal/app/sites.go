package app

import (
	"bufio"
	"io"
	"net/url"
	"os"
	"strings"
)

// readSites parses one homepage URL per line. Blank lines and lines starting
// with '#' are skipped.
func readSites(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, scanner.Err()
}

func readSitesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readSites(f)
}

// homepageURL makes a site URL usable as a suffix base: discovery appends
// paths verbatim, so the homepage must end with "/". A missing scheme
// defaults to https; host case, query and fragment are dropped.
func homepageURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	u.Host = strings.ToLower(u.Host)
	u.RawQuery = ""
	u.Fragment = ""
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// dedupe keeps the first occurrence of each site.
func dedupe(sites []string) []string {
	seen := make(map[string]bool, len(sites))
	out := make([]string, 0, len(sites))
	for _, s := range sites {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
