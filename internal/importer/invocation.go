package importer

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Invocation is one parsed host call.
type Invocation struct {
	Action  string
	Options url.Values
}

// ParseInvocation splits a host call into its action and options. The action
// is the last segment of the path's URL path, the query may carry a leading "?".
func ParseInvocation(rawPath, query string) (Invocation, error) {
	u, err := url.Parse(rawPath)
	if err != nil {
		return Invocation{}, fmt.Errorf("parse path %q: %w", rawPath, err)
	}

	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	p = strings.Trim(p, "/")
	if p == "" {
		return Invocation{}, fmt.Errorf("%w: %q", ErrNoAction, rawPath)
	}

	opts, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		return Invocation{}, fmt.Errorf("parse options %q: %w", query, err)
	}

	return Invocation{Action: path.Base(p), Options: opts}, nil
}

// mediaTypes returns the media types of an import invocation, from the
// first of "mediatypes" and "mediatypes[]" that names any. Values may be
// comma separated; blanks are dropped.
func mediaTypes(opts url.Values) []string {
	for _, key := range []string{"mediatypes", "mediatypes[]"} {
		var out []string
		for _, v := range opts[key] {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
