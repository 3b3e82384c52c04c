// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views renders the server-side HTML pages.

Templates are embedded from templates/ and share layout.html. Each page is
parsed into its own template set so their "content" blocks do not collide:

	r, err := views.New()
	err = r.Results(w, views.ResultsPage{Poll: poll, Tally: tally})

Times are shown relative to now with go-humanize ("3 hours ago", "2 days
from now") and counts with thousands separators.
*/
package views
