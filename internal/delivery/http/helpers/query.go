package helpers

import (
	"fmt"
	"net/http"
)

// RequireQuery returns the value of the named query parameter. When the
// parameter is absent it writes a 422 error and returns false; callers should
// return immediately in that case. A present but empty value is returned as is.
func RequireQuery(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	values, ok := r.URL.Query()[name]
	if !ok || len(values) == 0 {
		WriteJSONError(w, http.StatusUnprocessableEntity, fmt.Sprintf("query parameter %q is required", name))
		return "", false
	}
	return values[0], true
}
