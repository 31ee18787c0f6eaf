package healthcheck

import "net/http"

// Handler answers the status check on listeners without a middleware chain
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		w.Write([]byte("success\n"))
	})
}
