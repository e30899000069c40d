package middleware

import (
	"encoding/json"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ImageGuard answers 404 with a JSON error for requests under prefix whose
// file does not exist in dir, instead of letting the file server reply with
// its plain-text 404. Directories count as missing.
func ImageGuard(prefix, dir string) func(next http.Handler) http.Handler {
	prefix = "/" + strings.Trim(prefix, "/") + "/"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}

			if !imageExists(dir, strings.TrimPrefix(r.URL.Path, prefix)) {
				writeJSONError(w, http.StatusNotFound, "Image not found")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// imageExists resolves name inside dir; cleaning against "/" keeps ".."
// segments from escaping dir.
func imageExists(dir, name string) bool {
	clean := path.Clean("/" + name)
	if clean == "/" {
		return false
	}

	info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean)))
	return err == nil && !info.IsDir()
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
