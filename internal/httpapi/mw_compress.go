package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// zstdWriter streams the response body through a zstd encoder.
type zstdWriter struct {
	http.ResponseWriter
	enc *zstd.Encoder
}

func (w *zstdWriter) Write(p []byte) (int, error) {
	return w.enc.Write(p)
}

// Compress zstd-encodes responses for clients that accept it.
func Compress(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")
		if !acceptsZstd(r.Header.Get("Accept-Encoding")) {
			next.ServeHTTP(w, r)
			return
		}
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest), zstd.WithEncoderConcurrency(1))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		defer enc.Close()

		w.Header().Set("Content-Encoding", "zstd")
		w.Header().Del("Content-Length")
		next.ServeHTTP(&zstdWriter{ResponseWriter: w, enc: enc}, r)
	})
}

// acceptsZstd reports whether an Accept-Encoding header lists zstd with a
// non-zero quality.
func acceptsZstd(header string) bool {
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(name), "zstd") {
			continue
		}
		qs, ok := strings.CutPrefix(strings.TrimSpace(params), "q=")
		if !ok {
			return true
		}
		q, err := strconv.ParseFloat(qs, 64)
		return err == nil && q > 0
	}
	return false
}
