package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/pkg"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIP, err := pkg.ReadUserIP(r)
			if err != nil {
				userIP = "unknown"
			}
			log.WithFields(log.Fields{
				"request_id": RequestIDFromContext(r.Context()),
				"ip":         userIP,
				"ua":         r.Header.Get("User-Agent"),
			}).Tracef(" ====> request [%s] path: [%s]", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}
