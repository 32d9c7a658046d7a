package middlewares

import (
	"mime"
	"net/http"

	"github.com/mufasadev/easypay-receipts/internal/errors"
	"github.com/mufasadev/easypay-receipts/pkg/log"
)

// JSONContentTypeMiddleware rejects bodies declared as anything but JSON.
// A missing Content-Type is let through for curl and older dashboard builds.
func JSONContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			next.ServeHTTP(w, r)
			return
		}

		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			logger := log.GetLogger()
			logger.Error().Str("content_type", contentType).Msg(errors.ErrUnsupportedContentType)
			errors.HandleHTTPError(w, errors.NewBadRequestError(errors.ErrUnsupportedContentType))
			return
		}

		next.ServeHTTP(w, r)
	})
}
