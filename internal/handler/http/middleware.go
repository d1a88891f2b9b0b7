package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/meridianhome/storefront/pkg/httputil"
)

type contextKey string

const cartIDKey contextKey = "cart_id"

// maxBodySize caps request bodies at 1 MiB. Catalog and checkout payloads
// are tiny; anything larger is abuse.
const maxBodySize = 1 << 20

// CartIDFromHeader extracts the shopper's cart ID from the X-Cart-ID header
// and stores it in the request context. Requests without the header get a
// 400; there is no cart to operate on.
func CartIDFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cartID := strings.TrimSpace(r.Header.Get("X-Cart-ID"))
		if cartID == "" {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:    "INVALID_PARAMETER",
					Message: "X-Cart-ID header is required",
				},
			})
			return
		}

		ctx := context.WithValue(r.Context(), cartIDKey, cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CartID returns the cart ID placed in context by CartIDFromHeader.
func CartID(ctx context.Context) string {
	id, _ := ctx.Value(cartIDKey).(string)
	return id
}

// ContentTypeJSON rejects mutating requests whose Content-Type is not JSON.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "INVALID_INPUT",
						Message: "Content-Type must be application/json",
					},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
