package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type subjectKey struct{}

// AuthRequired rejects requests whose verified token is missing or is not an
// access token, and stores the token subject in the request context. It must
// run after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			subject, err := jwtService.AccessSubject(token)
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey{}, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// SubjectFromContext returns the caller recorded by AuthRequired.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey{}).(string)
	return subject, ok && subject != ""
}
