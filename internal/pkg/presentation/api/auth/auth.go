package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/open-policy-agent/opa/v1/rego"
	"go.opentelemetry.io/otel"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

type accessContextKey struct{ name string }

var accessCtxKey = &accessContextKey{"access"}

var tracer = otel.Tracer("parking-space-mgmt/authz")

type Scope string

const (
	ScopeSpacesRead       Scope = "spaces:read"
	ScopeSpacesWrite      Scope = "spaces:write"
	ScopeReservationsRead Scope = "reservations:read"
	ScopeReservations     Scope = "reservations:write"
	ScopeCommands         Scope = "commands:write"
	ScopeDevicesRead      Scope = "devices:read"
)

var AnyScope Scope = Scope("any")

type Authenticator interface {
	RequireAccess(scopes ...Scope) func(http.Handler) http.Handler
}

type accessMap map[string]map[Scope]struct{}

type impl struct {
	query rego.PreparedEvalQuery
}

// NewAuthenticator prepares a rego query over the provided policy
// module. The policy receives {token, scopes} as input and returns
// either false or an object with a tenant -> scopes access map.
func NewAuthenticator(ctx context.Context, policies io.Reader) (Authenticator, error) {
	module, err := io.ReadAll(policies)
	if err != nil {
		return nil, fmt.Errorf("unable to read authz policies: %s", err.Error())
	}

	query, err := rego.New(
		rego.Query("x = data.example.authz.allow"),
		rego.Module("example.rego", string(module)),
	).PrepareForEval(ctx)

	if err != nil {
		return nil, err
	}

	return &impl{query: query}, nil
}

func (a *impl) RequireAccess(scopes ...Scope) func(http.Handler) http.Handler {

	requestedScopes := make([]string, 0, len(scopes))
	for _, s := range scopes {
		requestedScopes = append(requestedScopes, string(s))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var err error

			logger := logging.GetFromContext(r.Context())

			_, span := tracer.Start(r.Context(), "check-auth")
			defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

			token := r.Header.Get("Authorization")

			if token == "" || !strings.HasPrefix(token, "Bearer ") {
				err = errors.New("authorization header missing")
				logger.Info(err.Error())
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			input := map[string]any{
				"token":  token[7:],
				"scopes": requestedScopes,
			}

			results, err := a.query.Eval(r.Context(), rego.EvalInput(input))
			if err != nil {
				logger.Error("opa eval failed", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			if len(results) == 0 {
				err = errors.New("opa query could not be satisfied")
				logger.Error("auth failed", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			binding := results[0].Bindings["x"]

			// A denied request comes back as a plain bool.
			allowed, ok := binding.(bool)
			if ok && !allowed {
				err = errors.New("authorization failed")
				logger.Warn(err.Error())
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			result, ok := binding.(map[string]any)
			if !ok {
				err = errors.New("unexpected result type")
				logger.Error("opa error", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			anyAccess, ok1 := result["access"]
			access, ok2 := anyAccess.(map[string]any)

			if !ok1 || !ok2 {
				err = errors.New("bad response from authz policy engine")
				logger.Error("opa error", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			accessObj := accessMap{}

			for tenant, anyScopes := range access {
				grantedScopes, ok := anyScopes.([]any)
				if !ok {
					logger.Error("rego response type error")
					http.Error(w, "rego error", http.StatusInternalServerError)
					return
				}

				accessObj[tenant] = map[Scope]struct{}{}

				for _, s := range grantedScopes {
					scope := s.(string)
					accessObj[tenant][Scope(scope)] = struct{}{}
				}
			}

			if len(accessObj) == 0 {
				err = errors.New("authorization failed")
				logger.Warn(err.Error())
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccess(r.Context(), accessObj)))
		})
	}
}

// GetTenantsWithAllowedScopes extracts the names of tenants for which
// the caller holds all of the given scopes.
func GetTenantsWithAllowedScopes(ctx context.Context, scopes ...Scope) []string {
	access, ok := ctx.Value(accessCtxKey).(accessMap)
	requiredScopeCount := len(scopes)

	if !ok || requiredScopeCount == 0 {
		return []string{}
	}

	if requiredScopeCount == 1 && scopes[0] == AnyScope {
		requiredScopeCount = 0
	}

	tenants := make([]string, 0, len(access))

	for t, allowedScopes := range access {
		idx := 0

		for idx < requiredScopeCount {
			if _, ok := allowedScopes[scopes[idx]]; !ok {
				break
			}
			idx++
		}

		if idx == requiredScopeCount {
			tenants = append(tenants, t)
		}
	}

	return tenants
}

func WithAccess(ctx context.Context, access accessMap) context.Context {
	return context.WithValue(ctx, accessCtxKey, access)
}

// WithAllowedTenants grants the given scopes for each tenant. Intended
// for handler tests and internal system principals.
func WithAllowedTenants(ctx context.Context, tenants []string, scopes ...Scope) context.Context {
	access := accessMap{}

	for _, t := range tenants {
		access[t] = map[Scope]struct{}{}
		for _, s := range scopes {
			access[t][s] = struct{}{}
		}
	}

	return WithAccess(ctx, access)
}

// AllowsTenant reports whether the caller may act in the given tenant
// with all of the given scopes.
func AllowsTenant(ctx context.Context, tenant string, scopes ...Scope) bool {
	for _, t := range GetTenantsWithAllowedScopes(ctx, scopes...) {
		if t == tenant {
			return true
		}
	}
	return false
}
