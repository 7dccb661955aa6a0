package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/miphreal/drf-tweaks/internal/api/shared"
	"github.com/miphreal/drf-tweaks/internal/codes"
	"github.com/miphreal/drf-tweaks/internal/config"
	"github.com/miphreal/drf-tweaks/internal/domain"
	"github.com/miphreal/drf-tweaks/internal/platform/logger"
)

// DefaultClientHeader carries "<client name>/<version>".
const DefaultClientHeader = "X-Client-Version"

// UpgradeStatus is the HTTP status sent to outdated clients.
const UpgradeStatus = http.StatusTeapot

type clientRule struct {
	name       string
	constraint version.Constraints
}

// ClientGate rejects requests from client applications below their supported
// version. Requests without the header pass through untouched.
type ClientGate struct {
	header string
	rules  []clientRule
}

// NewClientGate compiles the configured version constraints.
func NewClientGate(cfg config.ClientsConfig) (*ClientGate, error) {
	g := &ClientGate{header: cfg.Header}
	if g.header == "" {
		g.header = DefaultClientHeader
	}
	for _, rule := range cfg.Supported {
		c, err := version.NewConstraint(rule.Constraint)
		if err != nil {
			return nil, fmt.Errorf("client %q: invalid constraint %q: %w", rule.Name, rule.Constraint, err)
		}
		g.rules = append(g.rules, clientRule{name: strings.ToLower(strings.TrimSpace(rule.Name)), constraint: c})
	}
	return g, nil
}

// Middleware applies the gate.
func (g *ClientGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := r.Header.Get(g.header)
		if info == "" {
			next.ServeHTTP(w, r)
			return
		}

		client, ok := g.identify(r, info)
		if !ok {
			writeUpgradeRequired(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.WithClient(r.Context(), client)))
	})
}

func (g *ClientGate) identify(r *http.Request, info string) (shared.Client, bool) {
	name, raw, _ := strings.Cut(strings.TrimSpace(info), "/")
	name = strings.ToLower(strings.TrimSpace(name))

	v, err := version.NewVersion(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		logger.FromContext(r.Context()).Warn("incorrect client version",
			slog.String("client", name),
			slog.String("error", err.Error()))
		return shared.Client{}, false
	}

	for _, rule := range g.rules {
		if rule.name == name && rule.constraint.Check(v) {
			return shared.Client{Name: name, Version: v.String()}, true
		}
	}

	logger.FromContext(r.Context()).Debug("unsupported client",
		slog.String("client", name),
		slog.String("version", v.String()))
	return shared.Client{}, false
}

// upgradeBody is written as is, without the renderer.
type upgradeBody struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
	Code   int    `json:"code"`
	Data   any    `json:"data"`
}

func writeUpgradeRequired(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r.Header.Get("Accept")) {
		body, _ := json.Marshal(upgradeBody{
			Status: codes.ClientUpgradeRequired.Name(),
			Msg:    domain.UpgradeMessage,
			Code:   codes.ClientUpgradeRequired.Value(),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(UpgradeStatus)
		_, _ = w.Write(body)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(UpgradeStatus)
	_, _ = fmt.Fprintf(w, "<html><title>Upgrade required</title><body><h1>%s</h1></body></html>", domain.UpgradeMessage)
}

func wantsJSON(accept string) bool {
	if accept == "" || accept == "*/*" {
		return true
	}
	return strings.Contains(accept, "application/json")
}
