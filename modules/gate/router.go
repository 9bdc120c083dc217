package gate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekit/pkg/delegate"
	"github.com/dmitrymomot/gatekit/pkg/initguard"
	"github.com/dmitrymomot/gatekit/pkg/roles"
	"github.com/dmitrymomot/gatekit/pkg/statuslist"
)

// ActorHeader carries the acting account on incoming requests.
const ActorHeader = "X-Account-ID"

// Router exposes the service's operation surface over HTTP. The acting
// account is taken from the X-Account-ID header; role path parameters are
// human-readable role names.
func Router(svc *Service) chi.Router {
	h := &handler{svc: svc}

	r := chi.NewRouter()
	r.Use(actorMiddleware)

	r.Post("/init", h.init)

	r.Route("/roles/{role}", func(r chi.Router) {
		r.Post("/grant", h.grantRole)
		r.Post("/revoke", h.revokeRole)
		r.Post("/renounce", h.renounceRole)
		r.Get("/members/{account}", h.hasRole)
	})

	r.Route("/blocklist", func(r chi.Router) {
		r.Post("/self", h.selfBlock)
		r.Post("/{account}", h.block)
		r.Delete("/{account}", h.unblock)
		r.Get("/{account}", h.isBlocked)
	})

	r.Route("/whitelist", func(r chi.Router) {
		r.Post("/{account}", h.allow)
		r.Delete("/{account}", h.disallow)
		r.Get("/{account}", h.isAllowed)
	})

	r.Put("/whitelister", h.setWhitelister)
	r.Get("/whitelister", h.whitelister)

	r.Get("/check/{account}", h.check)
	r.Get("/events", h.events)

	return r
}

// actorMiddleware resolves the acting account from the request header into
// the context. Requests without the header pass through; mutating handlers
// fail later with ErrNoActor.
func actorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get(ActorHeader); raw != "" {
			account, err := uuid.Parse(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid account id in "+ActorHeader)
				return
			}
			r = r.WithContext(WithActor(r.Context(), account))
		}
		next.ServeHTTP(w, r)
	})
}

type handler struct {
	svc *Service
}

type accountRequest struct {
	Account uuid.UUID `json:"account"`
}

type holderRequest struct {
	Holder uuid.UUID `json:"holder"`
}

func (h *handler) init(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Init(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) grantRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeServiceError(w, ErrNoActor)
		return
	}
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	role := roles.Named(chi.URLParam(r, "role"))
	if err := h.svc.GrantRole(r.Context(), actor, role, req.Account); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) revokeRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeServiceError(w, ErrNoActor)
		return
	}
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	role := roles.Named(chi.URLParam(r, "role"))
	if err := h.svc.RevokeRole(r.Context(), actor, role, req.Account); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) renounceRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeServiceError(w, ErrNoActor)
		return
	}
	role := roles.Named(chi.URLParam(r, "role"))
	if err := h.svc.RenounceRole(r.Context(), actor, role); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) hasRole(w http.ResponseWriter, r *http.Request) {
	account, err := uuid.Parse(chi.URLParam(r, "account"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	role := roles.Named(chi.URLParam(r, "role"))
	writeJSON(w, http.StatusOK, map[string]bool{"member": h.svc.HasRole(role, account)})
}

func (h *handler) block(w http.ResponseWriter, r *http.Request) {
	h.mutateAccount(w, r, h.svc.Block)
}

func (h *handler) unblock(w http.ResponseWriter, r *http.Request) {
	h.mutateAccount(w, r, h.svc.Unblock)
}

func (h *handler) selfBlock(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeServiceError(w, ErrNoActor)
		return
	}
	if err := h.svc.SelfBlock(r.Context(), actor); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) isBlocked(w http.ResponseWriter, r *http.Request) {
	account, err := uuid.Parse(chi.URLParam(r, "account"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"blocked": h.svc.IsBlocked(account)})
}

func (h *handler) allow(w http.ResponseWriter, r *http.Request) {
	h.mutateAccount(w, r, h.svc.Allow)
}

func (h *handler) disallow(w http.ResponseWriter, r *http.Request) {
	h.mutateAccount(w, r, h.svc.Disallow)
}

func (h *handler) isAllowed(w http.ResponseWriter, r *http.Request) {
	account, err := uuid.Parse(chi.URLParam(r, "account"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"allowed": h.svc.IsAllowed(account)})
}

func (h *handler) setWhitelister(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeServiceError(w, ErrNoActor)
		return
	}
	var req holderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.SetWhitelister(r.Context(), actor, req.Holder); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) whitelister(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"holder": h.svc.Whitelister().String()})
}

// check runs both guards for the account, the same precondition a protected
// operation would evaluate before mutating anything.
func (h *handler) check(w http.ResponseWriter, r *http.Request) {
	account, err := uuid.Parse(chi.URLParam(r, "account"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	if err := h.svc.RequireNotBlocked(account); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.svc.RequireAllowed(account); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) events(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	entries, err := h.svc.Events(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": entries})
}

func (h *handler) mutateAccount(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, actor, account uuid.UUID) error,
) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeServiceError(w, ErrNoActor)
		return
	}
	account, err := uuid.Parse(chi.URLParam(r, "account"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	if err := op(r.Context(), actor, account); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoActor):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, initguard.ErrAlreadyInitialized):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, statuslist.ErrSelfServiceDisabled),
		roles.IsUnauthorizedError(err),
		delegate.IsNotOwnerError(err),
		delegate.IsUnauthorizedHolderError(err),
		statuslist.IsDeniedError(err),
		statuslist.IsNotAllowedError(err):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
