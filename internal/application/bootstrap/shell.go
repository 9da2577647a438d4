package bootstrap

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/sahil-erp/internal/application/queries"
	"github.com/jhoicas/sahil-erp/internal/application/session"
	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// Result estado resuelto para una sesión.
type Result struct {
	State   State
	Profile *entity.UserProfile
	Access  Access
	// Error clasificación del fallo cuando State es Rejected o Error.
	Error *domain.Classification
}

// Shell resuelve el estado de enrutamiento de cada workspace.
type Shell struct {
	secondary map[string]struct{}
	log       zerolog.Logger
}

// NewShell construye el shell; secondaryAdminEmails ya normalizados o no.
func NewShell(secondaryAdminEmails []string, log zerolog.Logger) *Shell {
	set := make(map[string]struct{}, len(secondaryAdminEmails))
	for _, e := range secondaryAdminEmails {
		set[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &Shell{secondary: set, log: log.With().Str("component", "bootstrap").Logger()}
}

// IsSecondaryAdmin informa si el email figura como admin secundario.
func (s *Shell) IsSecondaryAdmin(email string) bool {
	_, ok := s.secondary[strings.ToLower(email)]
	return ok
}

// Resolve consulta (vía caché) el estado agrupado y decide la pantalla.
func (s *Shell) Resolve(ctx context.Context, ws *session.Workspace) Result {
	return s.resolve(ctx, ws, false)
}

// Retry vuelve a pedir el estado agrupado al backend aunque el cacheado siga fresco.
func (s *Shell) Retry(ctx context.Context, ws *session.Workspace) Result {
	return s.resolve(ctx, ws, true)
}

func (s *Shell) resolve(ctx context.Context, ws *session.Workspace, refetch bool) Result {
	res := s.decide(ctx, ws, refetch)
	if ws != nil {
		s.track(ws, res.State)
	}
	return res
}

func (s *Shell) decide(ctx context.Context, ws *session.Workspace, refetch bool) Result {
	if ws == nil {
		return Result{State: StateLoggedOut}
	}
	ident, ok := ws.Actors.Identity()
	if !ok {
		if ws.Actors.IsFetching() {
			return Result{State: StateInitializing}
		}
		return Result{State: StateLoggedOut}
	}
	secondary := s.IsSecondaryAdmin(ident.Email)

	load := ws.Queries.BootstrapState
	if refetch {
		load = ws.Queries.RefetchBootstrapState
	}
	st, err := load(ctx)
	if err != nil {
		c := domain.ClassifyApprovalError(err)
		cached := cachedProfile(ws.Queries)
		s.log.Warn().Err(err).Str("kind", c.Kind.String()).Str("principal", ident.Principal).Msg("bootstrap fallido")
		if c.Kind == domain.KindRejected && cached != nil {
			return Result{State: StateRejected, Profile: cached, Access: Access{IsSecondaryAdmin: secondary}, Error: &c}
		}
		return Result{State: StateError, Profile: cached, Access: Access{IsSecondaryAdmin: secondary}, Error: &c}
	}
	if st == nil {
		s.log.Warn().Str("principal", ident.Principal).Msg("bootstrap sin datos")
		c := domain.Classification{Kind: domain.KindUnknown, Message: "El backend no devolvió el estado de la sesión. Reintente."}
		return Result{State: StateError, Profile: cachedProfile(ws.Queries), Access: Access{IsSecondaryAdmin: secondary}, Error: &c}
	}
	ws.Queries.SeedBootstrap(st)

	state := Resolve(Inputs{
		HasProfile: st.Profile != nil,
		IsAdmin:    st.IsAdmin,
		IsApproved: st.IsApproved,
		Rejected:   st.ApprovalStatus == entity.ApprovalRejected,
	})
	return Result{State: state, Profile: st.Profile, Access: NewAccess(st, secondary)}
}

// track guarda el estado resuelto del workspace y avisa si el salto desde el
// anterior no es una arista de la máquina de estados.
func (s *Shell) track(ws *session.Workspace, next State) {
	raw, ok := ws.SwapRoute(int(next))
	if !ok {
		return
	}
	prev := State(raw)
	if prev == next {
		return
	}
	ev := s.log.Debug()
	if !reachable(prev, next) {
		ev = s.log.Warn()
	}
	ev.Str("session", ws.ID).Str("from", prev.String()).Str("to", next.String()).Msg("transición de estado")
}

// reachable cada resolución pasa por bootstrapLoading mientras espera al backend.
func reachable(from, to State) bool {
	if CanTransition(from, to) {
		return true
	}
	return CanTransition(from, StateBootstrapLoading) && CanTransition(StateBootstrapLoading, to)
}

func cachedProfile(q *queries.Queries) *entity.UserProfile {
	v, ok := q.Cache().Peek(queries.KeyCurrentUserProfile)
	if !ok {
		return nil
	}
	p, _ := v.(*entity.UserProfile)
	return p
}
