// Package bootstrap decide qué pantalla corresponde a la identidad actual a partir
// del estado agrupado que devuelve el backend.
package bootstrap

// State estado de enrutamiento del shell.
type State int

const (
	StateInitializing State = iota
	StateLoggedOut
	StateBootstrapLoading
	StateProfileRequired
	StateApprovalPending
	StateRejected
	StateActive
	// StateError pantalla genérica de reintento cuando el bootstrap falla sin rechazo.
	StateError
)

var stateNames = [...]string{
	StateInitializing:     "initializing",
	StateLoggedOut:        "loggedOut",
	StateBootstrapLoading: "bootstrapLoading",
	StateProfileRequired:  "profileRequired",
	StateApprovalPending:  "approvalPending",
	StateRejected:         "rejected",
	StateActive:           "active",
	StateError:            "error",
}

func (s State) String() string {
	if int(s) >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// transitions aristas permitidas de la máquina de estados.
var transitions = map[State][]State{
	StateInitializing:     {StateLoggedOut, StateBootstrapLoading},
	StateLoggedOut:        {StateBootstrapLoading},
	StateBootstrapLoading: {StateProfileRequired, StateApprovalPending, StateRejected, StateActive, StateError},
	StateProfileRequired:  {StateBootstrapLoading, StateLoggedOut},
	StateApprovalPending:  {StateBootstrapLoading, StateLoggedOut},
	StateRejected:         {StateLoggedOut},
	StateActive:           {StateBootstrapLoading, StateLoggedOut},
	StateError:            {StateBootstrapLoading, StateLoggedOut},
}

// CanTransition informa si from → to es una transición válida.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Inputs datos de los que depende el estado tras un bootstrap exitoso.
type Inputs struct {
	HasProfile bool
	IsAdmin    bool
	IsApproved bool
	// Rejected el backend informa approvalStatus = rejected.
	Rejected bool
}

// Resolve función pura: sin perfil siempre pide perfil; admin o aprobado entra;
// rechazado va al callejón sin salida; el resto espera aprobación.
func Resolve(in Inputs) State {
	switch {
	case !in.HasProfile:
		return StateProfileRequired
	case in.IsAdmin || in.IsApproved:
		return StateActive
	case in.Rejected:
		return StateRejected
	default:
		return StateApprovalPending
	}
}
