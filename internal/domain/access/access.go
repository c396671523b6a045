// Package access decide qué puede ver cada rol: una tabla estática rol → prefijo de URL
// y rol → tablero de inicio. Es la única fuente de verdad para el control de rutas.
package access

import (
	"net/url"
	"strings"

	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// LoginPath ruta pública de inicio de sesión.
const LoginPath = "/login"

type roleRoutes struct {
	prefix string
	home   string
}

var routes = map[entity.Role]roleRoutes{
	entity.RoleDistributor: {prefix: "/wholesale", home: "/wholesale/dashboard"},
	entity.RoleShopkeeper:  {prefix: "/shop", home: "/shop/dashboard"},
	entity.RoleSalesperson: {prefix: "/sales", home: "/sales/dashboard"},
	entity.RoleAdmin:       {prefix: "/admin", home: "/admin/overview"},
}

// Outcome resultado de evaluar una navegación.
type Outcome int

const (
	// OutcomeLoading la sesión aún no se ha resuelto: estado neutro, sin adivinar.
	OutcomeLoading Outcome = iota
	// OutcomeRender el rol puede ver la ruta pedida.
	OutcomeRender
	// OutcomeRedirectLogin no hay usuario.
	OutcomeRedirectLogin
	// OutcomeRedirectHome hay usuario pero su rol no cubre la ruta.
	OutcomeRedirectHome
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoading:
		return "loading"
	case OutcomeRender:
		return "render"
	case OutcomeRedirectLogin:
		return "redirect_login"
	case OutcomeRedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// Decision salida del guard. Location solo aplica a las redirecciones.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Prefix prefijo permitido para el rol ("" si no tiene ninguno).
func Prefix(role entity.Role) string {
	return routes[role].prefix
}

// HomePath tablero por defecto del rol; sin rol conocido se vuelve al login.
func HomePath(role entity.Role) string {
	if r, ok := routes[role]; ok {
		return r.home
	}
	return LoginPath
}

// IsPathAllowed true si path empieza por el prefijo del rol, respetando el límite de segmento
// (/shop y /shop/orders sí; /shopping no).
func IsPathAllowed(path string, role entity.Role) bool {
	if path == "" {
		return false
	}
	prefix := Prefix(role)
	if prefix == "" {
		return false
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

// Decide evalúa la navegación a path con el usuario actual.
func Decide(user *entity.SessionUser, loading bool, path string) Decision {
	if loading {
		return Decision{Outcome: OutcomeLoading}
	}
	if user == nil {
		return Decision{Outcome: OutcomeRedirectLogin, Location: LoginURL(path)}
	}
	if IsPathAllowed(path, user.Role) {
		return Decision{Outcome: OutcomeRender}
	}
	return Decision{Outcome: OutcomeRedirectHome, Location: HomePath(user.Role)}
}

// LoginTarget destino tras un login correcto: la ruta pedida originalmente si el rol
// la permite; en otro caso el tablero del rol.
func LoginTarget(role entity.Role, from string) string {
	if from != "" && IsPathAllowed(from, role) {
		return from
	}
	return HomePath(role)
}

// LoginURL construye /login?from=<path>.
func LoginURL(from string) string {
	if from == "" || from == LoginPath {
		return LoginPath
	}
	return LoginPath + "?from=" + url.QueryEscape(from)
}
