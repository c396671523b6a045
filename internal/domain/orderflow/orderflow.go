// Package orderflow es el modelo de vista del ciclo de vida del pedido: una tabla pura
// estado → etiqueta, color de badge y única acción siguiente. Todas las vistas que muestran
// el estado de un pedido la consumen; ninguna página decide por su cuenta.
package orderflow

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// ActionKind acción de avance de estado.
type ActionKind string

const (
	ActionConfirm            ActionKind = "confirm"
	ActionAccept             ActionKind = "accept"
	ActionMarkPlaced         ActionKind = "mark_placed"
	ActionMarkOutForDelivery ActionKind = "mark_out_for_delivery"
	ActionMarkDelivered      ActionKind = "mark_delivered"
)

// Action transición hacia delante con la llamada al servidor que la ejecuta.
type Action struct {
	Kind     ActionKind  `json:"kind"`
	Label    string      `json:"label"`
	Actor    entity.Role `json:"actor"`
	Endpoint string      `json:"endpoint"`
}

// View representación de un estado para la UI.
type View struct {
	Status   entity.OrderStatus `json:"status"`
	Label    string             `json:"label"`
	Color    string             `json:"color"`
	Next     *Action            `json:"next,omitempty"`
	Terminal bool               `json:"terminal"`
}

type row struct {
	label string
	color string
	next  *Action
}

const unknownColor = "bg-slate-100 text-slate-800"

// order fija la secuencia de avance; el índice sirve para comparar estados.
var order = []entity.OrderStatus{
	entity.StatusPending,
	entity.StatusConfirmed,
	entity.StatusAccepted,
	entity.StatusPlaced,
	entity.StatusOutForDelivery,
	entity.StatusDelivered,
}

var table = map[entity.OrderStatus]row{
	entity.StatusPending: {
		label: "Pending", color: "bg-amber-100 text-amber-800",
		next: &Action{Kind: ActionConfirm, Label: "Confirm Order", Actor: entity.RoleShopkeeper, Endpoint: "/orders/confirm"},
	},
	entity.StatusConfirmed: {
		label: "Confirmed", color: "bg-purple-100 text-purple-800",
		next: &Action{Kind: ActionAccept, Label: "Accept Order", Actor: entity.RoleDistributor, Endpoint: "/orders/accept"},
	},
	entity.StatusAccepted: {
		label: "Accepted", color: "bg-green-100 text-green-800",
		next: &Action{Kind: ActionMarkPlaced, Label: "Mark Placed", Actor: entity.RoleDistributor, Endpoint: "/orders/mark-placed"},
	},
	entity.StatusPlaced: {
		label: "Placed", color: "bg-blue-100 text-blue-800",
		next: &Action{Kind: ActionMarkOutForDelivery, Label: "Mark Out for Delivery", Actor: entity.RoleDistributor, Endpoint: "/orders/mark-out-for-delivery"},
	},
	entity.StatusOutForDelivery: {
		label: "Out for Delivery", color: "bg-orange-100 text-orange-800",
		next: &Action{Kind: ActionMarkDelivered, Label: "Mark Delivered", Actor: entity.RoleDistributor, Endpoint: "/orders/mark-delivered"},
	},
	entity.StatusDelivered: {
		label: "Delivered", color: "bg-emerald-100 text-emerald-800",
	},
}

var titleCaser = cases.Title(language.English)

// Normalize convierte códigos o etiquetas ("Out for Delivery", "out-for-delivery") al código canónico.
func Normalize(raw string) entity.OrderStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return entity.OrderStatus(s)
}

// Known indica si el estado pertenece al modelo de seis estados.
func Known(status entity.OrderStatus) bool {
	_, ok := table[status]
	return ok
}

// Describe devuelve la vista del estado. Un código desconocido se muestra tal cual,
// capitalizado y sin acción, en lugar de fallar.
func Describe(status entity.OrderStatus) View {
	r, ok := table[status]
	if !ok {
		return View{Status: status, Label: passthroughLabel(string(status)), Color: unknownColor}
	}
	v := View{Status: status, Label: r.label, Color: r.color, Terminal: r.next == nil}
	if r.next != nil {
		next := *r.next
		v.Next = &next
	}
	return v
}

func passthroughLabel(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	if s == "" {
		return "Unknown"
	}
	return titleCaser.String(s)
}

// ActionFor acción disponible para el rol sobre un pedido en ese estado (nil si no hay).
// El vendedor compra en nombre de la tienda, así que confirma igual que el shopkeeper.
func ActionFor(status entity.OrderStatus, role entity.Role) *Action {
	v := Describe(status)
	if v.Next == nil || !actsAs(role, v.Next.Actor) {
		return nil
	}
	return v.Next
}

func actsAs(role, actor entity.Role) bool {
	if role == actor {
		return true
	}
	return actor == entity.RoleShopkeeper && role == entity.RoleSalesperson
}

// CanPerform true si kind es exactamente la acción siguiente de status.
func CanPerform(status entity.OrderStatus, kind ActionKind) bool {
	v := Describe(status)
	return v.Next != nil && v.Next.Kind == kind
}

// Statuses devuelve los estados en orden de avance.
func Statuses() []entity.OrderStatus {
	out := make([]entity.OrderStatus, len(order))
	copy(out, order)
	return out
}

// Rank posición del estado en la secuencia (-1 si es desconocido).
func Rank(status entity.OrderStatus) int {
	for i, s := range order {
		if s == status {
			return i
		}
	}
	return -1
}

// IsCartStatus el pedido sigue en el carrito (pendiente de confirmar).
func IsCartStatus(status entity.OrderStatus) bool {
	return status == entity.StatusPending
}

// IsInProgress confirmado pero aún no entregado.
func IsInProgress(status entity.OrderStatus) bool {
	r := Rank(status)
	return r > Rank(entity.StatusPending) && r < Rank(entity.StatusDelivered)
}

// CountByStatus cuenta pedidos por estado.
func CountByStatus(orders []entity.Order) map[entity.OrderStatus]int {
	out := make(map[entity.OrderStatus]int, len(order))
	for _, o := range orders {
		out[o.Status]++
	}
	return out
}
