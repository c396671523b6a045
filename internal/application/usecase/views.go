package usecase

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
	"github.com/jhoicas/orderly-console/internal/domain/orderflow"
)

const shortIDLen = 8

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// toOrderView arma la vista del pedido. La acción solo aparece si el rol puede ejecutarla.
func toOrderView(o entity.Order, role entity.Role) dto.OrderView {
	lines := make([]dto.OrderLineView, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, dto.OrderLineView{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Qty:       it.Qty,
			LineTotal: it.LineTotal(),
		})
	}
	return dto.OrderView{
		ID:        o.ID,
		ShortID:   shortID(o.ID),
		ShopName:  o.ShopName,
		Status:    orderflow.Describe(o.Status),
		Action:    orderflow.ActionFor(o.Status, role),
		Items:     lines,
		Units:     o.Units(),
		Total:     o.Total(),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toOrderViews(orders []entity.Order, role entity.Role) []dto.OrderView {
	out := make([]dto.OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderView(o, role))
	}
	return out
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// newestFirst ordena una copia por fecha de creación descendente.
func newestFirst(orders []entity.Order) []entity.Order {
	out := make([]entity.Order, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func findOrder(orders []entity.Order, id string) (entity.Order, bool) {
	for _, o := range orders {
		if o.ID == id {
			return o, true
		}
	}
	return entity.Order{}, false
}

func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}

func orDefault(msg, def string) string {
	if strings.TrimSpace(msg) == "" {
		return def
	}
	return msg
}
