package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// fakeAPI doble en memoria de la API remota. Los métodos no sobrescritos entran en pánico
// a través del puerto embebido nil, así un test falla si toca algo inesperado.
type fakeAPI struct {
	ports.API

	mu       sync.Mutex
	calls    []string
	orders   []entity.Order
	products []entity.Product
	requests []entity.LinkRequest
	linked   []entity.LinkRequest
	dists    []entity.Distributor
	link     entity.LinkStatus
	profile  entity.Profile
	err      error // error devuelto por cualquier llamada
	failOn   string
	failFrom int // con failOn: solo falla a partir de la llamada n (1 = siempre)
	message  string // mensaje devuelto por las transiciones
	lastCart []entity.CartLine
	lastTo   string
	lastQ    entity.OrderQuery
	bulk     []entity.ProductInput
}

func (f *fakeAPI) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if f.failOn != "" && f.failOn != name {
		return nil
	}
	if f.failFrom > 1 {
		n := 0
		for _, c := range f.calls {
			if c == name {
				n++
			}
		}
		if n < f.failFrom {
			return nil
		}
	}
	return f.err
}

func (f *fakeAPI) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) MyOrders(ctx context.Context) ([]entity.Order, error) {
	if err := f.record("MyOrders"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Order, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeAPI) ForDistributorCurrent(ctx context.Context, q entity.OrderQuery) (*entity.OrderPage, error) {
	if err := f.record("ForDistributorCurrent"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQ = q
	out := make([]entity.Order, len(f.orders))
	copy(out, f.orders)
	return &entity.OrderPage{Total: len(out), Orders: out}, nil
}

func (f *fakeAPI) ForDistributor(ctx context.Context, distributorID string) ([]entity.Order, error) {
	if err := f.record("ForDistributor"); err != nil {
		return nil, err
	}
	return f.orders, nil
}

func (f *fakeAPI) AddToCart(ctx context.Context, lines []entity.CartLine) (*entity.Order, error) {
	if err := f.record("AddToCart"); err != nil {
		return nil, err
	}
	f.lastCart = lines
	return &entity.Order{ID: "new-order", Status: entity.StatusPending}, nil
}

func (f *fakeAPI) UpdateCart(ctx context.Context, orderID string, lines []entity.CartLine) (*entity.Order, error) {
	if err := f.record("UpdateCart"); err != nil {
		return nil, err
	}
	f.lastCart = lines
	return &entity.Order{ID: orderID, Status: entity.StatusPending}, nil
}

func (f *fakeAPI) RemoveFromCart(ctx context.Context, orderID string) error {
	return f.record("RemoveFromCart")
}

func (f *fakeAPI) transition(name string) (string, error) {
	if err := f.record(name); err != nil {
		return "", err
	}
	return f.message, nil
}

func (f *fakeAPI) ConfirmOrder(ctx context.Context, orderID string) (string, error) {
	return f.transition("ConfirmOrder")
}

func (f *fakeAPI) AcceptOrder(ctx context.Context, orderID string) (string, error) {
	return f.transition("AcceptOrder")
}

func (f *fakeAPI) MarkPlaced(ctx context.Context, orderID string) (string, error) {
	return f.transition("MarkPlaced")
}

func (f *fakeAPI) MarkOutForDelivery(ctx context.Context, orderID string) (string, error) {
	return f.transition("MarkOutForDelivery")
}

func (f *fakeAPI) MarkDelivered(ctx context.Context, orderID string) (string, error) {
	return f.transition("MarkDelivered")
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]entity.Product, error) {
	if err := f.record("ListProducts"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeAPI) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	if err := f.record("GetProduct"); err != nil {
		return nil, err
	}
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeAPI) CreateProduct(ctx context.Context, in entity.ProductInput) (*entity.Product, error) {
	if err := f.record("CreateProduct"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := entity.Product{
		ID:          "p-" + in.Name,
		Name:        in.Name,
		Price:       in.Price,
		Stock:       in.Stock,
		Image:       in.Image,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeAPI) UpdateProduct(ctx context.Context, id string, in entity.ProductPatch) (*entity.Product, error) {
	if err := f.record("UpdateProduct"); err != nil {
		return nil, err
	}
	return &entity.Product{ID: id}, nil
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, id string) error {
	return f.record("DeleteProduct")
}

func (f *fakeAPI) BulkCreateProducts(ctx context.Context, items []entity.ProductInput) (*entity.BulkResult, error) {
	if err := f.record("BulkCreateProducts"); err != nil {
		return nil, err
	}
	f.bulk = items
	return &entity.BulkResult{Created: len(items)}, nil
}

func (f *fakeAPI) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := f.record("UploadImage"); err != nil {
		return "", err
	}
	return "uploads/" + filename, nil
}

func (f *fakeAPI) PublicProducts(ctx context.Context) ([]entity.Product, error) {
	if err := f.record("PublicProducts"); err != nil {
		return nil, err
	}
	return f.products, nil
}

func (f *fakeAPI) Distributors(ctx context.Context) ([]entity.Distributor, error) {
	if err := f.record("Distributors"); err != nil {
		return nil, err
	}
	return f.dists, nil
}

func (f *fakeAPI) SalesRequests(ctx context.Context) ([]entity.LinkRequest, error) {
	if err := f.record("SalesRequests"); err != nil {
		return nil, err
	}
	return f.requests, nil
}

func (f *fakeAPI) ApproveSalesRequest(ctx context.Context, id string) (*entity.LinkRequest, error) {
	if err := f.record("ApproveSalesRequest"); err != nil {
		return nil, err
	}
	return &entity.LinkRequest{ID: id, Status: entity.LinkApproved}, nil
}

func (f *fakeAPI) RejectSalesRequest(ctx context.Context, id string) (*entity.LinkRequest, error) {
	if err := f.record("RejectSalesRequest"); err != nil {
		return nil, err
	}
	return &entity.LinkRequest{ID: id, Status: entity.LinkRejected}, nil
}

func (f *fakeAPI) Salespersons(ctx context.Context) ([]entity.LinkRequest, error) {
	if err := f.record("Salespersons"); err != nil {
		return nil, err
	}
	return f.linked, nil
}

func (f *fakeAPI) UnlinkSalesperson(ctx context.Context, salespersonID string) error {
	return f.record("UnlinkSalesperson")
}

func (f *fakeAPI) LinkStatus(ctx context.Context) (*entity.LinkStatus, error) {
	if err := f.record("LinkStatus"); err != nil {
		return nil, err
	}
	st := f.link
	return &st, nil
}

func (f *fakeAPI) DistributorSummary(ctx context.Context, rng string) (*entity.DistributorSummary, error) {
	if err := f.record("DistributorSummary:" + rng); err != nil {
		return nil, err
	}
	return &entity.DistributorSummary{RangeDays: 30, Totals: entity.DistributorTotals{Orders: 4, Revenue: decimal.NewFromInt(120)}}, nil
}

func (f *fakeAPI) DistributorTopProducts(ctx context.Context, rng string, limit int) ([]entity.TopProduct, error) {
	if err := f.record("DistributorTopProducts"); err != nil {
		return nil, err
	}
	return []entity.TopProduct{{ProductID: "p1", Name: "Rice", Qty: 10}}, nil
}

func (f *fakeAPI) DistributorTopShops(ctx context.Context, rng string, limit int) ([]entity.TopShop, error) {
	if err := f.record("DistributorTopShops"); err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeAPI) ShopSummary(ctx context.Context, month string) (*entity.ShopSummary, error) {
	if err := f.record("ShopSummary:" + month); err != nil {
		return nil, err
	}
	return &entity.ShopSummary{Month: month}, nil
}

func (f *fakeAPI) ShopFrequentItems(ctx context.Context, months, limit int) ([]entity.FrequentItem, error) {
	if err := f.record("ShopFrequentItems"); err != nil {
		return nil, err
	}
	return []entity.FrequentItem{{ProductID: "p1", Count: 3}}, nil
}

func (f *fakeAPI) InvoiceHTML(ctx context.Context, orderID string) (string, error) {
	if err := f.record("InvoiceHTML"); err != nil {
		return "", err
	}
	return "<h1>Invoice " + orderID + "</h1>", nil
}

func (f *fakeAPI) InvoicePDF(ctx context.Context, orderID string) ([]byte, error) {
	if err := f.record("InvoicePDF"); err != nil {
		return nil, err
	}
	return []byte("%PDF-1.4"), nil
}

func (f *fakeAPI) SendInvoiceEmail(ctx context.Context, orderID, to string) (*entity.InvoiceDelivery, error) {
	if err := f.record("SendInvoiceEmail"); err != nil {
		return nil, err
	}
	f.lastTo = to
	return &entity.InvoiceDelivery{Message: "Invoice sent", To: to}, nil
}

func (f *fakeAPI) InvoicePDFURL(orderID string) string {
	return "https://api.test/api/orders/invoice/" + orderID + "/pdf"
}

func (f *fakeAPI) GetProfile(ctx context.Context) (*entity.Profile, error) {
	if err := f.record("GetProfile"); err != nil {
		return nil, err
	}
	p := f.profile
	return &p, nil
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, in entity.ProfileUpdate) (*entity.Profile, error) {
	if err := f.record("UpdateProfile"); err != nil {
		return nil, err
	}
	if in.Name != nil {
		f.profile.Name = *in.Name
	}
	if in.Photo != nil {
		f.profile.Photo = *in.Photo
	}
	p := f.profile
	return &p, nil
}

// ─── Dobles de infraestructura local ──────────────────────────────────────────

type fakeExporter struct{ got []entity.Order }

func (e *fakeExporter) ExportOrders(orders []entity.Order) ([]byte, error) {
	e.got = orders
	return []byte("xlsx"), nil
}

type fakePDF struct{ doc ports.OrderDocument }

func (p *fakePDF) GenerateOrderPDF(ctx context.Context, doc ports.OrderDocument) ([]byte, error) {
	p.doc = doc
	return []byte("%PDF-summary"), nil
}

type fakeParser struct {
	rows []ports.CatalogRow
	err  error
}

func (p *fakeParser) ParseCatalog(filename string, r io.Reader) ([]ports.CatalogRow, error) {
	return p.rows, p.err
}

func order(id string, status entity.OrderStatus, created time.Time, items ...entity.OrderItem) entity.Order {
	return entity.Order{ID: id, Status: status, Items: items, CreatedAt: created}
}

func item(productID string, price int64, qty int) entity.OrderItem {
	return entity.OrderItem{ProductID: productID, Name: productID, Price: decimal.NewFromInt(price), Qty: qty}
}
