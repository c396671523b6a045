package ports

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// Puertos de salida hacia la API remota. El adaptador es *remote.Client; los casos de uso
// solo conocen estos contratos para poder probarse con dobles en memoria.

// AuthAPI autenticación, registro y perfil.
type AuthAPI interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	Register(ctx context.Context, in entity.Registration) (*entity.SessionUser, error)
	Login(ctx context.Context, email, password string, role entity.Role) (*entity.LoginResult, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*entity.SessionUser, error)
	ForgotPasswordSendOTP(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) (*entity.SessionUser, error)
}

// SessionAPI subconjunto que necesita el estado de sesión.
type SessionAPI interface {
	Me(ctx context.Context) (*entity.SessionUser, error)
	Logout(ctx context.Context) error
}

// ProfileAPI perfil del usuario autenticado.
type ProfileAPI interface {
	GetProfile(ctx context.Context) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, in entity.ProfileUpdate) (*entity.Profile, error)
}

// LinkAPI vínculo del vendedor con su distribuidor.
type LinkAPI interface {
	LinkStatus(ctx context.Context) (*entity.LinkStatus, error)
	RequestLink(ctx context.Context, distributorEmail string) (*entity.LinkRequest, error)
}

// SalesTeamAPI gestión de vendedores por parte del distribuidor.
type SalesTeamAPI interface {
	SalesRequests(ctx context.Context) ([]entity.LinkRequest, error)
	ApproveSalesRequest(ctx context.Context, id string) (*entity.LinkRequest, error)
	RejectSalesRequest(ctx context.Context, id string) (*entity.LinkRequest, error)
	Salespersons(ctx context.Context) ([]entity.LinkRequest, error)
	UnlinkSalesperson(ctx context.Context, salespersonID string) error
}

// OrdersAPI pedidos y carrito.
type OrdersAPI interface {
	ForDistributorCurrent(ctx context.Context, q entity.OrderQuery) (*entity.OrderPage, error)
	ForDistributor(ctx context.Context, distributorID string) ([]entity.Order, error)
	MyOrders(ctx context.Context) ([]entity.Order, error)
	AddToCart(ctx context.Context, lines []entity.CartLine) (*entity.Order, error)
	UpdateCart(ctx context.Context, orderID string, lines []entity.CartLine) (*entity.Order, error)
	RemoveFromCart(ctx context.Context, orderID string) error
	ConfirmOrder(ctx context.Context, orderID string) (string, error)
	AcceptOrder(ctx context.Context, orderID string) (string, error)
	MarkPlaced(ctx context.Context, orderID string) (string, error)
	MarkOutForDelivery(ctx context.Context, orderID string) (string, error)
	MarkDelivered(ctx context.Context, orderID string) (string, error)
}

// InvoiceAPI facturas generadas por el servidor.
type InvoiceAPI interface {
	InvoiceHTML(ctx context.Context, orderID string) (string, error)
	InvoicePDF(ctx context.Context, orderID string) ([]byte, error)
	SendInvoiceEmail(ctx context.Context, orderID, to string) (*entity.InvoiceDelivery, error)
	InvoicePDFURL(orderID string) string
}

// ProductsAPI catálogo del distribuidor.
type ProductsAPI interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	CreateProduct(ctx context.Context, in entity.ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id string, in entity.ProductPatch) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	BulkCreateProducts(ctx context.Context, items []entity.ProductInput) (*entity.BulkResult, error)
}

// CatalogAPI listados públicos.
type CatalogAPI interface {
	PublicProducts(ctx context.Context) ([]entity.Product, error)
	Distributors(ctx context.Context) ([]entity.Distributor, error)
}

// UploadAPI subida de imágenes (multipart).
type UploadAPI interface {
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

// NotificationsAPI notificaciones del usuario.
type NotificationsAPI interface {
	ListNotifications(ctx context.Context, unread *bool) ([]entity.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkNotificationUnread(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
	ClearNotifications(ctx context.Context) error
}

// AnalyticsAPI reportes de distribuidor y tienda.
type AnalyticsAPI interface {
	DistributorSummary(ctx context.Context, rng string) (*entity.DistributorSummary, error)
	DistributorTopProducts(ctx context.Context, rng string, limit int) ([]entity.TopProduct, error)
	DistributorTopShops(ctx context.Context, rng string, limit int) ([]entity.TopShop, error)
	ShopSummary(ctx context.Context, month string) (*entity.ShopSummary, error)
	ShopFrequentItems(ctx context.Context, months, limit int) ([]entity.FrequentItem, error)
}

// Puertos hacia infraestructura local.

// OrderDocument datos del resumen imprimible de un pedido.
type OrderDocument struct {
	Title        string
	Order        entity.Order
	Party        string // tienda o distribuidor que aparece en la cabecera
	ReferenceURL string // enlace a la factura oficial (se imprime como QR); opcional
	GeneratedAt  time.Time
}

// OrderPDFGenerator resumen imprimible de un pedido.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, doc OrderDocument) ([]byte, error)
}

// OrderExporter exportación del historial de pedidos.
type OrderExporter interface {
	ExportOrders(orders []entity.Order) ([]byte, error)
}

// CatalogRow fila de un archivo de importación de catálogo.
type CatalogRow struct {
	Line  int                 `json:"line"`
	SKU   string              `json:"sku,omitempty"`
	Input entity.ProductInput `json:"input"`
}

// CatalogParser lee filas de producto desde CSV/XLSX.
type CatalogParser interface {
	ParseCatalog(filename string, r io.Reader) ([]CatalogRow, error)
}

// PreferenceStore preferencias de UI por sesión (p. ej. último rol elegido en el login).
type PreferenceStore interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID string) error
}

// API unión de todos los puertos remotos: lo que una sesión de consola necesita de su cliente.
type API interface {
	AuthAPI
	ProfileAPI
	LinkAPI
	SalesTeamAPI
	OrdersAPI
	InvoiceAPI
	ProductsAPI
	CatalogAPI
	UploadAPI
	NotificationsAPI
	AnalyticsAPI
}
