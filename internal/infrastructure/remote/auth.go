package remote

import (
	"context"
	"net/http"

	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

type userEnvelope struct {
	User *entity.SessionUser `json:"user"`
}

func (e userEnvelope) normalized() *entity.SessionUser {
	if e.User == nil {
		return nil
	}
	u := e.User.Normalized()
	return &u
}

// SendOTP POST /auth/send-otp.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/send-otp", map[string]string{"email": email}, nil)
}

// VerifyOTP POST /auth/verify-otp.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	return c.do(ctx, http.MethodPost, "/auth/verify-otp", map[string]string{"email": email, "otp": otp}, nil)
}

// Register POST /auth/register.
func (c *Client) Register(ctx context.Context, in entity.Registration) (*entity.SessionUser, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return nil, err
	}
	return out.normalized(), nil
}

// Login POST /auth/login. El servidor fija la cookie de sesión en el jar del cliente.
func (c *Client) Login(ctx context.Context, email, password string, role entity.Role) (*entity.LoginResult, error) {
	payload := map[string]string{"email": email, "password": password, "role": string(role)}
	var out entity.LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &out); err != nil {
		return nil, err
	}
	out.User = out.User.Normalized()
	return &out, nil
}

// Logout POST /auth/logout.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Me GET /auth/me. Devuelve nil sin error si el servidor no informa usuario.
func (c *Client) Me(ctx context.Context) (*entity.SessionUser, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return out.normalized(), nil
}

// ForgotPasswordSendOTP POST /auth/forgot-password/send-otp.
func (c *Client) ForgotPasswordSendOTP(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password/send-otp", map[string]string{"email": email}, nil)
}

// ResetPassword POST /auth/forgot-password/reset. El servidor deja la sesión iniciada.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) (*entity.SessionUser, error) {
	payload := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	var out userEnvelope
	if err := c.do(ctx, http.MethodPost, "/auth/forgot-password/reset", payload, &out); err != nil {
		return nil, err
	}
	return out.normalized(), nil
}

// GetProfile GET /auth/profile.
func (c *Client) GetProfile(ctx context.Context) (*entity.Profile, error) {
	var out struct {
		Profile *entity.Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	if out.Profile == nil {
		return &entity.Profile{}, nil
	}
	return out.Profile, nil
}

// UpdateProfile PUT /auth/profile.
func (c *Client) UpdateProfile(ctx context.Context, in entity.ProfileUpdate) (*entity.Profile, error) {
	var out struct {
		Profile *entity.Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodPut, "/auth/profile", in, &out); err != nil {
		return nil, err
	}
	if out.Profile == nil {
		return &entity.Profile{}, nil
	}
	return out.Profile, nil
}

// ── Vínculo vendedor / distribuidor ──────────────────────────────────────────

// RequestLink POST /auth/salesperson/link-request.
func (c *Client) RequestLink(ctx context.Context, distributorEmail string) (*entity.LinkRequest, error) {
	var out struct {
		Request entity.LinkRequest `json:"request"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/salesperson/link-request", map[string]string{"distributorEmail": distributorEmail}, &out); err != nil {
		return nil, err
	}
	return &out.Request, nil
}

// LinkStatus GET /auth/salesperson/link-status. Un estado vacío se interpreta como "unlinked".
func (c *Client) LinkStatus(ctx context.Context) (*entity.LinkStatus, error) {
	var out struct {
		Status entity.LinkStatus `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/salesperson/link-status", nil, &out); err != nil {
		return nil, err
	}
	if out.Status.State == "" {
		out.Status.State = entity.LinkUnlinked
	}
	return &out.Status, nil
}

// SalesRequests GET /auth/distributor/sales-requests.
func (c *Client) SalesRequests(ctx context.Context) ([]entity.LinkRequest, error) {
	var out struct {
		Requests []entity.LinkRequest `json:"requests"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/distributor/sales-requests", nil, &out); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

// ApproveSalesRequest POST /auth/distributor/sales-requests/{id}/approve.
func (c *Client) ApproveSalesRequest(ctx context.Context, id string) (*entity.LinkRequest, error) {
	return c.decideSalesRequest(ctx, id, "approve")
}

// RejectSalesRequest POST /auth/distributor/sales-requests/{id}/reject.
func (c *Client) RejectSalesRequest(ctx context.Context, id string) (*entity.LinkRequest, error) {
	return c.decideSalesRequest(ctx, id, "reject")
}

func (c *Client) decideSalesRequest(ctx context.Context, id, verb string) (*entity.LinkRequest, error) {
	var out struct {
		Request entity.LinkRequest `json:"request"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/distributor/sales-requests/"+seg(id)+"/"+verb, nil, &out); err != nil {
		return nil, err
	}
	return &out.Request, nil
}

// Salespersons GET /auth/distributor/salespersons.
func (c *Client) Salespersons(ctx context.Context) ([]entity.LinkRequest, error) {
	var out struct {
		Salespersons []entity.LinkRequest `json:"salespersons"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/distributor/salespersons", nil, &out); err != nil {
		return nil, err
	}
	return out.Salespersons, nil
}

// UnlinkSalesperson DELETE /auth/distributor/salespersons/{id}.
func (c *Client) UnlinkSalesperson(ctx context.Context, salespersonID string) error {
	return c.do(ctx, http.MethodDelete, "/auth/distributor/salespersons/"+seg(salespersonID), nil, nil)
}

// ── Listados públicos ────────────────────────────────────────────────────────

// Distributors GET /auth/distributors.
func (c *Client) Distributors(ctx context.Context) ([]entity.Distributor, error) {
	var out struct {
		Distributors []entity.Distributor `json:"distributors"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/distributors", nil, &out); err != nil {
		return nil, err
	}
	return out.Distributors, nil
}
