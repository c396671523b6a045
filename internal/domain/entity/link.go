package entity

import "time"

// LinkState estado del vínculo vendedor → distribuidor.
type LinkState string

const (
	LinkUnlinked LinkState = "unlinked"
	LinkPending  LinkState = "pending"
	LinkApproved LinkState = "approved"
	LinkRejected LinkState = "rejected"
)

// LinkStatus respuesta de /auth/salesperson/link-status.
type LinkStatus struct {
	State         LinkState `json:"state"`
	DistributorID string    `json:"distributorId,omitempty"`
	RequestID     string    `json:"requestId,omitempty"`
}

// LinkRequest solicitud de vínculo. Un vendedor tiene como máximo un vínculo activo
// (pending/approved) a la vez; eso lo garantiza el servidor.
type LinkRequest struct {
	ID            string    `json:"id"`
	SalespersonID string    `json:"salespersonId"`
	DistributorID string    `json:"distributorId"`
	Status        LinkState `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
