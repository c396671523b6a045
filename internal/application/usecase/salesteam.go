package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// SalesTeamUseCase solicitudes de vínculo y vendedores del distribuidor.
type SalesTeamUseCase struct {
	api ports.SalesTeamAPI
}

// NewSalesTeamUseCase construye el caso de uso.
func NewSalesTeamUseCase(api ports.SalesTeamAPI) *SalesTeamUseCase {
	return &SalesTeamUseCase{api: api}
}

// View solicitudes (pendientes primero) y vendedores vinculados.
func (uc *SalesTeamUseCase) View(ctx context.Context) (*dto.SalesTeamView, error) {
	var requests, linked []entity.LinkRequest
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		requests, err = uc.api.SalesRequests(gctx)
		return err
	})
	g.Go(func() (err error) {
		linked, err = uc.api.Salespersons(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	view := &dto.SalesTeamView{
		Pending:      []entity.LinkRequest{},
		Decided:      []entity.LinkRequest{},
		Salespersons: nonNil(linked),
	}
	for _, r := range requests {
		if r.Status == entity.LinkPending {
			view.Pending = append(view.Pending, r)
		} else {
			view.Decided = append(view.Decided, r)
		}
	}
	return view, nil
}

// Approve aprueba una solicitud.
func (uc *SalesTeamUseCase) Approve(ctx context.Context, id string) (*dto.MessageResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.Invalid("Request is required")
	}
	if _, err := uc.api.ApproveSalesRequest(ctx, id); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Request approved"}, nil
}

// Reject rechaza una solicitud.
func (uc *SalesTeamUseCase) Reject(ctx context.Context, id string) (*dto.MessageResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.Invalid("Request is required")
	}
	if _, err := uc.api.RejectSalesRequest(ctx, id); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Request rejected"}, nil
}

// Unlink desvincula a un vendedor.
func (uc *SalesTeamUseCase) Unlink(ctx context.Context, salespersonID string) (*dto.MessageResponse, error) {
	if strings.TrimSpace(salespersonID) == "" {
		return nil, domain.Invalid("Salesperson is required")
	}
	if err := uc.api.UnlinkSalesperson(ctx, salespersonID); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Salesperson unlinked"}, nil
}
