package usecase

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

const maxProfileField = 200

// ProfileUseCase perfil del usuario autenticado.
type ProfileUseCase struct {
	api     ports.ProfileAPI
	uploads ports.UploadAPI
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(api ports.ProfileAPI, uploads ports.UploadAPI) *ProfileUseCase {
	return &ProfileUseCase{api: api, uploads: uploads}
}

// Get perfil actual.
func (uc *ProfileUseCase) Get(ctx context.Context) (*entity.Profile, error) {
	return uc.api.GetProfile(ctx)
}

// Update aplica los campos presentes, recortando espacios.
func (uc *ProfileUseCase) Update(ctx context.Context, in entity.ProfileUpdate) (*entity.Profile, error) {
	fields := []**string{&in.Name, &in.OrganizationName, &in.Phone, &in.Address, &in.Photo}
	for _, f := range fields {
		if *f == nil {
			continue
		}
		v := strings.TrimSpace(**f)
		if len(v) > maxProfileField {
			return nil, domain.Invalid("Profile fields must be at most 200 characters")
		}
		*f = &v
	}
	return uc.api.UpdateProfile(ctx, in)
}

// UploadPhoto sube la foto y la guarda en el perfil.
func (uc *ProfileUseCase) UploadPhoto(ctx context.Context, filename string, r io.Reader) (*entity.Profile, error) {
	if !imageExts[strings.ToLower(path.Ext(filename))] {
		return nil, domain.Invalid("Please choose an image file")
	}
	url, err := uc.uploads.UploadImage(ctx, filename, r)
	if err != nil {
		return nil, err
	}
	return uc.api.UpdateProfile(ctx, entity.ProfileUpdate{Photo: &url})
}
