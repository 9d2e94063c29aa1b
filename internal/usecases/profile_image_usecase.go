package usecases

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/domain/repositories"
	"crm-admin.backend/pkg/logger"
	"crm-admin.backend/pkg/metrics"
)

// ProfileImageUsecase keeps profile images in the blob store and the
// profile's pointer to them in step
type ProfileImageUsecase struct {
	blobs           repositories.BlobStore
	salesPersonRepo repositories.SalesPersonProfileRepository
	adminRepo       repositories.AdminProfileRepository
	maxBytes        int
}

// NewProfileImageUsecase creates a new profile image usecase. maxBytes is the
// exclusive size limit; zero selects DefaultMaxImageBytes.
func NewProfileImageUsecase(
	blobs repositories.BlobStore,
	salesPersonRepo repositories.SalesPersonProfileRepository,
	adminRepo repositories.AdminProfileRepository,
	maxBytes int,
) *ProfileImageUsecase {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &ProfileImageUsecase{
		blobs:           blobs,
		salesPersonRepo: salesPersonRepo,
		adminRepo:       adminRepo,
		maxBytes:        maxBytes,
	}
}

// MaxBytes is the exclusive upload size limit in effect
func (u *ProfileImageUsecase) MaxBytes() int {
	return u.maxBytes
}

// Upload stores content and points the profile at it
func (u *ProfileImageUsecase) Upload(
	ctx context.Context,
	category entities.BlobCategory,
	profileID int64,
	filename string,
	content []byte,
	contentType string,
) (string, error) {
	blobID, err := u.upload(ctx, category, profileID, filename, content, contentType)
	metrics.IncBlobOperation("upload", string(category), metrics.Outcome(err))
	return blobID, err
}

func (u *ProfileImageUsecase) upload(
	ctx context.Context,
	category entities.BlobCategory,
	profileID int64,
	filename string,
	content []byte,
	contentType string,
) (string, error) {
	if !category.IsValid() {
		return "", domainerrors.InvalidInput("Unknown image category")
	}
	if _, err := u.currentImage(ctx, category, profileID); err != nil {
		return "", err
	}
	if !strings.HasPrefix(strings.ToLower(contentType), imageContentTypePrefix) {
		return "", domainerrors.InvalidInput("File type not supported")
	}
	if len(content) == 0 {
		return "", domainerrors.InvalidInput("File is empty")
	}
	if len(content) >= u.maxBytes {
		return "", domainerrors.PayloadTooLarge(fmt.Sprintf("File must be smaller than %d bytes", u.maxBytes))
	}

	name := fmt.Sprintf("%s_%d%s", category, profileID, strings.ToLower(path.Ext(filename)))
	blobID, err := u.blobs.Put(ctx, category, name, contentType, content)
	if err != nil {
		return "", domainerrors.InternalError(err)
	}

	if err := u.setImage(ctx, category, profileID, &blobID); err != nil {
		logger.Error(ctx, "Profile image stored but pointer not updated",
			zap.String("category", string(category)),
			zap.Int64("profile_id", profileID),
			zap.String("blob_id", blobID),
			zap.Error(err),
		)
		return "", domainerrors.PartialFailure("Image stored but profile was not updated")
	}

	logger.Info(ctx, "Profile image uploaded",
		zap.String("category", string(category)),
		zap.Int64("profile_id", profileID),
		zap.String("blob_id", blobID),
	)
	return blobID, nil
}

// Download returns a stored image
func (u *ProfileImageUsecase) Download(ctx context.Context, category entities.BlobCategory, blobID string) (*entities.Blob, error) {
	blob, err := u.download(ctx, category, blobID)
	metrics.IncBlobOperation("download", string(category), metrics.Outcome(err))
	return blob, err
}

func (u *ProfileImageUsecase) download(ctx context.Context, category entities.BlobCategory, blobID string) (*entities.Blob, error) {
	if !category.IsValid() {
		return nil, domainerrors.InvalidInput("Unknown image category")
	}
	blob, err := u.blobs.Get(ctx, category, blobID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("File not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	return blob, nil
}

// Delete removes the profile's image and clears its pointer
func (u *ProfileImageUsecase) Delete(ctx context.Context, category entities.BlobCategory, profileID int64) error {
	err := u.delete(ctx, category, profileID)
	metrics.IncBlobOperation("delete", string(category), metrics.Outcome(err))
	return err
}

func (u *ProfileImageUsecase) delete(ctx context.Context, category entities.BlobCategory, profileID int64) error {
	if !category.IsValid() {
		return domainerrors.InvalidInput("Unknown image category")
	}
	current, err := u.currentImage(ctx, category, profileID)
	if err != nil {
		return err
	}
	if !current.Valid || current.String == "" {
		return domainerrors.NotFound("Profile has no image")
	}

	exists, err := u.blobs.Exists(ctx, category, current.String)
	if err != nil {
		return domainerrors.InternalError(err)
	}
	if !exists {
		return domainerrors.NotFound("File not found")
	}
	if err := u.blobs.Delete(ctx, category, current.String); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("File not found")
		}
		return domainerrors.InternalError(err)
	}

	if err := u.setImage(ctx, category, profileID, nil); err != nil {
		logger.Error(ctx, "Profile image deleted but pointer not cleared",
			zap.String("category", string(category)),
			zap.Int64("profile_id", profileID),
			zap.Error(err),
		)
		return domainerrors.PartialFailure("Image deleted but profile was not updated")
	}

	logger.Info(ctx, "Profile image deleted",
		zap.String("category", string(category)),
		zap.Int64("profile_id", profileID),
	)
	return nil
}

func (u *ProfileImageUsecase) currentImage(ctx context.Context, category entities.BlobCategory, profileID int64) (null.String, error) {
	switch category {
	case entities.BlobSalesPersonProfileImage:
		p, err := u.salesPersonRepo.GetByID(ctx, profileID)
		if err != nil {
			return null.String{}, profileLookupError(err, "Sales person not found")
		}
		return p.ProfileImage, nil
	case entities.BlobAdminProfileImage:
		p, err := u.adminRepo.GetByID(ctx, profileID)
		if err != nil {
			return null.String{}, profileLookupError(err, "Admin not found")
		}
		return p.ProfileImage, nil
	}
	return null.String{}, domainerrors.InvalidInput("Unknown image category")
}

func (u *ProfileImageUsecase) setImage(ctx context.Context, category entities.BlobCategory, profileID int64, blobID *string) error {
	if category == entities.BlobAdminProfileImage {
		return u.adminRepo.SetProfileImage(ctx, profileID, blobID)
	}
	return u.salesPersonRepo.SetProfileImage(ctx, profileID, blobID)
}

func profileLookupError(err error, notFound string) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound(notFound)
	}
	return domainerrors.InternalError(err)
}
