package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"entrenador/gym-platform/internal/domain"
	"entrenador/gym-platform/internal/repository"
	"entrenador/gym-platform/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// upsertMedia stores the file and fills the (enrollment, type) media
// slot, replacing the previous record and object when one exists.
func upsertMedia(ctx context.Context, mediaRepo repository.MediaRepository, fileStorage storage.FileStorage, enrollmentID primitive.ObjectID, mediaType domain.MediaType, file FileUpload) (*domain.Media, error) {
	field := strings.ToLower(string(mediaType))
	objectKey := storage.ObjectKey("media", enrollmentID.Hex(), field, file.Ext())
	url, err := fileStorage.Upload(ctx, objectKey, file.ContentType, file.Reader(), file.Size)
	if err != nil {
		return nil, ErrUploadFailed
	}

	existing, err := mediaRepo.GetByEnrollmentAndType(ctx, enrollmentID, mediaType)
	if err == nil {
		oldKey := existing.ObjectKey
		existing.Filename = file.Filename
		existing.URL = url
		existing.ObjectKey = objectKey
		existing.FileSize = file.Size
		if err := mediaRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		if oldKey != "" && oldKey != objectKey {
			if err := fileStorage.DeleteObject(ctx, oldKey); err != nil {
				log.Printf("WARN: could not delete replaced media %s: %v", oldKey, err)
			}
		}
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	media := &domain.Media{
		EnrollmentID: enrollmentID,
		Type:         mediaType,
		Filename:     file.Filename,
		URL:          url,
		ObjectKey:    objectKey,
		FileSize:     file.Size,
	}
	mediaID, err := mediaRepo.Create(ctx, media)
	if err != nil {
		return nil, err
	}
	media.ID = mediaID
	return media, nil
}
