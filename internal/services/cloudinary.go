package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/RaidenNguyen/HanziLaoshi/internal/config"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryService handles all Cloudinary operations
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService creates a new Cloudinary service instance
func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{
		cld: cld,
	}, nil
}

// UploadAvatar uploads an avatar image to Cloudinary
func (s *CloudinaryService) UploadAvatar(ctx context.Context, file multipart.File, userID string) (string, error) {
	// Définir le public ID (chemin dans Cloudinary)
	publicID := fmt.Sprintf("avatars/%s", userID)
	overwrite := true

	// Upload vers Cloudinary
	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         "hanzilaoshi/avatars",
		Overwrite:      &overwrite,                  // Écraser l'ancien avatar
		ResourceType:   "image",
		Format:         "jpg",                       // Convertir en JPG
		Transformation: "c_fill,g_face,h_500,w_500", // Redimensionner et centrer sur le visage
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}

	// Retourner l'URL sécurisée
	return uploadResult.SecureURL, nil
}

// UploadAudio uploads a pronunciation audio clip for a vocabulary entry
func (s *CloudinaryService) UploadAudio(ctx context.Context, file multipart.File, vocabID string) (string, error) {
	publicID := fmt.Sprintf("audio/%s", vocabID)
	overwrite := true

	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       "hanzilaoshi/audio",
		Overwrite:    &overwrite,
		ResourceType: "video", // Cloudinary range l'audio sous "video"
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}

	return uploadResult.SecureURL, nil
}

// DeleteImage deletes an image from Cloudinary by its public ID
func (s *CloudinaryService) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
