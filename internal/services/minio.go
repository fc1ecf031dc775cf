package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"time"

	"mani_electrical_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// UploadProductImage envoie une image produit dans MinIO et retourne son URL
func UploadProductImage(objectName string, file multipart.File, size int64, contentType string) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	bucket := os.Getenv("MINIO_BUCKET")
	_, err := database.MinIO.PutObject(context.Background(), bucket, objectName, file, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://%s/%s/%s", os.Getenv("MINIO_ENDPOINT"), bucket, objectName)
	return url, nil
}

// SignedImageURL génère une URL présignée temporaire pour un objet
func SignedImageURL(objectName string, expiry time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	u, err := database.MinIO.PresignedGetObject(context.Background(),
		os.Getenv("MINIO_BUCKET"), objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
