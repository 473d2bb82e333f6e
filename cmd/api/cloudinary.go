package main

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	classPhotoFolder     = "fitspot/classes"
	profilePictureFolder = "fitspot/profiles"
)

func (app *application) uploadImage(ctx context.Context, file multipart.File, folder, publicID string) (string, error) {
	resp, err := app.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:    folder,
		PublicID:  publicID,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}

// deleteImage removes a previously uploaded asset given its delivery URL.
func (app *application) deleteImage(ctx context.Context, url string) error {
	publicID := publicIDFromURL(url)
	if publicID == "" {
		return nil
	}

	_, err := app.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// publicIDFromURL extracts the public ID from a Cloudinary delivery URL,
// i.e. everything after the version segment, without the file extension.
func publicIDFromURL(url string) string {
	parts := strings.Split(url, "/upload/")
	if len(parts) != 2 {
		return ""
	}

	path := parts[1]
	if i := strings.Index(path, "/"); i >= 0 && strings.HasPrefix(path, "v") {
		path = path[i+1:]
	}

	if i := strings.LastIndex(path, "."); i >= 0 {
		path = path[:i]
	}
	return path
}
