package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/meinhoongagan/portfolio-api/utils"
)

// Cloudinary stores uploads in a Cloudinary folder and references them by secure URL.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (s *Cloudinary) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := utils.UploadFilename(file.Filename, time.Now())
	resp, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		PublicID: strings.TrimSuffix(name, path.Ext(name)),
		Folder:   s.folder,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("failed to upload %s: %s", name, resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (s *Cloudinary) Delete(ctx context.Context, ref string) error {
	publicID, err := publicIDFromURL(ref)
	if err != nil {
		return err
	}
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to destroy %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("failed to destroy %s: %s", publicID, resp.Error.Message)
	}
	return nil
}

// publicIDFromURL turns
// https://res.cloudinary.com/<cloud>/image/upload/v123/folder/name.png
// into folder/name.
func publicIDFromURL(ref string) (string, error) {
	_, rest, found := strings.Cut(ref, "/upload/")
	if !found || rest == "" {
		return "", errors.New("not a cloudinary url: " + ref)
	}
	if first, tail, ok := strings.Cut(rest, "/"); ok && len(first) > 1 && first[0] == 'v' && isDigits(first[1:]) {
		rest = tail
	}
	return strings.TrimSuffix(rest, path.Ext(rest)), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
