package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	"image/jpeg"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/amirphl/Izanagi/app/dto"
	"github.com/amirphl/Izanagi/config"
	"github.com/amirphl/Izanagi/models"
	"github.com/amirphl/Izanagi/repository"
	"github.com/amirphl/Izanagi/utils"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// MediaFlow handles ad creative image uploads
type MediaFlow interface {
	UploadImage(ctx context.Context, userID, originalFilename string, file io.Reader, fileSize int64, metadata *ClientMetadata) (*dto.UploadImageResponse, error)
	ServeImage(ctx context.Context, assetID string) (string, string, []byte, error)
}

// MediaFlowImpl implements MediaFlow
type MediaFlowImpl struct {
	userRepo  repository.UserRepository
	assetRepo repository.ImageAssetRepository
	cfg       config.MediaConfig
}

// NewMediaFlow creates a new media flow instance
func NewMediaFlow(userRepo repository.UserRepository, assetRepo repository.ImageAssetRepository, cfg config.MediaConfig) MediaFlow {
	return &MediaFlowImpl{
		userRepo:  userRepo,
		assetRepo: assetRepo,
		cfg:       cfg,
	}
}

var imageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// UploadImage stores an ad creative on disk, writes a jpeg thumbnail
// next to it and records the asset for its owner.
func (f *MediaFlowImpl) UploadImage(ctx context.Context, userID, originalFilename string, file io.Reader, fileSize int64, metadata *ClientMetadata) (*dto.UploadImageResponse, error) {
	if file == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "File is required", nil)
	}

	ownerID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, NewBusinessError("INVALID_USER_ID", "User id must be a valid UUID", err)
	}

	user, err := f.userRepo.ByID(ctx, ownerID)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to lookup user", err)
	}
	if user == nil {
		return nil, NewBusinessError("USER_NOT_FOUND", "User does not exist", ErrUserNotFound)
	}

	if fileSize <= 0 {
		return nil, NewBusinessError("INVALID_FILE", "File size is required", nil)
	}
	if fileSize > f.cfg.MaxUploadSize {
		return nil, NewBusinessError("FILE_TOO_LARGE", fmt.Sprintf("File size exceeds %d bytes", f.cfg.MaxUploadSize), nil)
	}

	ext := strings.ToLower(filepath.Ext(originalFilename))
	if _, ok := imageExts[ext]; !ok {
		return nil, NewBusinessError("INVALID_FILE_TYPE", "Only jpg, jpeg, png, gif and webp images are accepted", nil)
	}

	storedPath, size, mimeType, err := f.saveImageToDisk(file, ext)
	if err != nil {
		return nil, err
	}

	thumbPath, err := f.writeThumbnail(storedPath)
	if err != nil {
		// Thumbnail failures do not fail the upload; the original
		// serves as its own preview.
		thumbPath = ""
	}

	asset := models.ImageAsset{
		OwnerUserID:      ownerID,
		OriginalFilename: originalFilename,
		StoredPath:       storedPath,
		SizeBytes:        size,
		MimeType:         mimeType,
		Extension:        ext,
	}
	if err := f.assetRepo.Save(ctx, &asset); err != nil {
		_ = os.Remove(filepath.FromSlash(storedPath))
		if thumbPath != "" {
			_ = os.Remove(filepath.FromSlash(thumbPath))
		}
		return nil, NewBusinessError("UPLOAD_FAILED", "Failed to record uploaded image", err)
	}

	resp := &dto.UploadImageResponse{
		Message:  "Image uploaded successfully",
		AssetID:  asset.ID.String(),
		ImgURL:   f.publicURL(storedPath),
		Size:     size,
		MimeType: mimeType,
	}
	if thumbPath != "" {
		resp.ThumbURL = f.publicURL(thumbPath)
	}
	return resp, nil
}

// ServeImage returns the stored creative bytes with its filename and
// content type.
func (f *MediaFlowImpl) ServeImage(ctx context.Context, assetID string) (string, string, []byte, error) {
	id, err := utils.ParseUUID(assetID)
	if err != nil {
		return "", "", nil, NewBusinessError("INVALID_ASSET_ID", "Asset id must be a valid UUID", err)
	}

	asset, err := f.assetRepo.ByID(ctx, id)
	if err != nil {
		return "", "", nil, NewBusinessError("ASSET_LOOKUP_FAILED", "Failed to lookup image", err)
	}
	if asset == nil {
		return "", "", nil, NewBusinessError("IMAGE_NOT_FOUND", "Image does not exist", nil)
	}

	cleanPath, err := f.sanitizeImagePath(asset.StoredPath)
	if err != nil {
		return "", "", nil, err
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", "", nil, err
	}

	filename := filepath.Base(cleanPath)
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		contentType = asset.MimeType
	}
	return filename, contentType, data, nil
}

func (f *MediaFlowImpl) saveImageToDisk(reader io.Reader, ext string) (string, int64, string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(reader, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", 0, "", err
	}
	head = head[:n]

	detected := http.DetectContentType(head)
	if !strings.HasPrefix(detected, "image/") {
		return "", 0, "", NewBusinessError("INVALID_FILE_TYPE", "File content is not an image", nil)
	}

	dateDir := utils.UTCNow().Format("2006-01-02")
	baseDir := filepath.Join(f.cfg.UploadDir, dateDir)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", 0, "", err
	}

	filename := uuid.New().String() + ext
	fullPath := filepath.Join(baseDir, filename)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", 0, "", err
	}
	defer dst.Close()

	fullReader := io.MultiReader(bytes.NewReader(head), reader)
	limited := io.LimitReader(fullReader, f.cfg.MaxUploadSize+1)
	written, err := io.Copy(dst, limited)
	if err != nil {
		_ = os.Remove(fullPath)
		return "", 0, "", err
	}
	if written > f.cfg.MaxUploadSize {
		_ = os.Remove(fullPath)
		return "", 0, "", NewBusinessError("FILE_TOO_LARGE", fmt.Sprintf("File size exceeds %d bytes", f.cfg.MaxUploadSize), nil)
	}

	return filepath.ToSlash(fullPath), written, detected, nil
}

func (f *MediaFlowImpl) writeThumbnail(storedPath string) (string, error) {
	src, err := os.Open(filepath.FromSlash(storedPath))
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", err
	}

	thumb := resizeImage(img, f.cfg.ThumbnailWidth)
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, thumb, &jpeg.Options{Quality: 75}); err != nil {
		return "", err
	}

	ext := filepath.Ext(storedPath)
	thumbPath := strings.TrimSuffix(storedPath, ext) + "_thumb.jpg"
	if err := os.WriteFile(filepath.FromSlash(thumbPath), buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return thumbPath, nil
}

func (f *MediaFlowImpl) sanitizeImagePath(path string) (string, error) {
	if path == "" {
		return "", NewBusinessError("INVALID_PATH", "Path is empty", nil)
	}
	cleaned := filepath.ToSlash(filepath.Clean(filepath.FromSlash(path)))
	base := filepath.ToSlash(filepath.Clean(f.cfg.UploadDir))
	if !strings.HasPrefix(cleaned, base) {
		return "", NewBusinessError("INVALID_PATH", "Path is outside the upload directory", nil)
	}
	return filepath.FromSlash(cleaned), nil
}

func (f *MediaFlowImpl) publicURL(storedPath string) string {
	rel := strings.TrimPrefix(filepath.ToSlash(storedPath), filepath.ToSlash(f.cfg.UploadDir))
	rel = strings.TrimPrefix(rel, "/")
	return strings.TrimSuffix(f.cfg.PublicBaseURL, "/") + "/" + rel
}

// resizeImage scales src down so its longest side is at most maxDim,
// compositing onto a white background for transparent sources.
func resizeImage(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	var nw, nh int
	if w >= h {
		nw = maxDim
		nh = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		nh = maxDim
		nw = int(float64(w) * float64(maxDim) / float64(h))
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	imagedraw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, imagedraw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
