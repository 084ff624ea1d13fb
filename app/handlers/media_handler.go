package handlers

import (
	"log"

	"github.com/amirphl/Izanagi/app/middleware"
	businessflow "github.com/amirphl/Izanagi/business_flow"
	"github.com/gofiber/fiber/v3"
)

// MediaHandler handles ad creative upload and download requests
type MediaHandler struct {
	mediaFlow businessflow.MediaFlow
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaFlow businessflow.MediaFlow) *MediaHandler {
	return &MediaHandler{mediaFlow: mediaFlow}
}

// Upload stores an ad creative image for the calling user
// @Summary Upload Ad Image
// @Description Upload an ad creative image (jpg/jpeg/png/gif/webp)
// @Tags Media
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} dto.APIResponse{data=dto.UploadImageResponse} "Upload successful"
// @Failure 400 {object} dto.APIResponse "Invalid file"
// @Security BearerAuth
// @Router /api/v1/media/upload [post]
func (h *MediaHandler) Upload(c fiber.Ctx) error {
	userID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		return errorResponse(c, fiber.StatusBadRequest, "File is required", "INVALID_FILE", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid file", "INVALID_FILE", err.Error())
	}
	defer file.Close()

	result, err := h.mediaFlow.UploadImage(requestContext(c), userID.String(), fileHeader.Filename, file, fileHeader.Size, clientMetadata(c))
	if err != nil {
		if businessflow.IsUserNotFound(err) {
			return errorResponse(c, fiber.StatusUnauthorized, "User not found", "USER_NOT_FOUND", nil)
		}
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "INVALID_FILE", "INVALID_FILE_TYPE", "FILE_TOO_LARGE", "INVALID_REQUEST":
				return errorResponse(c, fiber.StatusBadRequest, be.Message, be.Code, nil)
			}
		}
		log.Println("Image upload failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to upload image", "UPLOAD_FAILED", nil)
	}

	return successResponse(c, fiber.StatusCreated, result.Message, result)
}

// Download serves a stored ad creative by asset id
// @Summary Download Ad Image
// @Description Download an uploaded ad creative by asset id
// @Tags Media
// @Produce application/octet-stream
// @Param id path string true "Asset ID"
// @Success 200 {string} string "Binary file"
// @Failure 404 {object} dto.APIResponse "Image not found"
// @Security BearerAuth
// @Router /api/v1/media/{id} [get]
func (h *MediaHandler) Download(c fiber.Ctx) error {
	filename, contentType, data, err := h.mediaFlow.ServeImage(requestContext(c), c.Params("id"))
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok && be.Code == "IMAGE_NOT_FOUND" {
			return errorResponse(c, fiber.StatusNotFound, "Image not found", be.Code, nil)
		}
		log.Println("Image download failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to download image", "DOWNLOAD_FAILED", nil)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}
