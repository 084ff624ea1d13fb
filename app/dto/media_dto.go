package dto

// UploadImageResponse represents the response after uploading an ad creative
type UploadImageResponse struct {
	Message  string `json:"message"`
	AssetID  string `json:"asset_id"`
	ImgURL   string `json:"img_url"`
	ThumbURL string `json:"thumb_url,omitempty"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}
