package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/httpresp"
	"github.com/amgrenovation/ops-dashboard/internal/imaging"
	"github.com/amgrenovation/ops-dashboard/internal/logger"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/storage"
	"github.com/amgrenovation/ops-dashboard/internal/timezone"
)

const maxUploadBytes = 20 << 20

var fileCategories = map[string]bool{
	"devis":   true,
	"facture": true,
	"photo":   true,
	"other":   true,
}

type FileHandler struct {
	db    *gorm.DB
	store storage.ObjectStore
	audit *audit.Dispatcher
}

func NewFileHandler(db *gorm.DB, store storage.ObjectStore, audit *audit.Dispatcher) *FileHandler {
	return &FileHandler{db: db, store: store, audit: audit}
}

// ======================================================
// LIST
// ======================================================

// List searches file names and client last names; ?category narrows to one
// category.
func (h *FileHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Preload("Client").
		Order("company_files.created_at DESC")

	if category := c.Query("category"); category != "" {
		q = q.Where("company_files.category = ?", category)
	}
	if search := strings.ToLower(strings.TrimSpace(c.Query("query"))); search != "" {
		like := "%" + search + "%"
		q = q.Joins("LEFT JOIN clients ON clients.id = company_files.client_id").
			Where("LOWER(company_files.file_name) LIKE ? OR LOWER(COALESCE(clients.lastname, '')) LIKE ?", like, like)
	}

	var files []models.CompanyFile
	if err := q.Find(&files).Error; err != nil {
		httperr.Internal(c, "failed_to_list_files", "Erreur lors du chargement des fichiers.")
		return
	}

	httpresp.List(c, files)
}

// ======================================================
// UPLOAD
// ======================================================

// Upload stores a multipart "file" in object storage. Pictures are
// normalized to WebP first.
func (h *FileHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "file_required", "Fichier requis.")
		return
	}
	if fh.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Fichier trop volumineux.")
		return
	}

	category := c.DefaultPostForm("category", "other")
	if !fileCategories[category] {
		httperr.BadRequest(c, "invalid_category", "Catégorie invalide.")
		return
	}

	var clientID *uuid.UUID
	if raw := c.PostForm("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_client_id", "Client invalide.")
			return
		}
		clientID = &id
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "file_unreadable", "Fichier illisible.")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		httperr.BadRequest(c, "file_unreadable", "Fichier illisible.")
		return
	}

	name := fh.Filename
	contentType := fh.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "image/") {
		if webp, err := imaging.Normalize(data, imaging.DefaultMaxDimension); err == nil {
			data = webp
			contentType = imaging.ContentType
			name = strings.TrimSuffix(name, extOf(name)) + imaging.Extension
		} else if !errors.Is(err, imaging.ErrUnsupported) {
			httperr.Internal(c, "image_processing_failed", "Erreur lors du traitement de l'image.")
			return
		}
	}

	key := storage.NewKey("files", name, timezone.Now())
	url, err := h.store.Put(c.Request.Context(), key, contentType, data)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			httperr.Write(c, http.StatusServiceUnavailable, "storage_not_configured", "Stockage non configuré.")
			return
		}
		logger.FromGin(c).Error("file upload failed", zap.Error(err))
		httperr.Internal(c, "upload_failed", "Erreur lors de l'envoi du fichier.")
		return
	}

	file := models.CompanyFile{
		FileType:   contentType,
		FileName:   name,
		FileURL:    url,
		StorageKey: key,
		ClientID:   clientID,
		Category:   category,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&file).Error; err != nil {
		_ = h.store.Delete(c.Request.Context(), key)
		httperr.Internal(c, "failed_to_save_file", "Erreur lors de l'enregistrement du fichier.")
		return
	}

	writeAudit(c, h.audit, "file_uploaded", "company_file", &file.ID, map[string]any{
		"category": category,
		"size":     len(data),
	})
	c.JSON(http.StatusCreated, file)
}

// ======================================================
// DELETE
// ======================================================

func (h *FileHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var file models.CompanyFile
	if err := h.db.WithContext(c.Request.Context()).First(&file, "id = ?", id).Error; err != nil {
		httperr.FromError(c, err, "failed_to_load_file")
		return
	}

	if file.StorageKey != "" {
		if err := h.store.Delete(c.Request.Context(), file.StorageKey); err != nil && !errors.Is(err, storage.ErrNotConfigured) {
			logger.FromGin(c).Warn("stored object not deleted", zap.String("key", file.StorageKey), zap.Error(err))
		}
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&file).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_file", "Erreur lors de la suppression du fichier.")
		return
	}

	writeAudit(c, h.audit, "file_deleted", "company_file", &id, nil)
	c.Status(http.StatusNoContent)
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}
