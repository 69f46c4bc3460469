package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/akkharat/folioserv/internal/activity"
	"github.com/akkharat/folioserv/internal/blob"
	dbpkg "github.com/akkharat/folioserv/internal/db"
	"github.com/akkharat/folioserv/internal/thumbnail"
)

// multipartFile is one uploaded payload with its resolved content type.
type multipartFile struct {
	data        []byte
	contentType string
	name        string
}

func (s *Server) readMultipartFile(w http.ResponseWriter, r *http.Request, field string) (multipartFile, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeAPIError(w, http.StatusBadRequest, fmt.Sprintf("parse multipart form: %v", err))
		return multipartFile{}, false
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "no file uploaded")
		return multipartFile{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, fmt.Sprintf("read uploaded file: %v", err))
		return multipartFile{}, false
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return multipartFile{data: data, contentType: contentType, name: header.Filename}, true
}

func isImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// handleProjectImageUpload stores the payload and, when a project_id form
// value accompanies it, records the image against that project. The first
// image a project receives also becomes its thumbnail, downscaled when the
// payload is a decodable raster.
func (s *Server) handleProjectImageUpload(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	file, ok := s.readMultipartFile(w, r, "image")
	if !ok {
		return
	}
	if !isImageType(file.contentType) {
		writeAPIError(w, http.StatusBadRequest, "only image uploads are accepted")
		return
	}

	// Validate the target project before the object lands in the store, so
	// rejected requests leave no orphaned blobs behind.
	var projectID int64
	if raw := r.FormValue("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeAPIError(w, http.StatusBadRequest, fmt.Sprintf("invalid project_id %q", raw))
			return
		}
		if _, err := s.queries().GetProjectByID(r.Context(), id); err != nil {
			if errors.Is(err, dbpkg.ErrNotFound) {
				writeAPIError(w, http.StatusNotFound, "not found")
				return
			}
			s.writeInternalAPIError(w, r, "record project image failed", err)
			return
		}
		projectID = id
	}

	imageURL, err := s.blobStore.Store(r.Context(), file.data, file.contentType, file.name, "project-images")
	if err != nil {
		s.writeInternalAPIError(w, r, "store uploaded image failed", err)
		return
	}

	if projectID != 0 {
		if _, err := s.queries().InsertProjectImage(r.Context(), projectID, imageURL, r.FormValue("caption"), 0); err != nil {
			s.writeInternalAPIError(w, r, "record project image failed", err)
			return
		}
		if err := s.ensureProjectThumbnail(r, projectID, file, imageURL); err != nil {
			s.writeInternalAPIError(w, r, "set project thumbnail failed", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": imageURL})
}

// ensureProjectThumbnail sets a thumbnail for a project that has none yet.
// Undecodable payloads fall back to the full-size image URL.
func (s *Server) ensureProjectThumbnail(r *http.Request, projectID int64, file multipartFile, imageURL string) error {
	project, err := s.queries().GetProjectByID(r.Context(), projectID)
	if err != nil {
		return err
	}
	if project.ThumbnailURL != nil && *project.ThumbnailURL != "" {
		return nil
	}

	thumbnailURL := imageURL
	if thumb, err := thumbnail.Generate(file.data); err == nil {
		stored, err := s.blobStore.Store(r.Context(), thumb, "image/png", "thumb-"+file.name+".png", "thumbnails")
		if err != nil {
			return err
		}
		thumbnailURL = stored
	} else {
		s.logger.Debug("thumbnail generation skipped", "project_id", projectID, "error", err)
	}
	return s.queries().SetProjectThumbnail(r.Context(), projectID, thumbnailURL)
}

func (s *Server) handleDeliveryImageUpload(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	deliveryID, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := s.queries().GetDeliveryByID(r.Context(), deliveryID); err != nil {
		if errors.Is(err, dbpkg.ErrNotFound) {
			writeAPIError(w, http.StatusNotFound, "not found")
			return
		}
		s.writeInternalAPIError(w, r, "record delivery image failed", err)
		return
	}
	file, ok := s.readMultipartFile(w, r, "image")
	if !ok {
		return
	}
	if !isImageType(file.contentType) {
		writeAPIError(w, http.StatusBadRequest, "only image uploads are accepted")
		return
	}

	imageURL, err := s.blobStore.Store(r.Context(), file.data, file.contentType, file.name, "delivery-images")
	if err != nil {
		s.writeInternalAPIError(w, r, "store uploaded image failed", err)
		return
	}

	imageID, err := s.queries().InsertDeliveryImage(r.Context(), deliveryID, imageURL, r.FormValue("caption"), 0)
	if err != nil {
		s.writeInternalAPIError(w, r, "record delivery image failed", err)
		return
	}
	row, err := s.queries().GetDeliveryImageByID(r.Context(), imageID)
	if err != nil {
		s.writeInternalAPIError(w, r, "record delivery image failed", err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// handleCertificationUpload accepts any MIME type; certificates are often
// PDFs.
func (s *Server) handleCertificationUpload(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	certID, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	file, ok := s.readMultipartFile(w, r, "cert_file")
	if !ok {
		return
	}

	fileURL, err := s.blobStore.Store(r.Context(), file.data, file.contentType, file.name, "certificates")
	if err != nil {
		s.writeInternalAPIError(w, r, "store certificate file failed", err)
		return
	}

	updated, err := s.queries().SetCertificationURL(r.Context(), certID, fileURL)
	if err != nil {
		s.writeInternalAPIError(w, r, "update certification failed", err)
		return
	}
	if !updated {
		writeAPIError(w, http.StatusNotFound, "not found")
		return
	}

	s.recordActivity(r.Context(), activity.ActionUploadCert, fmt.Sprintf("Certificate file uploaded for cert ID: %d", certID))
	writeJSON(w, http.StatusOK, map[string]string{"url": fileURL})
}

func (s *Server) handleDeleteProjectImage(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, err := s.queries().GetProjectImageByID(r.Context(), id)
	if err != nil && !errors.Is(err, dbpkg.ErrNotFound) {
		s.writeInternalAPIError(w, r, "delete project image failed", err)
		return
	}
	if err == nil {
		if err := s.queries().DeleteProjectImage(r.Context(), id); err != nil {
			s.writeInternalAPIError(w, r, "delete project image failed", err)
			return
		}
		s.removeStoredObject(r, img.ImageURL)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}

func (s *Server) handleDeleteDeliveryImage(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, err := s.queries().GetDeliveryImageByID(r.Context(), id)
	if err != nil && !errors.Is(err, dbpkg.ErrNotFound) {
		s.writeInternalAPIError(w, r, "delete delivery image failed", err)
		return
	}
	if err == nil {
		if err := s.queries().DeleteDeliveryImage(r.Context(), id); err != nil {
			s.writeInternalAPIError(w, r, "delete delivery image failed", err)
			return
		}
		s.removeStoredObject(r, img.ImageURL)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// removeStoredObject reclaims the blob behind a deleted image row when the
// configured store can. Failures are logged, never surfaced.
func (s *Server) removeStoredObject(r *http.Request, storedURL string) {
	remover, ok := s.blobStore.(blob.Remover)
	if !ok {
		return
	}
	if err := remover.Remove(r.Context(), storedURL); err != nil {
		s.logger.Warn("stored object removal failed", "url", storedURL, "error", err)
	}
}
