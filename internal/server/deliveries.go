package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/akkharat/folioserv/internal/activity"
	dbpkg "github.com/akkharat/folioserv/internal/db"
)

type deliveryCreateRequest struct {
	ProjectName string  `json:"project_name"`
	ContractNo  *string `json:"contract_no"`
	Client      *string `json:"client"`
	Category    *string `json:"category"`
	Budget      float64 `json:"budget"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Year        *int    `json:"year"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	SortOrder   int     `json:"sort_order"`
}

type deliveryUpdateRequest struct {
	ProjectName *string  `json:"project_name"`
	ContractNo  *string  `json:"contract_no"`
	Client      *string  `json:"client"`
	Category    *string  `json:"category"`
	Budget      *float64 `json:"budget"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	SortOrder   *int     `json:"sort_order"`
}

func (s *Server) handleListDeliveries(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	deliveries, err := s.queries().ListDeliveriesWithImages(r.Context())
	if err != nil {
		s.writeInternalAPIError(w, r, "list deliveries failed", err)
		return
	}
	writeJSON(w, http.StatusOK, deliveries)
}

func (s *Server) handleCreateDelivery(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	var req deliveryCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.ProjectName) == "" {
		writeAPIError(w, http.StatusBadRequest, "project_name is required")
		return
	}
	if req.Status == "" {
		req.Status = "completed"
	}

	id, err := s.queries().InsertDelivery(r.Context(), dbpkg.Delivery{
		ProjectName: req.ProjectName,
		ContractNo:  req.ContractNo,
		Client:      req.Client,
		Category:    req.Category,
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Year:        req.Year,
		Description: req.Description,
		Status:      req.Status,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		s.writeInternalAPIError(w, r, "create delivery failed", err)
		return
	}

	created, err := s.queries().GetDeliveryByID(r.Context(), id)
	if err != nil {
		s.writeInternalAPIError(w, r, "create delivery failed", err)
		return
	}

	s.recordActivity(r.Context(), activity.ActionCreateDelivery, fmt.Sprintf("Created delivery: %s", created.ProjectName))
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUpdateDelivery(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req deliveryUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.queries().UpdateDelivery(r.Context(), id, dbpkg.DeliveryUpdate{
		ProjectName: req.ProjectName,
		ContractNo:  req.ContractNo,
		Client:      req.Client,
		Category:    req.Category,
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Year:        req.Year,
		Description: req.Description,
		Status:      req.Status,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		s.writeInternalAPIError(w, r, "update delivery failed", err)
		return
	}
	if !updated {
		writeAPIError(w, http.StatusNotFound, "not found")
		return
	}

	row, err := s.queries().GetDeliveryByID(r.Context(), id)
	if err != nil {
		s.writeInternalAPIError(w, r, "update delivery failed", err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleDeleteDelivery(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.queries().DeleteDelivery(r.Context(), id); err != nil {
		s.writeInternalAPIError(w, r, "delete delivery failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}
