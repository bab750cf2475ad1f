package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"feedesk/internal/apperr"
	"feedesk/internal/audit"
	"feedesk/internal/models"
	"feedesk/internal/response"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	Auditing
	Students StudentStore
}

func (h *StudentHandler) List(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	students, err := h.Students.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, students, "students fetched successfully")
}

func (h *StudentHandler) load(c *gin.Context) (*models.Student, bool) {
	id := c.Param("id")
	s, err := h.Students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperr.From(err, fmt.Sprintf("No student found with this id %s", id)))
		return nil, false
	}
	return s, true
}

func (h *StudentHandler) Get(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	response.OK(c, http.StatusOK, s, "student fetched successfully")
}

type createStudentRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Course   string  `json:"course"`
	Branch   string  `json:"branch"`
	TotalFee float64 `json:"totalFee"`
}

func (h *StudentHandler) Create(c *gin.Context) {
	var req createStudentRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	s := &models.Student{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
		Course:   strings.TrimSpace(req.Course),
		Branch:   strings.TrimSpace(req.Branch),
		TotalFee: req.TotalFee,
	}
	if err := validateStudent(s); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.Students.Create(c.Request.Context(), s); err != nil {
		response.Error(c, err)
		return
	}

	warnings := h.record(c, audit.CreateEvent(audit.ModuleStudent, s.ID, s.AuditSnapshot(), audit.StudentFields))
	response.OK(c, http.StatusCreated, s, "student registered successfully", warnings...)
}

func (h *StudentHandler) Update(c *gin.Context) {
	var patch models.StudentPatch
	if err := bindJSON(c, &patch); err != nil {
		response.Error(c, err)
		return
	}
	s, ok := h.load(c)
	if !ok {
		return
	}

	before := s.AuditSnapshot()
	patch.Apply(s)
	if err := validateStudent(s); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.Students.Update(c.Request.Context(), s); err != nil {
		response.Error(c, apperr.From(err, "student was deleted"))
		return
	}

	ev := audit.UpdateEvent(audit.ModuleStudent, s.ID, before, s.AuditSnapshot(), audit.StudentFields, h.Mode)
	warnings := h.record(c, ev)
	response.OK(c, http.StatusOK, s, "student updated successfully", warnings...)
}

func (h *StudentHandler) Delete(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.Students.Delete(c.Request.Context(), s); err != nil {
		response.Error(c, apperr.From(err, "student already deleted"))
		return
	}

	warnings := h.record(c, audit.DeleteEvent(audit.ModuleStudent, s.ID, s.AuditSnapshot()))
	response.OK(c, http.StatusOK, s, "student deleted successfully", warnings...)
}

func validateStudent(s *models.Student) error {
	switch {
	case s.Name == "":
		return apperr.Validation("name is required")
	case s.TotalFee < 0:
		return apperr.Validation("totalFee cannot be negative")
	}
	return nil
}
