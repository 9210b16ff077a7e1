package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/cloudhire/cloudhire-backend/internal/apperr"
	"github.com/cloudhire/cloudhire-backend/internal/dtos"
	"github.com/cloudhire/cloudhire-backend/internal/ident"
	"github.com/cloudhire/cloudhire-backend/internal/models"
	"github.com/cloudhire/cloudhire-backend/internal/store"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// JobHandler serves the jobs CRUD and apply endpoints.
type JobHandler struct {
	Store store.RecordStore
}

func NewJobHandler(st store.RecordStore) *JobHandler {
	return &JobHandler{Store: st}
}

// ListOrGet is GET /jobs. With an ?id= query it behaves as a single-record
// fetch, otherwise it lists.
func (h *JobHandler) ListOrGet(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		h.getByID(c, id)
		return
	}
	h.list(c)
}

// GetByID is GET /jobs/:id. A ?id= query still wins over the path segment,
// which older clients rely on.
func (h *JobHandler) GetByID(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		id = c.Param("id")
	}
	h.getByID(c, id)
}

func (h *JobHandler) list(c *gin.Context) {
	page := parsePositive(c.Query("page"), 1)
	limit := parsePositive(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	records, err := h.Store.Scan(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	jobs := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if rec.IsValidJob() {
			jobs = append(jobs, rec)
		}
	}

	// Pagination is a slice over the filtered scan, not storage-level
	// paging: total always reflects the full filtered count.
	total := len(jobs)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs[start:end],
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *JobHandler) getByID(c *gin.Context, rawID string) {
	id := ident.Normalize(rawID)
	if id == "" {
		respondError(c, apperr.New(apperr.Validation, "missing id"))
		return
	}

	rec, err := h.Store.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":      "job not found",
			"code":       apperr.NotFound.Code(),
			"searchedId": id,
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Create is POST /jobs. The id must come in the body; everything else passes
// through to storage untouched. An existing record with the same id is
// overwritten: create is an idempotent upsert, not create-if-absent.
func (h *JobHandler) Create(c *gin.Context) {
	var body models.Record
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, apperr.Wrap(apperr.Validation, "invalid JSON body", err))
		return
	}

	id := ident.Normalize(body.ID())
	if id == "" {
		respondError(c, apperr.New(apperr.Validation, "missing id"))
		return
	}
	body["id"] = id

	if err := h.Store.Put(c.Request.Context(), body); err != nil {
		respondError(c, err)
		return
	}

	log.WithFields(log.Fields{"id": id, "title": body.Title()}).Info("job record created")
	c.JSON(http.StatusCreated, gin.H{"message": "created", "item": body})
}

// Update is PUT /jobs or /jobs/:id. The id resolves from query, then path,
// then body; every body key except id becomes part of the field delta.
func (h *JobHandler) Update(c *gin.Context) {
	var body models.Record
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, apperr.Wrap(apperr.Validation, "invalid JSON body", err))
		return
	}

	rawID := c.Query("id")
	if rawID == "" {
		rawID = c.Param("id")
	}
	if rawID == "" {
		rawID = body.ID()
	}
	id := ident.Normalize(rawID)
	if id == "" {
		respondError(c, apperr.New(apperr.Validation, "missing id"))
		return
	}

	fields := make(map[string]any, len(body))
	for k, v := range body {
		if k == "id" {
			continue
		}
		fields[k] = v
	}
	if len(fields) == 0 {
		respondError(c, apperr.New(apperr.Validation, "no fields to update"))
		return
	}

	if err := h.Store.Update(c.Request.Context(), id, fields); err != nil {
		respondError(c, err)
		return
	}

	// Read-back is best effort: a concurrent delete between the two calls
	// legitimately surfaces as not found.
	rec, err := h.Store.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":      "record deleted during update",
			"code":       apperr.NotFound.Code(),
			"searchedId": id,
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	log.WithFields(log.Fields{"id": id, "fields": len(fields)}).Info("job record updated")
	c.JSON(http.StatusOK, gin.H{"message": "updated", "item": rec})
}

// Delete is DELETE /jobs or /jobs/:id. Unconditional: deleting an id that
// never existed still reports success.
func (h *JobHandler) Delete(c *gin.Context) {
	rawID := c.Query("id")
	if rawID == "" {
		rawID = c.Param("id")
	}
	id := ident.Normalize(rawID)
	if id == "" {
		respondError(c, apperr.New(apperr.Validation, "missing id"))
		return
	}

	if err := h.Store.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	log.WithField("id", id).Info("job record deleted")
	c.JSON(http.StatusOK, gin.H{"message": "deleted", "deletedId": id})
}

// Apply is POST /jobs/:id/apply. The referenced job is not checked for
// existence; applications to deleted jobs are accepted and sorted out by the
// reviewing side.
func (h *JobHandler) Apply(c *gin.Context) {
	jobID := ident.Normalize(c.Param("id"))
	if jobID == "" {
		respondError(c, apperr.New(apperr.Validation, "job id is required in path"))
		return
	}

	var req dtos.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Wrap(apperr.Validation, "cvFileKey is required", err))
		return
	}

	app := models.NewApplication(ident.NewApplicationID(), jobID, req.CVFileKey, req.CoverLetter, req.AllowSearch)
	if err := h.Store.Put(c.Request.Context(), app.Record()); err != nil {
		respondError(c, err)
		return
	}

	log.WithFields(log.Fields{"applicationId": app.ID, "jobId": jobID}).Info("application submitted")
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"applicationId": app.ID,
		"jobId":         app.JobID,
		"cvFileKey":     app.CVFileKey,
		"submittedAt":   app.SubmittedAt,
	})
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		log.WithError(err).Error("request failed")
	}
	c.JSON(kind.HTTPStatus(), gin.H{
		"error": apperr.MessageOf(err),
		"code":  kind.Code(),
	})
}
