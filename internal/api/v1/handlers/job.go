package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/rroosshhaann/whisper-diarization/internal/api/errors"
	"github.com/rroosshhaann/whisper-diarization/internal/api/middleware"
	"github.com/rroosshhaann/whisper-diarization/internal/api/v1/dto"
	"github.com/rroosshhaann/whisper-diarization/internal/api/v1/services"
	apperrors "github.com/rroosshhaann/whisper-diarization/internal/app/errors"
	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// JobHandler handles diarization job HTTP requests
type JobHandler struct {
	jobService services.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// Submit queues an uploaded audio file
// @Summary Submit audio for diarization
// @Description Uploads audio and queues an asynchronous transcription and diarization job
// @Tags Jobs
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file"
// @Param whisper_model formData string false "Whisper model" default(medium.en)
// @Param language formData string false "Language code or name; auto-detected when empty"
// @Param stemming formData bool false "Separate vocals before transcription" default(true)
// @Param suppress_numerals formData bool false "Spell out numbers" default(false)
// @Param batch_size formData int false "Batch size, 0 for single-pass inference" default(8)
// @Success 201 {object} dto.SubmitJobResponse
// @Failure 422 {object} errors.APIError
// @Router /jobs [post]
func (h *JobHandler) Submit(c *gin.Context) {
	var req dto.SubmitJobRequest
	if err := middleware.ValidateForm(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		middleware.HandleError(c, apierrors.NewValidationError("Validation failed", map[string]string{
			"file": "is required",
		}))
		return
	}

	file, err := header.Open()
	if err != nil {
		middleware.HandleError(c, apierrors.NewBadRequestError("Cannot read uploaded file"))
		return
	}
	defer file.Close()

	resp, err := h.jobService.SubmitJob(c.Request.Context(), services.Upload{
		Filename: header.Filename,
		Content:  file,
	}, &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Status reports a job's state
// @Summary Get job status
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobStatusResponse
// @Failure 404 {object} errors.APIError
// @Router /jobs/{id} [get]
func (h *JobHandler) Status(c *gin.Context) {
	resp, err := h.jobService.GetJobStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Result returns the transcript of a completed job
// @Summary Get job result
// @Description Returns the transcript once completed; 202 while queued or processing
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} model.Transcript
// @Success 202 {object} dto.PendingResultResponse
// @Failure 404 {object} errors.APIError
// @Failure 500 {object} errors.APIError
// @Router /jobs/{id}/result [get]
func (h *JobHandler) Result(c *gin.Context) {
	jobID := c.Param("id")

	transcript, err := h.jobService.GetJobResult(c.Request.Context(), jobID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, transcript)
	case apperrors.Is(err, apperrors.ErrStillQueued):
		c.JSON(http.StatusAccepted, dto.PendingResultResponse{
			JobID:   jobID,
			Status:  model.JobStatusQueued,
			Message: "Job is still queued",
		})
	case apperrors.Is(err, apperrors.ErrStillProcessing):
		c.JSON(http.StatusAccepted, dto.PendingResultResponse{
			JobID:   jobID,
			Status:  model.JobStatusProcessing,
			Message: "Job is still processing",
		})
	default:
		middleware.HandleError(c, err)
	}
}

// Delete removes a job that is not processing
// @Summary Delete job
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobService.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Job deleted"})
}

// Health reports queue depth
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *JobHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.jobService.Health(c.Request.Context()))
}
