package service

import (
	"strconv"

	"github.com/lk2023060901/assistant-admin/internal/assistant/biz"
	"github.com/lk2023060901/assistant-admin/internal/assistant/types"
	"github.com/lk2023060901/assistant-admin/internal/pkg/logger"
	"github.com/lk2023060901/assistant-admin/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantService handles HTTP requests for assistant operations
type AssistantService struct {
	assistants *biz.AssistantUseCase
	sync       *biz.SyncUseCase
	importer   *biz.ImportUseCase
	catalog    *biz.ModelCatalog
	settings   *biz.SettingsUseCase
	logger     *logger.Logger
}

// NewAssistantService creates a new assistant service
func NewAssistantService(
	assistants *biz.AssistantUseCase,
	sync *biz.SyncUseCase,
	importer *biz.ImportUseCase,
	catalog *biz.ModelCatalog,
	settings *biz.SettingsUseCase,
	log *logger.Logger,
) *AssistantService {
	return &AssistantService{
		assistants: assistants,
		sync:       sync,
		importer:   importer,
		catalog:    catalog,
		settings:   settings,
		logger:     log,
	}
}

// RegisterRoutes registers assistant routes
func (s *AssistantService) RegisterRoutes(r *gin.RouterGroup) {
	assistants := r.Group("/assistants")
	{
		assistants.GET("", s.ListAssistants)
		assistants.POST("", s.CreateAssistant)
		assistants.GET("/new", s.NewAssistant)
		assistants.POST("/synchronize", s.Synchronize)
		assistants.GET("/sync-runs", s.ListSyncRuns)
		assistants.GET("/import/candidates", s.ListImportCandidates)
		assistants.POST("/import", s.ImportAssistant)
		assistants.GET("/:id", s.GetAssistant)
		assistants.PUT("/:id", s.UpdateAssistant)
		assistants.PATCH("/:id/status", s.SetStatus)
	}

	r.GET("/models", s.ListModels)
	r.GET("/settings", s.GetSettings)
	r.PUT("/settings", s.UpdateSettings)
}

// ListAssistants returns every local record plus drift warnings
// @Summary List assistants
// @Tags assistants
// @Produce json
// @Success 200 {object} types.Listing
// @Router /api/v1/assistants [get]
func (s *AssistantService) ListAssistants(c *gin.Context) {
	listing, err := s.sync.Listing(c.Request.Context())
	if err != nil {
		s.logger.WithContext(c.Request.Context()).Error("failed to list assistants", zap.Error(err))
		response.HandleError(c, toAppError(err))
		return
	}

	response.Success(c, listing)
}

type newAssistantResponse struct {
	Assistant *types.Assistant    `json:"assistant"`
	Models    []types.RemoteModel `json:"models"`
	Warning   string              `json:"warning,omitempty"`
}

// NewAssistant returns the defaults of a creation form
// @Summary Creation form defaults
// @Tags assistants
// @Produce json
// @Router /api/v1/assistants/new [get]
func (s *AssistantService) NewAssistant(c *gin.Context) {
	defaults, models, err := s.assistants.NewDefaults(c.Request.Context())
	resp := newAssistantResponse{Assistant: defaults, Models: models}
	if resp.Models == nil {
		resp.Models = []types.RemoteModel{}
	}
	if err != nil {
		s.logger.WithContext(c.Request.Context()).Warn("model list unavailable for new assistant", zap.Error(err))
		resp.Warning = err.Error()
	}

	response.Success(c, resp)
}

// GetAssistant retrieves an assistant by ID
// @Summary Get assistant
// @Tags assistants
// @Produce json
// @Param id path string true "Assistant ID"
// @Success 200 {object} types.Assistant
// @Router /api/v1/assistants/{id} [get]
func (s *AssistantService) GetAssistant(c *gin.Context) {
	assistant, err := s.assistants.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, toAppError(err))
		return
	}

	response.Success(c, assistant)
}

// CreateAssistant creates the assistant remotely, then stores it under the remote id
// @Summary Create assistant
// @Tags assistants
// @Accept json
// @Produce json
// @Param request body biz.AssistantInput true "Assistant form"
// @Success 201 {object} types.Assistant
// @Router /api/v1/assistants [post]
func (s *AssistantService) CreateAssistant(c *gin.Context) {
	var req biz.AssistantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	assistant, result, err := s.assistants.Create(c.Request.Context(), &req)
	if err != nil {
		s.logger.WithContext(c.Request.Context()).Error("failed to create assistant", zap.Error(err))
		response.HandleError(c, toAppError(err))
		return
	}

	response.Created(c, biz.SaveMessage(result, assistant.Label), assistant)
}

// UpdateAssistant pushes the submitted values remotely, then saves them locally
// @Summary Update assistant
// @Tags assistants
// @Accept json
// @Produce json
// @Param id path string true "Assistant ID"
// @Param request body biz.AssistantInput true "Assistant form"
// @Success 200 {object} types.Assistant
// @Router /api/v1/assistants/{id} [put]
func (s *AssistantService) UpdateAssistant(c *gin.Context) {
	var req biz.AssistantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	assistant, result, err := s.assistants.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		s.logger.WithContext(c.Request.Context()).Error("failed to update assistant",
			zap.String("assistant_id", c.Param("id")),
			zap.Error(err),
		)
		response.HandleError(c, toAppError(err))
		return
	}

	response.SuccessWithMessage(c, biz.SaveMessage(result, assistant.Label), assistant)
}

type statusRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetStatus toggles the local status flag
func (s *AssistantService) SetStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	assistant, err := s.assistants.SetEnabled(c.Request.Context(), c.Param("id"), *req.Enabled)
	if err != nil {
		response.HandleError(c, toAppError(err))
		return
	}

	response.Success(c, assistant)
}

// Synchronize creates every local record missing on the OpenAI platform
// @Summary Synchronize assistants
// @Tags assistants
// @Produce json
// @Success 200 {object} types.SyncReport
// @Router /api/v1/assistants/synchronize [post]
func (s *AssistantService) Synchronize(c *gin.Context) {
	report, err := s.sync.Synchronize(c.Request.Context(), biz.TriggerHTTP)
	if err != nil {
		s.logger.WithContext(c.Request.Context()).Error("synchronization failed", zap.Error(err))
		response.HandleError(c, toAppError(err))
		return
	}

	message := "Assistants are in sync."
	switch {
	case report.HasFailures():
		message = strconv.Itoa(len(report.Failures)) + " assistant(s) could not be synchronized."
	case len(report.Reconciled) > 0:
		message = strconv.Itoa(len(report.Reconciled)) + " assistant(s) synchronized."
	}
	response.SuccessWithMessage(c, message, report)
}

// ListSyncRuns returns recent synchronization runs
// @Summary List synchronization runs
// @Tags assistants
// @Produce json
// @Param limit query int false "Maximum runs"
// @Router /api/v1/assistants/sync-runs [get]
func (s *AssistantService) ListSyncRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		response.BadRequest(c, "limit must be a positive integer")
		return
	}

	runs, err := s.sync.ListRuns(c.Request.Context(), limit)
	if err != nil {
		response.HandleError(c, toAppError(err))
		return
	}

	response.Success(c, runs)
}

// ListImportCandidates lists remote assistants that may be imported
// @Summary List import candidates
// @Tags assistants
// @Produce json
// @Router /api/v1/assistants/import/candidates [get]
func (s *AssistantService) ListImportCandidates(c *gin.Context) {
	candidates, err := s.importer.ListCandidates(c.Request.Context())
	if err != nil {
		response.HandleError(c, toAppError(err))
		return
	}

	response.Success(c, candidates)
}

type importRequest struct {
	ID string `json:"id" binding:"required"`
}

// ImportAssistant materializes one remote assistant locally
// @Summary Import assistant
// @Tags assistants
// @Accept json
// @Produce json
// @Router /api/v1/assistants/import [post]
func (s *AssistantService) ImportAssistant(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	assistant, err := s.importer.Import(c.Request.Context(), req.ID)
	if err != nil {
		s.logger.WithContext(c.Request.Context()).Warn("import failed", zap.String("assistant_id", req.ID), zap.Error(err))
		response.HandleError(c, toAppError(err))
		return
	}

	response.Created(c, "Imported assistant "+assistant.Label+".", assistant)
}

// ListModels returns the model option set; refresh=true bypasses the cache
// @Summary List models
// @Tags models
// @Produce json
// @Router /api/v1/models [get]
func (s *AssistantService) ListModels(c *gin.Context) {
	var (
		models []types.RemoteModel
		err    error
	)
	if refresh, _ := strconv.ParseBool(c.Query("refresh")); refresh {
		models, err = s.catalog.Refresh(c.Request.Context())
	} else {
		models, err = s.catalog.Models(c.Request.Context())
	}
	if err != nil {
		response.HandleError(c, toAppError(err))
		return
	}

	response.Success(c, models)
}

// GetSettings returns the masked credential override
func (s *AssistantService) GetSettings(c *gin.Context) {
	view, err := s.settings.Get(c.Request.Context())
	if err != nil {
		response.HandleError(c, toAppError(err))
		return
	}

	response.Success(c, view)
}

type settingsRequest struct {
	SecretKey *string `json:"secret_key" binding:"required"`
}

// UpdateSettings stores the credential override; an empty key clears it
func (s *AssistantService) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	view, err := s.settings.SetSecretKey(c.Request.Context(), *req.SecretKey)
	if err != nil {
		response.HandleError(c, toAppError(err))
		return
	}

	response.SuccessWithMessage(c, "The configuration options have been saved.", view)
}
