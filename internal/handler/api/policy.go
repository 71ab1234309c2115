package api

import (
	"net/http"
	"strconv"

	reqdto "shootbook/internal/handler/dto/request"
	resdto "shootbook/internal/handler/dto/response"
	"shootbook/internal/handler/httperr"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/commands"
	"shootbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PolicyHandler struct {
	cmds commands.PolicyCommands
	q    queries.PolicyQueries
}

func NewPolicyHandler(cmds commands.PolicyCommands, q queries.PolicyQueries) *PolicyHandler {
	return &PolicyHandler{cmds: cmds, q: q}
}

// @Summary List provider policies
// @Tags policies
// @Produce json
// @Param id path string true "Provider ID"
// @Param include_inactive query bool false "Include retired revisions"
// @Success 200 {array} resdto.PolicyResponse
// @Router /providers/{id}/policies [get]
func (h *PolicyHandler) ListByProvider(c *gin.Context) {
	providerID, ok := pathID(c)
	if !ok {
		return
	}
	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("include_inactive", "false"))

	views, err := h.q.ListByProvider(c.Request.Context(), providerID, includeInactive)
	if err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPolicyViews(views))
}

// @Summary List policy templates
// @Tags policies
// @Produce json
// @Success 200 {array} resdto.TemplateResponse
// @Router /policy-templates [get]
func (h *PolicyHandler) Templates(c *gin.Context) {
	views, err := h.q.Templates(c.Request.Context())
	if err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTemplateViews(views))
}

// @Summary Create policy
// @Description Create a cancellation policy from a template or explicit rules
// @Tags policies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePolicyRequest true "Policy request"
// @Success 201 {object} resdto.PolicyResponse
// @Failure 422 {object} httperr.Response
// @Router /policies [post]
func (h *PolicyHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	providerID := actor.ID
	if actor.IsAdmin() && req.ProviderID != nil {
		providerID = *req.ProviderID
	}
	cmd, err := req.ToCommand(providerID)
	if err != nil {
		httperr.AbortWithMappedError(c, errs.Mark(err, errs.ErrDomainValidation))
		return
	}

	p, err := h.cmds.CreatePolicy(c.Request.Context(), cmd, actor)
	if err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPolicyView(queries.NewPolicyView(p)))
}

// @Summary Revise policy
// @Description Store a new revision. Reservations keep the revision they were booked under.
// @Tags policies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Policy ID"
// @Param request body reqdto.UpdatePolicyRequest true "Fields to change"
// @Success 200 {object} resdto.PolicyResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /policies/{id} [put]
func (h *PolicyHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	existing, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}
	cmd, err := req.ToCommand(existing)
	if err != nil {
		httperr.AbortWithMappedError(c, errs.Mark(err, errs.ErrDomainValidation))
		return
	}

	p, err := h.cmds.RevisePolicy(c.Request.Context(), id, cmd, actor)
	if err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPolicyView(queries.NewPolicyView(p)))
}

// @Summary Set default policy
// @Tags policies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Policy ID"
// @Success 200 {object} resdto.PolicyResponse
// @Router /policies/{id}/default [post]
func (h *PolicyHandler) SetDefault(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.cmds.SetDefaultPolicy(c.Request.Context(), id, actor)
	if err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPolicyView(queries.NewPolicyView(p)))
}

// @Summary Deactivate policy
// @Tags policies
// @Security BearerAuth
// @Param id path string true "Policy ID"
// @Success 204
// @Router /policies/{id} [delete]
func (h *PolicyHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.cmds.DeactivatePolicy(c.Request.Context(), id, actor); err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
