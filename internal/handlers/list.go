package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/listkeeper-dev/listkeeper/internal/apperrors"
	"github.com/listkeeper-dev/listkeeper/internal/logging"
	"github.com/listkeeper-dev/listkeeper/internal/models"
	"github.com/listkeeper-dev/listkeeper/internal/store"
	"github.com/listkeeper-dev/listkeeper/internal/utils"
)

type AddListRequest struct {
	Title string `json:"title" binding:"required"`
}

// EditListRequest uses pointer fields so an omitted field can be told apart
// from one set to the empty string.
type EditListRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type ListHandler struct {
	lists store.ListStore
	log   logging.Logger
}

func NewListHandler(lists store.ListStore, log logging.Logger) *ListHandler {
	return &ListHandler{lists: lists, log: log}
}

// GetLists returns the caller's lists, newest first, each with its live item
// count.
func (h *ListHandler) GetLists(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		fail(ctx, apperrors.ErrAuth, "Not logged in")
		return
	}

	summaries, err := h.lists.ListWithCounts(ctx.Request.Context(), userID)

	if err != nil {
		h.log.Error(ctx.Request.Context(), "listing lists", "error", err)
		fail(ctx, err, "Failed to retrieve lists")
		return
	}

	if summaries == nil {
		summaries = []store.ListSummary{}
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "list": summaries})
}

func (h *ListHandler) AddList(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		fail(ctx, apperrors.ErrAuth, "Not logged in")
		return
	}

	var body AddListRequest

	if err := ctx.BindJSON(&body); err != nil {
		fail(ctx, apperrors.ErrValidation, "Title is required")
		return
	}

	if strings.TrimSpace(body.Title) == "" {
		fail(ctx, apperrors.ErrValidation, "Title is required")
		return
	}

	list := models.List{
		Title:   body.Title,
		OwnerID: userID,
	}

	if err := h.lists.Create(ctx.Request.Context(), &list); err != nil {
		h.log.Error(ctx.Request.Context(), "creating list", "error", err)
		fail(ctx, err, "Failed to create list")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true})
}

// EditList overwrites only the fields present in the request body.
func (h *ListHandler) EditList(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		fail(ctx, apperrors.ErrAuth, "Not logged in")
		return
	}

	listID, ok := parseID(ctx.Param("id"))

	if !ok {
		fail(ctx, apperrors.ErrValidation, "Invalid list id")
		return
	}

	var body EditListRequest

	if err := ctx.BindJSON(&body); err != nil {
		fail(ctx, apperrors.ErrValidation, "Invalid request")
		return
	}

	fields := make(map[string]interface{})

	if body.Title != nil {
		if strings.TrimSpace(*body.Title) == "" {
			fail(ctx, apperrors.ErrValidation, "Title is required")
			return
		}
		fields["title"] = *body.Title
	}

	if body.Description != nil {
		fields["description"] = *body.Description
	}

	if len(fields) == 0 {
		fail(ctx, apperrors.ErrValidation, "No fields to update")
		return
	}

	if err := h.lists.Update(ctx.Request.Context(), listID, userID, fields); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(ctx, apperrors.ErrNotFound, "List not found")
			return
		}
		h.log.Error(ctx.Request.Context(), "updating list", "error", err)
		fail(ctx, err, "Failed to update list")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteList removes the list and all its items in one transaction.
func (h *ListHandler) DeleteList(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		fail(ctx, apperrors.ErrAuth, "Not logged in")
		return
	}

	listID, ok := parseID(ctx.Param("id"))

	if !ok {
		fail(ctx, apperrors.ErrValidation, "Invalid list id")
		return
	}

	if err := h.lists.DeleteCascade(ctx.Request.Context(), listID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(ctx, apperrors.ErrNotFound, "List not found")
			return
		}
		h.log.Error(ctx.Request.Context(), "deleting list", "error", err)
		fail(ctx, err, "Failed to delete list")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
