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

type AddItemRequest struct {
	ListID uint   `json:"listId" binding:"required"`
	Title  string `json:"title" binding:"required"`
}

// EditItemRequest uses pointer fields: omitted fields stay untouched.
type EditItemRequest struct {
	Title  *string `json:"title"`
	Status *string `json:"status"`
}

type ItemResponse struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	ListID uint   `json:"list_id"`
}

type ListInfoResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ItemHandler struct {
	items store.ItemStore
	lists store.ListStore
	log   logging.Logger
}

func NewItemHandler(items store.ItemStore, lists store.ListStore, log logging.Logger) *ItemHandler {
	return &ItemHandler{items: items, lists: lists, log: log}
}

// GetItems returns a list's items in creation order, plus the list metadata.
func (h *ItemHandler) GetItems(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		fail(ctx, apperrors.ErrAuth, "Not logged in")
		return
	}

	listID, ok := parseID(ctx.Param("listId"))

	if !ok {
		fail(ctx, apperrors.ErrValidation, "Invalid list id")
		return
	}

	list, err := h.lists.FindOwned(ctx.Request.Context(), listID, userID)

	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(ctx, apperrors.ErrNotFound, "List not found")
			return
		}
		h.log.Error(ctx.Request.Context(), "fetching list", "error", err)
		fail(ctx, err, "Failed to retrieve list")
		return
	}

	items, err := h.items.ByList(ctx.Request.Context(), list.ID)

	if err != nil {
		h.log.Error(ctx.Request.Context(), "listing items", "error", err)
		fail(ctx, err, "Failed to retrieve items")
		return
	}

	response := make([]ItemResponse, 0, len(items))

	for _, item := range items {
		response = append(response, ItemResponse{
			ID:     item.ID,
			Title:  item.Title,
			Status: item.Status,
			ListID: item.ListID,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   response,
		"listInfo": ListInfoResponse{
			ID:          list.ID,
			Title:       list.Title,
			Description: list.Description,
		},
	})
}

// AddItem creates an item in an owned list. New items start as pending.
func (h *ItemHandler) AddItem(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		fail(ctx, apperrors.ErrAuth, "Not logged in")
		return
	}

	var body AddItemRequest

	if err := ctx.BindJSON(&body); err != nil {
		fail(ctx, apperrors.ErrValidation, "listId and title are required")
		return
	}

	if strings.TrimSpace(body.Title) == "" {
		fail(ctx, apperrors.ErrValidation, "Title is required")
		return
	}

	list, err := h.lists.FindOwned(ctx.Request.Context(), body.ListID, userID)

	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(ctx, apperrors.ErrNotFound, "List not found")
			return
		}
		h.log.Error(ctx.Request.Context(), "fetching list", "error", err)
		fail(ctx, err, "Failed to retrieve list")
		return
	}

	item := models.Item{
		Title:  body.Title,
		Status: models.StatusPending,
		ListID: list.ID,
	}

	if err := h.items.Create(ctx.Request.Context(), &item); err != nil {
		h.log.Error(ctx.Request.Context(), "creating item", "error", err)
		fail(ctx, err, "Failed to create item")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true})
}

// EditItem overwrites only the fields present in the request body. Status must
// be one of the allowed values.
func (h *ItemHandler) EditItem(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		fail(ctx, apperrors.ErrAuth, "Not logged in")
		return
	}

	itemID, ok := parseID(ctx.Param("id"))

	if !ok {
		fail(ctx, apperrors.ErrValidation, "Invalid item id")
		return
	}

	var body EditItemRequest

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

	if body.Status != nil {
		if !models.ValidStatus(*body.Status) {
			fail(ctx, apperrors.ErrValidation, "Status must be pending or done")
			return
		}
		fields["status"] = *body.Status
	}

	if len(fields) == 0 {
		fail(ctx, apperrors.ErrValidation, "No fields to update")
		return
	}

	if _, err := h.items.FindOwned(ctx.Request.Context(), itemID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(ctx, apperrors.ErrNotFound, "Item not found")
			return
		}
		h.log.Error(ctx.Request.Context(), "fetching item", "error", err)
		fail(ctx, err, "Failed to retrieve item")
		return
	}

	if err := h.items.Update(ctx.Request.Context(), itemID, fields); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(ctx, apperrors.ErrNotFound, "Item not found")
			return
		}
		h.log.Error(ctx.Request.Context(), "updating item", "error", err)
		fail(ctx, err, "Failed to update item")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ItemHandler) DeleteItem(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		fail(ctx, apperrors.ErrAuth, "Not logged in")
		return
	}

	itemID, ok := parseID(ctx.Param("id"))

	if !ok {
		fail(ctx, apperrors.ErrValidation, "Invalid item id")
		return
	}

	if _, err := h.items.FindOwned(ctx.Request.Context(), itemID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(ctx, apperrors.ErrNotFound, "Item not found")
			return
		}
		h.log.Error(ctx.Request.Context(), "fetching item", "error", err)
		fail(ctx, err, "Failed to retrieve item")
		return
	}

	if err := h.items.Delete(ctx.Request.Context(), itemID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			fail(ctx, apperrors.ErrNotFound, "Item not found")
			return
		}
		h.log.Error(ctx.Request.Context(), "deleting item", "error", err)
		fail(ctx, err, "Failed to delete item")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
