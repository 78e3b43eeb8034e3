package api

import (
	"errors"
	"net/http"

	reqdto "rental-pos/internal/handler/dto/request"
	resdto "rental-pos/internal/handler/dto/response"
	"rental-pos/internal/handler/httperr"
	"rental-pos/internal/usecase/commands"
	"rental-pos/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	cmds commands.CatalogCommands
	q    queries.CatalogQueries
}

func NewCatalogHandler(cmds commands.CatalogCommands, q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{cmds: cmds, q: q}
}

// @Summary List zones
// @Description List all zones with their rentable items
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ZoneResponse
// @Router /catalog/zones [get]
func (h *CatalogHandler) ListZones(c *gin.Context) {
	views, err := h.q.ListZones(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list zones", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromZoneViews(views))
}

// @Summary Create zone
// @Description Add a new zone to the catalog
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateZoneRequest true "Create zone request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /catalog/zones [post]
func (h *CatalogHandler) CreateZone(c *gin.Context) {
	var req reqdto.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.AddZone(c.Request.Context(), req.ToInput()); err != nil {
		switch {
		case errors.Is(err, commands.ErrDuplicateZoneKey):
			httperr.AbortWithError(c, http.StatusConflict, err, "Zone key already exists", nil)
		case errors.Is(err, commands.ErrInvalidLabel):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid zone data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Create zone failed", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: req.Key})
}

// @Summary Create zone item
// @Description Add a rentable item to a zone
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param zoneKey path string true "Zone key"
// @Param request body reqdto.CreateItemRequest true "Create item request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /catalog/zones/{zoneKey}/items [post]
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req reqdto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id, err := h.cmds.AddItem(c.Request.Context(), c.Param("zoneKey"), req.ToInput())
	if err != nil {
		h.abortItemErr(c, err, "Create item failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id.String()})
}

// @Summary Update zone item
// @Description Rename or reprice a zone item; running sessions keep their recorded rates
// @Tags catalog
// @Accept json
// @Security BearerAuth
// @Param zoneKey path string true "Zone key"
// @Param id path string true "Item ID"
// @Param request body reqdto.UpdateItemRequest true "Update item request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /catalog/zones/{zoneKey}/items/{id} [patch]
func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err := h.cmds.UpdateItem(c.Request.Context(), c.Param("zoneKey"), itemID, req.ToInput()); err != nil {
		h.abortItemErr(c, err, "Update item failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete zone item
// @Tags catalog
// @Security BearerAuth
// @Param zoneKey path string true "Zone key"
// @Param id path string true "Item ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /catalog/zones/{zoneKey}/items/{id} [delete]
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.RemoveItem(c.Request.Context(), c.Param("zoneKey"), itemID); err != nil {
		h.abortItemErr(c, err, "Delete item failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List products
// @Description List all add-on products
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ProductResponse
// @Router /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	views, err := h.q.ListProducts(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list products", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductViews(views))
}

// @Summary Create product
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateProductRequest true "Create product request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /catalog/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req reqdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id, err := h.cmds.AddProduct(c.Request.Context(), req.ToInput())
	if err != nil {
		h.abortProductErr(c, err, "Create product failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id.String()})
}

// @Summary Update product
// @Description Rename or reprice a product; recorded session charges keep their prices
// @Tags catalog
// @Accept json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body reqdto.UpdateProductRequest true "Update product request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /catalog/products/{id} [patch]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateProductRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err := h.cmds.UpdateProduct(c.Request.Context(), id, req.ToInput()); err != nil {
		h.abortProductErr(c, err, "Update product failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete product
// @Tags catalog
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /catalog/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.RemoveProduct(c.Request.Context(), id); err != nil {
		h.abortProductErr(c, err, "Delete product failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) abortItemErr(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, commands.ErrZoneNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Zone not found", nil)
	case errors.Is(err, commands.ErrItemNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Item not found", nil)
	case errors.Is(err, commands.ErrInvalidPrice), errors.Is(err, commands.ErrInvalidLabel):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid item data", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}

func (h *CatalogHandler) abortProductErr(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, commands.ErrProductNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
	case errors.Is(err, commands.ErrInvalidPrice), errors.Is(err, commands.ErrInvalidLabel):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid product data", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}
