package handlers

import (
	"net/http"

	catalogRepo "corpay/database/repository/catalog"
	"corpay/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves read-only catalog data.
type CatalogHandler struct {
	Catalog catalogRepo.CatalogRepository
}

func NewCatalogHandler(catalog catalogRepo.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.Catalog.ListServices(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list services", err.Error())
		return
	}
	c.JSON(http.StatusOK, services)
}
