package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"powersite-catalog/internal/models"
)

// queryInt lee un parámetro entero; si falta devuelve el valor por defecto
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.Invalid(key, "int", "must be an integer")
	}
	return n, nil
}

// queryFloat lee un parámetro decimal opcional
func queryFloat(c *gin.Context, key string) (*float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, models.Invalid(key, "float", "must be a number")
	}
	return &f, nil
}

// getPaginationParams obtiene los parámetros de paginación; los rangos los valida el servicio
func getPaginationParams(c *gin.Context, defaultPageSize int) (page, pageSize int, err error) {
	if page, err = queryInt(c, "page", 1); err != nil {
		return 0, 0, err
	}
	if pageSize, err = queryInt(c, "page_size", defaultPageSize); err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

// buildProductFilter construye el filtro del listado a partir de los query params
func buildProductFilter(c *gin.Context) (models.ProductFilter, error) {
	f := models.ProductFilter{
		Brand:       c.Query("brand"),
		Category:    c.Query("category"),
		PowerSource: c.Query("power_source"),
	}

	var err error
	if f.MinPrice, err = queryFloat(c, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryFloat(c, "max_price"); err != nil {
		return f, err
	}
	return f, nil
}
