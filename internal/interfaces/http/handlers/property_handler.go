package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/estatehub/propevd/internal/domain/contract"
	"github.com/estatehub/propevd/internal/domain/property"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
	"github.com/estatehub/propevd/pkg/errors"
)

// PropertyHandler serves the property endpoints.
type PropertyHandler struct {
	properties property.Repository
	contracts  contract.Repository
	log        logging.Logger
}

func NewPropertyHandler(properties property.Repository, contracts contract.Repository, log logging.Logger) *PropertyHandler {
	return &PropertyHandler{properties: properties, contracts: contracts, log: log}
}

// RegisterRoutes mounts the property endpoints on the given group.
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/properties", h.Create)
	rg.GET("/properties", h.List)
	rg.GET("/properties/search", h.Search)
	rg.GET("/properties/types", h.Types)
	rg.GET("/properties/:id", h.Get)
	rg.PUT("/properties/:id", h.Update)
	rg.DELETE("/properties/:id", h.Delete)
}

type propertyRequest struct {
	Area    float64 `json:"area"`
	Price   float64 `json:"price"`
	Address string  `json:"address"`
	Type    string  `json:"type"`
}

// toEntity converts the request body to a domain entity.  The type name is
// parsed leniently; an unrecognized name is left for Validate to report so
// the error carries the entity-validity classification.
func (r propertyRequest) toEntity(id *int64) *property.Property {
	typ, err := property.ParseType(r.Type)
	if err != nil {
		typ = property.Type(r.Type)
	}
	return &property.Property{ID: id, Area: r.Area, Price: r.Price, Address: r.Address, Type: typ}
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(err, errors.KindInvalidArgument, "invalid request body"))
		return
	}

	entity := req.toEntity(nil)
	if err := h.properties.Create(c.Request.Context(), entity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity)
}

func (h *PropertyHandler) List(c *gin.Context) {
	all, err := h.properties.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if all == nil {
		all = []*property.Property{}
	}
	c.JSON(http.StatusOK, all)
}

// Search finds properties by address fragment or by price.  Exactly one of
// the two query parameters must be present.
func (h *PropertyHandler) Search(c *gin.Context) {
	address, hasAddress := c.GetQuery("address")
	priceStr, hasPrice := c.GetQuery("price")

	switch {
	case hasAddress == hasPrice:
		respondError(c, errors.InvalidArgument("exactly one of address or price is required"))
		return

	case hasAddress:
		found, err := h.properties.FindByAddress(c.Request.Context(), address)
		if err != nil {
			respondError(c, err)
			return
		}
		if found == nil {
			found = []*property.Property{}
		}
		c.JSON(http.StatusOK, found)

	default:
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			respondError(c, errors.InvalidArgument("price must be a number"))
			return
		}
		found, err := h.properties.FindByPrice(c.Request.Context(), price)
		if err != nil {
			respondError(c, err)
			return
		}
		if found == nil {
			found = []*property.Property{}
		}
		c.JSON(http.StatusOK, found)
	}
}

// Types lists the recognized property types.
func (h *PropertyHandler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, property.Types)
}

func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	entity, err := h.properties.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if entity == nil {
		respondError(c, errors.Newf(errors.KindNotFound, "property with identifier %d does not exist", id))
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(err, errors.KindInvalidArgument, "invalid request body"))
		return
	}

	entity := req.toEntity(&id)
	if err := h.properties.Update(c.Request.Context(), entity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	entity, err := h.properties.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if entity == nil {
		respondError(c, errors.Newf(errors.KindNotFound, "property with identifier %d does not exist", id))
		return
	}

	referenced, err := h.contracts.ExistsForProperty(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if referenced {
		respondConflict(c, fmt.Sprintf("property %d is referenced by a contract", id))
		return
	}

	if err := h.properties.Delete(ctx, entity); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
