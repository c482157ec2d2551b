package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/estatehub/propevd/internal/domain/client"
	"github.com/estatehub/propevd/internal/domain/contract"
	"github.com/estatehub/propevd/internal/domain/property"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
	"github.com/estatehub/propevd/pkg/errors"
)

// signingDateFormat is the wire format for contract dates.
const signingDateFormat = "2006-01-02"

// ContractHandler serves the contract endpoints.
type ContractHandler struct {
	contracts  contract.Repository
	clients    client.Repository
	properties property.Repository
	log        logging.Logger
}

func NewContractHandler(contracts contract.Repository, clients client.Repository, properties property.Repository, log logging.Logger) *ContractHandler {
	return &ContractHandler{contracts: contracts, clients: clients, properties: properties, log: log}
}

// RegisterRoutes mounts the contract endpoints on the given group.
func (h *ContractHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contracts", h.Create)
	rg.GET("/contracts", h.List)
	rg.GET("/contracts/search", h.Search)
	rg.GET("/contracts/:id", h.Get)
	rg.PUT("/contracts/:id", h.Update)
	rg.DELETE("/contracts/:id", h.Delete)
}

type createContractRequest struct {
	ClientID      int64  `json:"client_id"`
	PropertyID    int64  `json:"property_id"`
	DateOfSigning string `json:"date_of_signing"`
}

type updateContractRequest struct {
	DateOfSigning string `json:"date_of_signing"`
}

func parseSigningDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(signingDateFormat, raw)
	if err != nil {
		return time.Time{}, errors.Newf(errors.KindInvalidArgument, "date_of_signing must use the %s format", signingDateFormat)
	}
	return t, nil
}

func (h *ContractHandler) Create(c *gin.Context) {
	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(err, errors.KindInvalidArgument, "invalid request body"))
		return
	}

	signed, err := parseSigningDate(req.DateOfSigning)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()

	cl, err := h.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		respondError(c, err)
		return
	}
	if cl == nil {
		respondError(c, errors.Newf(errors.KindInvalidEntity, "contract references missing client %d", req.ClientID))
		return
	}

	pr, err := h.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	if pr == nil {
		respondError(c, errors.Newf(errors.KindInvalidEntity, "contract references missing property %d", req.PropertyID))
		return
	}

	entity := &contract.Contract{Client: cl, Property: pr, DateOfSigning: signed}
	if err := h.contracts.Create(ctx, entity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity)
}

func (h *ContractHandler) List(c *gin.Context) {
	all, err := h.contracts.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if all == nil {
		all = []*contract.Contract{}
	}
	c.JSON(http.StatusOK, all)
}

// Search finds contracts by the referenced client or property.  Exactly one
// of the two query parameters must be present.
func (h *ContractHandler) Search(c *gin.Context) {
	clientStr, hasClient := c.GetQuery("client_id")
	propertyStr, hasProperty := c.GetQuery("property_id")

	if hasClient == hasProperty {
		respondError(c, errors.InvalidArgument("exactly one of client_id or property_id is required"))
		return
	}

	ctx := c.Request.Context()
	var found []*contract.Contract

	if hasClient {
		id, err := strconv.ParseInt(clientStr, 10, 64)
		if err != nil {
			respondError(c, errors.InvalidArgument("client_id must be a number"))
			return
		}
		cl, err := h.clients.GetByID(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if cl == nil {
			respondError(c, errors.Newf(errors.KindNotFound, "client with identifier %d does not exist", id))
			return
		}
		found, err = h.contracts.FindByClient(ctx, cl)
		if err != nil {
			respondError(c, err)
			return
		}
	} else {
		id, err := strconv.ParseInt(propertyStr, 10, 64)
		if err != nil {
			respondError(c, errors.InvalidArgument("property_id must be a number"))
			return
		}
		pr, err := h.properties.GetByID(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if pr == nil {
			respondError(c, errors.Newf(errors.KindNotFound, "property with identifier %d does not exist", id))
			return
		}
		found, err = h.contracts.FindByProperty(ctx, pr)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	if found == nil {
		found = []*contract.Contract{}
	}
	c.JSON(http.StatusOK, found)
}

func (h *ContractHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	entity, err := h.contracts.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if entity == nil {
		respondError(c, errors.Newf(errors.KindNotFound, "contract with identifier %d does not exist", id))
		return
	}
	c.JSON(http.StatusOK, entity)
}

// Update changes the signing date of an existing contract.  The client and
// property references are immutable.
func (h *ContractHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(err, errors.KindInvalidArgument, "invalid request body"))
		return
	}

	signed, err := parseSigningDate(req.DateOfSigning)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()

	entity, err := h.contracts.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if entity == nil {
		respondError(c, errors.Newf(errors.KindNotFound, "contract with identifier %d does not exist", id))
		return
	}

	entity.DateOfSigning = signed
	if err := h.contracts.Update(ctx, entity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *ContractHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	entity, err := h.contracts.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if entity == nil {
		respondError(c, errors.Newf(errors.KindNotFound, "contract with identifier %d does not exist", id))
		return
	}

	if err := h.contracts.Delete(ctx, entity); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
