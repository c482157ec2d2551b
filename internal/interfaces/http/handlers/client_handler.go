package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estatehub/propevd/internal/domain/client"
	"github.com/estatehub/propevd/internal/domain/contract"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
	"github.com/estatehub/propevd/pkg/errors"
)

// ClientHandler serves the client endpoints.
type ClientHandler struct {
	clients   client.Repository
	contracts contract.Repository
	log       logging.Logger
}

// NewClientHandler builds the client handler.  The contract repository backs
// the referenced-by-contract check on deletion.
func NewClientHandler(clients client.Repository, contracts contract.Repository, log logging.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, contracts: contracts, log: log}
}

// RegisterRoutes mounts the client endpoints on the given group.
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/clients", h.Create)
	rg.GET("/clients", h.List)
	rg.GET("/clients/search", h.Search)
	rg.GET("/clients/:id", h.Get)
	rg.PUT("/clients/:id", h.Update)
	rg.DELETE("/clients/:id", h.Delete)
}

type clientRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(err, errors.KindInvalidArgument, "invalid request body"))
		return
	}

	entity := &client.Client{FullName: req.FullName, PhoneNumber: req.PhoneNumber}
	if err := h.clients.Create(c.Request.Context(), entity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity)
}

func (h *ClientHandler) List(c *gin.Context) {
	all, err := h.clients.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if all == nil {
		all = []*client.Client{}
	}
	c.JSON(http.StatusOK, all)
}

// Search finds clients whose full name contains the given fragment,
// case-insensitively.  The name parameter is required.
func (h *ClientHandler) Search(c *gin.Context) {
	name, ok := c.GetQuery("name")
	if !ok {
		respondError(c, errors.InvalidArgument("query parameter name is required"))
		return
	}

	found, err := h.clients.FindByName(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	if found == nil {
		found = []*client.Client{}
	}
	c.JSON(http.StatusOK, found)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	entity, err := h.clients.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if entity == nil {
		respondError(c, errors.Newf(errors.KindNotFound, "client with identifier %d does not exist", id))
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(err, errors.KindInvalidArgument, "invalid request body"))
		return
	}

	entity := &client.Client{ID: &id, FullName: req.FullName, PhoneNumber: req.PhoneNumber}
	if err := h.clients.Update(c.Request.Context(), entity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	entity, err := h.clients.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if entity == nil {
		respondError(c, errors.Newf(errors.KindNotFound, "client with identifier %d does not exist", id))
		return
	}

	referenced, err := h.contracts.ExistsForClient(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if referenced {
		respondConflict(c, fmt.Sprintf("client %d is referenced by a contract", id))
		return
	}

	if err := h.clients.Delete(ctx, entity); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
