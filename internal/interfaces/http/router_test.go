package http_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/estatehub/propevd/internal/domain/client"
	"github.com/estatehub/propevd/internal/infrastructure/database/sqldb"
	"github.com/estatehub/propevd/internal/infrastructure/database/sqldb/repositories"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/prometheus"
	apihttp "github.com/estatehub/propevd/internal/interfaces/http"
)

const testSchema = `
CREATE TABLE client (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	fullname TEXT NOT NULL,
	phone    TEXT NOT NULL
);
CREATE TABLE property (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	area    REAL NOT NULL,
	price   REAL NOT NULL,
	type    TEXT NOT NULL,
	address TEXT NOT NULL
);
CREATE TABLE contract (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	clientid      INTEGER NOT NULL REFERENCES client (id) ON DELETE RESTRICT,
	propertyid    INTEGER NOT NULL REFERENCES property (id) ON DELETE RESTRICT,
	dateofsigning DATE NOT NULL
);
`

type APITestSuite struct {
	suite.Suite
	router http.Handler
}

func (s *APITestSuite) SetupTest() {
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	s.Require().NoError(err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec(testSchema)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })

	log := logging.NewNopLogger()
	conn := sqldb.NewConnectionWithDB(db, log)
	clients := repositories.NewClientRepo(conn, log)
	properties := repositories.NewPropertyRepo(conn, log)
	contracts := repositories.NewContractRepo(conn, clients, properties, log)

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "propevd"}, log)
	s.Require().NoError(err)

	s.router = apihttp.NewRouter("test", apihttp.Deps{
		Clients:        clients,
		Properties:     properties,
		Contracts:      contracts,
		Store:          conn,
		Logger:         log,
		Version:        "test",
		Metrics:        prometheus.NewAppMetrics(collector),
		MetricsHandler: collector.Handler(),
	})
}

func (s *APITestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APITestSuite) decode(rec *httptest.ResponseRecorder, out interface{}) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), out))
}

func (s *APITestSuite) createClient() *client.Client {
	rec := s.request(http.MethodPost, "/api/v1/clients", map[string]string{
		"full_name":    "Janko Hrasko",
		"phone_number": "0903123456",
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var c client.Client
	s.decode(rec, &c)
	s.Require().NotNil(c.ID)
	return &c
}

func (s *APITestSuite) createProperty() int64 {
	rec := s.request(http.MethodPost, "/api/v1/properties", map[string]interface{}{
		"area": 165.0, "price": 150000.0, "address": "Leluchov", "type": "HUT",
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var body struct {
		ID *int64 `json:"id"`
	}
	s.decode(rec, &body)
	s.Require().NotNil(body.ID)
	return *body.ID
}

func (s *APITestSuite) createContract(clientID, propertyID int64) int64 {
	rec := s.request(http.MethodPost, "/api/v1/contracts", map[string]interface{}{
		"client_id": clientID, "property_id": propertyID, "date_of_signing": "2018-01-01",
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var body struct {
		ID *int64 `json:"id"`
	}
	s.decode(rec, &body)
	s.Require().NotNil(body.ID)
	return *body.ID
}

func (s *APITestSuite) TestHealthAndReadiness() {
	s.Equal(http.StatusOK, s.request(http.MethodGet, "/health", nil).Code)
	s.Equal(http.StatusOK, s.request(http.MethodGet, "/ready", nil).Code)
}

func (s *APITestSuite) TestRequestIDIsEchoed() {
	rec := s.request(http.MethodGet, "/health", nil)
	s.NotEmpty(rec.Header().Get("X-Request-ID"))
}

func (s *APITestSuite) TestMetricsEndpoint() {
	s.request(http.MethodGet, "/api/v1/clients", nil)

	rec := s.request(http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "propevd_http_requests_total")
}

func (s *APITestSuite) TestCreateClient() {
	c := s.createClient()
	s.Equal("Janko Hrasko", c.FullName)
}

func (s *APITestSuite) TestCreateClientInvalidEntity() {
	rec := s.request(http.MethodPost, "/api/v1/clients", map[string]string{
		"full_name":    "Janko Hrasko",
		"phone_number": "123",
	})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "INVALID_ENTITY")
}

func (s *APITestSuite) TestCreateClientMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestGetClientAbsent() {
	rec := s.request(http.MethodGet, "/api/v1/clients/999", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestGetClientBadIdentifier() {
	rec := s.request(http.MethodGet, "/api/v1/clients/abc", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestUpdateClient() {
	c := s.createClient()

	rec := s.request(http.MethodPut, fmt.Sprintf("/api/v1/clients/%d", *c.ID), map[string]string{
		"full_name":    "Janko Hrasko",
		"phone_number": "0911222333",
	})
	s.Equal(http.StatusOK, rec.Code)

	var updated client.Client
	s.decode(rec, &updated)
	s.Equal("0911222333", updated.PhoneNumber)
}

func (s *APITestSuite) TestUpdateClientAbsent() {
	rec := s.request(http.MethodPut, "/api/v1/clients/999", map[string]string{
		"full_name":    "Janko Hrasko",
		"phone_number": "0911222333",
	})
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestDeleteClient() {
	c := s.createClient()

	rec := s.request(http.MethodDelete, fmt.Sprintf("/api/v1/clients/%d", *c.ID), nil)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.request(http.MethodGet, fmt.Sprintf("/api/v1/clients/%d", *c.ID), nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) TestDeleteClientWithContractConflicts() {
	c := s.createClient()
	propertyID := s.createProperty()
	s.createContract(*c.ID, propertyID)

	rec := s.request(http.MethodDelete, fmt.Sprintf("/api/v1/clients/%d", *c.ID), nil)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *APITestSuite) TestSearchClients() {
	s.createClient()

	rec := s.request(http.MethodGet, "/api/v1/clients/search?name=hrasko", nil)
	s.Equal(http.StatusOK, rec.Code)

	var found []*client.Client
	s.decode(rec, &found)
	s.Len(found, 1)
}

func (s *APITestSuite) TestSearchClientsRequiresName() {
	rec := s.request(http.MethodGet, "/api/v1/clients/search", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestPropertyTypes() {
	rec := s.request(http.MethodGet, "/api/v1/properties/types", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "FAMILY_HOUSE")
}

func (s *APITestSuite) TestCreatePropertyUnknownType() {
	rec := s.request(http.MethodPost, "/api/v1/properties", map[string]interface{}{
		"area": 100.0, "price": 90000.0, "address": "Presov", "type": "CASTLE",
	})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *APITestSuite) TestSearchPropertiesByPrice() {
	s.createProperty()

	rec := s.request(http.MethodGet, "/api/v1/properties/search?price=151000", nil)
	s.Equal(http.StatusOK, rec.Code)

	var found []map[string]interface{}
	s.decode(rec, &found)
	s.Len(found, 1)
}

func (s *APITestSuite) TestSearchPropertiesBadPrice() {
	rec := s.request(http.MethodGet, "/api/v1/properties/search?price=expensive", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestSearchPropertiesRequiresExactlyOneParameter() {
	rec := s.request(http.MethodGet, "/api/v1/properties/search", nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.request(http.MethodGet, "/api/v1/properties/search?price=1000&address=x", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestCreateContract() {
	c := s.createClient()
	propertyID := s.createProperty()
	contractID := s.createContract(*c.ID, propertyID)

	rec := s.request(http.MethodGet, fmt.Sprintf("/api/v1/contracts/%d", contractID), nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Janko Hrasko")
	s.Contains(rec.Body.String(), "Leluchov")
}

func (s *APITestSuite) TestCreateContractMissingClient() {
	propertyID := s.createProperty()

	rec := s.request(http.MethodPost, "/api/v1/contracts", map[string]interface{}{
		"client_id": int64(999), "property_id": propertyID, "date_of_signing": "2018-01-01",
	})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *APITestSuite) TestCreateContractFutureDate() {
	c := s.createClient()
	propertyID := s.createProperty()

	rec := s.request(http.MethodPost, "/api/v1/contracts", map[string]interface{}{
		"client_id": *c.ID, "property_id": propertyID, "date_of_signing": "2999-01-01",
	})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *APITestSuite) TestCreateContractBadDateFormat() {
	c := s.createClient()
	propertyID := s.createProperty()

	rec := s.request(http.MethodPost, "/api/v1/contracts", map[string]interface{}{
		"client_id": *c.ID, "property_id": propertyID, "date_of_signing": "01/01/2018",
	})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) TestUpdateContractDate() {
	c := s.createClient()
	propertyID := s.createProperty()
	contractID := s.createContract(*c.ID, propertyID)

	rec := s.request(http.MethodPut, fmt.Sprintf("/api/v1/contracts/%d", contractID), map[string]string{
		"date_of_signing": "2019-06-15",
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "2019-06-15")
}

func (s *APITestSuite) TestSearchContractsByClient() {
	c := s.createClient()
	propertyID := s.createProperty()
	s.createContract(*c.ID, propertyID)

	rec := s.request(http.MethodGet, fmt.Sprintf("/api/v1/contracts/search?client_id=%d", *c.ID), nil)
	s.Equal(http.StatusOK, rec.Code)

	var found []map[string]interface{}
	s.decode(rec, &found)
	s.Len(found, 1)
}

func (s *APITestSuite) TestDeleteContractThenClient() {
	c := s.createClient()
	propertyID := s.createProperty()
	contractID := s.createContract(*c.ID, propertyID)

	rec := s.request(http.MethodDelete, fmt.Sprintf("/api/v1/contracts/%d", contractID), nil)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.request(http.MethodDelete, fmt.Sprintf("/api/v1/clients/%d", *c.ID), nil)
	s.Equal(http.StatusNoContent, rec.Code)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
