package controller

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/api-sage/core-banking/src/internal/adapter/http/models"
	"github.com/api-sage/core-banking/src/internal/commons"
	"github.com/api-sage/core-banking/src/internal/usecase/service_interfaces"
)

type CustomerController struct {
	service service_interfaces.CustomerService
}

func NewCustomerController(service service_interfaces.CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

func (c *CustomerController) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/customers", c.createCustomer).Methods(http.MethodPost)
	r.HandleFunc("/customers", c.getAllCustomers).Methods(http.MethodGet)
	r.HandleFunc("/customers/verify/{id}", c.verifyCustomer).Methods(http.MethodGet)
	r.HandleFunc("/customers/status/{id}", c.changeStatus).Methods(http.MethodPut)
	r.HandleFunc("/customers/{id:[0-9]+}", c.getCustomer).Methods(http.MethodGet)
	r.HandleFunc("/customers/{id:[0-9]+}", c.deleteCustomer).Methods(http.MethodDelete)
}

// createCustomer leaves field validation to the service so national code
// failures keep their business error kind.
func (c *CustomerController) createCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidation(w, r, err, start)
		return
	}
	logRequest(r, req)

	customer, err := c.service.CreateCustomer(r.Context(), req)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusCreated, commons.SuccessResponse("customer created successfully", models.NewCustomerResponse(customer)), start)
}

func (c *CustomerController) getAllCustomers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	customers, err := c.service.GetAllCustomers(r.Context())
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("customers fetched", commons.NewPage(models.NewCustomerResponses(customers))), start)
}

func (c *CustomerController) getCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondValidation(w, r, err, start)
		return
	}

	customer, err := c.service.GetCustomer(r.Context(), id)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("customer fetched", models.NewCustomerResponse(customer)), start)
}

func (c *CustomerController) verifyCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondValidation(w, r, err, start)
		return
	}

	verified, err := c.service.VerifyCustomer(r.Context(), id)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("customer verified", models.VerifyResponse{ID: id, Verified: verified}), start)
}

func (c *CustomerController) changeStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondValidation(w, r, err, start)
		return
	}
	req := models.ChangeStatusRequest{Status: r.URL.Query().Get("status")}
	logRequest(r, req)
	if err := req.Validate(); err != nil {
		respondValidation(w, r, err, start)
		return
	}

	customer, err := c.service.ChangeCustomerStatus(r.Context(), id, req.Status)
	if err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("customer status changed", models.NewCustomerResponse(customer)), start)
}

func (c *CustomerController) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		respondValidation(w, r, err, start)
		return
	}

	if err := c.service.DeleteCustomer(r.Context(), id); err != nil {
		respondError(w, r, err, start)
		return
	}
	respond(w, r, http.StatusOK, commons.SuccessResponse("customer deleted", map[string]int64{"id": id}), start)
}
