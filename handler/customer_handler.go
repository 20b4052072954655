package handler

import (
	"bank-office-api/common"
	"bank-office-api/model"
	"bank-office-api/service"
	"encoding/json"
	"net/http"
	"strconv"
)

type CustomerHandler struct {
	service *service.CustomerService
}

func NewCustomerHandler(s *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: s}
}

// CreateCustomer handles the request to register a new customer.
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CustomerRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	customer, err := h.service.CreateCustomer(req)
	if err != nil {
		return mapCustomerError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(customer)
	return nil
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid customer ID in URL path", err)
	}

	customer, svcErr := h.service.GetCustomer(id)
	if svcErr != nil {
		return mapCustomerError(svcErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(customer)
	return nil
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid customer ID in URL path", err)
	}

	var req model.CustomerRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	customer, svcErr := h.service.UpdateCustomer(id, req)
	if svcErr != nil {
		return mapCustomerError(svcErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(customer)
	return nil
}

func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid customer ID in URL path", err)
	}

	if svcErr := h.service.DeleteCustomer(id); svcErr != nil {
		return mapCustomerError(svcErr)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func mapCustomerError(err error) *common.AppError {
	switch err {
	case service.ErrCustomerNotFound:
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	case service.ErrMissingBirthDate, service.ErrUnderageCustomer, service.ErrInvalidEmail, service.ErrInvalidName:
		return common.NewAppError(http.StatusBadRequest, err.Error(), err)
	case service.ErrCustomerHasAccounts:
		return common.NewAppError(http.StatusConflict, err.Error(), err)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Could not process customer request", err)
	}
}
