package handler

import (
	"bank-office-api/common"
	"bank-office-api/logger"
	"bank-office-api/model"
	"bank-office-api/service"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	service *service.AccountService
}

func NewAccountHandler(service *service.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// CreateAccount handles the request to open a new account under a customer.
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerID, err := strconv.Atoi(r.PathValue("customerId"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid customer ID in URL path", err)
	}

	var req model.CreateAccountRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	log := logger.Log.WithFields(logrus.Fields{
		"customer_id":  customerID,
		"account_type": req.AccountType,
	})
	log.Info("Create account request received")

	account, svcErr := h.service.CreateAccount(customerID, req)
	if svcErr != nil {
		return mapAccountError(svcErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(account)
	return nil
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid account ID in URL path", err)
	}

	account, svcErr := h.service.GetAccount(id)
	if svcErr != nil {
		return mapAccountError(svcErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(account)
	return nil
}

func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid account ID in URL path", err)
	}

	var req model.UpdateAccountRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	account, svcErr := h.service.UpdateAccount(id, req)
	if svcErr != nil {
		return mapAccountError(svcErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(account)
	return nil
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid account ID in URL path", err)
	}

	if svcErr := h.service.DeleteAccount(id); svcErr != nil {
		return mapAccountError(svcErr)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ActivateAccount sets the account status to ACTIVE.
func (h *AccountHandler) ActivateAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.setStatus(w, r, model.AccountStatusActive)
}

// DeactivateAccount sets the account status to INACTIVE.
func (h *AccountHandler) DeactivateAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.setStatus(w, r, model.AccountStatusInactive)
}

func (h *AccountHandler) setStatus(w http.ResponseWriter, r *http.Request, status model.AccountStatus) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid account ID in URL path", err)
	}

	account, svcErr := h.service.SetAccountStatus(id, status)
	if svcErr != nil {
		return mapAccountError(svcErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(account)
	return nil
}

func (h *AccountHandler) GetAccountStatus(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid account ID in URL path", err)
	}

	status, svcErr := h.service.GetAccountStatus(id)
	if svcErr != nil {
		return mapAccountError(svcErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": string(status)})
	return nil
}

// ListAccountsForCustomer lists all accounts owned by a customer.
func (h *AccountHandler) ListAccountsForCustomer(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid customer ID in URL path", err)
	}

	accounts, svcErr := h.service.ListAccountsForCustomer(customerID)
	if svcErr != nil {
		return mapAccountError(svcErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(accounts)
	return nil
}

func mapAccountError(err error) *common.AppError {
	switch err {
	case service.ErrAccountNotFound, service.ErrCustomerNotFound:
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	case service.ErrInvalidAccountType, service.ErrInvalidInitialBalance, service.ErrNegativeBalance:
		return common.NewAppError(http.StatusBadRequest, err.Error(), err)
	case service.ErrNonZeroBalance:
		return common.NewAppError(http.StatusConflict, err.Error(), err)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Could not process account request", err)
	}
}
