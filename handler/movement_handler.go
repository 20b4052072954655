package handler

import (
	"bank-office-api/common"
	"bank-office-api/model"
	"bank-office-api/service"
	"encoding/json"
	"net/http"
	"strconv"
)

// MovementHandler holds dependencies for ledger-related handlers.
type MovementHandler struct {
	service *service.MovementService
}

// NewMovementHandler creates a new MovementHandler with its dependencies.
func NewMovementHandler(s *service.MovementService) *MovementHandler {
	return &MovementHandler{service: s}
}

// CreateTransfer godoc
// @Summary      Transfer money between accounts
// @Description  Debits the source account and credits the destination account atomically, recording one TRANSFER movement.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        transfer body model.TransferRequest true "Details of the transfer"
// @Success      201  {object}  model.Movement
// @Failure      400  {object}  common.AppError "Bad Request (e.g., non-positive amount, same account)"
// @Failure      404  {object}  common.AppError "Source or destination account not found"
// @Failure      409  {object}  common.AppError "Insufficient funds in the source account"
// @Failure      500  {object}  common.AppError "Internal server error while processing transfer"
// @Router       /api/movements/transfer [post]
func (h *MovementHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.TransferRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	movement, err := h.service.Transfer(r.Context(), req.SourceAccountID, req.DestinationAccountID, req.Amount)
	if err != nil {
		return mapMovementError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(movement)
	return nil
}

// CreateWithdrawal godoc
// @Summary      Withdraw money from an account
// @Description  Debits the source account and records one WITHDRAWAL movement.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        withdrawal body model.WithdrawRequest true "Details of the withdrawal"
// @Success      201  {object}  model.Movement
// @Failure      400  {object}  common.AppError "Non-positive amount"
// @Failure      404  {object}  common.AppError "Source account not found"
// @Failure      409  {object}  common.AppError "Insufficient funds in the source account"
// @Failure      500  {object}  common.AppError "Internal server error while processing withdrawal"
// @Router       /api/movements/withdraw [post]
func (h *MovementHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.WithdrawRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	movement, err := h.service.Withdraw(r.Context(), req.SourceAccountID, req.Amount)
	if err != nil {
		return mapMovementError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(movement)
	return nil
}

// CreateDeposit godoc
// @Summary      Deposit money into an account
// @Description  Credits the destination account and records one DEPOSIT movement.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        deposit body model.DepositRequest true "Details of the deposit"
// @Success      201  {object}  model.Movement
// @Failure      400  {object}  common.AppError "Non-positive amount"
// @Failure      404  {object}  common.AppError "Destination account not found"
// @Failure      500  {object}  common.AppError "Internal server error while processing deposit"
// @Router       /api/movements/deposit [post]
func (h *MovementHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.DepositRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	movement, err := h.service.Deposit(r.Context(), req.DestinationAccountID, req.Amount)
	if err != nil {
		return mapMovementError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(movement)
	return nil
}

// ListMovementsForAccount godoc
// @Summary      List account movement history
// @Description  Retrieves the ledger entries touching a specific account, newest first.
// @Tags         movements
// @Produce      json
// @Param        id path int true "The ID of the account to retrieve movements for"
// @Success      200  {array}   model.Movement "A list of movements for the account"
// @Failure      400  {object}  common.AppError "Invalid account ID in URL path"
// @Failure      404  {object}  common.AppError "Account with the specified ID not found"
// @Failure      500  {object}  common.AppError "Internal server error while retrieving movements"
// @Router       /api/accounts/{id}/movements [get]
func (h *MovementHandler) ListMovementsForAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid account ID in URL path", err)
	}

	movements, svcErr := h.service.ListMovementsForAccount(r.Context(), accountID)
	if svcErr != nil {
		return mapMovementError(svcErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(movements)
	return nil
}

func mapMovementError(err error) *common.AppError {
	switch err {
	case service.ErrAccountNotFound:
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	case service.ErrInvalidAmount, service.ErrSameAccountTransfer:
		return common.NewAppError(http.StatusBadRequest, err.Error(), err)
	case service.ErrInsufficientFunds:
		return common.NewAppError(http.StatusConflict, err.Error(), err)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Could not process movement", err)
	}
}
