package router

import (
	"bank-office-api/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(customerHandler *handler.CustomerHandler, accountHandler *handler.AccountHandler, movementHandler *handler.MovementHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.Handle("POST /api/customers", handler.ErrorHandlingMiddleware(customerHandler.CreateCustomer))
	mux.Handle("GET /api/customers/{id}", handler.ErrorHandlingMiddleware(customerHandler.GetCustomer))
	mux.Handle("PUT /api/customers/{id}", handler.ErrorHandlingMiddleware(customerHandler.UpdateCustomer))
	mux.Handle("DELETE /api/customers/{id}", handler.ErrorHandlingMiddleware(customerHandler.DeleteCustomer))

	mux.Handle("POST /api/customers/{customerId}/accounts", handler.ErrorHandlingMiddleware(accountHandler.CreateAccount))
	mux.Handle("GET /api/customers/{id}/accounts", handler.ErrorHandlingMiddleware(accountHandler.ListAccountsForCustomer))
	mux.Handle("GET /api/accounts/{id}", handler.ErrorHandlingMiddleware(accountHandler.GetAccount))
	mux.Handle("PUT /api/accounts/{id}", handler.ErrorHandlingMiddleware(accountHandler.UpdateAccount))
	mux.Handle("DELETE /api/accounts/{id}", handler.ErrorHandlingMiddleware(accountHandler.DeleteAccount))
	mux.Handle("PUT /api/accounts/{id}/activate", handler.ErrorHandlingMiddleware(accountHandler.ActivateAccount))
	mux.Handle("PUT /api/accounts/{id}/deactivate", handler.ErrorHandlingMiddleware(accountHandler.DeactivateAccount))
	mux.Handle("GET /api/accounts/{id}/status", handler.ErrorHandlingMiddleware(accountHandler.GetAccountStatus))

	mux.Handle("POST /api/movements/transfer", handler.ErrorHandlingMiddleware(movementHandler.CreateTransfer))
	mux.Handle("POST /api/movements/withdraw", handler.ErrorHandlingMiddleware(movementHandler.CreateWithdrawal))
	mux.Handle("POST /api/movements/deposit", handler.ErrorHandlingMiddleware(movementHandler.CreateDeposit))
	mux.Handle("GET /api/accounts/{id}/movements", handler.ErrorHandlingMiddleware(movementHandler.ListMovementsForAccount))

	return mux
}
