// cmd/main.go
package main

import (
	"bank-office-api/app"
)

// @title           Bank Office API
// @version         1.0
// @description     Back-office API managing customers, accounts and account-to-account movements.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
