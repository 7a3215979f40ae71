package main

import (
	"go-user-api/app"
)

// @title           Go-User API
// @version         1.0
// @description     User account backend: registration, sessions, email verification, password reset.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
