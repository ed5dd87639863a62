package main

import (
	_ "evaluation_orders/docs"
	"evaluation_orders/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Evaluation Orders API
// @version         1.0
// @description     Checkout wizard, orders, quotes and payments for credential evaluation and translation services.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
