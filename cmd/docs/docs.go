// Package docs registers the Swagger specification served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "User login",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register new user",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Refresh access token",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/google/exchange-code": {
            "post": {
                "tags": ["oauth"],
                "summary": "Exchange authorization code for access token",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/transactions": {
            "get": {
                "tags": ["transactions"],
                "summary": "List ledger page",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["transactions"],
                "summary": "Record a transaction",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/transactions/{transactionID}": {
            "get": {
                "tags": ["transactions"],
                "summary": "Get a transaction",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["transactions"],
                "summary": "Update a transaction",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["transactions"],
                "summary": "Delete a transaction",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/transactions/categories": {
            "get": {
                "tags": ["transactions"],
                "summary": "List used categories",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/transactions/summary": {
            "get": {
                "tags": ["transactions"],
                "summary": "Dashboard counters",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/imports/preview": {
            "post": {
                "tags": ["imports"],
                "summary": "Preview a spreadsheet import",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/imports": {
            "post": {
                "tags": ["imports"],
                "summary": "Commit a staged import",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/invoices": {
            "post": {
                "tags": ["invoices"],
                "summary": "Upload an invoice file",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/users/me": {
            "get": {
                "tags": ["users"],
                "summary": "Current user profile",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["users"],
                "summary": "Deactivate account",
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Uangku Backend API",
	Description:      "Bookkeeping backend: country-program ledgers, spreadsheet imports, invoice uploads.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
