// Package docs registra el spec OpenAPI que sirve /swagger/doc.json.
// Regenerar con: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/debug/simulate-error": {
            "get": {
                "produces": ["application/json"],
                "tags": ["debug"],
                "summary": "Estado de la simulación de error",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/puppies.simulateErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["debug"],
                "summary": "Encender/apagar la simulación de error",
                "parameters": [
                    {"description": "enabled", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/puppies.simulateErrorRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/puppies.simulateErrorResponse"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "409": {"description": "error simulation not configured", "schema": {"type": "string"}}
                }
            }
        },
        "/puppies": {
            "get": {
                "description": "Devuelve hasta ` + "`" + `limit` + "`" + ` cachorros a partir del siguiente a ` + "`" + `cursor` + "`" + `. Un cursor desconocido reinicia desde el principio.",
                "produces": ["application/json"],
                "tags": ["puppies"],
                "summary": "Listar cachorros (paginado keyset)",
                "parameters": [
                    {"type": "string", "description": "ID del último cachorro recibido", "name": "cursor", "in": "query"},
                    {"type": "integer", "description": "Tamaño de página (default 12, máx 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/puppies.pageResponse"}},
                    "400": {"description": "limit inválido", "schema": {"type": "string"}},
                    "503": {"description": "Failed to load puppies. Please try again.", "schema": {"type": "string"}}
                }
            }
        },
        "/puppies/{puppyID}": {
            "get": {
                "description": "Resuelve un cachorro por ID. Incluye ageMonths y la línea meta.",
                "produces": ["application/json"],
                "tags": ["puppies"],
                "summary": "Detalle de cachorro",
                "parameters": [
                    {"type": "string", "description": "ID del cachorro", "name": "puppyID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/puppies.puppyDetailResponse"}},
                    "404": {"description": "puppy not found", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "puppies.puppyResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "imageUrl": {"type": "string"},
                "age": {"type": "number"},
                "location": {"type": "string"}
            }
        },
        "puppies.puppyDetailResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "imageUrl": {"type": "string"},
                "age": {"type": "number"},
                "location": {"type": "string"},
                "ageMonths": {"type": "integer"},
                "meta": {"type": "string"}
            }
        },
        "puppies.pageResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/puppies.puppyResponse"}},
                "nextCursor": {"type": "string"}
            }
        },
        "puppies.simulateErrorRequest": {
            "type": "object",
            "properties": {"enabled": {"type": "boolean"}}
        },
        "puppies.simulateErrorResponse": {
            "type": "object",
            "properties": {"enabled": {"type": "boolean"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Puppy Store API",
	Description:      "Listado paginado de cachorros y detalle, sobre un dataset estático.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
