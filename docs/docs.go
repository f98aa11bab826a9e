// Package docs registers the OpenAPI document for the booking service.
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
        "/bookings": {
            "get": {
                "security": [{"cookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "List the caller's bookings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BookingListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorBody"}}
                }
            },
            "post": {
                "security": [{"cookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book a seat for an event",
                "parameters": [
                    {
                        "description": "Event to book",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.createBookingRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.BookingCreatedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorBody"}},
                    "402": {"description": "Payment Required", "schema": {"$ref": "#/definitions/models.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.createBookingRequest": {
            "type": "object",
            "required": ["eventId"],
            "properties": {
                "eventId": {"type": "string"}
            }
        },
        "models.Booking": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "eventId": {"type": "string"},
                "userEmail": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "models.BookingCreatedResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "bookingId": {"type": "integer"}
            }
        },
        "models.BookingListResponse": {
            "type": "object",
            "properties": {
                "bookings": {"type": "array", "items": {"$ref": "#/definitions/models.Booking"}}
            }
        },
        "models.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "cookieAuth": {
            "type": "apiKey",
            "name": "token",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Booking Service API",
	Description:      "Creates event bookings and announces them on the notification queue.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
