// Package docs holds the Swagger 2.0 document served under /swagger/.
// It is maintained by hand alongside the controller annotations, and its
// tests pin the documented operations to the routes the API serves.
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
        "/activities": {
            "get": {
                "description": "Returns every activity keyed by name, with description, schedule, capacity and current participants.",
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "List all activities",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {"$ref": "#/definitions/domain.Activity"}
                        }
                    },
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/activities/{activityName}/history": {
            "get": {
                "description": "Returns signup and unregister events in the order they happened. Requires the audit database.",
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "Roster change history for an activity",
                "parameters": [
                    {"type": "string", "description": "Activity name (case sensitive, URL encoded)", "name": "activityName", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.RosterEvent"}}},
                    "404": {"description": "activity not found", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "503": {"description": "history not enabled", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/activities/{activityName}/signup": {
            "post": {
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "Sign a student up for an activity",
                "parameters": [
                    {"type": "string", "description": "Activity name (case sensitive, URL encoded)", "name": "activityName", "in": "path", "required": true},
                    {"type": "string", "description": "Student email", "name": "email", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.MessageResponse"}},
                    "400": {"description": "already signed up, or activity full", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "404": {"description": "activity not found", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "422": {"description": "email missing", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/activities/{activityName}/unregister": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "Remove a student from an activity",
                "parameters": [
                    {"type": "string", "description": "Activity name (case sensitive, URL encoded)", "name": "activityName", "in": "path", "required": true},
                    {"type": "string", "description": "Student email", "name": "email", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.MessageResponse"}},
                    "404": {"description": "activity not found, or student not signed up", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "422": {"description": "email missing", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/helpers.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Activity": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "max_participants": {"type": "integer"},
                "participants": {"type": "array", "items": {"type": "string"}},
                "schedule": {"type": "string"}
            }
        },
        "domain.RosterEvent": {
            "type": "object",
            "properties": {
                "action": {"type": "string"},
                "activity_name": {"type": "string"},
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"}
            }
        },
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "helpers.ErrorResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"}
            }
        },
        "helpers.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Mergington High School Activities API",
	Description:      "View extracurricular activities and sign students up or remove them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
