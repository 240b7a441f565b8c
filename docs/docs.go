// Package docs registers the dashboard's OpenAPI document with swag so that
// gin-swagger can serve it at /swagger. Keep it in step with the handler
// annotations in internal/handlers.
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
        "/api/v1/logs": {
            "get": {
                "description": "Connection changes, sent commands and catalog loads kept in memory. A date-only 'to' covers that whole day.",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List dashboard events",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')", "name": "to", "in": "query"},
                    {"enum": ["CONNECTED", "DISCONNECTED", "ERROR", "COMMAND", "PROFILES_LOADED"], "type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/profiles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "List profiles",
                "responses": {
                    "200": {"description": "source, profiles", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/profiles/reload": {
            "post": {
                "description": "Runs /debug/profiles, then /profiles, then the built-in list",
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "Reload profiles",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/profiles/{name}/start": {
            "post": {
                "description": "Resolves the profile by name and sends its catalog index to the dryer",
                "produces": ["application/json"],
                "tags": ["commands"],
                "summary": "Start profile",
                "parameters": [
                    {"type": "string", "description": "Profile name (URL-escaped)", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/stop": {
            "post": {
                "produces": ["application/json"],
                "tags": ["commands"],
                "summary": "Stop drying",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/temperature": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["commands"],
                "summary": "Set manual temperature",
                "parameters": [
                    {"description": "Temperature payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SetTemperatureRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/view": {
            "get": {
                "description": "Connection indicator, status cards, chart series, timer and profiles",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Current dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.View"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "Sends the current view on connect, then every change, and resends at the interval when nothing changed",
                "tags": ["dashboard"],
                "summary": "Dashboard view stream",
                "parameters": [
                    {"type": "string", "description": "Keep-alive resend interval, e.g. 2s", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "Keep-alive resend interval in milliseconds", "name": "interval_ms", "in": "query"}
                ],
                "responses": {}
            }
        }
    },
    "definitions": {
        "channel.Status": {
            "type": "object",
            "properties": {
                "healthy": {"type": "boolean"},
                "label": {"type": "string"},
                "state": {"type": "string"}
            }
        },
        "dashboard.ActiveProfile": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"},
                "name": {"type": "string"},
                "totalSeconds": {"type": "integer"}
            }
        },
        "dashboard.Charts": {
            "type": "object",
            "properties": {
                "humidity": {"type": "array", "items": {"type": "number"}},
                "labels": {"type": "array", "items": {"type": "string"}},
                "targetTemperature": {"type": "array", "items": {"type": "number"}},
                "temperature": {"type": "array", "items": {"type": "number"}}
            }
        },
        "dashboard.ProfileView": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean"},
                "duration": {"type": "integer"},
                "durationLabel": {"type": "string"},
                "index": {"type": "integer"},
                "name": {"type": "string"},
                "temperature": {"type": "number"}
            }
        },
        "dashboard.StatusView": {
            "type": "object",
            "properties": {
                "currentHumidity": {"type": "string"},
                "currentTemp": {"type": "string"},
                "heaterPower": {"type": "string"},
                "targetTemp": {"type": "string"}
            }
        },
        "dashboard.TimerView": {
            "type": "object",
            "properties": {
                "progress": {"type": "number"},
                "remaining": {"type": "string"},
                "visible": {"type": "boolean"}
            }
        },
        "dashboard.View": {
            "type": "object",
            "properties": {
                "activeProfile": {"$ref": "#/definitions/dashboard.ActiveProfile"},
                "charts": {"$ref": "#/definitions/dashboard.Charts"},
                "connection": {"$ref": "#/definitions/channel.Status"},
                "profileSource": {"type": "string"},
                "profiles": {"type": "array", "items": {"$ref": "#/definitions/dashboard.ProfileView"}},
                "status": {"$ref": "#/definitions/dashboard.StatusView"},
                "timer": {"$ref": "#/definitions/dashboard.TimerView"},
                "updatedAt": {"type": "string"},
                "version": {"type": "integer"}
            }
        },
        "handlers.SetTemperatureRequest": {
            "type": "object",
            "required": ["temperature"],
            "properties": {
                "temperature": {"type": "number", "maximum": 80, "minimum": 30, "example": 55}
            }
        }
    }
}`

// SwaggerInfo is the registered document; main may override Host or BasePath.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Filament Dryer Dashboard API",
	Description:      "Live readings, chart series and operator commands for a filament dryer.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
