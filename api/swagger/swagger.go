package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "VLA Admin API",
        "description": "Back-office calendar service for the language academy: materialises weekly schedule templates and session overrides into the session calendar.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Calendar", "description": "Materialised session calendar"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/calendar/sessions": {
            "get": {
                "tags": ["Calendar"],
                "summary": "List materialised calendar sessions",
                "parameters": [
                    {"name": "scope", "in": "query", "type": "string", "enum": ["all", "date", "week", "month"], "default": "all"},
                    {"name": "date", "in": "query", "type": "string", "description": "YYYY-MM-DD, required when scope=date"},
                    {"name": "anchor", "in": "query", "type": "string", "description": "Anchor date for week/month windows, defaults to today"},
                    {"name": "q", "in": "query", "type": "string", "description": "Free-text filter over teacher, room, status, date and time"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "room", "in": "query", "type": "string"},
                    {"name": "class_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid query or date", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/classes/{id}/sessions": {
            "get": {
                "tags": ["Calendar"],
                "summary": "List materialised sessions for one class",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "scope", "in": "query", "type": "string", "enum": ["all", "date", "week", "month"], "default": "all"},
                    {"name": "anchor", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/refresh": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Refresh the calendar sources",
                "responses": {
                    "200": {"description": "Refresh outcome", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "A source fetch failed; previous snapshot retained", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SessionView": {
            "type": "object",
            "properties": {
                "class_id": {"type": "string"},
                "class_name": {"type": "string"},
                "source_id": {"type": "string"},
                "origin": {"type": "string", "enum": ["template", "override"]},
                "date": {"type": "string", "example": "2026-02-02"},
                "display_date": {"type": "string", "example": "02/02/2026"},
                "day_of_week": {"type": "integer", "minimum": 0, "maximum": 6},
                "start_time": {"type": "string", "example": "08:00"},
                "end_time": {"type": "string", "example": "10:00"},
                "time_range": {"type": "string", "example": "08:00 - 10:00"},
                "teacher_id": {"type": "string"},
                "teacher_name": {"type": "string"},
                "room_name": {"type": "string"},
                "status": {"type": "string"},
                "note": {"type": "string"},
                "color_tag": {"type": "string", "example": "#2563eb"},
                "title": {"type": "string"},
                "is_today": {"type": "boolean"}
            }
        },
        "WindowMeta": {
            "type": "object",
            "properties": {
                "scope": {"type": "string"},
                "start": {"type": "string"},
                "end": {"type": "string"},
                "anchor": {"type": "string"},
                "dropped_records": {"type": "integer"}
            }
        },
        "RefreshResult": {
            "type": "object",
            "properties": {
                "generation": {"type": "integer"},
                "applied": {"type": "boolean"},
                "templates": {"type": "integer"},
                "overrides": {"type": "integer"},
                "teachers": {"type": "integer"},
                "assignments": {"type": "integer"},
                "classes": {"type": "integer"},
                "loaded_at": {"type": "string", "format": "date-time"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
