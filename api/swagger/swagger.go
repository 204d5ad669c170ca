package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Trainer Planning API",
        "description": "Trainer availability planning grid: availability records, matrix and weekly views, drag-select bulk creation.",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Trainers", "description": "Trainer catalog"},
        {"name": "Availability", "description": "Per-day availability records"},
        {"name": "Planning", "description": "Matrix and weekly planning views"}
    ],
    "paths": {
        "/trainers": {
            "get": {
                "tags": ["Trainers"],
                "summary": "List trainers",
                "parameters": [
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "List availability inside a date window",
                "parameters": [
                    {"name": "date_from", "in": "query", "type": "string", "format": "date", "required": true},
                    {"name": "date_to", "in": "query", "type": "string", "format": "date", "required": true},
                    {"name": "trainer_id", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid window", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Availability"],
                "summary": "Record availability for one day",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAvailabilityRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Day already recorded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/bulk": {
            "post": {
                "tags": ["Availability"],
                "summary": "Record availability for several days",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkAvailabilityRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created and rejected dates", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/{id}": {
            "put": {
                "tags": ["Availability"],
                "summary": "Update an availability record",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAvailabilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Availability"],
                "summary": "Delete an availability record",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planning/matrix": {
            "get": {
                "tags": ["Planning"],
                "summary": "Planning matrix of active trainers",
                "parameters": [
                    {"name": "view", "in": "query", "type": "string", "enum": ["week", "month"]},
                    {"name": "date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planning/weekly": {
            "get": {
                "tags": ["Planning"],
                "summary": "Weekly grid of one trainer",
                "parameters": [
                    {"name": "trainer_id", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planning/gestures": {
            "post": {
                "tags": ["Planning"],
                "summary": "Replay a click or drag on the planning matrix",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GestureRequest"}}
                ],
                "responses": {
                    "200": {"description": "Dry run draft", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Draft submitted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Anchor day already recorded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planning/export": {
            "get": {
                "tags": ["Planning"],
                "summary": "Download the planning matrix",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "view", "in": "query", "type": "string", "enum": ["week", "month"]},
                    {"name": "date", "in": "query", "type": "string", "format": "date"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Planning sheet", "schema": {"type": "file"}},
                    "403": {"description": "Exports disabled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateAvailabilityRequest": {
            "type": "object",
            "required": ["trainer_id", "date", "status"],
            "properties": {
                "trainer_id": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "status": {"type": "string", "enum": ["available", "partial", "unavailable"]},
                "period": {"type": "string", "enum": ["full_day", "morning", "afternoon"]},
                "notes": {"type": "string"}
            }
        },
        "UpdateAvailabilityRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["available", "partial", "unavailable"]},
                "period": {"type": "string", "enum": ["full_day", "morning", "afternoon"]},
                "notes": {"type": "string"}
            }
        },
        "BulkAvailabilityRequest": {
            "type": "object",
            "required": ["trainer_id", "dates"],
            "properties": {
                "trainer_id": {"type": "string"},
                "dates": {"type": "array", "items": {"type": "string", "format": "date"}},
                "status": {"type": "string", "enum": ["available", "partial", "unavailable"]},
                "period": {"type": "string", "enum": ["full_day", "morning", "afternoon"]},
                "notes": {"type": "string"}
            }
        },
        "GestureRequest": {
            "type": "object",
            "required": ["trainer_id", "anchor"],
            "properties": {
                "trainer_id": {"type": "string"},
                "view": {"type": "string", "enum": ["week", "month"]},
                "anchor": {"type": "string", "format": "date"},
                "release": {"type": "string", "format": "date"},
                "status": {"type": "string", "enum": ["available", "partial", "unavailable"]},
                "period": {"type": "string", "enum": ["full_day", "morning", "afternoon"]},
                "notes": {"type": "string"},
                "dry_run": {"type": "boolean"}
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
