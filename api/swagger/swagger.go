package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Crew Roster API",
        "description": "FDTL-aware crew rostering service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Authentication", "description": "Operator login"},
        {"name": "Crew", "description": "Crew master management"},
        {"name": "Flights", "description": "Flight schedule management"},
        {"name": "Roster", "description": "Roster builds, views and overrides"},
        {"name": "Violations", "description": "Legality audit trail"},
        {"name": "Utilization", "description": "Per-crew duty utilization"},
        {"name": "Exports", "description": "CSV/PDF downloads"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate operator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/crew": {
            "get": {
                "tags": ["Crew"],
                "summary": "List crew members",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "role", "in": "query", "type": "string", "enum": ["LCC", "CC"]},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Crew"],
                "summary": "Register crew member",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCrewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Employee id already registered"}
                }
            }
        },
        "/crew/{id}": {
            "get": {
                "tags": ["Crew"],
                "summary": "Get crew member",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Crew"],
                "summary": "Update crew member",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCrewRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Crew"],
                "summary": "Deactivate crew member",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deactivated"}, "404": {"description": "Not found"}}
            }
        },
        "/flights": {
            "get": {
                "tags": ["Flights"],
                "summary": "List flights",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "flight_number", "in": "query", "type": "string"},
                    {"name": "origin", "in": "query", "type": "string"},
                    {"name": "destination", "in": "query", "type": "string"},
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Flights"],
                "summary": "Schedule flight",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateFlightRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid payload"}}
            }
        },
        "/flights/{id}": {
            "get": {
                "tags": ["Flights"],
                "summary": "Get flight",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/roster/build": {
            "post": {
                "tags": ["Roster"],
                "summary": "Build roster for a date window",
                "description": "Runs the legality-aware round-robin builder over [start_date, end_date). async=true queues the build.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BuildRosterRequest"}}
                ],
                "responses": {
                    "200": {"description": "Build result"},
                    "202": {"description": "Build queued"},
                    "400": {"description": "Invalid window"},
                    "412": {"description": "No active crew"}
                }
            }
        },
        "/roster": {
            "get": {
                "tags": ["Roster"],
                "summary": "List roster entries",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "start_date", "in": "query", "required": true, "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/roster/crew/{crew_id}": {
            "get": {
                "tags": ["Roster"],
                "summary": "List one crew member's roster",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "crew_id", "in": "path", "required": true, "type": "string"},
                    {"name": "start_date", "in": "query", "required": true, "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/roster/{id}/override": {
            "post": {
                "tags": ["Roster"],
                "summary": "Manually override an assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OverrideAssignmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Overridden, possibly with legality warning"},
                    "404": {"description": "Assignment or crew not found"},
                    "409": {"description": "Crew already rostered on flight"}
                }
            }
        },
        "/violations": {
            "get": {
                "tags": ["Violations"],
                "summary": "List legality violations",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "kind", "in": "query", "type": "string", "enum": ["NO_LEGAL_LCC", "INSUFFICIENT_CC"]},
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/utilization": {
            "get": {
                "tags": ["Utilization"],
                "summary": "Per-crew utilization summary",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/exports/roster": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download roster as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "start_date", "in": "query", "required": true, "type": "string"},
                    {"name": "end_date", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "File"}}
            }
        },
        "/exports/violations": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download violations as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "start_date", "in": "query", "required": true, "type": "string"},
                    {"name": "end_date", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "File"}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateCrewRequest": {
            "type": "object",
            "required": ["employee_id", "full_name", "role"],
            "properties": {
                "employee_id": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string", "enum": ["LCC", "CC"]},
                "phone": {"type": "string"}
            }
        },
        "UpdateCrewRequest": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "phone": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "CreateFlightRequest": {
            "type": "object",
            "required": ["flight_number", "origin", "destination", "departure_time", "arrival_time"],
            "properties": {
                "flight_number": {"type": "string"},
                "origin": {"type": "string"},
                "destination": {"type": "string"},
                "departure_time": {"type": "string", "format": "date-time"},
                "arrival_time": {"type": "string", "format": "date-time"},
                "aircraft_type": {"type": "string"}
            }
        },
        "BuildRosterRequest": {
            "type": "object",
            "required": ["start_date", "end_date"],
            "properties": {
                "start_date": {"type": "string", "example": "2024-03-01"},
                "end_date": {"type": "string", "example": "2024-03-31"},
                "async": {"type": "boolean"}
            }
        },
        "OverrideAssignmentRequest": {
            "type": "object",
            "required": ["crew_id", "reason"],
            "properties": {
                "crew_id": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
